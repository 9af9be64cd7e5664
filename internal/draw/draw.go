// Package draw renders to ANSI terminals with half-block characters.
package draw

// Point is a position in a canvas's logical coordinate space (y grows downwards).
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a 16-colour ANSI palette entry. The zero value is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorBrightCyan
	ColorBrightYellow
)

// ANSI sequences for the palette.
const (
	ColorReset = "\033[0m"
)

var fgCodes = [...]string{
	ColorNone:         "",
	ColorWhite:        "\033[97m",
	ColorGray:         "\033[90m",
	ColorRed:          "\033[91m",
	ColorGreen:        "\033[92m",
	ColorYellow:       "\033[33m",
	ColorBlue:         "\033[94m",
	ColorMagenta:      "\033[95m",
	ColorCyan:         "\033[36m",
	ColorBrightCyan:   "\033[96m",
	ColorBrightYellow: "\033[93m",
}

var bgCodes = [...]string{
	ColorNone:         "",
	ColorWhite:        "\033[107m",
	ColorGray:         "\033[100m",
	ColorRed:          "\033[101m",
	ColorGreen:        "\033[102m",
	ColorYellow:       "\033[43m",
	ColorBlue:         "\033[104m",
	ColorMagenta:      "\033[105m",
	ColorCyan:         "\033[46m",
	ColorBrightCyan:   "\033[106m",
	ColorBrightYellow: "\033[103m",
}

// Foreground returns the escape sequence selecting c as text colour.
func (c Color) Foreground() string {
	if int(c) >= len(fgCodes) {
		return ""
	}
	return fgCodes[c]
}

// Background returns the escape sequence selecting c as cell background.
func (c Color) Background() string {
	if int(c) >= len(bgCodes) {
		return ""
	}
	return bgCodes[c]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
