package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxChunkSize is the largest single write ChunkWriter makes.
const maxChunkSize = 1400

// cell is what one terminal cell shows: the colours of its two sub-pixels.
type cell struct {
	top, bottom Color
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Drawing happens in logical coordinates that are
// scaled to terminal pixels. Render only repaints cells that changed since the
// previous Render.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []Color // [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64
	scaleY        float64

	shown      []cell
	shownValid []bool

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.allocate(termWidth, termHeight)
	return c
}

func (c *Canvas) allocate(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Color, c.subPixelHeight*termWidth)
	c.shown = make([]cell, termHeight*termWidth)
	c.shownValid = make([]bool, termHeight*termWidth)
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Resize updates the canvas for new terminal dimensions while keeping the logical size.
// A real size change forces a full repaint.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.allocate(termWidth, termHeight)
	}
}

// Clear resets all pixels. It does not touch the terminal.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.shownValid)
}

// MarkTextDirty makes the next Render repaint n cells starting at the 1-based
// canvas position (col, row). Call it after writing text over the canvas.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shownValid[r*c.termWidth+x] = false
	}
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the colour at terminal pixel (x, y), ColorNone when unset or out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return ColorNone
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Set sets the pixel at logical position p.
func (c *Canvas) Set(p Point, col Color) {
	x, y := c.toPixel(p)
	c.setPixel(x, y, col)
}

// DrawLine draws a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed polygon, scanline-filled when filled is true.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col Color) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawCircle draws a circle of logical radius r around center. Unequal x and y
// scaling turns it into an ellipse in pixel space, which is what keeps it round
// on screen.
func (c *Canvas) DrawCircle(center Point, r float64, filled bool, col Color) {
	if r <= 0 {
		return
	}
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.Set(center, col)
		return
	}

	inside := func(dx, dy float64) bool {
		return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		dy := float64(y) - cy
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := float64(x) - cx
			if !inside(dx, dy) {
				continue
			}
			if filled || !inside(math.Abs(dx)+1, dy) || !inside(dx, math.Abs(dy)+1) {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Render writes the cells that changed since the previous Render. Pass a
// ChunkWriter to keep the writes small.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	style := ""
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			i := row*c.termWidth + col
			if c.shownValid[i] && c.shown[i] == cur {
				continue
			}
			c.shown[i] = cur
			c.shownValid[i] = true

			ch, want := glyph(cur)
			if want != style {
				c.renderBuf.WriteString(ColorReset)
				c.renderBuf.WriteString(want)
				style = want
			}
			c.moveTo(col+1, row+1)
			c.renderBuf.WriteRune(ch)
		}
	}
	if style != "" {
		c.renderBuf.WriteString(ColorReset)
	}

	io.WriteString(w, c.renderBuf.String())
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// glyph picks the character and colour sequence showing a cell.
func glyph(c cell) (rune, string) {
	switch {
	case c.top == ColorNone && c.bottom == ColorNone:
		return BlockEmpty, ""
	case c.top == c.bottom:
		return BlockFull, c.top.Foreground()
	case c.bottom == ColorNone:
		return BlockUpperHalf, c.top.Foreground()
	case c.top == ColorNone:
		return BlockLowerHalf, c.bottom.Foreground()
	default:
		return BlockUpperHalf, c.top.Foreground() + c.bottom.Background()
	}
}

func (c *Canvas) TerminalWidth() int     { return c.termWidth }
func (c *Canvas) TerminalHeight() int    { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based canvas cell (col, row).
func (c *Canvas) LogicalToTerminal(p Point) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based canvas cell to the logical position of
// its centre. It is the inverse of LogicalToTerminal up to cell resolution.
func (c *Canvas) TerminalToLogical(col, row int) Point {
	if c.scaleX == 0 || c.scaleY == 0 {
		return Point{}
	}
	return Point{
		X: float64(col-1) / c.scaleX,
		Y: (float64(row-1)*2 + 1) / c.scaleY,
	}
}

// BorrowPoints returns a reusable slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
