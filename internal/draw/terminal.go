package draw

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ChunkWriter collects one frame of terminal output and sends it in pieces no
// larger than maxChunkSize, which keeps SSH sessions from stalling on big
// redraws. Canvas.Render and the text overlay both write into it.
type ChunkWriter struct {
	w   io.Writer
	buf []byte
}

func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: w, buf: make([]byte, 0, 16*1024)}
}

// MoveCursor appends a cursor position sequence for a 1-based cell.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col), 10)
	cw.buf = append(cw.buf, 'H')
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt writes s starting at a 1-based cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// WriteColored is WriteAt in the foreground colour c.
func (cw *ChunkWriter) WriteColored(col, row int, s string, c Color) {
	if c == ColorNone {
		cw.WriteAt(col, row, s)
		return
	}
	cw.MoveCursor(col, row)
	cw.WriteString(c.Foreground())
	cw.WriteString(s)
	cw.WriteString(ColorReset)
}

// Pending reports how many bytes are waiting for Flush.
func (cw *ChunkWriter) Pending() int {
	return len(cw.buf)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the frame and empties the buffer, even on error.
func (cw *ChunkWriter) Flush() error {
	defer func() { cw.buf = cw.buf[:0] }()
	for data := cw.buf; len(data) > 0; {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

func HideCursor(w io.Writer) {
	io.WriteString(w, "\033[?25l")
}

func ShowCursor(w io.Writer) {
	io.WriteString(w, "\033[?25h")
}
