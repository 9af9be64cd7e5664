// Package input turns a raw terminal byte stream into per-frame key and mouse state.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last byte arrived.
// It spans the gap between terminal auto-repeat bytes.
const keyHoldDuration = 60 * time.Millisecond

// Mouse tracking: button-event reporting with SGR coordinates.
const (
	EnableMouse  = "\033[?1002h\033[?1006h"
	DisableMouse = "\033[?1006l\033[?1002l"
)

// Mouse is a pointer report in 1-based terminal cells.
type Mouse struct {
	Col, Row int
	Down     bool // a button is held (press or drag)
}

// Input is the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Mouse  *Mouse // last mouse report this frame, nil if none
	Closed bool   // the reader hit EOF or an error
	// Pressed holds every byte read this frame; empty means no activity.
	Pressed []byte
}

type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets held keys and drops bytes already buffered, so the key
// that changed screens does not also act on the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

// ReadInput drains all available bytes without blocking and returns the frame's input.
func ReadInput(s *Stream) Input {
	return readAt(s, time.Now())
}

func readAt(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var mouse *Mouse
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case '<':
				if m, n, ok := parseSGRMouse(buf[i+3:]); ok {
					mouse = &m
					i += 2 + n
					continue
				}
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Mouse:   mouse,
		Closed:  s.closed,
		Pressed: buf,
	}
}

// parseSGRMouse parses "Cb;Cx;CyM" (or a trailing 'm' on release) and returns
// the report and the number of bytes consumed.
func parseSGRMouse(b []byte) (Mouse, int, bool) {
	var fields [3]int
	field, start := 0, 0
	for i, c := range b {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, err := strconv.Atoi(string(b[start:i]))
			if err != nil {
				return Mouse{}, 0, false
			}
			fields[field] = v
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, err := strconv.Atoi(string(b[start:i]))
			if err != nil {
				return Mouse{}, 0, false
			}
			fields[2] = v
			// Bits 0-1 are the button (3 = none); bit 5 marks motion.
			down := c == 'M' && fields[0]&3 != 3
			return Mouse{Col: fields[1], Row: fields[2], Down: down}, i + 1, true
		default:
			return Mouse{}, 0, false
		}
	}
	return Mouse{}, 0, false
}

func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
