package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamOf returns a stream with all of data already buffered, and the reader at EOF.
func streamOf(t *testing.T, data string) *Stream {
	t.Helper()
	s := StartStream(bufio.NewReader(strings.NewReader(data)))
	require.Eventually(t, func() bool { return len(s.ch) == len(data) || len(data) == 0 },
		time.Second, time.Millisecond)
	return s
}

func TestReadInputArrowsAndKeys(t *testing.T) {
	s := streamOf(t, "\x1b[A\x1b[Dq ")
	in := ReadInput(s)
	assert.True(t, in.Up)
	assert.True(t, in.Left)
	assert.False(t, in.Right)
	assert.True(t, in.Quit)
	assert.True(t, in.Space)
	assert.Len(t, in.Pressed, 8)
}

func TestKeysExpireAfterHold(t *testing.T) {
	s := &Stream{ch: make(chan byte, 4)}
	now := time.Now()
	s.ch <- 'd'

	assert.True(t, readAt(s, now).Right)
	assert.True(t, readAt(s, now.Add(keyHoldDuration/2)).Right)
	assert.False(t, readAt(s, now.Add(keyHoldDuration)).Right)
}

func TestReadInputMouse(t *testing.T) {
	s := streamOf(t, "\x1b[<0;12;7M\x1b[<32;15;9Mw")
	in := ReadInput(s)
	require.NotNil(t, in.Mouse)
	assert.Equal(t, Mouse{Col: 15, Row: 9, Down: true}, *in.Mouse)
	assert.True(t, in.Up)

	s = streamOf(t, "\x1b[<0;3;4m")
	in = ReadInput(s)
	require.NotNil(t, in.Mouse)
	assert.False(t, in.Mouse.Down)
}

func TestParseSGRMouseRejectsGarbage(t *testing.T) {
	_, _, ok := parseSGRMouse([]byte("1;2"))
	assert.False(t, ok)
	_, _, ok = parseSGRMouse([]byte("1;x;3M"))
	assert.False(t, ok)
}

func TestClosedStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("")))
	require.Eventually(t, func() bool { return ReadInput(s).Closed }, time.Second, time.Millisecond)
	assert.True(t, ReadInput(s).Closed, "closed stays set")
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{ch: make(chan byte, 4)}
	now := time.Now()
	s.ch <- ' '
	require.True(t, readAt(s, now).Space)

	s.ch <- ' '
	ResetKeyInput(s)
	in := readAt(s, now)
	assert.False(t, in.Space)
	assert.Empty(t, in.Pressed)
}
