package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(events []Event) []Key {
	var out []Key
	for _, e := range events {
		if k, ok := e.(KeyEvent); ok {
			out = append(out, k.Code)
		}
	}
	return out
}

func TestParseKeys(t *testing.T) {
	s := &Stream{}
	events, rest := s.Parse([]byte("wA1 \x1b[A\x1b[D\r\x03"), time.Time{})
	assert.Nil(t, rest)
	assert.Equal(t, []Key{"w", "a", "1", KeySpace, KeyUp, KeyLeft, KeyEnter, KeyCtrlC}, codes(events))
}

func TestParseLoneEscape(t *testing.T) {
	s := &Stream{}
	events, _ := s.Parse([]byte("\x1b"), time.Time{})
	assert.Equal(t, []Key{KeyEscape}, codes(events))

	events, _ = s.Parse([]byte("\x1bx"), time.Time{})
	assert.Equal(t, []Key{KeyEscape, "x"}, codes(events))
}

func TestParseSGRMouse(t *testing.T) {
	s := &Stream{}
	events, rest := s.Parse([]byte("\x1b[<0;12;7M\x1b[<32;13;7M\x1b[<0;13;7m\x1b[<65;1;1M"), time.Time{})
	require.Nil(t, rest)
	require.Len(t, events, 4)

	press := events[0].(MouseEvent)
	assert.Equal(t, MouseEvent{Col: 12, Row: 7, Left: true}, press)

	drag := events[1].(MouseEvent)
	assert.True(t, drag.Left)
	assert.Equal(t, 13, drag.Col)

	release := events[2].(MouseEvent)
	assert.False(t, release.Left)

	wheel := events[3].(MouseEvent)
	assert.Equal(t, 1.0, wheel.Wheel)
}

func TestParseRightButton(t *testing.T) {
	s := &Stream{}
	events, _ := s.Parse([]byte("\x1b[<2;5;5M"), time.Time{})
	require.Len(t, events, 1)
	assert.True(t, events[0].(MouseEvent).Right)
	assert.False(t, events[0].(MouseEvent).Left)
}

func TestParseKeepsIncompleteSequence(t *testing.T) {
	s := &Stream{}
	events, rest := s.Parse([]byte("q\x1b[<0;12"), time.Time{})
	assert.Equal(t, []Key{"q"}, codes(events))
	assert.Equal(t, []byte("\x1b[<0;12"), rest)

	events, rest = s.Parse(append(rest, []byte(";3M")...), time.Time{})
	assert.Nil(t, rest)
	require.Len(t, events, 1)
	assert.Equal(t, MouseEvent{Col: 12, Row: 3, Left: true}, events[0])
}
