// Package terminal adapts the places a match can be shown on to one Backend:
// a raw byte stream (SSH sessions, stdin in raw mode) or a tcell screen.
package terminal

import (
	"io"
	"sync"
	"time"

	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/input"
)

// Backend is a terminal the game loop reads input from and renders into.
type Backend interface {
	// Events drains the input that arrived since the last call without blocking.
	Events(now time.Time) []input.Event
	// Size returns the terminal size in cells.
	Size() (width, height int, err error)
	// Present shows a rendered frame.
	Present(f *draw.Frame) error
	// Closed reports whether the input side has gone away.
	Closed() bool
	// Close restores the terminal.
	Close() error
}

// Stream renders with ANSI sequences into a writer and parses input bytes
// from a reader.
type Stream struct {
	in   *input.Stream
	out  *draw.ChunkWriter
	w    io.Writer
	size draw.TermSizeFunc

	closeOnce sync.Once
}

var _ Backend = (*Stream)(nil)

// NewStream takes over the terminal behind r and w. A nil size func reads
// the size of the process's stdout.
func NewStream(r io.Reader, w io.Writer, size draw.TermSizeFunc) *Stream {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	return &Stream{
		in:   input.StartStream(r),
		out:  draw.NewChunkWriter(w),
		w:    w,
		size: size,
	}
}

// Events implements Backend.
func (s *Stream) Events(now time.Time) []input.Event {
	return s.in.Drain(now)
}

// Size implements Backend.
func (s *Stream) Size() (int, int, error) {
	return s.size()
}

// Present implements Backend.
func (s *Stream) Present(f *draw.Frame) error {
	return s.out.WriteFrame(f)
}

// Closed implements Backend.
func (s *Stream) Closed() bool {
	return s.in.Closed()
}

// Close implements Backend.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		draw.DisableMouse(s.w)
		draw.ClearScreen(s.w)
		draw.ShowCursor(s.w)
	})
	return nil
}
