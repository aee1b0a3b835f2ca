package terminal

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/input"
)

// eventBuffer is the number of tcell events held between two frames.
const eventBuffer = 256

// Tcell renders through a tcell screen. tcell owns raw mode, the alternate
// screen and mouse reporting.
type Tcell struct {
	screen tcell.Screen
	events chan tcell.Event
	closed atomic.Bool
	done   chan struct{}

	closeOnce sync.Once
}

var _ Backend = (*Tcell)(nil)

// NewTcell opens the process terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return NewTcellScreen(screen)
}

// NewTcellScreen initialises screen and starts polling it.
func NewTcellScreen(screen tcell.Screen) (*Tcell, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	t := &Tcell{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go t.poll()
	return t, nil
}

func (t *Tcell) poll() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.closed.Store(true)
			return
		}
		select {
		case t.events <- ev:
		default:
			// Frame loop stalled; drop input rather than block the screen.
		}
	}
}

// Events implements Backend.
func (t *Tcell) Events(now time.Time) []input.Event {
	var out []input.Event
	for {
		select {
		case ev := <-t.events:
			if e, ok := convert(ev, now); ok {
				out = append(out, e)
			}
		default:
			return out
		}
	}
}

func convert(ev tcell.Event, now time.Time) (input.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := keyOf(e)
		if !ok {
			return nil, false
		}
		return input.KeyEvent{Code: k, Down: true, At: now}, true
	case *tcell.EventMouse:
		x, y := e.Position()
		b := e.Buttons()
		m := input.MouseEvent{
			Col:   x + 1,
			Row:   y + 1,
			Left:  b&tcell.Button1 != 0,
			Right: b&tcell.Button2 != 0,
		}
		switch {
		case b&tcell.WheelUp != 0:
			m.Wheel = -1
		case b&tcell.WheelDown != 0:
			m.Wheel = 1
		}
		return m, true
	case *tcell.EventResize:
		w, h := e.Size()
		return input.ResizeEvent{Width: w, Height: h}, true
	}
	return nil, false
}

func keyOf(e *tcell.EventKey) (input.Key, bool) {
	switch e.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	case tcell.KeyEscape:
		return input.KeyEscape, true
	case tcell.KeyTab:
		return input.KeyTab, true
	case tcell.KeyCtrlC:
		return input.KeyCtrlC, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace, true
	case tcell.KeyRune:
		r := e.Rune()
		switch {
		case r == ' ':
			return input.KeySpace, true
		case r >= 'A' && r <= 'Z':
			return input.Key(r - 'A' + 'a'), true
		case r > ' ':
			return input.Key(r), true
		}
	}
	return "", false
}

// Size implements Backend.
func (t *Tcell) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

func inkStyle(fg, bg draw.Ink) tcell.Style {
	st := tcell.StyleDefault.Foreground(tcell.PaletteColor(fg.Color256()))
	if bg != draw.InkNone {
		st = st.Background(tcell.PaletteColor(bg.Color256()))
	}
	return st
}

func (t *Tcell) text(col, row int, s string, st tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(col, row, r, nil, st)
		col++
	}
}

// Present implements Backend.
func (t *Tcell) Present(f *draw.Frame) error {
	t.screen.Clear()
	f.Canvas.Cells(func(c draw.Cell) {
		t.screen.SetContent(c.Col, c.Row, c.Rune, nil, inkStyle(c.Fg, c.Bg))
	})
	for _, l := range f.Labels() {
		if l.Col < 1 || l.Row < 1 {
			continue
		}
		t.text(l.Col-1, l.Row-1, l.Text, inkStyle(l.Ink, draw.InkNone))
	}
	for i, line := range f.HUDLines() {
		t.text(0, i, line, tcell.StyleDefault)
	}
	t.screen.Show()
	return nil
}

// Closed implements Backend.
func (t *Tcell) Closed() bool {
	return t.closed.Load()
}

// Close implements Backend.
func (t *Tcell) Close() error {
	t.closeOnce.Do(func() {
		t.screen.Fini()
		<-t.done
	})
	return nil
}
