package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/vector"
)

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func TestStreamEventsAndPresent(t *testing.T) {
	r, w := io.Pipe()
	var out bytes.Buffer
	s := NewStream(r, &out, fixedSize(80, 24))
	assert.Contains(t, out.String(), "\033[?1000h", "mouse reporting on")

	go func() { _, _ = w.Write([]byte("\t")) }()
	var events []input.Event
	require.Eventually(t, func() bool {
		events = append(events, s.Events(time.Now())...)
		return len(events) > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, input.KeyTab, events[0].(input.KeyEvent).Code)

	width, height, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 80, width)
	assert.Equal(t, 24, height)

	out.Reset()
	f := draw.NewFrame(draw.NewCanvas(4, 2), nil)
	f.Dot(vector.New(0, 0), draw.InkShip)
	f.HUD("Tutorial")
	require.NoError(t, s.Present(f))
	assert.Contains(t, out.String(), "Tutorial")
	assert.Contains(t, out.String(), string(draw.BlockUpperHalf))

	require.NoError(t, w.Close())
	assert.Eventually(t, func() bool {
		s.Events(time.Now())
		return s.Closed()
	}, time.Second, 5*time.Millisecond)

	out.Reset()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, strings.Count(out.String(), "\033[?25h"), "restored once")
}

func newSimulated(t *testing.T) (*Tcell, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	b, err := NewTcellScreen(screen)
	require.NoError(t, err)
	screen.SetSize(40, 12)
	t.Cleanup(func() { _ = b.Close() })
	return b, screen
}

func TestTcellKeys(t *testing.T) {
	b, screen := newSimulated(t)

	screen.InjectKey(tcell.KeyRune, 'W', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '3', tcell.ModNone)

	var keys []input.Key
	require.Eventually(t, func() bool {
		for _, ev := range b.Events(time.Now()) {
			if k, ok := ev.(input.KeyEvent); ok {
				assert.True(t, k.Down)
				keys = append(keys, k.Code)
			}
		}
		return len(keys) >= 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []input.Key{"w", input.KeyEnter, input.Digit(3)}, keys)
}

func TestTcellMouseIsOneBased(t *testing.T) {
	b, screen := newSimulated(t)

	screen.InjectMouse(4, 2, tcell.Button1, tcell.ModNone)

	var mouse []input.MouseEvent
	require.Eventually(t, func() bool {
		for _, ev := range b.Events(time.Now()) {
			if m, ok := ev.(input.MouseEvent); ok {
				mouse = append(mouse, m)
			}
		}
		return len(mouse) > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, input.MouseEvent{Col: 5, Row: 3, Left: true}, mouse[0])
}

func TestTcellPresent(t *testing.T) {
	b, screen := newSimulated(t)

	f := draw.NewFrame(draw.NewCanvas(40, 12), nil)
	f.Dot(vector.New(10, 10), draw.InkSpirit)
	f.Dot(vector.New(10, 11), draw.InkSpirit)
	f.HUD("Level 1")
	require.NoError(t, b.Present(f))

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'L', r)
	r, _, st, _ := screen.GetContent(10, 5)
	assert.Equal(t, draw.BlockFull, r)
	fg, _, _ := st.Decompose()
	assert.Equal(t, tcell.PaletteColor(draw.InkSpirit.Color256()), fg)

	width, height, err := b.Size()
	require.NoError(t, err)
	assert.Equal(t, 40, width)
	assert.Equal(t, 12, height)
}
