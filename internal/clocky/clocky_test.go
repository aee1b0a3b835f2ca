package clocky

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/object"
)

type manualClock struct {
	dt    float64
	frame uint64
}

func (m *manualClock) Delta() float64 { return m.dt }
func (m *manualClock) Frame() uint64 { return m.frame }
func (m *manualClock) step() { m.frame++ }

func TestTickCountMatchesElapsed(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7, 9, 11, 13, 27, 33} {
		clk := &manualClock{dt: 3}
		c := New(clk, 10)
		ticks := 0
		c.Tick = func(*Clocky) { ticks++ }

		for range n {
			clk.step()
			c.Check()
		}
		assert.Equal(t, int(math.Floor(float64(3*n)/10)), ticks, "n=%d", n)
	}
}

func TestRepeatCapsTicksAndStops(t *testing.T) {
	clk := &manualClock{dt: 4}
	c := New(clk, 10)
	c.Repeat = 2
	ticks := 0
	c.Tick = func(*Clocky) { ticks++ }

	for range 50 {
		clk.step()
		c.Check()
	}

	assert.Equal(t, 2, ticks)
	assert.True(t, c.Stop)

	clk.step()
	assert.False(t, c.Check())
	assert.Equal(t, 2, ticks)
}

func TestRemainderCarries(t *testing.T) {
	clk := &manualClock{dt: 25}
	c := New(clk, 10)

	clk.step()
	require.True(t, c.Check())
	assert.Equal(t, 15.0, c.Time)

	// catch-up: still above the limit on the next frame
	clk.step()
	require.True(t, c.Check())
	assert.Equal(t, 30.0, c.Time)
}

func TestOnce(t *testing.T) {
	clk := &manualClock{dt: 0.6}
	c := Once(clk, 1)
	fired := 0
	c.Tick = func(*Clocky) { fired++ }

	for range 10 {
		clk.step()
		c.Check()
	}
	assert.Equal(t, 1, fired)
	assert.True(t, c.Stop)
}

func TestSameFrameDoesNotAdvanceTwice(t *testing.T) {
	clk := &manualClock{dt: 6}
	c := New(clk, 10)

	clk.step()
	c.Check()
	c.Check()
	c.Check()
	assert.Equal(t, 6.0, c.Time)

	clk.step()
	assert.True(t, c.Check())
	assert.Equal(t, 2.0, c.Time)
}

func TestDuringRunsWhileRunning(t *testing.T) {
	clk := &manualClock{dt: 1}
	c := Once(clk, 2)
	during := 0
	c.During = func(*Clocky) { during++ }

	for range 5 {
		clk.step()
		c.Check()
	}
	// frames 1..3 run; the third one ticks and stops
	assert.Equal(t, 3, during)
}

func TestSequenceChaining(t *testing.T) {
	clk := &manualClock{dt: 3}
	var order []string
	c := Sequence(clk, []Step{
		{Time: 10, Tick: func(*Clocky) { order = append(order, "first") }},
		{Time: 5, Tick: func(*Clocky) { order = append(order, "second") }},
	})
	assert.Equal(t, 10.0, c.Limit)
	assert.Equal(t, 1, c.Remaining())

	elapsed := 0.0
	for elapsed < 12 {
		clk.step()
		c.Check()
		elapsed += clk.dt
	}
	assert.Equal(t, 5.0, c.Limit)
	assert.False(t, c.Stop)
	assert.Equal(t, 0, c.Remaining())

	for elapsed < 18 {
		clk.step()
		c.Check()
		elapsed += clk.dt
	}
	assert.True(t, c.Stop)
	assert.Equal(t, []string{"first", "second"}, order)

	for range 10 {
		clk.step()
		assert.False(t, c.Check())
	}
	assert.Len(t, order, 2)
}

func TestSequenceStepCanRewriteLimit(t *testing.T) {
	clk := &manualClock{dt: 1}
	c := Sequence(clk, []Step{{
		Time:   100,
		During: func(c *Clocky) { c.Limit = 3 },
	}})

	ticked := false
	for range 4 {
		clk.step()
		ticked = c.Check() || ticked
	}
	assert.True(t, ticked)
}

func TestZeroLimitTicksEveryCheck(t *testing.T) {
	clk := &manualClock{dt: 0.5}
	c := New(clk, 0)
	ticks := 0
	c.Tick = func(*Clocky) { ticks++ }

	for range 4 {
		clk.step()
		c.Check()
	}
	assert.Equal(t, 4, ticks)
	assert.True(t, math.IsInf(c.Progress(), 1))
}

func TestAutoTick(t *testing.T) {
	reg := object.NewRegistry()
	clk := &manualClock{dt: 1}
	c := Once(clk, 2).AutoTick(reg, true)
	fired := 0
	c.Tick = func(*Clocky) { fired++ }

	for range 5 {
		clk.step()
		for _, u := range object.All[object.Updatable](reg, object.TagUpdatable) {
			u.Update()
		}
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, reg.Count(object.TagUpdatable))

	c.Reset()
	assert.Equal(t, 1, reg.Count(object.TagUpdatable))

	c.AutoTick(reg, false)
	assert.Equal(t, 0, reg.Count(object.TagUpdatable))

	c.Destroy()
	c.Start()
	assert.Equal(t, 0, reg.Count(object.TagUpdatable))
}
