// Package clocky provides the cooperative countdown timer used for cooldowns,
// animations and scripted timelines. A Clocky never blocks: it advances only
// when checked, by the frame delta of the Clock it was built with.
package clocky

import (
	"math"

	"github.com/tomz197/spiritwatch/internal/object"
)

// Forever is the repeat count of a Clocky that never stops on its own.
const Forever = math.MaxInt

// DefaultLimit is the limit used by Sequence before the first step is applied.
const DefaultLimit = 1000.0

// Clock supplies frame time. Frame must change once per simulated frame.
type Clock interface {
	Delta() float64
	Frame() uint64
}

// Step configures one stage of a sequence.
// A zero Repeat runs the stage once.
type Step struct {
	Time   float64
	Repeat int
	During func(c *Clocky)
	Tick   func(c *Clocky)
}

// Clocky accumulates frame time and fires Tick each time it passes Limit.
type Clocky struct {
	object.Base

	Time   float64
	Limit  float64
	Repeat int
	Stop   bool

	// During runs on every check while the clocky is running.
	During func(c *Clocky)
	// Tick runs when Time passes Limit.
	Tick func(c *Clocky)

	clock     Clock
	followUp  []Step
	lastFrame uint64
	advanced  bool
	autoTick  bool
}

// New creates a repeating clocky with the given limit.
func New(clock Clock, limit float64) *Clocky {
	return &Clocky{
		clock:  clock,
		Limit:  limit,
		Repeat: Forever,
	}
}

// Once creates a clocky that ticks a single time.
func Once(clock Clock, limit float64) *Clocky {
	c := New(clock, limit)
	c.Repeat = 1
	return c
}

// Sequence creates a clocky that walks through steps in order.
// The first step is applied immediately.
func Sequence(clock Clock, steps []Step) *Clocky {
	c := New(clock, DefaultLimit)
	c.followUp = append([]Step(nil), steps...)
	c.Next()
	return c
}

// Progress returns Time/Limit. Undefined for a zero limit.
func (c *Clocky) Progress() float64 {
	return c.Time / c.Limit
}

// Remaining returns the number of queued steps that have not started.
func (c *Clocky) Remaining() int {
	return len(c.followUp)
}

// Then appends steps to the follow-up queue.
func (c *Clocky) Then(steps ...Step) *Clocky {
	c.followUp = append(c.followUp, steps...)
	return c
}

// Next applies the next queued step. Time is carried over, not reset.
// Returns false when the queue is empty.
func (c *Clocky) Next() bool {
	if len(c.followUp) == 0 {
		return false
	}
	step := c.followUp[0]
	c.followUp = c.followUp[1:]

	c.Stop = false
	c.Repeat = step.Repeat
	if c.Repeat == 0 {
		c.Repeat = 1
	}
	c.Limit = step.Time
	c.During = step.During
	c.Tick = step.Tick

	c.resume()
	return true
}

// Check advances the clocky by the frame delta and reports whether it ticked.
// Time advances at most once per frame however often Check is called.
func (c *Clocky) Check() bool {
	if c.Stop {
		return false
	}
	if c.During != nil {
		c.During(c)
	}

	frame := c.clock.Frame()
	if !c.advanced || frame != c.lastFrame {
		c.Time += c.clock.Delta()
		c.lastFrame = frame
		c.advanced = true
	}

	if c.Time <= c.Limit {
		return false
	}

	c.Time -= c.Limit
	if c.Repeat != Forever {
		c.Repeat--
		if c.Repeat <= 0 {
			c.Stop = true
		}
	}
	if c.Tick != nil {
		c.Tick(c)
	}
	if len(c.followUp) > 0 {
		c.Next()
	}
	return true
}

// Reset zeroes the accumulated time and restarts a stopped clocky.
func (c *Clocky) Reset() {
	c.Time = 0
	c.Start()
}

// Start clears the stop flag.
func (c *Clocky) Start() {
	c.Stop = false
	c.resume()
}

// AutoTick makes the clocky check itself every frame through the registry.
// A stopped auto-ticking clocky leaves the updatable set and rejoins it on Start.
func (c *Clocky) AutoTick(reg *object.Registry, enable bool) *Clocky {
	c.autoTick = enable
	if enable {
		c.Register(reg, c, object.TagUpdatable)
	} else {
		c.Unregister(object.TagUpdatable)
	}
	return c
}

// Update implements object.Updatable for auto-ticking clockies.
func (c *Clocky) Update() {
	c.Check()
	if c.Stop && len(c.followUp) == 0 {
		c.Unregister(object.TagUpdatable)
	}
}

// Destroy removes an auto-ticking clocky from the registry for good.
func (c *Clocky) Destroy() {
	c.autoTick = false
	c.followUp = nil
	c.Stop = true
	c.Deregister()
}

func (c *Clocky) resume() {
	if c.autoTick && c.Registry() != nil && !c.HasTag(object.TagUpdatable) {
		c.Register(c.Registry(), c, object.TagUpdatable)
	}
}
