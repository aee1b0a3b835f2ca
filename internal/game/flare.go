package game

import (
	"fmt"

	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// FlareKind selects how a flare treats the spirits in its range.
type FlareKind int

// Flare kinds.
const (
	// RepellFlare pushes spirits away and burns down with every contact.
	RepellFlare FlareKind = iota
	// KillFlare drains spirit power at close range.
	KillFlare
	// AttractFlare lures spirits and slows their drift.
	AttractFlare
)

// Item returns the inventory item the flare is thrown from.
func (k FlareKind) Item() ItemType {
	switch k {
	case KillFlare:
		return KillFlareItem
	case AttractFlare:
		return AttractFlareItem
	}
	return RepellFlareItem
}

// Range returns the full-strength radius.
func (k FlareKind) Range() float64 {
	switch k {
	case KillFlare:
		return config.FlareKillRange
	case AttractFlare:
		return config.FlareAttractRange
	}
	return config.FlareRepellRange
}

func (k FlareKind) String() string { return k.Item().String() }

// flareKindOf maps a flare item to its kind.
func flareKindOf(item ItemType) (FlareKind, bool) {
	switch item {
	case RepellFlareItem:
		return RepellFlare, true
	case KillFlareItem:
		return KillFlare, true
	case AttractFlareItem:
		return AttractFlare, true
	}
	return 0, false
}

// Flare is a thrown light. It ignites over a second, its field growing with
// it, and burns down as spirits touch it.
type Flare struct {
	object.Base
	Selection

	Kind      FlareKind
	GrabbedBy *Astronaut

	strength float64
	field    *repeller.Range
	ignition *clocky.Clocky
	toss     *clocky.Clocky
	tossFrom vector.Vector
	tossTo   vector.Vector
	world    *World
}

// NewFlare drops an unlit flare of kind at pos.
func NewFlare(w *World, kind FlareKind, pos vector.Vector) *Flare {
	fl := &Flare{Kind: kind, world: w}
	fl.Position = pos

	fl.field = repeller.NewRange(w.reg, w.collision, 0)
	fl.field.Position = pos
	fl.field.OnHit = fl.hit
	if kind == AttractFlare {
		fl.field.Strength = config.FlareAttractPull
		fl.field.Emotional = true
	}

	fl.ignition = clocky.Sequence(w.time, []clocky.Step{{
		Time:   config.FlareIgnition,
		During: func(c *clocky.Clocky) { fl.field.Range = c.Progress() * kind.Range() },
	}})

	fl.toss = clocky.Once(w.time, config.FlareTossTime)
	fl.toss.Stop = true
	fl.toss.During = func(c *clocky.Clocky) {
		fl.Position = vector.Lerp(fl.tossFrom, fl.tossTo, c.Progress())
	}
	fl.toss.Tick = func(*clocky.Clocky) { fl.Position = fl.tossTo }

	fl.Register(w.reg, fl,
		object.TagUpdatable, object.TagDrawable, object.TagSelectable,
		object.TagSceneBound, object.TagFlare)
	fl.Update()
	return fl
}

// Toss sends the flare flying from its current position to target.
func (fl *Flare) Toss(target vector.Vector) {
	fl.tossFrom = fl.Position
	fl.tossTo = target
	fl.toss.Reset()
}

// Tossing reports whether the flare is in flight.
func (fl *Flare) Tossing() bool { return !fl.toss.Stop }

// Ignited reports whether the ignition has finished.
func (fl *Flare) Ignited() bool { return fl.ignition.Stop }

// Strength returns the remaining strength in [0, 1].
func (fl *Flare) Strength() float64 { return fl.strength }

// Field returns the flare's repeller.
func (fl *Flare) Field() *repeller.Range { return fl.field }

func (fl *Flare) hit(t repeller.Target) {
	switch fl.Kind {
	case RepellFlare:
		if fl.Ignited() {
			fl.strength -= config.FlareRepellDecay
		}
	case KillFlare:
		if fl.Ignited() {
			fl.strength -= config.FlareKillDecay
		}
		t.Affect(-config.FlareKillDrain)
	case AttractFlare:
		if s, ok := t.(*Spirit); ok && fl.world.waves != nil {
			frames := fl.world.time.Delta() * config.ReferenceFPS
			s.Velocity.Sub(fl.world.waves.Direction().Scaled(frames))
		}
		fl.strength -= config.FlareAttractDecay
	}
	if fl.strength < config.FlareBurnout && fl.Ignited() {
		fl.Destroy()
	}
}

// Update implements object.Updatable.
func (fl *Flare) Update() {
	fl.ignition.Check()
	fl.toss.Check()

	fl.field.Position = fl.Position
	if fl.strength < 1 {
		fl.strength = min(1, fl.strength+fl.world.time.Delta())
	}
	if fl.Ignited() {
		fl.field.Range = fl.strength * fl.Kind.Range()
	}
}

// Size returns the pick radius.
func (fl *Flare) Size() float64 { return config.FlareSize }

// UIData describes the flare.
func (fl *Flare) UIData() UIData {
	return UIData{
		Name:  fl.Kind.String(),
		Stats: []Stat{{Name: "Strength", Value: fmt.Sprintf("%.0f%%", fl.strength*100)}},
	}
}

// Draw implements object.Drawable.
func (fl *Flare) Draw(f *draw.Frame) {
	f.Disc(fl.Position, config.FlareSize/2, fl.Ink(draw.InkFlare))
	if fl.field.Range > 0 {
		f.Circle(fl.Position, fl.field.Range, draw.InkLight)
	}
}

// Destroy removes the flare and releases the astronaut holding it.
func (fl *Flare) Destroy() {
	if fl.Destroyed() {
		return
	}
	fl.Deregister()
	fl.field.Destroy()
	fl.ignition.Stop = true
	fl.toss.Stop = true
	if fl.GrabbedBy != nil && fl.GrabbedBy.grabbed == fl {
		fl.GrabbedBy.grabbed = nil
	}
	fl.GrabbedBy = nil
}
