package game

import (
	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Ritual is a scripted site that calms spirits over a wide area. It charges
// for a while, then its power fades out and it is gone.
type Ritual struct {
	object.Base

	power float64
	field *repeller.Range
	clock *clocky.Clocky
	world *World
}

// NewRitual starts a ritual at pos.
func NewRitual(w *World, pos vector.Vector) *Ritual {
	r := &Ritual{power: 1, world: w}
	r.Position = pos

	r.field = repeller.NewRange(w.reg, w.collision, config.RitualRange)
	r.field.Position = pos
	r.field.NoStrength = true
	r.field.OnHit = r.calm

	r.clock = clocky.Sequence(w.time, []clocky.Step{
		{Time: config.RitualCharge},
		{
			Time:   config.RitualFade,
			During: func(c *clocky.Clocky) { r.power = 1 - c.Progress() },
			Tick:   func(*clocky.Clocky) { r.Destroy() },
		},
	})
	r.Register(w.reg, r, object.TagUpdatable, object.TagDrawable, object.TagSceneBound)
	return r
}

// Power returns the remaining power in [0, 1].
func (r *Ritual) Power() float64 { return r.power }

// calm damps the spirit's velocity in proportion to the ritual's power.
func (r *Ritual) calm(t repeller.Target) {
	s, ok := t.(*Spirit)
	if !ok {
		return
	}
	frames := r.world.time.Delta() * config.ReferenceFPS
	s.Velocity.Mult(max(1-config.RitualDamping*r.power*frames, 0))
}

// Update implements object.Updatable.
func (r *Ritual) Update() {
	r.clock.Check()
	r.field.Position = r.Position
}

// Draw implements object.Drawable.
func (r *Ritual) Draw(f *draw.Frame) {
	f.Circle(r.Position, config.RitualRange*r.power, draw.InkSpirit)
	f.Disc(r.Position, config.InstallationSize, draw.InkSpirit)
}

// Destroy removes the ritual and its field.
func (r *Ritual) Destroy() {
	if r.Destroyed() {
		return
	}
	r.clock.Stop = true
	r.field.Destroy()
	r.Deregister()
}
