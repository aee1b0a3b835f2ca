package game

import (
	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Spirit is the hostile drifter. Each frame it walks every live repeller:
// emotional fields first, which only steer it and run their hit callbacks,
// then the remaining fields, which steer it and drain its power. A spirit
// whose power is spent fades out and destroys itself.
type Spirit struct {
	object.Base

	Velocity vector.Vector

	power      float64
	fade       *clocky.Clocky
	visibility float64
	trail      []vector.Vector
	trailHead  int
	world      *World
}

// NewSpirit spawns a spirit at pos.
func NewSpirit(w *World, pos vector.Vector) *Spirit {
	s := &Spirit{
		Velocity:   vector.New(1, 0),
		power:      config.SpiritPower,
		visibility: 1,
		trail:      make([]vector.Vector, config.SpiritTrail),
		world:      w,
	}
	s.fade = clocky.Once(w.time, config.SpiritFadeTime)
	s.fade.Stop = true
	s.fade.During = func(c *clocky.Clocky) { s.visibility = 1 - c.Progress() }
	s.fade.Tick = func(*clocky.Clocky) {
		SpawnBurst(w, s.Position, config.FadeBurstSize, config.SparkSpeed, config.SparkLife, draw.InkSpirit)
		s.Destroy()
	}

	s.Register(w.reg, s, object.TagUpdatable, object.TagDrawable, object.TagSpirit, object.TagSceneBound)
	s.Teleport(pos)
	return s
}

// Teleport moves the spirit and collapses its trail onto the new position.
func (s *Spirit) Teleport(p vector.Vector) {
	s.Position = p
	for i := range s.trail {
		s.trail[i] = p
	}
}

// Power returns the remaining power. Implements repeller.Target.
func (s *Spirit) Power() float64 { return s.power }

// Affect adds delta to the power. A spirit drained to zero starts fading.
func (s *Spirit) Affect(delta float64) {
	s.power += delta
	if s.power <= 0 {
		s.StartFade()
	}
}

// Steer adds v to the velocity.
func (s *Spirit) Steer(v vector.Vector) {
	s.Velocity.Add(v)
}

// StartFade begins the fade out. Calling it again has no effect.
func (s *Spirit) StartFade() {
	s.fade.Stop = false
}

// Fading reports whether the spirit is fading out.
func (s *Spirit) Fading() bool { return !s.fade.Stop }

// Visibility returns 1 for a healthy spirit and falls to 0 while it fades.
func (s *Spirit) Visibility() float64 { return s.visibility }

// Update implements object.Updatable.
func (s *Spirit) Update() {
	w := s.world
	dt := w.time.Delta()
	frames := dt * config.ReferenceFPS

	s.Velocity.AddXY(
		(w.random()*2-1)*config.SpiritJitter*frames,
		(w.random()*2-1)*config.SpiritJitter*frames,
	)
	if w.waves != nil {
		s.Velocity.Add(w.waves.Direction().Scaled(frames))
	}

	if s.Position.X > config.WorldWidth {
		s.Destroy()
		return
	}

	s.Velocity.ClampLength(config.SpiritTopSpeed)

	fields := repeller.Live(w.reg)
	for _, r := range fields {
		if !r.Payload().Emotional || !r.Check(s.Position) {
			continue
		}
		s.steerFrom(r, frames)
		r.Hit(s)
	}
	for _, r := range fields {
		if r.Payload().Emotional || !r.Check(s.Position) {
			continue
		}
		s.steerFrom(r, frames)
		if s.power <= 1 {
			s.StartFade()
		} else {
			r.Hit(s)
		}
	}

	s.fade.Check()
	if s.Destroyed() {
		return
	}

	s.Position.Add(s.Velocity.Scaled(dt))
	s.trailHead = (s.trailHead + 1) % len(s.trail)
	s.trail[s.trailHead] = s.Position
}

func (s *Spirit) steerFrom(r repeller.Repeller, frames float64) {
	if r.Payload().NoStrength {
		return
	}
	s.Steer(repeller.Steering(r, s.Position, s.power).Scaled(config.SpiritSteerScale * frames))
}

// Draw implements object.Drawable.
func (s *Spirit) Draw(f *draw.Frame) {
	ink := draw.InkSpirit
	if s.visibility < 0.5 {
		ink = draw.InkDebug
	}
	n := len(s.trail)
	step := n / 10
	prev := s.Position
	for i := step; i < n; i += step {
		p := s.trail[(s.trailHead-i+n)%n]
		f.Line(prev, p, ink)
		prev = p
	}
	f.Disc(s.Position, config.SpiritSize*s.power/config.SpiritPower, ink)
}

// Destroy removes the spirit.
func (s *Spirit) Destroy() {
	s.fade.Stop = true
	s.Deregister()
}
