package game

import (
	"fmt"
	"math"

	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/order"
	"github.com/tomz197/spiritwatch/internal/physics"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// spotlightShape is the unit beam, pointing along +x.
var spotlightShape = []vector.Vector{
	vector.New(0, 0),
	vector.New(0.8, 0.4),
	vector.New(1, 0),
	vector.New(0.8, -0.4),
}

// Spotlight drains spirits caught in its beam. The beam only burns what it
// can see, and its strength sags while it is busy draining and recharges when
// the beam is empty.
type Spotlight struct {
	object.Base
	Selection

	Target   vector.Vector
	Aim      float64
	Confused bool

	beam         *repeller.Polygon
	blink        *clocky.Clocky
	lit          bool
	installation *Installation
	order        *SpotlightTarget
	world        *World
}

// NewSpotlight creates a spotlight aimed to the left of pos. inst is nil for
// the ship's floodlight.
func NewSpotlight(w *World, pos vector.Vector, inst *Installation) *Spotlight {
	s := &Spotlight{
		Target:       pos.Plus(vector.New(-config.SpotlightReach, 0)),
		Aim:          math.Pi,
		lit:          true,
		installation: inst,
		world:        w,
	}
	s.Position = pos

	shape := make([]vector.Vector, len(spotlightShape))
	for i, p := range spotlightShape {
		shape[i] = p.Scaled(config.SpotlightLength)
	}
	s.beam = repeller.NewPolygon(w.reg, w.collision)
	s.beam.SetPolygon(shape)
	s.beam.SetRotation(s.Aim)
	s.beam.Position = pos
	s.beam.NoStrength = true
	s.beam.LineOfSight = true
	s.beam.OnHit = s.hit

	s.blink = clocky.New(w.time, config.SpotlightBlink)
	s.blink.Tick = func(*clocky.Clocky) { s.lit = !s.lit }

	s.Register(w.reg, s, object.TagUpdatable, object.TagDrawable, object.TagSelectable, object.TagSceneBound)
	return s
}

func (s *Spotlight) hit(t repeller.Target) {
	frames := s.world.time.Delta() * config.ReferenceFPS
	power := max(t.Power(), 0.01)
	dist := t.Pos().Distance(s.Position)
	proximity := 1 - (dist/config.SpotlightLength)/power
	drain := proximity * s.beam.Strength * config.SpotlightDrainScale
	if s.beam.Strength > config.SpotlightMinimum {
		s.beam.Strength -= power * config.SpotlightDecay * s.world.time.Delta() * (1 - proximity) * s.beam.Strength
	}
	t.Affect(-drain * frames)
}

// Strength returns the beam strength in [0, 1].
func (s *Spotlight) Strength() float64 { return s.beam.Strength }

// Beam returns the beam field.
func (s *Spotlight) Beam() *repeller.Polygon { return s.beam }

// Update implements object.Updatable.
func (s *Spotlight) Update() {
	w := s.world
	dt := w.time.Delta()

	target := s.Target.Diff(s.Position).Angle()
	if s.Confused {
		target = math.Sin(w.time.Elapsed()/6+s.Position.X) * 6
		s.blink.Check()
	} else {
		s.beam.Strength += dt
		s.lit = true
	}
	s.Aim = angleInterpolate(s.Aim, target, dt*config.SpotlightAimRate)
	s.beam.SetRotation(s.Aim)
	s.beam.Position = s.Position
	s.beam.Strength = min(s.beam.Strength, 1)
}

// Select marks the spotlight and starts aiming it with the pointer.
func (s *Spotlight) Select() {
	s.Selection.Select()
	if s.order != nil && s.order.State() != order.Destroyed {
		return
	}
	s.order = NewSpotlightTarget(s.world, s)
	s.world.orders.NewOrder(s.order)
}

// Unselect clears the mark and drops the aiming order.
func (s *Spotlight) Unselect() {
	s.Selection.Unselect()
	if s.order != nil {
		s.order.Destroy()
		s.order = nil
	}
}

// Size returns the pick radius.
func (s *Spotlight) Size() float64 { return config.InstallationSize }

// PickupProxy returns the installation the spotlight is collected as.
func (s *Spotlight) PickupProxy() Pickupable { return installationProxy(s.installation) }

// UIData describes the spotlight.
func (s *Spotlight) UIData() UIData {
	d := UIData{
		Name:  "Spotlight",
		Stats: []Stat{{Name: "Strength", Value: fmt.Sprintf("%.0f%%", s.beam.Strength*100)}},
	}
	if s.installation != nil {
		d.Stats = append(d.Stats, s.installation.resistStat())
	}
	return d
}

// Draw implements object.Drawable.
func (s *Spotlight) Draw(f *draw.Frame) {
	ink := s.Ink(draw.InkInstallation)
	f.Circle(s.Position, config.InstallationSize/2, ink)
	if !s.lit || s.beam.Strength <= config.SpotlightMinimum {
		return
	}
	beam := physics.AnchorPolygon(s.beam.Shape(), s.Position)
	f.Polygon(beam, draw.InkLight, false)
}

// Destroy removes the spotlight and its beam.
func (s *Spotlight) Destroy() {
	if s.order != nil {
		s.order.Destroy()
		s.order = nil
	}
	s.beam.Destroy()
	s.blink.Stop = true
	s.Deregister()
}
