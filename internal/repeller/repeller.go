// Package repeller implements the influence fields that steer and damage spirits.
//
// A repeller is passive: it only answers whether a point lies inside its field
// and carries a hit callback. The affected entity walks the registered
// repellers every frame, checks itself against each one and calls Hit on
// matches, so it decides the order in which fields are consumed.
package repeller

import (
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/physics"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Target is an entity affected by repellers.
type Target interface {
	Pos() vector.Vector
	Power() float64
	// Affect adds delta to the target's power.
	Affect(delta float64)
	// Steer adds v to the target's velocity for this frame.
	Steer(v vector.Vector)
}

// Sight answers line-of-sight queries. The collision system implements it.
type Sight interface {
	Visible(from, to vector.Vector) bool
}

// Repeller is the shared contract of range and polygon fields.
type Repeller interface {
	object.Positioned
	Payload() *Props
	Check(p vector.Vector) bool
	Hit(t Target)
}

// Props holds the payload shared by every repeller variant.
//
// Strength is signed and its meaning belongs to the owner: consumers steer a
// target away by Strength, so negative values attract. Owners that decay
// strength as a damage budget document the sign at their constructor.
type Props struct {
	Strength float64
	// Emotional repellers are consumed in the first, steering-only pass.
	Emotional bool
	// NoStrength repellers never steer; they only run OnHit.
	NoStrength bool
	Enabled    bool
	// LineOfSight additionally requires an unobstructed ray to the point.
	LineOfSight bool

	OnHit func(t Target)
}

// Payload returns the shared fields.
func (p *Props) Payload() *Props { return p }

func defaultProps() Props {
	return Props{Strength: 1, Enabled: true}
}

var (
	_ Repeller = (*Range)(nil)
	_ Repeller = (*Polygon)(nil)
)

// Range is a circular field.
type Range struct {
	object.Base
	Props

	Range float64

	sight Sight
}

// NewRange registers a circular field of the given radius.
// sight may be nil when line of sight is never requested.
func NewRange(reg *object.Registry, sight Sight, radius float64) *Range {
	r := &Range{
		Props: defaultProps(),
		Range: radius,
		sight: sight,
	}
	r.Register(reg, r, object.TagRepeller, object.TagDebug)
	return r
}

// Check reports whether p lies inside the field.
func (r *Range) Check(p vector.Vector) bool {
	if !r.Enabled {
		return false
	}
	if r.Position.DistanceSquared(p) >= r.Range*r.Range {
		return false
	}
	return visible(r.sight, r.LineOfSight, r.Position, p)
}

// Hit runs the owner's callback.
func (r *Range) Hit(t Target) {
	if r.OnHit != nil {
		r.OnHit(t)
	}
}

// DrawDebug outlines the field.
func (r *Range) DrawDebug(f *draw.Frame) {
	f.Circle(r.Position, r.Range, draw.InkDebug)
}

// Destroy removes the field from the registry.
func (r *Range) Destroy() {
	r.Deregister()
}

// Polygon is a field shaped by a local-space polygon around its position.
type Polygon struct {
	object.Base
	Props

	source   []vector.Vector
	cached   []vector.Vector
	rotation float64
	boxSize  float64

	sight Sight
}

// NewPolygon registers an empty polygon field. It matches nothing until SetPolygon.
func NewPolygon(reg *object.Registry, sight Sight) *Polygon {
	p := &Polygon{
		Props: defaultProps(),
		sight: sight,
	}
	p.Register(reg, p, object.TagRepeller, object.TagDebug)
	return p
}

// SetPolygon replaces the local-space shape and re-applies the current rotation.
func (p *Polygon) SetPolygon(points []vector.Vector) {
	p.source = append(p.source[:0], points...)
	p.bake()
}

// SetRotation rotates the cached shape to angle radians.
func (p *Polygon) SetRotation(angle float64) {
	p.rotation = angle
	p.bake()
}

// Rotation returns the rotation baked into the cached shape.
func (p *Polygon) Rotation() float64 { return p.rotation }

// Shape returns the rotated polygon in local space.
func (p *Polygon) Shape() []vector.Vector { return p.cached }

// BoxSize returns the half-extent of the cheap-reject box.
func (p *Polygon) BoxSize() float64 { return p.boxSize }

func (p *Polygon) bake() {
	p.cached = physics.RotatePolygon(p.source, p.rotation)
	p.boxSize = physics.BoxSize(p.cached)
}

// Check reports whether pt lies inside the rotated polygon.
func (p *Polygon) Check(pt vector.Vector) bool {
	if !p.Enabled || len(p.cached) == 0 {
		return false
	}
	if p.Position.BoxDistance(pt) >= p.boxSize {
		return false
	}
	if !physics.PointInPolygon(pt.Diff(p.Position), p.cached) {
		return false
	}
	return visible(p.sight, p.LineOfSight, p.Position, pt)
}

// Hit runs the owner's callback.
func (p *Polygon) Hit(t Target) {
	if p.OnHit != nil {
		p.OnHit(t)
	}
}

// DrawDebug outlines the field.
func (p *Polygon) DrawDebug(f *draw.Frame) {
	if len(p.cached) == 0 {
		return
	}
	f.Polygon(physics.AnchorPolygon(p.cached, p.Position), draw.InkDebug, false)
}

// Destroy removes the field from the registry.
func (p *Polygon) Destroy() {
	p.Deregister()
}

func visible(sight Sight, required bool, from, to vector.Vector) bool {
	if !required || sight == nil {
		return true
	}
	return sight.Visible(from, to)
}

// Steering returns the velocity change a repeller applies to a target at pos
// with the given power. Stronger targets are pushed less.
func Steering(r Repeller, pos vector.Vector, power float64) vector.Vector {
	return r.Pos().Diff(pos).Normalized(-r.Payload().Strength / max(power, 1))
}

// Live returns every registered repeller.
func Live(reg *object.Registry) []Repeller {
	return object.All[Repeller](reg, object.TagRepeller)
}
