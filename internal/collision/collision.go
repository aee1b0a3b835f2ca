// Package collision is the raycast/polygon service consumed by the game core.
// Bodies are static or slowly moving polygons (asteroids, ship hulls) that can
// occlude line of sight and be hit by rays.
package collision

import (
	"github.com/tomz197/spiritwatch/internal/physics"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Body is a polygon collider placed in world space.
type Body struct {
	id       int
	position vector.Vector
	points   []vector.Vector // local space
	radius   float64

	// Owner is an optional back-reference set by the creator of the body.
	Owner any
}

// Position returns the world position of the body.
func (b *Body) Position() vector.Vector { return b.position }

// SetPosition moves the body.
func (b *Body) SetPosition(p vector.Vector) { b.position = p }

// Points returns the polygon in world space.
func (b *Body) Points() []vector.Vector {
	return physics.AnchorPolygon(b.points, b.position)
}

// Contains reports whether p lies inside the body.
func (b *Body) Contains(p vector.Vector) bool {
	return physics.PointInPolygon(p.Diff(b.position), b.points)
}

// Hit describes where a ray met a body.
type Hit struct {
	Point    vector.Vector
	Body     *Body
	Distance float64
}

// Filter decides whether a body takes part in a raycast.
type Filter func(b *Body) bool

// Only returns a filter matching a single body.
func Only(target *Body) Filter {
	return func(b *Body) bool { return b == target }
}

// Except returns a filter matching every body but the given ones.
func Except(skip ...*Body) Filter {
	return func(b *Body) bool {
		for _, s := range skip {
			if b == s {
				return false
			}
		}
		return true
	}
}

// System owns all bodies of a match.
type System struct {
	nextID int
	bodies []*Body
}

// NewSystem creates an empty collision system.
func NewSystem() *System {
	return &System{}
}

// CreatePolygon adds a polygon body at pos. The points are copied.
func (s *System) CreatePolygon(pos vector.Vector, points []vector.Vector) *Body {
	s.nextID++
	pts := make([]vector.Vector, len(points))
	copy(pts, points)

	b := &Body{
		id:       s.nextID,
		position: pos,
		points:   pts,
		radius:   physics.BoundingRadius(pts),
	}
	s.bodies = append(s.bodies, b)
	return b
}

// Remove deletes a body. Removing an unknown body is a no-op.
func (s *System) Remove(b *Body) {
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return
		}
	}
}

// Len returns the number of live bodies.
func (s *System) Len() int { return len(s.bodies) }

// Raycast returns the nearest intersection of segment from-to with any body accepted by filter.
// A nil filter accepts every body.
func (s *System) Raycast(from, to vector.Vector, filter Filter) (Hit, bool) {
	var (
		best     Hit
		bestFrac = 2.0
		found    bool
	)

	for _, b := range s.bodies {
		if filter != nil && !filter(b) {
			continue
		}
		if !segmentNearCircle(from, to, b.position, b.radius) {
			continue
		}

		pts := b.Points()
		j := len(pts) - 1
		for i := range pts {
			p, frac, ok := physics.SegmentIntersection(from, to, pts[j], pts[i])
			if ok && frac < bestFrac {
				bestFrac = frac
				best = Hit{Point: p, Body: b}
				found = true
			}
			j = i
		}
	}

	if found {
		best.Distance = from.Distance(best.Point)
	}
	return best, found
}

// Visible reports whether nothing blocks the segment from-to.
func (s *System) Visible(from, to vector.Vector) bool {
	_, hit := s.Raycast(from, to, nil)
	return !hit
}

// segmentNearCircle is the broad-phase reject for Raycast.
func segmentNearCircle(a, b, c vector.Vector, r float64) bool {
	ab := b.Diff(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return a.DistanceSquared(c) <= r*r
	}
	t := min(max(c.Diff(a).Dot(ab)/l2, 0), 1)
	closest := a.Plus(ab.Scaled(t))
	return closest.DistanceSquared(c) <= r*r
}
