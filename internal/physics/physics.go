// Package physics provides distance and polygon geometry utilities.
package physics

import (
	"math"

	"github.com/tomz197/spiritwatch/internal/vector"
)

// PointInCircle checks if p is strictly within radius of c.
func PointInCircle(p, c vector.Vector, radius float64) bool {
	return p.DistanceSquared(c) < radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(a vector.Vector, ra float64, b vector.Vector, rb float64) bool {
	minDist := ra + rb
	return a.DistanceSquared(b) < minDist*minDist
}

// PointInPolygon reports whether p lies inside poly using even-odd ray crossing.
// Points exactly on an edge may land on either side.
// An empty or degenerate polygon contains nothing.
func PointInPolygon(p vector.Vector, poly []vector.Vector) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// x coordinate where the edge crosses the horizontal line through p
			cross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// RotatePolygon returns a copy of poly rotated by angle radians around the origin.
func RotatePolygon(poly []vector.Vector, angle float64) []vector.Vector {
	out := make([]vector.Vector, len(poly))
	for i, p := range poly {
		out[i] = p.Rotate(angle)
	}
	return out
}

// ScalePolygon returns a copy of poly with every point multiplied by s.
func ScalePolygon(poly []vector.Vector, s float64) []vector.Vector {
	out := make([]vector.Vector, len(poly))
	for i, p := range poly {
		out[i] = p.Scaled(s)
	}
	return out
}

// AnchorPolygon returns a copy of poly translated to world position pos.
func AnchorPolygon(poly []vector.Vector, pos vector.Vector) []vector.Vector {
	out := make([]vector.Vector, len(poly))
	for i, p := range poly {
		out[i] = p.Plus(pos)
	}
	return out
}

// BoxSize returns the largest absolute coordinate of any point in poly,
// i.e. the half-extent of the origin-centred square that contains it.
func BoxSize(poly []vector.Vector) float64 {
	size := 0.0
	for _, p := range poly {
		size = math.Max(size, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	return size
}

// BoundingRadius returns the distance of the farthest point of poly from the origin.
func BoundingRadius(poly []vector.Vector) float64 {
	r := 0.0
	for _, p := range poly {
		r = math.Max(r, p.Length())
	}
	return r
}

// SegmentIntersection returns the point where segments a1-a2 and b1-b2 cross,
// and the fraction along a1-a2 at which it happens.
func SegmentIntersection(a1, a2, b1, b2 vector.Vector) (vector.Vector, float64, bool) {
	r := a2.Diff(a1)
	s := b2.Diff(b1)
	denom := r.Cross(s)
	if denom == 0 {
		return vector.Vector{}, 0, false
	}

	qp := b1.Diff(a1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vector.Vector{}, 0, false
	}
	return a1.Plus(r.Scaled(t)), t, true
}
