// Package vector provides the 2D vector used for all spatial game logic.
package vector

import (
	"fmt"
	"math"
)

// Vector is a mutable 2D point/direction.
// Pointer-receiver methods mutate in place and return the receiver so calls chain;
// value-receiver methods never modify the vector they are called on.
type Vector struct {
	X, Y float64
}

// New returns a vector with the given components.
func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at angle r (radians).
func FromAngle(r float64) Vector {
	return Vector{X: math.Cos(r), Y: math.Sin(r)}
}

// Lerp interpolates between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b Vector, t float64) Vector {
	return Vector{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Set copies v into the receiver.
func (p *Vector) Set(v Vector) *Vector {
	p.X, p.Y = v.X, v.Y
	return p
}

// SetXY sets both components.
func (p *Vector) SetXY(x, y float64) *Vector {
	p.X, p.Y = x, y
	return p
}

// Add adds v to the receiver.
func (p *Vector) Add(v Vector) *Vector {
	p.X += v.X
	p.Y += v.Y
	return p
}

// AddXY adds the given offsets to the receiver.
func (p *Vector) AddXY(x, y float64) *Vector {
	p.X += x
	p.Y += y
	return p
}

// Sub subtracts v from the receiver.
func (p *Vector) Sub(v Vector) *Vector {
	p.X -= v.X
	p.Y -= v.Y
	return p
}

// Mult scales the receiver by m.
func (p *Vector) Mult(m float64) *Vector {
	p.X *= m
	p.Y *= m
	return p
}

// Normalize rescales the receiver to the given length (negative lengths flip it).
// The zero vector stays zero.
func (p *Vector) Normalize(length float64) *Vector {
	l := p.Length()
	if l == 0 {
		return p
	}
	p.X = p.X / l * length
	p.Y = p.Y / l * length
	return p
}

// ClampLength shortens the receiver to max if it is longer.
func (p *Vector) ClampLength(max float64) *Vector {
	if p.LengthSquared() > max*max {
		p.Normalize(max)
	}
	return p
}

// Clone returns a copy of v. Useful before chaining mutators.
func (v Vector) Clone() Vector {
	return v
}

// Diff returns v - o.
func (v Vector) Diff(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Plus returns v + o.
func (v Vector) Plus(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scaled returns v * m.
func (v Vector) Scaled(m float64) Vector {
	return Vector{X: v.X * m, Y: v.Y * m}
}

// Normalized returns v rescaled to length.
func (v Vector) Normalized(length float64) Vector {
	out := v
	out.Normalize(length)
	return out
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vector) Rotate(angle float64) Vector {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Vector{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Angle returns the direction of v in radians.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared length of v.
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// DistanceSquared returns the squared distance between v and o.
func (v Vector) DistanceSquared(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// BoxDistance returns the Chebyshev distance (largest axis difference).
func (v Vector) BoxDistance(o Vector) float64 {
	return math.Max(math.Abs(v.X-o.X), math.Abs(v.Y-o.Y))
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vector) Cross(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Equals reports exact component equality.
func (v Vector) Equals(o Vector) bool {
	return v.X == o.X && v.Y == o.Y
}

// String implements fmt.Stringer.
func (v Vector) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}
