package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutatorsChainInPlace(t *testing.T) {
	v := New(1, 2)
	out := v.Add(New(2, 2)).Mult(2).Sub(New(1, 1))

	assert.Same(t, &v, out)
	assert.Equal(t, New(5, 7), v)
}

func TestNormalize(t *testing.T) {
	v := New(3, 4)
	v.Normalize(10)
	assert.InDelta(t, 6, v.X, 1e-9)
	assert.InDelta(t, 8, v.Y, 1e-9)

	flipped := New(3, 4).Normalized(-5)
	assert.InDelta(t, -3, flipped.X, 1e-9)
	assert.InDelta(t, -4, flipped.Y, 1e-9)

	zero := Vector{}
	zero.Normalize(5)
	assert.Equal(t, Vector{}, zero)
}

func TestRotateAndAngle(t *testing.T) {
	r := New(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-9)
	assert.InDelta(t, 1, r.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, r.Angle(), 1e-9)

	f := FromAngle(math.Pi)
	assert.InDelta(t, -1, f.X, 1e-9)
}

func TestDistances(t *testing.T) {
	a, b := New(0, 0), New(3, -4)
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 25.0, a.DistanceSquared(b))
	assert.Equal(t, 4.0, a.BoxDistance(b))
}

func TestLerpAndClamp(t *testing.T) {
	assert.Equal(t, New(5, 10), Lerp(New(0, 0), New(10, 20), 0.5))

	v := New(30, 40)
	v.ClampLength(5)
	assert.InDelta(t, 5, v.Length(), 1e-9)

	short := New(1, 0)
	short.ClampLength(5)
	assert.Equal(t, New(1, 0), short)
}

func TestValueHelpersDoNotMutate(t *testing.T) {
	v := New(1, 1)
	_ = v.Diff(New(1, 0))
	_ = v.Scaled(3)
	_ = v.Normalized(9)
	assert.Equal(t, New(1, 1), v)
}
