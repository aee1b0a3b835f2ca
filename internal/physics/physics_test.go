package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/spiritwatch/internal/vector"
)

func square(half float64) []vector.Vector {
	return []vector.Vector{
		vector.New(-half, -half),
		vector.New(half, -half),
		vector.New(half, half),
		vector.New(-half, half),
	}
}

func TestPointInPolygon(t *testing.T) {
	sq := square(50)

	tests := []struct {
		name string
		p    vector.Vector
		want bool
	}{
		{"center", vector.New(0, 0), true},
		{"inside corner", vector.New(49, 49), true},
		{"far away", vector.New(1000, 0), false},
		{"just outside", vector.New(51, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInPolygon(tt.p, sq))
		})
	}

	assert.False(t, PointInPolygon(vector.New(0, 0), nil))
	assert.False(t, PointInPolygon(vector.New(0, 0), sq[:2]))
}

func TestRotatePolygon(t *testing.T) {
	rect := []vector.Vector{
		vector.New(0, -10), vector.New(100, -10), vector.New(100, 10), vector.New(0, 10),
	}
	p := vector.New(80, 0)

	assert.True(t, PointInPolygon(p, rect))
	rotated := RotatePolygon(rect, math.Pi/2)
	assert.False(t, PointInPolygon(p, rotated))
	assert.True(t, PointInPolygon(vector.New(0, 80), rotated))

	// source untouched
	assert.Equal(t, vector.New(100, -10), rect[1])
}

func TestBoxSizeAndRadius(t *testing.T) {
	poly := []vector.Vector{vector.New(3, -4), vector.New(-1, 2)}
	assert.Equal(t, 4.0, BoxSize(poly))
	assert.Equal(t, 5.0, BoundingRadius(poly))
	assert.Equal(t, 0.0, BoxSize(nil))
}

func TestSegmentIntersection(t *testing.T) {
	p, frac, ok := SegmentIntersection(
		vector.New(0, 0), vector.New(10, 0),
		vector.New(5, -5), vector.New(5, 5),
	)
	assert.True(t, ok)
	assert.InDelta(t, 5, p.X, 1e-9)
	assert.InDelta(t, 0.5, frac, 1e-9)

	_, _, ok = SegmentIntersection(
		vector.New(0, 0), vector.New(10, 0),
		vector.New(0, 1), vector.New(10, 1),
	)
	assert.False(t, ok)
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(vector.New(-100, -100), 1000, 1000, 100)
	g.Insert(vector.New(0, 0), 1)
	g.Insert(vector.New(90, 90), 2)
	g.Insert(vector.New(800, 800), 3)
	g.Insert(vector.New(-5000, 0), 4) // clamps to border column

	var found []int
	g.QueryAround(vector.New(10, 10), func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.ElementsMatch(t, []int{1, 2, 4}, found)

	g.Clear()
	found = found[:0]
	g.QueryAround(vector.New(10, 10), func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.Empty(t, found)
}
