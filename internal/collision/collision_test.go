package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/vector"
)

func box(half float64) []vector.Vector {
	return []vector.Vector{
		vector.New(-half, -half), vector.New(half, -half),
		vector.New(half, half), vector.New(-half, half),
	}
}

func TestRaycastNearestHit(t *testing.T) {
	s := NewSystem()
	near := s.CreatePolygon(vector.New(100, 0), box(10))
	far := s.CreatePolygon(vector.New(300, 0), box(10))

	hit, ok := s.Raycast(vector.New(0, 0), vector.New(500, 0), nil)
	require.True(t, ok)
	assert.Same(t, near, hit.Body)
	assert.InDelta(t, 90, hit.Point.X, 1e-9)
	assert.InDelta(t, 90, hit.Distance, 1e-9)

	hit, ok = s.Raycast(vector.New(0, 0), vector.New(500, 0), Only(far))
	require.True(t, ok)
	assert.InDelta(t, 290, hit.Point.X, 1e-9)

	_, ok = s.Raycast(vector.New(0, 0), vector.New(500, 0), Except(near, far))
	assert.False(t, ok)
}

func TestRaycastMiss(t *testing.T) {
	s := NewSystem()
	s.CreatePolygon(vector.New(100, 100), box(10))

	assert.True(t, s.Visible(vector.New(0, 0), vector.New(500, 0)))
}

func TestBodyMoveAndRemove(t *testing.T) {
	s := NewSystem()
	b := s.CreatePolygon(vector.New(0, 0), box(10))

	assert.True(t, b.Contains(vector.New(5, 5)))
	b.SetPosition(vector.New(100, 0))
	assert.False(t, b.Contains(vector.New(5, 5)))
	assert.True(t, b.Contains(vector.New(95, 5)))

	s.Remove(b)
	s.Remove(b)
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Visible(vector.New(0, 0), vector.New(200, 0)))
}
