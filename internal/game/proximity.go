package game

import (
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/physics"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// spiritIndex buckets the live spirits once per frame for short-range
// lookups. Spirits spawned during the frame join at the next rebuild.
type spiritIndex struct {
	grid    *physics.SpatialGrid
	spirits []*Spirit
}

func newSpiritIndex() *spiritIndex {
	m := config.SpiritGridMargin
	return &spiritIndex{
		grid: physics.NewSpatialGrid(vector.New(-m, -m),
			config.WorldWidth+2*m, config.WorldHeight+2*m, config.SpiritGridCell),
	}
}

func (i *spiritIndex) rebuild(reg *object.Registry) {
	i.grid.Clear()
	i.spirits = object.All[*Spirit](reg, object.TagSpirit)
	for n, s := range i.spirits {
		i.grid.Insert(s.Position, n)
	}
}

// near calls fn for each live spirit closer than radius to p until fn
// returns true. radius must not exceed SpiritGridCell minus a frame of drift.
func (i *spiritIndex) near(p vector.Vector, radius float64, fn func(s *Spirit) bool) {
	i.grid.QueryAround(p, func(n int) bool {
		s := i.spirits[n]
		if s.Destroyed() || s.Position.DistanceSquared(p) >= radius*radius {
			return false
		}
		return fn(s)
	})
}
