package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/vector"
)

func objective(m *ObjectiveManager, kind ObjectiveKind) *Objective {
	for _, o := range m.Objectives {
		if o.Kind == kind {
			return o
		}
	}
	return nil
}

func TestObjectiveCompletionLatches(t *testing.T) {
	w := newTestWorld(t)
	m := w.Objectives()
	mining := objective(m, Mining)
	require.NotNil(t, mining)

	m.MinedOre = config.MiningTarget
	m.Update()
	assert.True(t, mining.Completed())
	assert.True(t, journalHas(w, "Objective complete: Restock"))

	m.MinedOre = 0
	m.Update()
	assert.True(t, mining.Completed())
}

func TestObjectiveRatings(t *testing.T) {
	w := newTestWorld(t)
	m := w.Objectives()
	mining := objective(m, Mining)

	m.MinedOre = 50
	assert.Equal(t, ObjectiveRating{Score: 25, Status: "Restock 50.0 / 200.0", Result: ResultPartial}, m.Rating(mining))

	m.MinedOre = 0
	assert.Equal(t, ObjectiveRating{Status: "Restock failed", Result: ResultFailure}, m.Rating(mining))

	m.MinedOre = config.MiningTarget
	m.Update()
	assert.Equal(t, ObjectiveRating{Score: 100, Status: "Restock complete", Result: ResultSuccess}, m.Rating(mining))
}

func TestShipDrivenObjectives(t *testing.T) {
	w := newTestWorld(t)
	m := w.Objectives()
	assert.False(t, m.CriticalNonExitComplete())

	ship := NewShip(w, vector.New(0, 0), 0)
	w.ship = ship
	ship.Pickup(Stack{Item: DrillParts, Count: 2})
	m.MinedOre = config.MiningTarget
	m.Update()

	assert.True(t, m.CriticalNonExitComplete())
	assert.False(t, m.CriticalComplete())
	assert.True(t, objective(m, CrewOnBoard).Completed())

	ship.Position = vector.New(config.ExitZoneX, config.ExitZoneY+config.ExitZoneR/2)
	m.Update()
	assert.True(t, m.CriticalComplete())
}

func TestOptionalObjectivesDoNotBlock(t *testing.T) {
	w := newTestWorld(t)
	m := NewObjectiveManager(w, []*Objective{
		{Kind: Mining, Target: 10},
		{Kind: ExitStrategy, Optional: true},
	})
	m.MinedOre = 10
	m.Update()
	assert.True(t, m.CriticalComplete())

	panel := m.Panel()
	require.Len(t, panel, 2)
	assert.Equal(t, ObjectiveUI{Name: "Restock", Desc: "Mine ore", Status: "10.0 / 10.0", Completed: true}, panel[0])
	assert.Equal(t, ObjectiveUI{Name: "Exit Strategy", Desc: "Enter the exit zone"}, panel[1])
}
