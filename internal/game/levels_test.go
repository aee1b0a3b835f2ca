package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/collision"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

func startWorld(t *testing.T, level int) *World {
	t.Helper()
	w := NewWorld(Options{Seed: 7, StartLevel: level}, logging.Nop(), input.NewControlManager(), collision.NewSystem())
	t.Cleanup(w.Close)
	require.NoError(t, w.Start())
	// Keep the field empty so the ship survives long runs.
	w.Waves().spawn.Stop = true
	return w
}

func TestStartLoadsTutorial(t *testing.T) {
	w := startWorld(t, 0)

	ship := w.Ship()
	require.NotNil(t, ship)
	assert.Equal(t, 2, ship.Inventory.Count(DrillParts))
	assert.Equal(t, 6, ship.Inventory.Count(RepellFlareItem))
	assert.Equal(t, 3, ship.Inventory.Count(ConstructionParts))
	assert.Zero(t, ship.Inventory.Count(KillFlareItem))
	assert.NotEqual(t, ship.Position, ship.Target, "ship flies in")

	assert.NotEmpty(t, object.All[*Asteroid](w.Registry(), object.TagAsteroid))
	assert.InDelta(t, 3.0, w.Waves().Interval(), 1e-9)
	assert.Equal(t, 0, w.Levels().Index())
	assert.True(t, journalHas(w, "Tutorial"))

	stepFor(w, 3)
	assert.True(t, journalHas(w, "Select the ship with Tab and deploy an astronaut"))
}

func TestStartLevelIsClamped(t *testing.T) {
	w := NewWorld(Options{StartLevel: 99}, logging.Nop(), input.NewControlManager(), collision.NewSystem())
	t.Cleanup(w.Close)
	assert.Equal(t, len(Campaign)-1, w.Levels().Index())
}

func TestLevelTwoHasRitual(t *testing.T) {
	w := startWorld(t, 2)
	assert.Equal(t, 5, w.Ship().Inventory.Count(ConstructionParts))
	assert.Equal(t, 3, w.Ship().Inventory.Count(KillFlareItem))
	assert.Len(t, object.All[*Ritual](w.Registry(), object.TagUpdatable), 1)
}

func TestLevelTimelineSpeedsUpSpawns(t *testing.T) {
	w := startWorld(t, 1)

	stepFor(w, 60)
	assert.True(t, journalHas(w, "Something stirs out there"))

	stepFor(w, 15)
	pace := w.Waves().Interval()
	assert.Less(t, pace, 3.0)
	assert.Greater(t, pace, 0.5)
}

func TestLostShipReloadsLevel(t *testing.T) {
	w := startWorld(t, 0)
	first := w.Ship()
	first.Resist = 0

	step(w, 1)
	assert.True(t, w.Paused())
	assert.True(t, journalHas(w, "The ship is lost"))

	stepFor(w, config.ReloadDelay)
	require.NotNil(t, w.Ship())
	assert.NotSame(t, first, w.Ship())
	assert.True(t, first.Destroyed())
	assert.False(t, w.Paused())
	assert.Equal(t, config.ShipResist, w.Ship().Resist)
	assert.Equal(t, 0, w.Levels().Index())
}

func TestTransitionReportsAndContinues(t *testing.T) {
	w := startWorld(t, 0)
	step(w, 1)
	w.Ship().Resist = 90

	m := w.Levels()
	m.Transition()

	require.True(t, m.InTransition())
	assert.Nil(t, m.Level())
	assert.Zero(t, w.Registry().Count(object.TagSceneBound))

	r := m.Report()
	require.NotNil(t, r)
	assert.Equal(t, "Tutorial", r.Level)
	require.Len(t, r.Objectives, 5)
	assert.Equal(t, ObjectiveRating{Score: -10, Status: "Ship took 10 damage", Result: ResultFailure}, r.Objectives[4])
	assert.Equal(t, 190, r.TotalScore)

	snap := w.Snapshot()
	assert.Same(t, r, snap.Report)
	assert.Empty(t, snap.Objectives)

	press(w, input.KeyEnter)
	step(w, 1)
	assert.True(t, m.InTransition(), "next level waits for the delay")

	stepFor(w, config.TransitionDelay)
	assert.False(t, m.InTransition())
	assert.Equal(t, 1, m.Index())
	assert.NotNil(t, w.Ship())
	assert.Equal(t, "Level 1", w.Snapshot().Level)
}

func TestCompletingObjectivesEndsLevel(t *testing.T) {
	w := startWorld(t, 0)
	exit := vector.New(config.ExitZoneX, config.ExitZoneY)
	w.Ship().Position = exit
	w.Ship().Target = exit
	w.Objectives().MinedOre = config.MiningTarget

	step(w, 2)

	m := w.Levels()
	require.True(t, m.InTransition())
	assert.Equal(t, 400, m.Report().TotalScore)
}

func TestCampaignEndsAfterLastLevel(t *testing.T) {
	w := startWorld(t, len(Campaign)-1)
	m := w.Levels()
	m.Transition()
	m.Continue()

	assert.True(t, m.Done())
	assert.Equal(t, len(Campaign)-1, m.Index())
	assert.True(t, w.Snapshot().Done)
}
