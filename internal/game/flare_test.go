package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

func TestFlareIgnitionGrowsField(t *testing.T) {
	w := newTestWorld(t)
	fl := NewFlare(w, RepellFlare, vector.New(0, 0))
	assert.False(t, fl.Ignited())
	assert.Zero(t, fl.Field().Range)

	stepFor(w, config.FlareIgnition/2)
	assert.False(t, fl.Ignited())
	assert.Greater(t, fl.Field().Range, 0.0)
	assert.Less(t, fl.Field().Range, config.FlareRepellRange)

	stepFor(w, config.FlareIgnition/2)
	assert.True(t, fl.Ignited())
	assert.InDelta(t, 1.0, fl.Strength(), 1e-9)
	assert.InDelta(t, config.FlareRepellRange, fl.Field().Range, 1e-6)
}

func TestAttractFlareIsEmotional(t *testing.T) {
	w := newTestWorld(t)
	fl := NewFlare(w, AttractFlare, vector.New(0, 0))
	assert.True(t, fl.Field().Emotional)
	assert.Equal(t, config.FlareAttractPull, fl.Field().Strength)
}

func TestKillFlareBurnsOut(t *testing.T) {
	w := newTestWorld(t)
	fl := NewFlare(w, KillFlare, vector.New(0, 0))
	stepFor(w, config.FlareIgnition)
	require.True(t, fl.Ignited())

	s := NewSpirit(w, vector.New(10, 0))
	for i := 0; i < 9; i++ {
		fl.Field().Hit(s)
	}
	assert.False(t, fl.Destroyed())
	assert.InDelta(t, config.SpiritPower-9*config.FlareKillDrain, s.Power(), 1e-9)

	fl.Field().Hit(s)
	assert.True(t, fl.Destroyed())
	assert.Empty(t, object.All[*Flare](w.Registry(), object.TagFlare))
	assert.False(t, w.Registry().Has(object.TagRepeller, fl.Field()))
}

func TestUnlitFlareDoesNotBurnDown(t *testing.T) {
	w := newTestWorld(t)
	fl := NewFlare(w, RepellFlare, vector.New(0, 0))
	s := NewSpirit(w, vector.New(10, 0))

	for range 30 {
		fl.Field().Hit(s)
	}
	assert.False(t, fl.Destroyed())
}

func TestTossLandsOnTarget(t *testing.T) {
	w := newTestWorld(t)
	fl := NewFlare(w, RepellFlare, vector.New(0, 0))
	target := vector.New(400, 0)

	fl.Toss(target)
	assert.True(t, fl.Tossing())

	stepFor(w, config.FlareTossTime/2)
	assert.Greater(t, fl.Position.X, 0.0)
	assert.Less(t, fl.Position.X, target.X)

	stepFor(w, config.FlareTossTime/2)
	assert.False(t, fl.Tossing())
	assert.Equal(t, target, fl.Position)
}

func TestGrabbedFlareFollowsAstronaut(t *testing.T) {
	w := newTestWorld(t)
	a := NewAstronaut(w, vector.New(0, 0))
	fl := NewFlare(w, RepellFlare, vector.New(50, 50))

	a.Grab(fl)
	assert.Same(t, a, fl.GrabbedBy)

	a.Target = vector.New(300, 0)
	stepFor(w, 3)
	assert.InDelta(t, config.FlareGrabbedOffset, fl.Position.Distance(a.Position), 1e-6)

	fl.Destroy()
	assert.Nil(t, a.Grabbed())
}
