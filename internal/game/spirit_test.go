package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// field registers a non-steering range field at the origin.
func field(w *World, emotional bool, onHit func(repeller.Target)) *repeller.Range {
	r := repeller.NewRange(w.Registry(), w.Collision(), 1000)
	r.Strength = 0
	r.Emotional = emotional
	r.OnHit = onHit
	return r
}

func projectiles(w *World) []*Projectile {
	return object.All[*Projectile](w.Registry(), object.TagUpdatable)
}

func TestSpiritConsumesEmotionalFieldsFirst(t *testing.T) {
	w := newTestWorld(t)
	var order []string
	field(w, false, func(repeller.Target) { order = append(order, "plain") })
	field(w, true, func(repeller.Target) { order = append(order, "emotional") })
	NewSpirit(w, vector.New(100, 0))

	step(w, 1)
	assert.Equal(t, []string{"emotional", "plain"}, order)
}

func TestDisabledFieldIsIgnored(t *testing.T) {
	w := newTestWorld(t)
	hits := 0
	r := field(w, false, func(repeller.Target) { hits++ })
	r.Enabled = false
	NewSpirit(w, vector.New(100, 0))

	step(w, 3)
	assert.Zero(t, hits)
}

func TestDrainedSpiritFadesOut(t *testing.T) {
	w := newTestWorld(t)
	field(w, false, func(tg repeller.Target) { tg.Affect(-1) })
	s := NewSpirit(w, vector.New(100, 0))

	step(w, 1)
	assert.InDelta(t, config.SpiritPower-1, s.Power(), 1e-9)
	assert.False(t, s.Fading())

	step(w, 1)
	assert.True(t, s.Fading(), "spent spirits fade instead of taking more hits")
	assert.InDelta(t, config.SpiritPower-1, s.Power(), 1e-9)

	stepFor(w, config.SpiritFadeTime)
	assert.True(t, s.Destroyed())
}

func TestSpiritLeavesPastBoundary(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpirit(w, vector.New(config.WorldWidth+10, 0))
	step(w, 1)
	assert.True(t, s.Destroyed())
	assert.Empty(t, object.All[*Spirit](w.Registry(), object.TagSpirit))
}

func TestProjectileHitsSpirit(t *testing.T) {
	w := newTestWorld(t)
	s := NewSpirit(w, vector.New(300, 0))
	p := NewProjectile(w, vector.New(0, 0), 0, s)

	step(w, 6)
	assert.True(t, p.Destroyed())
	assert.InDelta(t, config.SpiritPower-config.ProjectileDamage, s.Power(), 1e-9)
	assert.NotEmpty(t, sparks(w))
}

func TestProjectileExpires(t *testing.T) {
	w := newTestWorld(t)
	p := NewProjectile(w, vector.New(0, 0), 0, nil)
	step(w, 1)
	assert.Less(t, p.Life(), config.ProjectileLife)

	stepFor(w, config.ProjectileLife)
	assert.True(t, p.Destroyed())
}

func TestTurretFiresAtSpirit(t *testing.T) {
	w := newTestWorld(t)
	NewTurret(w, vector.New(0, 0), nil)

	stepFor(w, config.TurretFireRate)
	assert.Empty(t, projectiles(w), "nothing to shoot at")

	NewSpirit(w, vector.New(1000, 0))
	stepFor(w, config.TurretFireRate)
	assert.NotEmpty(t, projectiles(w))
}

func TestConfusedTurretHoldsFire(t *testing.T) {
	w := newTestWorld(t)
	tur := NewTurret(w, vector.New(0, 0), nil)
	tur.Confused = true
	NewSpirit(w, vector.New(1000, 0))

	stepFor(w, 2*config.TurretFireRate)
	assert.Empty(t, projectiles(w))
}

func TestAttackedAstronautLosesResistAndRecovers(t *testing.T) {
	w := newTestWorld(t)
	a := NewAstronaut(w, vector.New(0, 0))
	s := NewSpirit(w, vector.New(50, 0))

	step(w, 1)
	assert.Less(t, a.Resist, config.AstronautResist)
	assert.Positive(t, a.StressTimer())

	s.Destroy()
	drained := a.Resist
	step(w, 10)
	assert.Greater(t, a.Resist, drained)

	stepFor(w, config.AstronautStress)
	assert.Zero(t, a.StressTimer())
}

func TestWornDownAstronautIsIncapacitated(t *testing.T) {
	w := newTestWorld(t)
	a := NewAstronaut(w, vector.New(0, 0))
	a.Resist = 0.01
	a.Target = vector.New(1000, 0)
	NewSpirit(w, vector.New(50, 0))

	step(w, 3)
	require.True(t, a.Incapacitated())
	assert.False(t, a.attractor.Enabled)
	assert.Equal(t, a.Position, a.Target)
	assert.Zero(t, a.QueuedOrders())
	assert.True(t, journalHas(w, "Astronaut incapacitated"))
}

func TestCameraProjection(t *testing.T) {
	w := newTestWorld(t)
	cam := w.Camera()
	cam.Position = vector.New(500, -200)

	assert.Equal(t, cam.Center(), cam.WorldToRender(cam.Position))
	p := vector.New(37, 12)
	back := cam.WorldToRender(cam.RenderToWorld(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	cam.SetZoom(100)
	assert.Equal(t, config.MaxZoom, cam.Zoom())
	cam.SetZoom(0)
	assert.Equal(t, config.MinZoom, cam.Zoom())
}

func TestCameraPansAndZooms(t *testing.T) {
	w := newTestWorld(t)
	cam := w.Camera()
	press(w, input.KeyRight)
	press(w, input.KeyPlus)
	x0 := cam.Position.X

	cam.Update(w.Controls(), 0.5)
	assert.InDelta(t, x0+config.PanSpeed*0.5/config.DefaultZoom, cam.Position.X, 1e-6)
	assert.InDelta(t, config.DefaultZoom*(1+config.ZoomStep), cam.Zoom(), 1e-12)
}

func TestSpiritIndexFindsNearbySpirits(t *testing.T) {
	w := newTestWorld(t)
	nearby := NewSpirit(w, vector.New(100, 100))
	far := NewSpirit(w, vector.New(3000, 3000))
	outside := NewSpirit(w, vector.New(-3000, 200))
	w.spirits.rebuild(w.Registry())

	collect := func(p vector.Vector, radius float64) []*Spirit {
		var out []*Spirit
		w.spirits.near(p, radius, func(s *Spirit) bool {
			out = append(out, s)
			return false
		})
		return out
	}

	assert.Equal(t, []*Spirit{nearby}, collect(vector.New(150, 100), 100))
	assert.Equal(t, []*Spirit{far}, collect(vector.New(3000, 3050), 100))
	assert.Equal(t, []*Spirit{outside}, collect(vector.New(-3000, 250), 100), "clamped to the border cells")
	assert.Empty(t, collect(vector.New(1500, 1500), 100))

	nearby.Destroy()
	assert.Empty(t, collect(vector.New(150, 100), 100))
}

func TestSpiritAtHullDrainsShip(t *testing.T) {
	w := newTestWorld(t)
	ship := NewShip(w, vector.New(0, 0), 0)
	NewSpirit(w, vector.New(100, 0))

	step(w, 1)
	assert.Less(t, ship.Resist, config.ShipResist)
	assert.True(t, ship.UnderAttack())
}
