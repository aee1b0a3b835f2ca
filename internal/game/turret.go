package game

import (
	"fmt"
	"math"

	"github.com/tomz197/spiritwatch/internal/clocky"
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Turret fires bursts of projectiles at the nearest visible spirit that still
// has power to lose. A confused turret sweeps aimlessly and holds fire.
type Turret struct {
	object.Base
	Selection

	Aim      float64
	Confused bool

	burst        int
	fire         *clocky.Clocky
	muzzle       *clocky.Clocky
	lastTarget   *Spirit
	installation *Installation
	world        *World
}

// NewTurret creates a turret. inst is nil for turrets mounted on the ship,
// which are not selectable.
func NewTurret(w *World, pos vector.Vector, inst *Installation) *Turret {
	t := &Turret{
		Aim:          math.Pi,
		burst:        config.TurretMaxBurst,
		installation: inst,
		world:        w,
	}
	t.Position = pos
	t.fire = clocky.New(w.time, config.TurretFireRate)
	t.muzzle = clocky.Once(w.time, config.TurretMuzzleTime)
	t.muzzle.Stop = true

	tags := []object.Tag{object.TagUpdatable, object.TagDrawable, object.TagTurret, object.TagSceneBound}
	if inst != nil {
		tags = append(tags, object.TagSelectable)
	}
	t.Register(w.reg, t, tags...)
	return t
}

// Update implements object.Updatable.
func (t *Turret) Update() {
	w := t.world
	fireTick := t.fire.Check()
	t.muzzle.Check()

	if t.Confused {
		t.Aim = math.Sin(w.time.Elapsed()+t.Position.X) * 10
		return
	}

	nearest := t.nearestTarget()
	if nearest != nil {
		t.Aim = nearest.Position.Diff(t.Position).Angle()
	}

	followShots := t.burst < config.TurretMaxBurst-1
	if !fireTick || (nearest == nil && !followShots) {
		return
	}
	if followShots && nearest != t.lastTarget {
		nearest = nil
	}
	NewProjectile(w, t.Position, t.Aim, nearest)
	t.lastTarget = nearest
	t.muzzle.Reset()

	if t.burst <= 0 {
		t.burst = config.TurretMaxBurst
		t.fire.Limit = config.TurretBetweenBursts
	} else {
		t.fire.Limit = config.TurretBetweenShots
	}
	t.burst--
}

func (t *Turret) nearestTarget() *Spirit {
	var nearest *Spirit
	best := config.TurretRange
	for _, s := range object.All[*Spirit](t.world.reg, object.TagSpirit) {
		if s.power <= 1 {
			continue
		}
		d := s.Position.Distance(t.Position)
		if d >= best || !t.world.collision.Visible(t.Position, s.Position) {
			continue
		}
		nearest, best = s, d
	}
	return nearest
}

// Size returns the pick radius.
func (t *Turret) Size() float64 { return config.InstallationSize }

// PickupProxy returns the installation the turret is collected as.
func (t *Turret) PickupProxy() Pickupable { return installationProxy(t.installation) }

// UIData describes the turret.
func (t *Turret) UIData() UIData {
	d := UIData{
		Name:  "Turret",
		Stats: []Stat{{Name: "Burst", Value: fmt.Sprint(t.burst)}},
	}
	if t.installation != nil {
		d.Stats = append(d.Stats, t.installation.resistStat())
	}
	return d
}

// Draw implements object.Drawable.
func (t *Turret) Draw(f *draw.Frame) {
	ink := t.Ink(draw.InkInstallation)
	f.Circle(t.Position, config.InstallationSize/2, ink)
	barrel := t.Position.Plus(vector.FromAngle(t.Aim).Scaled(config.InstallationSize))
	f.Line(t.Position, barrel, ink)
	if !t.muzzle.Stop {
		f.Disc(barrel, config.InstallationSize/3, draw.InkFlare)
	}
}

// Destroy removes the turret.
func (t *Turret) Destroy() {
	t.Deregister()
}
