package game

import (
	"fmt"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// InstallationKind selects the device an installation carries.
type InstallationKind int

// Installation kinds.
const (
	TurretInstallation InstallationKind = iota
	SpotlightInstallation
	DrillInstallation
)

func (k InstallationKind) String() string {
	switch k {
	case TurretInstallation:
		return "Turret"
	case SpotlightInstallation:
		return "Spotlight"
	case DrillInstallation:
		return "Drill"
	}
	return "Installation"
}

// Installation is a built structure, optionally tethered to an asteroid.
// It lures spirits with an emotional attractor whose range shrinks with its
// resist; spirits that reach it wear the resist down.
type Installation struct {
	object.Base

	Kind     InstallationKind
	Asteroid *Asteroid
	Resist   float64

	underAttack bool
	attractor   *repeller.Range
	turret      *Turret
	spotlight   *Spotlight
	drill       *Drill
	world       *World
}

// NewInstallation builds an installation of kind at pos. A drill installation
// requires an asteroid.
func NewInstallation(w *World, kind InstallationKind, pos vector.Vector, asteroid *Asteroid) *Installation {
	i := &Installation{
		Kind:     kind,
		Asteroid: asteroid,
		Resist:   config.InstallationResist,
		world:    w,
	}
	i.Position = pos

	// Negative strength pulls spirits in.
	i.attractor = repeller.NewRange(w.reg, w.collision, config.InstallationAttractRange)
	i.attractor.Strength = -1
	i.attractor.Emotional = true
	i.attractor.Position = pos
	i.attractor.OnHit = func(t repeller.Target) {
		if t.Pos().DistanceSquared(i.Position) < config.InstallationAttackRange*config.InstallationAttackRange {
			i.Resist -= w.time.Delta() * config.InstallationDrain
			i.underAttack = true
		}
	}

	i.Register(w.reg, i, object.TagUpdatable, object.TagDrawable, object.TagSceneBound, object.TagPickupable)

	switch kind {
	case TurretInstallation:
		i.turret = NewTurret(w, pos, i)
	case SpotlightInstallation:
		i.spotlight = NewSpotlight(w, pos, i)
	case DrillInstallation:
		i.drill = NewDrill(w, pos, asteroid, i)
	}
	return i
}

// Turret returns the turret of a turret installation.
func (i *Installation) Turret() *Turret { return i.turret }

// Spotlight returns the spotlight of a spotlight installation.
func (i *Installation) Spotlight() *Spotlight { return i.spotlight }

// Drill returns the drill of a drill installation.
func (i *Installation) Drill() *Drill { return i.drill }

// Attractor returns the luring field.
func (i *Installation) Attractor() *repeller.Range { return i.attractor }

// Confused reports whether the resist is too low for the device to work properly.
func (i *Installation) Confused() bool {
	return i.Resist < config.InstallationConfused
}

// Update implements object.Updatable.
func (i *Installation) Update() {
	i.attractor.Range = config.InstallationAttractRange * (i.Resist / config.InstallationResist)
	i.attractor.Position = i.Position

	if i.Kind != DrillInstallation {
		if i.Resist < config.InstallationResist && !i.underAttack && i.Resist > config.InstallationConfused {
			i.Resist += config.InstallationRecover * i.world.time.Delta()
		}
	}
	i.underAttack = false

	switch {
	case i.turret != nil:
		i.turret.Confused = i.Confused()
		i.turret.Position = i.Position
	case i.spotlight != nil:
		i.spotlight.Confused = i.Confused()
		i.spotlight.Position = i.Position
	case i.drill != nil:
		i.drill.Position = i.Position
	}
}

// CheckPickup returns the parts the installation is dismantled into.
func (i *Installation) CheckPickup() Stack {
	if i.Kind == DrillInstallation {
		return Stack{Item: DrillParts, Count: 1}
	}
	return Stack{Item: ConstructionParts, Count: 1}
}

func (i *Installation) resistStat() Stat {
	return Stat{Name: "Resist", Value: fmt.Sprintf("%.0f", i.Resist)}
}

// Draw implements object.Drawable.
func (i *Installation) Draw(f *draw.Frame) {
	if i.Asteroid != nil {
		f.Line(i.Position, i.Asteroid.Position, draw.InkInstallation)
	}
	if i.Confused() {
		f.Label(i.Position.Plus(vector.New(0, config.InstallationSize)), "!", draw.InkDanger)
	}
}

// Destroy dismantles the installation and its device.
func (i *Installation) Destroy() {
	if i.Destroyed() {
		return
	}
	i.Deregister()
	i.attractor.Destroy()
	switch {
	case i.turret != nil:
		i.turret.Destroy()
	case i.spotlight != nil:
		i.spotlight.Destroy()
	case i.drill != nil:
		i.drill.Destroy()
	}
}

// installationProxy returns inst as a Pickupable, or nil without an installation.
func installationProxy(inst *Installation) Pickupable {
	if inst == nil || inst.Destroyed() {
		return nil
	}
	return inst
}
