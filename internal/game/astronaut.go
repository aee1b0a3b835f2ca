package game

import (
	"fmt"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/order"
	"github.com/tomz197/spiritwatch/internal/repeller"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Astronaut is a crew member outside the ship. It walks to its target,
// carries a small inventory and runs queued orders once it stops moving.
// Spirits are drawn to astronauts; an astronaut worn down to zero resist is
// incapacitated and no longer takes orders.
type Astronaut struct {
	object.Base
	Selection

	Target    vector.Vector
	Rotation  float64
	Resist    float64
	Inventory *Inventory

	attractor     *repeller.Range
	underAttack   bool
	stress        float64
	incapacitated bool
	enterShip     bool
	queue         order.Queue
	current       order.Order
	operating     *Drill
	grabbed       *Flare
	world         *World
}

// NewAstronaut places an astronaut at pos, standing still.
func NewAstronaut(w *World, pos vector.Vector) *Astronaut {
	a := &Astronaut{
		Target:    pos,
		Resist:    config.AstronautResist,
		Inventory: NewInventory(config.AstronautSlots),
		world:     w,
	}
	a.Position = pos

	// Negative strength pulls spirits in.
	a.attractor = repeller.NewRange(w.reg, w.collision, config.AstronautAttractRange)
	a.attractor.Strength = -1
	a.attractor.Emotional = true
	a.attractor.Position = pos
	a.attractor.OnHit = func(t repeller.Target) {
		if t.Pos().DistanceSquared(a.Position) < config.AstronautAttackRange*config.AstronautAttackRange {
			a.Resist -= w.time.Delta() * config.AstronautDrain
			a.underAttack = true
			a.stress = config.AstronautStress
		}
	}

	a.Register(w.reg, a,
		object.TagUpdatable, object.TagDrawable, object.TagAstronaut,
		object.TagSelectable, object.TagSceneBound)
	return a
}

// SetTarget sets the walk target. Implements order.Mover.
func (a *Astronaut) SetTarget(p vector.Vector) { a.Target = p }

// QueueOrder queues o to run once the astronaut stops. Implements order.Mover.
func (a *Astronaut) QueueOrder(o order.Order) { a.queue.Push(o) }

// QueuedOrders returns the number of orders waiting for the astronaut to arrive.
func (a *Astronaut) QueuedOrders() int { return a.queue.Len() }

// CancelOrders drops every queued order and the boarding intent.
func (a *Astronaut) CancelOrders() {
	a.queue.Clear()
	a.enterShip = false
}

// Moving reports whether the astronaut is still walking.
func (a *Astronaut) Moving() bool {
	return a.Position.DistanceSquared(a.Target) > 1
}

// StressTimer returns the seconds left until the astronaut calms down after an attack.
func (a *Astronaut) StressTimer() float64 { return a.stress }

// Incapacitated reports whether the astronaut has been worn down.
func (a *Astronaut) Incapacitated() bool { return a.incapacitated }

// Grabbed returns the flare the astronaut holds, or nil.
func (a *Astronaut) Grabbed() *Flare { return a.grabbed }

// Operating returns the drill the astronaut operates, or nil.
func (a *Astronaut) Operating() *Drill { return a.operating }

// EnteringShip reports whether the astronaut boards once it reaches the ship.
func (a *Astronaut) EnteringShip() bool { return a.enterShip }

// Grab takes hold of fl.
func (a *Astronaut) Grab(fl *Flare) {
	if a.grabbed != nil && a.grabbed != fl {
		a.grabbed.GrabbedBy = nil
	}
	a.grabbed = fl
	fl.GrabbedBy = a
}

// Release lets go of the held flare and returns it.
func (a *Astronaut) Release() *Flare {
	fl := a.grabbed
	a.grabbed = nil
	if fl != nil {
		fl.GrabbedBy = nil
	}
	return fl
}

// ItemCount returns how many of item the astronaut carries.
func (a *Astronaut) ItemCount(item ItemType) int { return a.Inventory.Count(item) }

// Pickup stores s and returns the count that did not fit.
func (a *Astronaut) Pickup(s Stack) int { return a.Inventory.Pickup(s) }

// SpendItem removes one item.
func (a *Astronaut) SpendItem(item ItemType) bool { return a.Inventory.Spend(item) }

// Update implements object.Updatable.
func (a *Astronaut) Update() {
	w := a.world
	dt := w.time.Delta()

	a.stress = max(a.stress-dt, 0)
	if !a.incapacitated {
		a.walk(dt)
	}
	a.attractor.Position = a.Position

	if !a.underAttack && a.Resist < config.AstronautResist && !a.incapacitated {
		a.Resist = approach(a.Resist, config.AstronautResist, config.AstronautRecover*dt)
	}
	a.underAttack = false
	if a.Resist <= 0 && !a.incapacitated {
		a.incapacitate()
	}

	if a.grabbed != nil && !a.grabbed.Tossing() {
		a.grabbed.Position = a.Position.Plus(vector.FromAngle(a.Rotation).Scaled(config.FlareGrabbedOffset))
	}

	if a.incapacitated {
		return
	}
	if a.enterShip && a.tryBoard() {
		return
	}
	a.queue.RunNext(a.Moving())
}

func (a *Astronaut) walk(dt float64) {
	step := config.AstronautSpeed * dt
	dsq := a.Position.DistanceSquared(a.Target)
	if dsq <= 1 {
		return
	}
	if dsq < step*step {
		a.Position = a.Target
		return
	}
	diff := a.Target.Diff(a.Position)
	a.Position.Add(diff.Normalized(step))
	a.Rotation = diff.Angle()
}

func (a *Astronaut) tryBoard() bool {
	ship := a.world.ship
	if ship == nil || ship.Destroyed() {
		a.enterShip = false
		return false
	}
	if a.Position.Distance(ship.Position) > config.ShipBoardRange {
		return false
	}
	ship.Board(a)
	return true
}

func (a *Astronaut) incapacitate() {
	a.incapacitated = true
	a.attractor.Enabled = false
	a.CancelOrders()
	a.Target = a.Position
	if a.operating != nil {
		a.operating.Detach()
	}
	a.Release()
	a.world.logf(logging.KindDanger, "astronaut", "Astronaut incapacitated")
	a.world.RefreshUI()
}

// issue makes o the astronaut's planning order.
func (a *Astronaut) issue(o order.Order) {
	a.current = o
	a.world.orders.NewOrder(o)
}

// Select marks the astronaut and starts a move order.
func (a *Astronaut) Select() {
	a.Selection.Select()
	if a.incapacitated {
		return
	}
	a.issue(NewAstronautMove(a.world, a))
}

// Unselect clears the mark and drops the order the astronaut is planning.
// Queued orders keep running.
func (a *Astronaut) Unselect() {
	a.Selection.Unselect()
	if a.current != nil && a.current.State() == order.Planning {
		a.current.Destroy()
	}
	a.current = nil
}

// Size returns the pick radius.
func (a *Astronaut) Size() float64 { return config.AstronautSize }

func (a *Astronaut) planning(match func(order.Order) bool) func() bool {
	return func() bool {
		cur := a.world.orders.Current()
		return cur != nil && cur == a.current && match(cur)
	}
}

// UIData describes the astronaut and lists its orders.
func (a *Astronaut) UIData() UIData {
	w := a.world
	state := "idle"
	switch {
	case a.incapacitated:
		state = "incapacitated"
	case a.operating != nil:
		state = "operating drill"
	case a.Moving():
		state = "moving"
	}
	d := UIData{
		Name: "Astronaut",
		Stats: []Stat{
			{Name: "Resist", Value: fmt.Sprintf("%.0f", a.Resist)},
			{Name: "State", Value: state},
		},
	}
	if a.incapacitated {
		return d
	}

	none := func(item ItemType) func() bool {
		return func() bool { return a.ItemCount(item) == 0 }
	}
	d.Actions = []Action{
		{
			Name:   "Move",
			Do:     func() { a.issue(NewAstronautMove(w, a)) },
			Active: a.planning(func(o order.Order) bool { _, ok := o.(*AstronautMove); return ok }),
		},
	}
	for _, kind := range []FlareKind{RepellFlare, KillFlare, AttractFlare} {
		d.Actions = append(d.Actions, Action{
			Name:     "Throw " + kind.String(),
			Do:       func() { a.issue(NewAstronautThrowFlare(w, a, kind)) },
			Disabled: none(kind.Item()),
			Active: a.planning(func(o order.Order) bool {
				t, ok := o.(*AstronautThrowFlare)
				return ok && t.Kind == kind
			}),
		})
	}
	d.Actions = append(d.Actions,
		Action{
			Name:     "Grab flare",
			Do:       func() { a.issue(NewAstronautGrabFlare(w, a)) },
			Disabled: func() bool { return a.grabbed != nil },
			Active:   a.planning(func(o order.Order) bool { _, ok := o.(*AstronautGrabFlare); return ok }),
		},
		Action{
			Name:     "Toss flare",
			Do:       func() { a.issue(NewAstronautTossGrabbedFlare(w, a)) },
			Disabled: func() bool { return a.grabbed == nil },
			Active:   a.planning(func(o order.Order) bool { _, ok := o.(*AstronautTossGrabbedFlare); return ok }),
		},
		Action{
			Name:   "Collect",
			Do:     func() { a.issue(NewAstronautCollectItem(w, a)) },
			Active: a.planning(func(o order.Order) bool { _, ok := o.(*AstronautCollectItem); return ok }),
		},
		Action{
			Name:     "Build turret",
			Do:       func() { a.issue(NewAstronautPlaceInstallation(w, a, TurretInstallation)) },
			Disabled: none(ConstructionParts),
			Active: a.planning(func(o order.Order) bool {
				p, ok := o.(*AstronautPlaceInstallation)
				return ok && p.Kind == TurretInstallation
			}),
		},
		Action{
			Name:     "Build spotlight",
			Do:       func() { a.issue(NewAstronautPlaceInstallation(w, a, SpotlightInstallation)) },
			Disabled: none(ConstructionParts),
			Active: a.planning(func(o order.Order) bool {
				p, ok := o.(*AstronautPlaceInstallation)
				return ok && p.Kind == SpotlightInstallation
			}),
		},
		Action{
			Name:     "Place drill",
			Do:       func() { a.issue(NewAstronautPlaceDrill(w, a)) },
			Disabled: none(DrillParts),
			Active:   a.planning(func(o order.Order) bool { _, ok := o.(*AstronautPlaceDrill); return ok }),
		},
	)

	for _, slot := range a.Inventory.Slots() {
		item := ItemAction{Item: slot.Item, Count: slot.Count}
		if kind, ok := flareKindOf(slot.Item); ok {
			item.Do = func() { a.issue(NewAstronautThrowFlare(w, a, kind)) }
		} else if slot.Item == DrillParts {
			item.Do = func() { a.issue(NewAstronautPlaceDrill(w, a)) }
		}
		d.Items = append(d.Items, item)
	}
	return d
}

// Draw implements object.Drawable.
func (a *Astronaut) Draw(f *draw.Frame) {
	ink := a.Ink(draw.InkAstronaut)
	if a.incapacitated {
		ink = draw.InkDanger
	}
	f.Circle(a.Position, config.AstronautSize/2, ink)
	f.Line(a.Position, a.Position.Plus(vector.FromAngle(a.Rotation).Scaled(config.AstronautSize)), ink)
	if a.stress > 0 {
		f.Label(a.Position.Plus(vector.New(0, config.AstronautSize)), "!", draw.InkDanger)
	}
}

// Destroy removes the astronaut and releases what it holds.
func (a *Astronaut) Destroy() {
	if a.Destroyed() {
		return
	}
	a.queue.Clear()
	if a.current != nil && a.current.State() == order.Planning {
		a.current.Destroy()
	}
	if a.operating != nil {
		a.operating.Detach()
	}
	a.Release()
	a.attractor.Destroy()
	a.Deregister()
}
