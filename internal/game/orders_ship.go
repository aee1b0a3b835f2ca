package game

import (
	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/input"
	"github.com/tomz197/spiritwatch/internal/logging"
	"github.com/tomz197/spiritwatch/internal/order"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// shipOrder is embedded by the ship's steering orders. They stay planning
// until replaced and retarget the ship while the button is held.
type shipOrder struct {
	order.Base

	ship  *Ship
	world *World
}

func (o *shipOrder) init(w *World, s *Ship, self order.Order) {
	o.world = w
	o.ship = s
	o.Init(w.orders, self)
}

func (o *shipOrder) steer(apply func(target vector.Vector)) {
	w := o.world
	w.controls.RequestPointerDown(input.PrioritySelectOrderTarget, func() input.Result {
		if h := w.hovered; h != nil && h != Selectable(o.ship) {
			return input.Pass
		}
		apply(o.Target())
		return input.Stop
	}, o)
}

// ShipMoveTo flies the ship to the pointer, nose first.
type ShipMoveTo struct{ shipOrder }

// NewShipMoveTo starts a move order.
func NewShipMoveTo(w *World, s *Ship) *ShipMoveTo {
	o := &ShipMoveTo{}
	o.init(w, s, o)
	return o
}

// Plan implements order.Order.
func (o *ShipMoveTo) Plan() {
	o.steer(func(t vector.Vector) {
		o.ship.Target = t
		o.ship.TargetRotation = t.Diff(o.ship.Position).Angle()
	})
}

// ShipRotateTo turns the ship's nose toward the pointer.
type ShipRotateTo struct{ shipOrder }

// NewShipRotateTo starts a rotate order.
func NewShipRotateTo(w *World, s *Ship) *ShipRotateTo {
	o := &ShipRotateTo{}
	o.init(w, s, o)
	return o
}

// Plan implements order.Order.
func (o *ShipRotateTo) Plan() {
	o.steer(func(t vector.Vector) {
		o.ship.TargetRotation = t.Diff(o.ship.Position).Angle()
	})
}

// ShipTranslateTo moves the ship without turning it.
type ShipTranslateTo struct{ shipOrder }

// NewShipTranslateTo starts a translate order.
func NewShipTranslateTo(w *World, s *Ship) *ShipTranslateTo {
	o := &ShipTranslateTo{}
	o.init(w, s, o)
	return o
}

// Plan implements order.Order.
func (o *ShipTranslateTo) Plan() {
	o.steer(func(t vector.Vector) { o.ship.Target = t })
}

// ShipPickupItem hauls a stack or an installation into the cargo hold. The
// target must lie within reach of the hull.
type ShipPickupItem struct {
	shipOrder

	target Pickupable
	ring   *Preview
}

// NewShipPickupItem starts planning a pickup.
func NewShipPickupItem(w *World, s *Ship) *ShipPickupItem {
	o := &ShipPickupItem{}
	o.init(w, s, o)
	o.ring = NewPreview(w, PreviewRing, o.reach())
	o.OnRelease(o.ring.Destroy)
	return o
}

func (o *ShipPickupItem) reach() float64 {
	return config.ShipSize + config.ShipPickupMargin
}

// Plan implements order.Order.
func (o *ShipPickupItem) Plan() {
	w := o.world
	w.controls.RequestMouse(input.PrioritySelectOrderTarget, func() input.Result {
		target := pickupTarget(w.hovered)
		if target == nil {
			return input.Pass
		}
		o.target = target
		if w.controls.Clicked() {
			if o.ship.Position.Distance(target.Pos()) < o.reach() {
				o.Execute()
			} else {
				w.logf(logging.KindWarn, "ship", "Target not in range for pickup")
				o.Destroy()
			}
		}
		return input.Stop
	}, o)
}

// Show implements order.Order.
func (o *ShipPickupItem) Show() {
	o.ring.Position = o.ship.Position
	o.ring.Visible = true
}

// Execute loads the target.
func (o *ShipPickupItem) Execute() {
	if o.target != nil {
		left := o.ship.Pickup(o.target.CheckPickup())
		if left == 0 {
			o.target.Destroy()
		} else if d, ok := o.target.(*DroppedItem); ok {
			d.Count = left
		}
	}
	o.Complete()
}

// SpotlightTarget aims a spotlight at the pointer while the button is held.
type SpotlightTarget struct {
	order.Base

	spotlight *Spotlight
	world     *World
}

// NewSpotlightTarget starts aiming s.
func NewSpotlightTarget(w *World, s *Spotlight) *SpotlightTarget {
	o := &SpotlightTarget{spotlight: s, world: w}
	o.Init(w.orders, o)
	return o
}

// Plan implements order.Order.
func (o *SpotlightTarget) Plan() {
	o.world.controls.RequestPointerDown(input.PriorityOrder, func() input.Result {
		o.spotlight.Target = o.Target()
		return input.Stop
	}, o)
}
