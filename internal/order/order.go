// Package order implements the lifecycle shared by all player-issued commands.
//
// An order is created when the player picks an action, then plans every
// frame by competing for the pointer. It ends either by executing (committing
// its world mutation) or by being cancelled; both paths end in Destroy, which
// unlinks it from the manager and releases whatever previews it created.
package order

import (
	"github.com/tomz197/spiritwatch/internal/vector"
)

// State is the lifecycle position of an order.
type State int

// Lifecycle states.
const (
	Planning State = iota
	// Queued orders wait in an owner's queue for the owner to stop being busy.
	Queued
	Executed
	Cancelled
	Destroyed
)

func (s State) String() string {
	switch s {
	case Planning:
		return "planning"
	case Queued:
		return "queued"
	case Executed:
		return "executed"
	case Cancelled:
		return "cancelled"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}

// Order is a multi-frame player command.
type Order interface {
	// Plan contests the pointer for this frame; only the current order plans.
	Plan()
	// Show updates previews; every tracked order shows.
	Show()
	// Execute commits the world mutation.
	Execute()
	Cancel()
	Destroy()
	State() State
}

// Mover is an order owner that walks to a point before executing queued orders.
type Mover interface {
	Pos() vector.Vector
	SetTarget(p vector.Vector)
	QueueOrder(o Order)
}

// Base implements the shared parts of Order. Concrete orders embed it and
// call Init from their constructor.
type Base struct {
	manager *Manager
	self    Order

	storedTarget *vector.Vector
	state        State
	releases     []func()
}

// Init links the order to its manager. self must be the outer order.
func (b *Base) Init(m *Manager, self Order) {
	b.manager = m
	b.self = self
	b.state = Planning
}

// Manager returns the manager the order belongs to.
func (b *Base) Manager() *Manager { return b.manager }

// State returns the lifecycle state.
func (b *Base) State() State { return b.state }

// Target returns the stored target, or the live world mouse when none is stored.
func (b *Base) Target() vector.Vector {
	if b.storedTarget != nil {
		return *b.storedTarget
	}
	if b.manager == nil {
		return vector.Vector{}
	}
	return b.manager.host.WorldMouse()
}

// StoreTarget freezes the target.
func (b *Base) StoreTarget(p vector.Vector) {
	b.storedTarget = &p
}

// ClearTarget returns the target to the live mouse.
func (b *Base) ClearTarget() {
	b.storedTarget = nil
}

// HasStoredTarget reports whether the target is frozen.
func (b *Base) HasStoredTarget() bool { return b.storedTarget != nil }

// OnRelease registers a cleanup that runs once on Destroy (preview removal).
func (b *Base) OnRelease(fn func()) {
	b.releases = append(b.releases, fn)
}

// Plan does nothing by default.
func (b *Base) Plan() {}

// Show does nothing by default.
func (b *Base) Show() {}

// Execute does nothing by default.
func (b *Base) Execute() {}

// Cancel destroys the order without executing it.
func (b *Base) Cancel() {
	if b.state == Destroyed {
		return
	}
	b.state = Cancelled
	b.self.Destroy()
}

// Complete marks the order executed and destroys it. Concrete Execute methods
// call it after committing their mutation.
func (b *Base) Complete() {
	if b.state == Destroyed {
		return
	}
	b.state = Executed
	b.self.Destroy()
}

// Destroy unlinks the order and releases its previews. Safe to call twice.
func (b *Base) Destroy() {
	if b.state == Destroyed {
		return
	}
	b.state = Destroyed
	if b.manager != nil {
		b.manager.release(b.self)
	}
	for _, fn := range b.releases {
		fn()
	}
	b.releases = nil
}

// ExecuteAfterMove sends mover to the point rng units short of the target on
// the line from the mover, freezes the target and queues the order so it
// executes once the mover arrives. The order stops being current but stays
// tracked, so its preview keeps showing.
func (b *Base) ExecuteAfterMove(m Mover, rng float64) {
	target := b.Target()
	diff := m.Pos().Diff(target)
	m.SetTarget(target.Plus(diff.Normalized(rng)))
	b.StoreTarget(target)
	b.state = Queued
	m.QueueOrder(b.self)
	if b.manager != nil {
		b.manager.ClearCurrent(b.self)
	}
}
