package order

import (
	"slices"

	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Host is the world context the manager works in.
type Host interface {
	WorldMouse() vector.Vector
	// RefreshUI rebuilds the UI snapshot of the selected entity.
	RefreshUI()
}

// Manager owns the current order and every order that still shows a preview.
type Manager struct {
	object.Base

	host    Host
	current Order
	tracked []Order
}

// NewManager creates a manager and registers it as updatable.
func NewManager(reg *object.Registry, host Host) *Manager {
	m := &Manager{host: host}
	m.Register(reg, m, object.TagUpdatable)
	return m
}

// NewOrder replaces the current order. The previous current order is
// destroyed before the new one starts planning.
func (m *Manager) NewOrder(o Order) {
	if m.current != nil {
		m.current.Destroy()
	}
	m.current = o
	m.host.RefreshUI()
	if !slices.Contains(m.tracked, o) {
		m.tracked = append(m.tracked, o)
	}
}

// Update plans the current order and shows every tracked order.
func (m *Manager) Update() {
	if m.current != nil {
		m.current.Plan()
	}
	for _, o := range slices.Clone(m.tracked) {
		o.Show()
	}
}

// Cancel cancels the current order, if any.
func (m *Manager) Cancel() {
	if m.current != nil {
		m.current.Cancel()
	}
}

// Current returns the planning order or nil.
func (m *Manager) Current() Order { return m.current }

// Tracked returns a snapshot of all live orders.
func (m *Manager) Tracked() []Order { return slices.Clone(m.tracked) }

// ClearCurrent stops o from planning without destroying it.
func (m *Manager) ClearCurrent(o Order) {
	if m.current == o {
		m.current = nil
	}
}

// Reset destroys every tracked order (level unload).
func (m *Manager) Reset() {
	for _, o := range slices.Clone(m.tracked) {
		o.Destroy()
	}
	m.current = nil
	m.tracked = nil
}

// Destroy resets the manager and removes it from the registry.
func (m *Manager) Destroy() {
	m.Reset()
	m.Deregister()
}

func (m *Manager) release(o Order) {
	if m.current == o {
		m.current = nil
	}
	m.host.RefreshUI()
	m.tracked = slices.DeleteFunc(m.tracked, func(t Order) bool { return t == o })
}
