package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

type fakeHost struct {
	mouse     vector.Vector
	refreshes int
}

func (h *fakeHost) WorldMouse() vector.Vector { return h.mouse }
func (h *fakeHost) RefreshUI() { h.refreshes++ }

// preview stands in for a drawable preview entity owned by an order.
type preview struct {
	object.Base
}

type testOrder struct {
	Base
	plans, shows, executes int
	preview                *preview
}

func newTestOrder(m *Manager, reg *object.Registry) *testOrder {
	o := &testOrder{preview: &preview{}}
	o.Init(m, o)
	o.preview.Register(reg, o.preview, object.TagDrawable)
	o.OnRelease(o.preview.Deregister)
	return o
}

func (o *testOrder) Plan() { o.plans++ }
func (o *testOrder) Show() { o.shows++ }
func (o *testOrder) Execute() { o.executes++; o.Complete() }

type walker struct {
	pos, target vector.Vector
	queue       Queue
}

func (w *walker) Pos() vector.Vector { return w.pos }
func (w *walker) SetTarget(p vector.Vector) { w.target = p }
func (w *walker) QueueOrder(o Order) { w.queue.Push(o) }

// step walks toward the target and runs queued orders once idle.
func (w *walker) step(speed float64) {
	if w.pos.Distance(w.target) > 1 {
		diff := w.target.Diff(w.pos)
		if diff.Length() <= speed {
			w.pos = w.target
		} else {
			w.pos.Add(diff.Normalized(speed))
		}
	}
	w.queue.RunNext(w.pos.Distance(w.target) > 1)
}

func setup() (*object.Registry, *fakeHost, *Manager) {
	reg := object.NewRegistry()
	host := &fakeHost{}
	return reg, host, NewManager(reg, host)
}

func TestManagerRegistersAsUpdatable(t *testing.T) {
	reg, _, m := setup()
	assert.True(t, reg.Has(object.TagUpdatable, m))
	m.Destroy()
	assert.False(t, reg.Has(object.TagUpdatable, m))
}

func TestNewOrderSupersedesCurrent(t *testing.T) {
	reg, host, m := setup()

	first := newTestOrder(m, reg)
	m.NewOrder(first)
	require.Equal(t, 1, reg.Count(object.TagDrawable))

	second := newTestOrder(m, reg)
	m.NewOrder(second)

	assert.Equal(t, Destroyed, first.State())
	assert.True(t, first.preview.Destroyed(), "previous preview released")
	assert.False(t, reg.Has(object.TagDrawable, first.preview))
	assert.True(t, reg.Has(object.TagDrawable, second.preview))
	assert.Same(t, second, m.Current())
	assert.Equal(t, []Order{second}, m.Tracked())
	assert.GreaterOrEqual(t, host.refreshes, 3)

	m.Update()
	assert.Equal(t, 0, first.plans)
	assert.Equal(t, 1, second.plans)
	assert.Equal(t, 1, second.shows)
}

func TestCancelAndComplete(t *testing.T) {
	reg, _, m := setup()

	o := newTestOrder(m, reg)
	m.NewOrder(o)
	m.Cancel()
	assert.Equal(t, Destroyed, o.State())
	assert.Nil(t, m.Current())
	assert.Empty(t, m.Tracked())
	assert.Equal(t, 0, o.executes)

	// no current order: cancel is a no-op
	m.Cancel()

	done := newTestOrder(m, reg)
	m.NewOrder(done)
	done.Execute()
	assert.Nil(t, m.Current())
	assert.Equal(t, 0, reg.Count(object.TagDrawable))

	done.Destroy()
	done.Cancel()
	assert.Equal(t, Destroyed, done.State())
}

func TestTargetFallsBackToMouse(t *testing.T) {
	_, host, m := setup()
	o := &testOrder{}
	o.Init(m, o)

	host.mouse = vector.New(5, 6)
	assert.Equal(t, vector.New(5, 6), o.Target())

	o.StoreTarget(vector.New(1, 1))
	host.mouse = vector.New(9, 9)
	assert.Equal(t, vector.New(1, 1), o.Target())
	assert.True(t, o.HasStoredTarget())

	o.ClearTarget()
	assert.Equal(t, vector.New(9, 9), o.Target())
}

func TestExecuteAfterMove(t *testing.T) {
	reg, host, m := setup()
	w := &walker{pos: vector.New(0, 0)}
	host.mouse = vector.New(300, 0)

	o := newTestOrder(m, reg)
	m.NewOrder(o)
	o.ExecuteAfterMove(w, 200)

	assert.InDelta(t, 200, w.target.Distance(vector.New(300, 0)), 1e-9)
	assert.InDelta(t, 100, w.target.X, 1e-9)
	assert.Equal(t, Queued, o.State())
	assert.Nil(t, m.Current(), "no longer planning")
	assert.Contains(t, m.Tracked(), Order(o), "preview still shown")
	assert.Equal(t, 1, w.queue.Len())

	// the mouse moving away does not move the frozen target
	host.mouse = vector.New(-500, 0)
	assert.Equal(t, vector.New(300, 0), o.Target())

	for range 20 {
		w.step(12)
		m.Update()
	}
	assert.Equal(t, 1, o.executes)
	assert.Equal(t, Destroyed, o.State())
	assert.Equal(t, 0, w.queue.Len())
	assert.Empty(t, m.Tracked())
}

func TestQueueWaitsWhileBusy(t *testing.T) {
	reg, _, m := setup()
	var q Queue
	a, b := newTestOrder(m, reg), newTestOrder(m, reg)
	q.Push(a)
	q.Push(b)

	assert.False(t, q.RunNext(true))
	assert.True(t, q.RunNext(false))
	assert.Equal(t, 1, a.executes)
	assert.Equal(t, 0, b.executes)

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, Destroyed, b.State())
	assert.False(t, q.RunNext(false))
}
