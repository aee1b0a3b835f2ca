package input

import (
	"slices"
	"time"

	"github.com/tomz197/spiritwatch/internal/vector"
)

// Priority orders pointer requests. Higher values win.
type Priority int

// Request priorities.
const (
	PriorityOrder Priority = iota
	PrioritySelect
	PrioritySelectOrderTarget
	PriorityUI
)

// Result tells the resolver whether to continue with lower priority requests.
type Result int

const (
	// Stop ends resolution for this frame.
	Stop Result = iota
	// Pass hands the pointer to the next request.
	Pass
)

// Action is a pointer request callback.
type Action func() Result

type request struct {
	action   Action
	priority Priority
	ref      any
	seq      int
}

// Camera is what WorldMouse needs to convert screen to world coordinates.
type Camera interface {
	Pos() vector.Vector
	Center() vector.Vector
	Zoom() float64
}

// ControlManager holds the input state of one player for the current frame
// and resolves the competing pointer requests once per frame.
type ControlManager struct {
	// HoldTimeout releases keys that have not been seen for this long.
	// Zero means the backend reports key-up events itself.
	HoldTimeout time.Duration
	// ScreenMapper converts terminal cells to render coordinates.
	ScreenMapper func(col, row int) vector.Vector

	pressed  map[Key]bool
	held     map[Key]time.Time
	released map[Key]bool

	mouse        vector.Vector
	pointerDown  bool
	rightDown    bool
	clicked      bool
	rightClicked bool
	wheel        float64

	requests []request
	seq      int
}

// NewControlManager creates an empty control state.
func NewControlManager() *ControlManager {
	return &ControlManager{
		pressed:  make(map[Key]bool),
		held:     make(map[Key]time.Time),
		released: make(map[Key]bool),
	}
}

// Apply folds a raw event into the frame state.
func (c *ControlManager) Apply(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		if e.Down {
			if _, wasHeld := c.held[e.Code]; !wasHeld {
				c.pressed[e.Code] = true
			}
			c.held[e.Code] = e.At
			return
		}
		if _, wasHeld := c.held[e.Code]; wasHeld {
			delete(c.held, e.Code)
			c.released[e.Code] = true
		}

	case MouseEvent:
		if c.ScreenMapper != nil {
			c.mouse = c.ScreenMapper(e.Col, e.Row)
		} else {
			c.mouse = vector.New(float64(e.Col), float64(e.Row))
		}
		if e.Left && !c.pointerDown {
			c.clicked = true
		}
		if e.Right && !c.rightDown {
			c.rightClicked = true
		}
		c.pointerDown = e.Left
		c.rightDown = e.Right
		c.wheel += e.Wheel
	}
}

// ReleaseStale releases held keys not refreshed within HoldTimeout.
func (c *ControlManager) ReleaseStale(now time.Time) {
	if c.HoldTimeout <= 0 {
		return
	}
	for k, at := range c.held {
		if now.Sub(at) >= c.HoldTimeout {
			delete(c.held, k)
			c.released[k] = true
		}
	}
}

// Pressed reports whether k went down this frame.
func (c *ControlManager) Pressed(k Key) bool { return c.pressed[k] }

// Held reports whether k is currently down.
func (c *ControlManager) Held(k Key) bool {
	_, ok := c.held[k]
	return ok
}

// Released reports whether k went up this frame.
func (c *ControlManager) Released(k Key) bool { return c.released[k] }

// MouseScreen returns the pointer in render coordinates.
func (c *ControlManager) MouseScreen() vector.Vector { return c.mouse }

// SetMouse moves the pointer in render coordinates.
func (c *ControlManager) SetMouse(p vector.Vector) { c.mouse = p }

// WorldMouse converts the pointer to world coordinates through cam.
func (c *ControlManager) WorldMouse(cam Camera) vector.Vector {
	if cam == nil || cam.Zoom() == 0 {
		return c.mouse
	}
	return c.mouse.Diff(cam.Center()).Scaled(1 / cam.Zoom()).Plus(cam.Pos())
}

// PointerDown reports the left button level.
func (c *ControlManager) PointerDown() bool { return c.pointerDown }

// RightDown reports the right button level.
func (c *ControlManager) RightDown() bool { return c.rightDown }

// Clicked reports an unconsumed left click this frame.
func (c *ControlManager) Clicked() bool { return c.clicked }

// RightClicked reports a right click this frame.
func (c *ControlManager) RightClicked() bool { return c.rightClicked }

// Wheel returns the accumulated wheel delta of this frame.
func (c *ControlManager) Wheel() float64 { return c.wheel }

// ConsumeClick clears the click edge so no later consumer reacts to it.
func (c *ControlManager) ConsumeClick() {
	c.clicked = false
	c.pointerDown = false
}

// RequestMouse enqueues a pointer request for this frame.
// ref identifies the request for CancelRequest and must be comparable.
func (c *ControlManager) RequestMouse(p Priority, action Action, ref any) {
	c.seq++
	c.requests = append(c.requests, request{action: action, priority: p, ref: ref, seq: c.seq})
}

// RequestClick enqueues an action that only runs on a click and consumes it.
func (c *ControlManager) RequestClick(p Priority, action Action, ref any) {
	c.RequestMouse(p, func() Result {
		if !c.clicked {
			return Pass
		}
		res := action()
		c.ConsumeClick()
		return res
	}, ref)
}

// RequestPointerDown enqueues an action that runs while the left button is held.
func (c *ControlManager) RequestPointerDown(p Priority, action Action, ref any) {
	c.RequestMouse(p, func() Result {
		if !c.pointerDown {
			return Pass
		}
		return action()
	}, ref)
}

// CancelRequest drops every pending request enqueued with ref.
func (c *ControlManager) CancelRequest(ref any) {
	if ref == nil {
		return
	}
	c.requests = slices.DeleteFunc(c.requests, func(r request) bool { return r.ref == ref })
}

// Pending returns the number of queued requests.
func (c *ControlManager) Pending() int { return len(c.requests) }

// Resolve runs the queued requests from highest priority down until one stops,
// then clears the queue and the frame-scoped edges.
// Requests of equal priority run in the order they were enqueued. Requests
// enqueued by an action while resolving wait for the next frame.
func (c *ControlManager) Resolve() {
	queue := c.requests
	c.requests = nil
	slices.SortStableFunc(queue, func(a, b request) int {
		if a.priority != b.priority {
			return int(b.priority - a.priority)
		}
		return a.seq - b.seq
	})

	for _, r := range queue {
		if r.action() != Pass {
			break
		}
	}

	clear(c.pressed)
	clear(c.released)
	c.wheel = 0
	c.clicked = false
	c.rightClicked = false
}
