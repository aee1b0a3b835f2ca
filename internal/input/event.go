// Package input collects raw keyboard and mouse state and arbitrates the
// pointer between the systems that want it each frame.
package input

import "time"

// Key identifies a key by a short name: printable keys use their lower-case
// character ("w", "1"), the rest use the names below.
type Key string

// Named keys.
const (
	KeyUp        Key = "ArrowUp"
	KeyDown      Key = "ArrowDown"
	KeyLeft      Key = "ArrowLeft"
	KeyRight     Key = "ArrowRight"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeySpace     Key = "Space"
	KeyBackspace Key = "Backspace"
	KeyTab       Key = "Tab"
	KeyCtrlC     Key = "Ctrl+C"
	KeyPlus      Key = "+"
	KeyMinus     Key = "-"
)

// Digit returns the key for digit d (0-9).
func Digit(d int) Key {
	return Key(rune('0' + d))
}

// Event is a raw input event produced by a terminal backend.
type Event interface {
	isEvent()
}

// KeyEvent reports a key transition. Terminals without key-up reporting only
// send Down events; the control manager releases such keys after a hold timeout.
type KeyEvent struct {
	Code Key
	Down bool
	At   time.Time
}

// MouseEvent reports the pointer cell and the button levels after the event.
// Col and Row are 1-based terminal coordinates.
type MouseEvent struct {
	Col, Row    int
	Left, Right bool
	// Wheel is positive when scrolling down (zoom out).
	Wheel float64
}

// ResizeEvent reports a new terminal size in cells.
type ResizeEvent struct {
	Width, Height int
}

func (KeyEvent) isEvent() {}
func (MouseEvent) isEvent() {}
func (ResizeEvent) isEvent() {}
