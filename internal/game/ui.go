package game

import (
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
)

// Selectable entities can be hovered and selected with the pointer and
// describe themselves to the UI layer.
type Selectable interface {
	object.Positioned
	// Size is the pick radius around the position.
	Size() float64
	Hover()
	Unhover()
	Select()
	Unselect()
	UIData() UIData
}

// Selection keeps the hover and select flags of a selectable entity.
type Selection struct {
	hovered  bool
	selected bool
}

// Hover marks the entity as under the pointer.
func (s *Selection) Hover() { s.hovered = true }

// Unhover clears the hover mark.
func (s *Selection) Unhover() { s.hovered = false }

// Select marks the entity as selected.
func (s *Selection) Select() { s.selected = true }

// Unselect clears the selection mark.
func (s *Selection) Unselect() { s.selected = false }

// IsHovered reports the hover mark.
func (s *Selection) IsHovered() bool { return s.hovered }

// IsSelected reports the selection mark.
func (s *Selection) IsSelected() bool { return s.selected }

// Ink picks the outline ink for the current marks.
func (s *Selection) Ink(base draw.Ink) draw.Ink {
	switch {
	case s.selected:
		return draw.InkSelected
	case s.hovered:
		return draw.InkLight
	}
	return base
}

// Stat is one labelled value shown for the selection.
type Stat struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Action is a command the UI layer can invoke on the selection.
type Action struct {
	Name string
	Do   func()
	// Disabled, when set, reports whether the action is unavailable.
	Disabled func() bool
	// Active, when set, reports whether the action's order is planning.
	Active func() bool
}

// ItemAction is an inventory slot with an optional use callback.
type ItemAction struct {
	Item  ItemType
	Count int
	Do    func()
}

// UIData is the descriptor a selectable entity hands to the UI layer.
type UIData struct {
	Name    string
	Stats   []Stat
	Actions []Action
	Items   []ItemAction
}

func (a Action) disabled() bool { return a.Disabled != nil && a.Disabled() }

func (a Action) active() bool { return a.Active != nil && a.Active() }
