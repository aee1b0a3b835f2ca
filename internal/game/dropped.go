package game

import (
	"fmt"

	"github.com/tomz197/spiritwatch/internal/config"
	"github.com/tomz197/spiritwatch/internal/draw"
	"github.com/tomz197/spiritwatch/internal/object"
	"github.com/tomz197/spiritwatch/internal/vector"
)

// Pickupable entities can be collected into an inventory.
type Pickupable interface {
	object.Positioned
	CheckPickup() Stack
	Destroy()
}

// PickupProxy is implemented by selectables that are collected through
// another entity, e.g. a turret picked up as its installation.
type PickupProxy interface {
	PickupProxy() Pickupable
}

// pickupTarget resolves what collecting sel would pick up.
func pickupTarget(sel Selectable) Pickupable {
	if sel == nil {
		return nil
	}
	if p, ok := sel.(PickupProxy); ok {
		if proxy := p.PickupProxy(); proxy != nil {
			return proxy
		}
	}
	if p, ok := sel.(Pickupable); ok {
		if b, ok := sel.(interface{ HasTag(object.Tag) bool }); ok && b.HasTag(object.TagPickupable) {
			return p
		}
	}
	return nil
}

// DroppedItem is a stack floating in space.
type DroppedItem struct {
	object.Base
	Selection

	Item  ItemType
	Count int
}

// NewDroppedItem places a stack at pos.
func NewDroppedItem(w *World, s Stack, pos vector.Vector) *DroppedItem {
	d := &DroppedItem{Item: s.Item, Count: s.Count}
	d.Position = pos
	d.Register(w.reg, d,
		object.TagDroppedItem, object.TagDrawable, object.TagSelectable,
		object.TagPickupable, object.TagSceneBound)
	return d
}

// CheckPickup returns the stack.
func (d *DroppedItem) CheckPickup() Stack {
	return Stack{Item: d.Item, Count: d.Count}
}

// Size returns the pick radius.
func (d *DroppedItem) Size() float64 { return config.DroppedItemSize }

// UIData describes the stack.
func (d *DroppedItem) UIData() UIData {
	return UIData{
		Name:  d.Item.String(),
		Stats: []Stat{{Name: "count", Value: fmt.Sprint(d.Count)}},
	}
}

// Draw implements object.Drawable.
func (d *DroppedItem) Draw(f *draw.Frame) {
	f.Circle(d.Position, config.DroppedItemSize/2, d.Ink(draw.InkDefault))
}

// Destroy removes the stack.
func (d *DroppedItem) Destroy() {
	d.Deregister()
}
