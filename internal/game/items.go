package game

import "slices"

// ItemType identifies an inventory item.
type ItemType int

// Items.
const (
	RepellFlareItem ItemType = iota
	KillFlareItem
	AttractFlareItem
	ConstructionParts
	DrillParts
)

// ItemDefinition describes an item type.
type ItemDefinition struct {
	Name  string
	Stack int
}

var itemDefinitions = map[ItemType]ItemDefinition{
	RepellFlareItem:   {Name: "Yellow Flare", Stack: 3},
	KillFlareItem:     {Name: "Red Flare", Stack: 3},
	AttractFlareItem:  {Name: "Purple Flare", Stack: 3},
	ConstructionParts: {Name: "Construction Parts", Stack: 5},
	DrillParts:        {Name: "Drill Parts", Stack: 2},
}

// Definition returns the definition of the item.
func (t ItemType) Definition() ItemDefinition {
	return itemDefinitions[t]
}

func (t ItemType) String() string {
	return t.Definition().Name
}

// Stack is a number of items of one type.
type Stack struct {
	Item  ItemType `json:"item"`
	Count int      `json:"count"`
}

// Slot is one inventory slot.
type Slot = Stack

// Inventory is a fixed number of slots, each holding up to the item's stack limit.
type Inventory struct {
	size  int
	slots []Slot
}

// NewInventory creates an empty inventory with size slots.
func NewInventory(size int) *Inventory {
	return &Inventory{size: size}
}

// Pickup stores as much of s as fits: partially filled slots of the same
// item first, then empty slots. It returns the count that did not fit.
func (inv *Inventory) Pickup(s Stack) int {
	left := s.Count
	limit := s.Item.Definition().Stack
	for i := range inv.slots {
		if left == 0 {
			break
		}
		slot := &inv.slots[i]
		if slot.Item != s.Item || slot.Count >= limit {
			continue
		}
		n := min(limit-slot.Count, left)
		slot.Count += n
		left -= n
	}
	for left > 0 && len(inv.slots) < inv.size {
		n := min(limit, left)
		inv.slots = append(inv.slots, Slot{Item: s.Item, Count: n})
		left -= n
	}
	return left
}

// Spend removes one item. Emptied slots are freed.
func (inv *Inventory) Spend(item ItemType) bool {
	i := slices.IndexFunc(inv.slots, func(s Slot) bool { return s.Item == item })
	if i < 0 {
		return false
	}
	inv.slots[i].Count--
	if inv.slots[i].Count <= 0 {
		inv.slots = slices.Delete(inv.slots, i, i+1)
	}
	return true
}

// Count returns the total number of item across all slots.
func (inv *Inventory) Count(item ItemType) int {
	n := 0
	for _, s := range inv.slots {
		if s.Item == item {
			n += s.Count
		}
	}
	return n
}

// Slots returns a copy of the occupied slots.
func (inv *Inventory) Slots() []Slot {
	return slices.Clone(inv.slots)
}

// Size returns the number of slots.
func (inv *Inventory) Size() int { return inv.size }

// Empty reports whether no slot is occupied.
func (inv *Inventory) Empty() bool { return len(inv.slots) == 0 }

// TakeAll empties the inventory and returns what it held.
func (inv *Inventory) TakeAll() []Slot {
	out := inv.slots
	inv.slots = nil
	return out
}
