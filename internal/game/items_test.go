package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryPickupFillsPartialSlotsFirst(t *testing.T) {
	inv := NewInventory(2)

	assert.Equal(t, 0, inv.Pickup(Stack{Item: RepellFlareItem, Count: 4}))
	assert.Equal(t, []Slot{
		{Item: RepellFlareItem, Count: 3},
		{Item: RepellFlareItem, Count: 1},
	}, inv.Slots())

	assert.Equal(t, 1, inv.Pickup(Stack{Item: RepellFlareItem, Count: 3}))
	assert.Equal(t, 6, inv.Count(RepellFlareItem))

	assert.Equal(t, 1, inv.Pickup(Stack{Item: DrillParts, Count: 1}), "no free slot")
}

func TestInventorySpendFreesEmptySlots(t *testing.T) {
	inv := NewInventory(3)
	inv.Pickup(Stack{Item: DrillParts, Count: 1})
	inv.Pickup(Stack{Item: KillFlareItem, Count: 2})

	assert.True(t, inv.Spend(DrillParts))
	assert.Equal(t, []Slot{{Item: KillFlareItem, Count: 2}}, inv.Slots())
	assert.False(t, inv.Spend(DrillParts))

	assert.True(t, inv.Spend(KillFlareItem))
	assert.Equal(t, 1, inv.Count(KillFlareItem))
	assert.False(t, inv.Empty())
}

func TestInventoryTakeAll(t *testing.T) {
	inv := NewInventory(3)
	inv.Pickup(Stack{Item: ConstructionParts, Count: 7})

	taken := inv.TakeAll()
	assert.Equal(t, []Slot{
		{Item: ConstructionParts, Count: 5},
		{Item: ConstructionParts, Count: 2},
	}, taken)
	assert.True(t, inv.Empty())
}

func TestItemDefinitions(t *testing.T) {
	cases := []struct {
		item  ItemType
		name  string
		stack int
	}{
		{RepellFlareItem, "Yellow Flare", 3},
		{KillFlareItem, "Red Flare", 3},
		{AttractFlareItem, "Purple Flare", 3},
		{ConstructionParts, "Construction Parts", 5},
		{DrillParts, "Drill Parts", 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.item.String())
		assert.Equal(t, tc.stack, tc.item.Definition().Stack)
	}
}
