package system

import (
	"glyphcrawl/internal/component"
	"glyphcrawl/internal/ecs"
)

func inventoryOf(e *ecs.Entity) *component.Inventory {
	return ecs.Get[*component.Inventory](e, component.CInventory)
}

// GetItems returns e's inventory slots, nil entries included.
func GetItems(e *ecs.Entity) []*ecs.Entity {
	inv := inventoryOf(e)
	if inv == nil {
		return nil
	}
	return inv.Items
}

// GetItem returns the item in slot i, or nil.
func GetItem(e *ecs.Entity, i int) *ecs.Entity {
	inv := inventoryOf(e)
	if inv == nil || i < 0 || i >= len(inv.Items) {
		return nil
	}
	return inv.Items[i]
}

// AddItem puts item in the first free slot. It reports false when e has no
// inventory or every slot is taken.
func AddItem(e, item *ecs.Entity) bool {
	inv := inventoryOf(e)
	if inv == nil {
		return false
	}
	for i := 0; i < inv.Size; i++ {
		if i >= len(inv.Items) {
			inv.Items = append(inv.Items, nil)
		}
		if inv.Items[i] == nil {
			inv.Items[i] = item
			return true
		}
	}
	return false
}

// RemoveItem empties slot i.
func RemoveItem(e *ecs.Entity, i int) {
	inv := inventoryOf(e)
	if inv == nil || i < 0 || i >= len(inv.Items) {
		return
	}
	inv.Items[i] = nil
}

// CanAddItem reports whether e has a free slot.
func CanAddItem(e *ecs.Entity) bool {
	inv := inventoryOf(e)
	if inv == nil {
		return false
	}
	for i := 0; i < inv.Size; i++ {
		if i >= len(inv.Items) || inv.Items[i] == nil {
			return true
		}
	}
	return false
}

// PickupItems moves items from the stack under e into its inventory.
// indices refer to the stack as returned by GetItemsAt and must be
// ascending. It stops at the first item that does not fit and reports
// whether every requested item was taken.
func PickupItems(w *ecs.World, e *ecs.Entity, indices []int) bool {
	m := MapOf(w)
	pos := ecs.Get[*component.Position](e, component.CPosition)
	if m == nil || pos == nil || inventoryOf(e) == nil {
		return false
	}
	stack := m.GetItemsAt(pos.X, pos.Y, pos.Z)
	added := 0
	for _, idx := range indices {
		j := idx - added
		if j < 0 || j >= len(stack) {
			break
		}
		if !AddItem(e, stack[j]) {
			break
		}
		stack = append(stack[:j], stack[j+1:]...)
		added++
	}
	m.SetItemsAt(pos.X, pos.Y, pos.Z, stack)
	return added == len(indices)
}

// DropItem puts the item in slot i on the cell under e. Without a map or a
// position the item stays in the inventory.
func DropItem(w *ecs.World, e *ecs.Entity, i int) bool {
	item := GetItem(e, i)
	if item == nil {
		return false
	}
	m := MapOf(w)
	pos := ecs.Get[*component.Position](e, component.CPosition)
	if m == nil || pos == nil {
		return false
	}
	m.AddItem(pos.X, pos.Y, pos.Z, item)
	RemoveItem(e, i)
	return true
}
