package player

import "github.com/vibeshit/mcserver/internal/proto"

// InventorySize is the 1.8-style player inventory window: 9 crafting-ish
// slots (0 unused + a 2x2 craft grid + armor in real vanilla, here folded
// flat since crafting is out of scope), 27 main storage, 9 hotbar,
// plus the cursor slot. Slot 36+selected is the main hand.
const InventorySize = 46

// HotbarStart is the first hotbar slot; the active hotbar slot plus this
// offset is the player's main-hand item.
const HotbarStart = 36

// Inventory is a player's 46-slot window. A zero Inventory is not valid —
// every slot must be initialized empty (ItemID -1), which NewInventory does.
type Inventory struct {
	Slots      [InventorySize]proto.Slot
	Cursor     proto.Slot
	ActiveSlot int16 // 0..8, offset into the hotbar
}

func NewInventory() *Inventory {
	inv := &Inventory{}
	for i := range inv.Slots {
		inv.Slots[i].ItemID = -1
	}
	inv.Cursor.ItemID = -1
	return inv
}

// MainHand returns the item currently in the active hotbar slot.
func (inv *Inventory) MainHand() proto.Slot {
	return inv.Slots[HotbarStart+int(inv.ActiveSlot)]
}

// WindowItems renders the inventory as a WindowItems packet body for the
// player's own inventory window (window id 0).
func (inv *Inventory) WindowItems() *proto.WindowItems {
	slots := make([]proto.Slot, InventorySize)
	copy(slots, inv.Slots[:])
	return &proto.WindowItems{WindowID: 0, Slots: slots}
}

// AddItem places item into the first empty main-storage or hotbar slot
// (9..44), reporting whether there was room. Stack-merging into a
// partially-filled slot of the same item is not implemented; an item
// always lands in a fresh empty slot.
func (inv *Inventory) AddItem(item proto.Slot) bool {
	for i := 9; i < InventorySize-1; i++ {
		if inv.Slots[i].ItemID == -1 {
			inv.Slots[i] = item
			return true
		}
	}
	return false
}
