package player

import (
	"io"
	"testing"

	"github.com/vibeshit/mcserver/internal/chunk"
	"github.com/vibeshit/mcserver/internal/convert"
	"github.com/vibeshit/mcserver/internal/proto"
)

// newTestSessionDrained is newTestSession but also drains whatever the
// session writes to its connection in the background, so Send calls made
// during the test don't block on net.Pipe's synchronous handoff.
func newTestSessionDrained(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	go io.Copy(io.Discard, s.conn)
	return s
}

func placeChestAt(t *testing.T, s *Session, pos chunk.BlockPos) {
	t.Helper()
	if got := s.world.Store.SetBlock(pos, convert.ChestBlockID); got == convert.ChestBlockID {
		t.Fatalf("block at %+v was already a chest before the test set it up", pos)
	}
}

func TestRightClickingChestOpensWindowAndCreatesBlockEntity(t *testing.T) {
	s := newTestSessionDrained(t)
	pos := chunk.BlockPos{X: 3, Y: 64, Z: 3}
	placeChestAt(t, s, pos)

	if _, ok := s.world.Store.BlockEntityAt(pos); ok {
		t.Fatalf("chest should have no BlockEntity before it is opened")
	}

	s.openChest(pos)

	if s.openWindowID != 1 {
		t.Fatalf("openWindowID = %d, want 1", s.openWindowID)
	}
	if s.openChestPos != pos {
		t.Fatalf("openChestPos = %+v, want %+v", s.openChestPos, pos)
	}
	be, ok := s.world.Store.BlockEntityAt(pos)
	if !ok {
		t.Fatalf("opening a chest should create its BlockEntity")
	}
	if be.Slots[0].ItemID != -1 {
		t.Fatalf("freshly opened chest should start with empty slots, got %+v", be.Slots[0])
	}
}

func TestClickWindowTakesItemIntoInventory(t *testing.T) {
	s := newTestSessionDrained(t)
	pos := chunk.BlockPos{X: 3, Y: 64, Z: 3}
	placeChestAt(t, s, pos)
	s.openChest(pos)

	be, _ := s.world.Store.BlockEntityAt(pos)
	be.Slots[5] = chunk.ItemStack{ItemID: 264, Count: 3, Damage: 0}
	s.world.Store.SetBlockEntity(pos, be)

	s.handleClickWindow(&proto.ClickWindow{WindowID: 1, Slot: 5})

	be, _ = s.world.Store.BlockEntityAt(pos)
	if be.Slots[5].ItemID != -1 {
		t.Fatalf("taken chest slot should be empty afterward, got %+v", be.Slots[5])
	}
	found := false
	for _, slot := range s.inv.Slots {
		if slot.ItemID == 264 && slot.Count == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("taken item should land in the player's inventory, slots: %+v", s.inv.Slots)
	}
}

func TestClickWindowIgnoresWrongWindowID(t *testing.T) {
	s := newTestSessionDrained(t)
	pos := chunk.BlockPos{X: 3, Y: 64, Z: 3}
	placeChestAt(t, s, pos)
	s.openChest(pos)

	be, _ := s.world.Store.BlockEntityAt(pos)
	be.Slots[0] = chunk.ItemStack{ItemID: 1, Count: 1, Damage: 0}
	s.world.Store.SetBlockEntity(pos, be)

	s.handleClickWindow(&proto.ClickWindow{WindowID: 2, Slot: 0})

	be, _ = s.world.Store.BlockEntityAt(pos)
	if be.Slots[0].ItemID != 1 {
		t.Fatalf("a click on the wrong window id must not mutate the chest")
	}
}

func TestBlockPlacementOnChestOpensInsteadOfPlacing(t *testing.T) {
	s := newTestSessionDrained(t)
	pos := chunk.BlockPos{X: 3, Y: 64, Z: 3}
	placeChestAt(t, s, pos)
	s.inv.Slots[36] = proto.Slot{ItemID: 1, Count: 1, Damage: 0} // main hand has a block item

	body := proto.EncodeBody(&proto.PlayerBlockPlacement{X: pos.X, Y: pos.Y, Z: pos.Z, Face: 1}, s.version)
	s.handleBlockPlacement(body)

	if s.openWindowID != 1 {
		t.Fatalf("clicking a chest should open it, openWindowID = %d", s.openWindowID)
	}
	if got := s.world.Store.GetBlock(chunk.BlockPos{X: pos.X, Y: pos.Y + 1, Z: pos.Z}); got != 0 {
		t.Fatalf("clicking a chest must not place a block above it, got %d", got)
	}
}
