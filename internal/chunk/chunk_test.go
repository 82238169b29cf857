package chunk

import "testing"

func TestSectionAbsentIffAllAir(t *testing.T) {
	c := newChunk(ChunkPos{0, 0})
	if c.Sections[0] != nil {
		t.Fatalf("fresh chunk should have no sections allocated")
	}
	if got := c.BlockAt(0, 0, 0); got != 0 {
		t.Fatalf("air chunk should read back air, got %d", got)
	}

	c.SetBlock(1, 5, 1, 42)
	if c.Sections[0] == nil {
		t.Fatalf("section should be allocated after a non-air write")
	}

	prev := c.SetBlock(1, 5, 1, 0)
	if prev != 42 {
		t.Fatalf("SetBlock should return the previous id, got %d", prev)
	}
	if c.Sections[0] != nil {
		t.Fatalf("section should be deallocated once it returns to all-air")
	}
}

func TestPaletteReusesSlotsForRepeatedIds(t *testing.T) {
	s := newSection()
	s.setBlock(0, 0, 0, 5)
	s.setBlock(1, 0, 0, 5)
	s.setBlock(2, 0, 0, 7)

	if len(s.Palette) != 3 { // air, 5, 7
		t.Fatalf("expected 3 palette entries, got %d: %v", len(s.Palette), s.Palette)
	}
	if s.blockAt(0, 0, 0) != 5 || s.blockAt(1, 0, 0) != 5 {
		t.Fatalf("repeated id should read back identically")
	}
}

func TestYOutOfBoundsReadsAirAndIgnoresWrites(t *testing.T) {
	c := newChunk(ChunkPos{0, 0})
	if got := c.BlockAt(0, -1, 0); got != 0 {
		t.Fatalf("negative y should read air, got %d", got)
	}
	if got := c.BlockAt(0, Height, 0); got != 0 {
		t.Fatalf("y >= Height should read air, got %d", got)
	}
	if prev := c.SetBlock(0, Height, 0, 99); prev != 0 {
		t.Fatalf("out of range SetBlock should no-op, got prev %d", prev)
	}
}

func TestPrimaryBitMask(t *testing.T) {
	c := newChunk(ChunkPos{0, 0})
	c.SetBlock(0, 0, 0, 1)
	c.SetBlock(0, 200, 0, 1)
	mask := c.PrimaryBitMask()
	if mask&1 == 0 {
		t.Fatalf("bit 0 should be set")
	}
	if mask&(1<<12) == 0 { // y=200 -> section 12
		t.Fatalf("bit 12 should be set")
	}
	if mask&(1<<1) != 0 {
		t.Fatalf("bit 1 should not be set")
	}
}

func TestLightNibblePacking(t *testing.T) {
	var grid [lightVolume]byte
	setLightNibble(&grid, 0, 15)
	setLightNibble(&grid, 1, 3)
	setLightNibble(&grid, 2, 9)

	if v := lightNibble(&grid, 0); v != 15 {
		t.Fatalf("idx 0 = %d, want 15", v)
	}
	if v := lightNibble(&grid, 1); v != 3 {
		t.Fatalf("idx 1 = %d, want 3", v)
	}
	if v := lightNibble(&grid, 2); v != 9 {
		t.Fatalf("idx 2 = %d, want 9", v)
	}
}
