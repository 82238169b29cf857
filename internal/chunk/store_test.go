package chunk

import (
	"sync"
	"testing"
)

func TestGetBlockGeneratesOnMiss(t *testing.T) {
	s := NewStore(1)
	// Bedrock is always placed at y=0 by the generator.
	if got := s.GetBlock(BlockPos{3, 0, 3}); got == 0 {
		t.Fatalf("expected generated bedrock at y=0, got air")
	}
}

func TestGetChunkIsCachedNotRegenerated(t *testing.T) {
	s := NewStore(1)
	a := s.Chunk(ChunkPos{5, 5})
	a.SetBlock(0, 10, 0, 12345)
	b := s.Chunk(ChunkPos{5, 5})
	if b.BlockAt(0, 10, 0) != 12345 {
		t.Fatalf("second access regenerated the chunk instead of reusing it")
	}
}

func TestSetBlockReturnsPrevious(t *testing.T) {
	s := NewStore(1)
	pos := BlockPos{0, 50, 0}
	s.SetBlock(pos, 10)
	prev := s.SetBlock(pos, 20)
	if prev != 10 {
		t.Fatalf("expected previous id 10, got %d", prev)
	}
}

func TestFillGroupsChangesByChunk(t *testing.T) {
	s := NewStore(1)
	// Spans chunk (0,0) and chunk (1,0).
	changed := s.Fill(BlockPos{14, 60, 0}, BlockPos{18, 60, 0}, 999)

	if len(changed) != 2 {
		t.Fatalf("expected 2 chunks touched, got %d", len(changed))
	}
	total := 0
	for _, positions := range changed {
		total += len(positions)
	}
	if total != 5 {
		t.Fatalf("expected 5 changed blocks total, got %d", total)
	}
	for _, positions := range changed {
		for _, p := range positions {
			if s.GetBlock(p) != 999 {
				t.Fatalf("position %+v was not actually set", p)
			}
		}
	}
}

func TestFillSkipsUnchangedBlocks(t *testing.T) {
	s := NewStore(1)
	pos := BlockPos{0, 0, 0}
	// Fill with the block that's already there (bedrock) should report no change.
	existing := s.GetBlock(pos)
	changed := s.Fill(pos, pos, existing)
	if len(changed) != 0 {
		t.Fatalf("expected no changes when filling with the existing id, got %+v", changed)
	}
}

func TestStoreConcurrentAccessDoesNotRace(t *testing.T) {
	s := NewStore(1)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cp := ChunkPos{int32(i % 4), int32(i % 3)}
			s.Chunk(cp)
			s.SetBlock(BlockPos{cp.X * 16, 70, cp.Z * 16}, int32(i+1))
		}(i)
	}
	wg.Wait()
}

func TestBlockEntityRoundTrip(t *testing.T) {
	s := NewStore(1)
	pos := BlockPos{1, 64, 1}
	if _, ok := s.BlockEntityAt(pos); ok {
		t.Fatalf("expected no block entity before one is set")
	}
	be := &BlockEntity{}
	be.Slots[0] = ItemStack{ItemID: 1, Count: 1}
	s.SetBlockEntity(pos, be)

	got, ok := s.BlockEntityAt(pos)
	if !ok || got.Slots[0].ItemID != 1 {
		t.Fatalf("block entity did not round trip: %+v", got)
	}
}
