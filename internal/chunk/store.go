package chunk

import "sync"

// lockedChunk pairs a chunk with its own mutex, so readers contend only on
// the chunks they actually touch once they're past the map's RWMutex.
type lockedChunk struct {
	mu    sync.Mutex
	chunk *Chunk
}

// Store holds every realized chunk of one world. Read-most access acquires
// the map lock shared, then the per-chunk lock; the miss path upgrades to
// exclusive, double-checks, and inserts a freshly generated chunk.
type Store struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*lockedChunk
	gens   *generatorPool
}

func NewStore(seed int64) *Store {
	return &Store{
		chunks: make(map[ChunkPos]*lockedChunk),
		gens:   newGeneratorPool(seed),
	}
}

// acquire returns the locked chunk at pos, generating it on first access.
// The caller must call release when done.
func (s *Store) acquire(pos ChunkPos) *lockedChunk {
	s.mu.RLock()
	lc, ok := s.chunks[pos]
	s.mu.RUnlock()
	if ok {
		lc.mu.Lock()
		return lc
	}

	s.mu.Lock()
	lc, ok = s.chunks[pos]
	if !ok {
		lc = &lockedChunk{chunk: s.gens.generate(pos)}
		s.chunks[pos] = lc
	}
	s.mu.Unlock()

	lc.mu.Lock()
	return lc
}

func (lc *lockedChunk) release() { lc.mu.Unlock() }

// GetBlock returns the block id at a world position, generating the
// containing chunk if it has not been realized yet.
func (s *Store) GetBlock(pos BlockPos) int32 {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	return lc.chunk.BlockAt(int(pos.X&0xF), int(pos.Y), int(pos.Z&0xF))
}

// SetBlock writes a block and returns the previous id. The caller is
// responsible for re-running light propagation from pos afterward
// (internal/light.Update); this does not invalidate light itself beyond
// the nibble grids simply going stale at pos.
func (s *Store) SetBlock(pos BlockPos, id int32) int32 {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	return lc.chunk.SetBlock(int(pos.X&0xF), int(pos.Y), int(pos.Z&0xF), id)
}

// Fill sets every block in [min,max] (inclusive) to id, locking each
// touched chunk once regardless of how many of its blocks are in range,
// and returns the changed positions grouped by chunk so the caller can fan
// out one MultiBlockChange per chunk.
func (s *Store) Fill(min, max BlockPos, id int32) map[ChunkPos][]BlockPos {
	if min.X > max.X {
		min.X, max.X = max.X, min.X
	}
	if min.Y > max.Y {
		min.Y, max.Y = max.Y, min.Y
	}
	if min.Z > max.Z {
		min.Z, max.Z = max.Z, min.Z
	}

	changed := make(map[ChunkPos][]BlockPos)
	minCX, maxCX := min.X>>4, max.X>>4
	minCZ, maxCZ := min.Z>>4, max.Z>>4

	for cx := minCX; cx <= maxCX; cx++ {
		for cz := minCZ; cz <= maxCZ; cz++ {
			cp := ChunkPos{cx, cz}
			lc := s.acquire(cp)

			loX, hiX := int32(0), int32(15)
			if cx == minCX {
				loX = min.X & 0xF
			}
			if cx == maxCX {
				hiX = max.X & 0xF
			}
			loZ, hiZ := int32(0), int32(15)
			if cz == minCZ {
				loZ = min.Z & 0xF
			}
			if cz == maxCZ {
				hiZ = max.Z & 0xF
			}

			var touched []BlockPos
			for x := loX; x <= hiX; x++ {
				for z := loZ; z <= hiZ; z++ {
					for y := min.Y; y <= max.Y; y++ {
						prev := lc.chunk.SetBlock(int(x), int(y), int(z), id)
						if prev != id {
							touched = append(touched, BlockPos{cx<<4 | x, y, cz<<4 | z})
						}
					}
				}
			}
			lc.release()
			if len(touched) > 0 {
				changed[cp] = touched
			}
		}
	}
	return changed
}

// Chunk returns the realized chunk at pos for read access (serialization,
// light propagation), generating it if needed. Callers must not retain a
// pointer across a concurrent SetBlock without re-acquiring, since the
// section pointers inside may be replaced.
func (s *Store) Chunk(pos ChunkPos) *Chunk {
	lc := s.acquire(pos)
	defer lc.release()
	return lc.chunk
}

// BlockLight returns the block light level at a world position.
func (s *Store) BlockLight(pos BlockPos) byte {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	return lc.chunk.BlockLightAt(int(pos.X&0xF), int(pos.Y), int(pos.Z&0xF))
}

// SetBlockLight sets the block light level at a world position.
func (s *Store) SetBlockLight(pos BlockPos, level byte) {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	lc.chunk.SetBlockLight(int(pos.X&0xF), int(pos.Y), int(pos.Z&0xF), level)
}

// SkyLight returns the sky light level at a world position.
func (s *Store) SkyLight(pos BlockPos) byte {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	return lc.chunk.SkyLightAt(int(pos.X&0xF), int(pos.Y), int(pos.Z&0xF))
}

// SetSkyLight sets the sky light level at a world position.
func (s *Store) SetSkyLight(pos BlockPos, level byte) {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	lc.chunk.SetSkyLight(int(pos.X&0xF), int(pos.Y), int(pos.Z&0xF), level)
}

// BlockEntityAt returns the block entity at pos, if any.
func (s *Store) BlockEntityAt(pos BlockPos) (*BlockEntity, bool) {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	be, ok := lc.chunk.BlockEntities[pos]
	return be, ok
}

// SetBlockEntity installs or replaces the block entity at pos.
func (s *Store) SetBlockEntity(pos BlockPos, be *BlockEntity) {
	cp := ChunkPos{pos.X >> 4, pos.Z >> 4}
	lc := s.acquire(cp)
	defer lc.release()
	lc.chunk.BlockEntities[pos] = be
}
