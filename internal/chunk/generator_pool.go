package chunk

import (
	"sync"

	"github.com/vibeshit/mcserver/internal/convert"
	"github.com/vibeshit/mcserver/internal/proto"
	"github.com/vibeshit/mcserver/internal/worldgen"
)

// generatorPool is a mutex-guarded free list of worldgen.Generator values.
// Generators aren't safe for concurrent use, so concurrent chunk misses
// don't contend; Go has no thread-local storage, so this approximates it
// with a pool sized to the expected miss concurrency instead — a logical
// no-contention guarantee (each borrowed generator is used by one goroutine
// at a time), not a throughput optimization.
type generatorPool struct {
	mu   sync.Mutex
	seed int64
	free []*worldgen.Generator
}

func newGeneratorPool(seed int64) *generatorPool {
	return &generatorPool{seed: seed}
}

func (p *generatorPool) get() *worldgen.Generator {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		g := p.free[n-1]
		p.free = p.free[:n-1]
		return g
	}
	return worldgen.NewGenerator(p.seed)
}

func (p *generatorPool) put(g *worldgen.Generator) {
	p.mu.Lock()
	p.free = append(p.free, g)
	p.mu.Unlock()
}

// generate realizes a chunk column, lifting worldgen's legacy block ids
// into the in-memory canonical id space through internal/convert.
func (p *generatorPool) generate(pos ChunkPos) *Chunk {
	g := p.get()
	col := g.Generate(pos.X, pos.Z)
	p.put(g)

	c := newChunk(pos)
	c.Biomes = col.Biomes
	for i, legacySec := range col.Sections {
		nonAir := 0
		for _, id := range legacySec {
			if id != 0 {
				nonAir++
			}
		}
		if nonAir == 0 {
			continue
		}
		sec := newSection()
		sec.nonAir = nonAir
		for idx, legacyID := range legacySec {
			newID := convert.BlockToNew(proto.BlockVersion1_8, legacyID)
			sec.Indices[idx] = sec.paletteSlot(newID)
		}
		c.Sections[i] = sec
	}
	return c
}
