// Package light implements the light engine (C6): breadth-first propagation
// of block light and sky light across a chunk store. Both lights are 4-bit
// grids (0..15) held on internal/chunk.Chunk; this package only reads and
// writes them through internal/chunk.Store's exported accessors, so it
// never reaches into a Section directly.
package light

import "github.com/vibeshit/mcserver/internal/chunk"

type source struct {
	pos   chunk.BlockPos
	level byte
}

var neighbors = [6]chunk.BlockPos{
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 0, Z: -1},
}

func add(a, b chunk.BlockPos) chunk.BlockPos {
	return chunk.BlockPos{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// UpdateBlockLight reseeds block light outward from pos, using the emission
// of blockID, the block the caller has just set there. Levels are only ever
// raised: removing a light source or placing an opaque block does not lower
// light levels that are already stored.
func UpdateBlockLight(s *chunk.Store, pos chunk.BlockPos, blockID int32) {
	emitted := emission(blockID)
	if emitted > s.BlockLight(pos) {
		s.SetBlockLight(pos, emitted)
	}

	queue := []source{{pos, emitted}}
	for len(queue) > 0 {
		var next []source
		for _, cur := range queue {
			if cur.level == 0 {
				continue
			}
			for _, dir := range neighbors {
				np := add(cur.pos, dir)
				if np.Y < 0 || np.Y >= chunk.Height {
					continue
				}
				if !transparent(s.GetBlock(np)) {
					continue
				}
				newLevel := cur.level - 1
				if s.BlockLight(np) < newLevel {
					s.SetBlockLight(np, newLevel)
					next = append(next, source{np, newLevel})
				}
			}
		}
		queue = next
	}
}

// UpdateSkyLight reseeds sky light outward from pos, whose current stored
// level is taken as the propagation source (callers set the top-of-column
// seed to 15 before calling this for a newly exposed column).
func UpdateSkyLight(s *chunk.Store, pos chunk.BlockPos) {
	queue := []source{{pos, s.SkyLight(pos)}}
	for len(queue) > 0 {
		var next []source
		for _, cur := range queue {
			if cur.level == 0 {
				continue
			}
			for _, dir := range neighbors {
				np := add(cur.pos, dir)
				if np.Y < 0 || np.Y >= chunk.Height {
					continue
				}
				if !transparent(s.GetBlock(np)) {
					continue
				}

				straightDown := dir.X == 0 && dir.Z == 0 && dir.Y == -1
				if straightDown {
					if s.SkyLight(np) < cur.level {
						s.SetSkyLight(np, cur.level)
						next = append(next, source{np, cur.level})
					}
					continue
				}

				newLevel := cur.level - 1
				if s.SkyLight(np) < newLevel {
					s.SetSkyLight(np, newLevel)
					next = append(next, source{np, newLevel})
				}
			}
		}
		queue = next
	}
}

// SeedColumn sets the sky light of every air block from the top of the
// world down to the first opaque block to 15, then runs UpdateSkyLight from
// the lowest lit cell so it spreads sideways into caves and overhangs. This
// is the "top-of-column sky-light seed" update_all describes for a freshly
// generated or newly exposed column.
func SeedColumn(s *chunk.Store, x, z int32) {
	var lastLit chunk.BlockPos
	seeded := false
	for y := int32(chunk.Height - 1); y >= 0; y-- {
		pos := chunk.BlockPos{X: x, Y: y, Z: z}
		if !transparent(s.GetBlock(pos)) {
			break
		}
		s.SetSkyLight(pos, 15)
		lastLit = pos
		seeded = true
	}
	if seeded {
		UpdateSkyLight(s, lastLit)
	}
}
