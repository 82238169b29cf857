package player

import "github.com/vibeshit/mcserver/internal/chunk"

// ringDiff computes which chunks must be loaded and unloaded when a
// player's center chunk moves from old to cur, for a square view of the
// given radius. The loaded set is always the square
// {c.x-r..c.x+r} x {c.z-r..c.z+r}; corners are handled exactly once.
//
// Rather than diffing two full rectangles cell by cell, this decomposes the
// symmetric difference into at most one horizontal strip and one vertical
// strip, excluding the corner already covered by the first strip, avoiding
// double work for the common case of a single-axis step per tick.
func ringDiff(old, cur chunk.ChunkPos, radius int32) (load, unload []chunk.ChunkPos) {
	if old == cur {
		return nil, nil
	}

	oldMinX, oldMaxX := old.X-radius, old.X+radius
	oldMinZ, oldMaxZ := old.Z-radius, old.Z+radius
	curMinX, curMaxX := cur.X-radius, cur.X+radius
	curMinZ, curMaxZ := cur.Z-radius, cur.Z+radius

	dx, dz := cur.X-old.X, cur.Z-old.Z

	// Squares that share no chunk: load all of the new one, unload all of the old.
	if dx > 2*radius || -dx > 2*radius || dz > 2*radius || -dz > 2*radius {
		for x := curMinX; x <= curMaxX; x++ {
			for z := curMinZ; z <= curMaxZ; z++ {
				load = append(load, chunk.ChunkPos{X: x, Z: z})
			}
		}
		for x := oldMinX; x <= oldMaxX; x++ {
			for z := oldMinZ; z <= oldMaxZ; z++ {
				unload = append(unload, chunk.ChunkPos{X: x, Z: z})
			}
		}
		return load, unload
	}

	// Horizontal strip: the x-columns newly in range (or newly out of
	// range), each across the full z-range of the rectangle it belongs to.
	if dx != 0 {
		var xs []int32
		if dx > 0 {
			for x := oldMaxX + 1; x <= curMaxX; x++ {
				xs = append(xs, x)
			}
		} else {
			for x := curMinX; x <= oldMinX-1; x++ {
				xs = append(xs, x)
			}
		}
		for _, x := range xs {
			for z := curMinZ; z <= curMaxZ; z++ {
				load = append(load, chunk.ChunkPos{X: x, Z: z})
			}
		}
		var outXs []int32
		if dx > 0 {
			for x := oldMinX; x <= curMinX-1; x++ {
				outXs = append(outXs, x)
			}
		} else {
			for x := curMaxX + 1; x <= oldMaxX; x++ {
				outXs = append(outXs, x)
			}
		}
		for _, x := range outXs {
			for z := oldMinZ; z <= oldMaxZ; z++ {
				unload = append(unload, chunk.ChunkPos{X: x, Z: z})
			}
		}
	}

	// Vertical strip: the z-rows newly in/out of range, across only the
	// x-range already shared with the new rectangle (the corner the
	// horizontal strip already covered is excluded by using curMinX/curMaxX
	// clipped to the overlap).
	xLo, xHi := curMinX, curMaxX
	if xLo < oldMinX {
		xLo = oldMinX
	}
	if xHi > oldMaxX {
		xHi = oldMaxX
	}
	if dz != 0 && xLo <= xHi {
		var zs []int32
		if dz > 0 {
			for z := oldMaxZ + 1; z <= curMaxZ; z++ {
				zs = append(zs, z)
			}
		} else {
			for z := curMinZ; z <= oldMinZ-1; z++ {
				zs = append(zs, z)
			}
		}
		for _, z := range zs {
			for x := xLo; x <= xHi; x++ {
				load = append(load, chunk.ChunkPos{X: x, Z: z})
			}
		}
		var outZs []int32
		if dz > 0 {
			for z := oldMinZ; z <= curMinZ-1; z++ {
				outZs = append(outZs, z)
			}
		} else {
			for z := curMaxZ + 1; z <= oldMaxZ; z++ {
				outZs = append(outZs, z)
			}
		}
		for _, z := range outZs {
			for x := xLo; x <= xHi; x++ {
				unload = append(unload, chunk.ChunkPos{X: x, Z: z})
			}
		}
	}

	return load, unload
}
