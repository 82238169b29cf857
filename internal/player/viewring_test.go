package player

import (
	"fmt"
	"testing"

	"github.com/vibeshit/mcserver/internal/chunk"
)

func bruteForceDiff(old, cur chunk.ChunkPos, radius int32) (load, unload map[chunk.ChunkPos]bool) {
	load, unload = map[chunk.ChunkPos]bool{}, map[chunk.ChunkPos]bool{}
	in := func(c, p chunk.ChunkPos) bool {
		return p.X >= c.X-radius && p.X <= c.X+radius && p.Z >= c.Z-radius && p.Z <= c.Z+radius
	}
	for x := min32(old.X, cur.X) - radius; x <= max32(old.X, cur.X)+radius; x++ {
		for z := min32(old.Z, cur.Z) - radius; z <= max32(old.Z, cur.Z)+radius; z++ {
			p := chunk.ChunkPos{X: x, Z: z}
			wasIn, nowIn := in(old, p), in(cur, p)
			if nowIn && !wasIn {
				load[p] = true
			}
			if wasIn && !nowIn {
				unload[p] = true
			}
		}
	}
	return load, unload
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func toSet(ps []chunk.ChunkPos) map[chunk.ChunkPos]bool {
	m := make(map[chunk.ChunkPos]bool, len(ps))
	for _, p := range ps {
		m[p] = true
	}
	return m
}

func assertSameSet(t *testing.T, got []chunk.ChunkPos, want map[chunk.ChunkPos]bool, label string) {
	t.Helper()
	gotSet := toSet(got)
	if len(gotSet) != len(got) {
		t.Fatalf("%s: duplicate entries in %v", label, got)
	}
	if len(gotSet) != len(want) {
		t.Fatalf("%s: got %d entries, want %d (got=%v want=%v)", label, len(gotSet), len(want), gotSet, want)
	}
	for p := range want {
		if !gotSet[p] {
			t.Fatalf("%s: missing %+v", label, p)
		}
	}
}

func TestRingDiffMatchesBruteForce(t *testing.T) {
	cases := []struct {
		old, cur chunk.ChunkPos
	}{
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: 1, Z: 0}},
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: -1, Z: 0}},
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: 0, Z: 1}},
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: 0, Z: -1}},
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: 1, Z: 1}},
		{chunk.ChunkPos{X: 5, Z: -5}, chunk.ChunkPos{X: 3, Z: -7}},
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: 0, Z: 0}},
		{chunk.ChunkPos{X: 0, Z: 0}, chunk.ChunkPos{X: 2, Z: -1}},
	}
	const radius = int32(3)
	for _, c := range cases {
		gotLoad, gotUnload := ringDiff(c.old, c.cur, radius)
		wantLoad, wantUnload := bruteForceDiff(c.old, c.cur, radius)
		assertSameSet(t, gotLoad, wantLoad, "load "+posStr(c.old)+"->"+posStr(c.cur))
		assertSameSet(t, gotUnload, wantUnload, "unload "+posStr(c.old)+"->"+posStr(c.cur))
	}
}

func posStr(p chunk.ChunkPos) string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}
