package light

import (
	"testing"

	"github.com/vibeshit/mcserver/internal/chunk"
)

func TestTorchEmitsAndDecaysByOne(t *testing.T) {
	s := chunk.NewStore(1)
	torch := int32(42)
	pos := chunk.BlockPos{X: 3, Y: 64, Z: 3}
	s.SetBlock(pos, torch)

	UpdateBlockLight(s, pos, torch)

	if got := s.BlockLight(pos); got != 14 {
		t.Fatalf("torch cell light = %d, want 14", got)
	}
	neighbor := chunk.BlockPos{X: 3, Y: 64, Z: 4}
	if got := s.BlockLight(neighbor); got != 13 {
		t.Fatalf("adjacent cell light = %d, want 13", got)
	}
}

func TestBlockLightStopsAtOpaqueBlock(t *testing.T) {
	s := chunk.NewStore(1)
	torch := int32(42)
	pos := chunk.BlockPos{X: 0, Y: 64, Z: 0}
	wall := chunk.BlockPos{X: 1, Y: 64, Z: 0}
	s.SetBlock(pos, torch)
	s.SetBlock(wall, 1) // stone, opaque

	UpdateBlockLight(s, pos, torch)

	if got := s.BlockLight(wall); got != 0 {
		t.Fatalf("opaque neighbor should stay dark, got %d", got)
	}
}

func TestAdjacentTransparentCellsDifferByAtMostOne(t *testing.T) {
	s := chunk.NewStore(1)
	torch := int32(42)
	pos := chunk.BlockPos{X: 5, Y: 70, Z: 5}
	s.SetBlock(pos, torch)
	UpdateBlockLight(s, pos, torch)

	for dx := int32(-3); dx <= 3; dx++ {
		for dz := int32(-3); dz <= 3; dz++ {
			a := chunk.BlockPos{X: 5 + dx, Y: 70, Z: 5 + dz}
			for _, d := range neighbors {
				if d.Y != 0 {
					continue
				}
				b := add(a, d)
				la, lb := int(s.BlockLight(a)), int(s.BlockLight(b))
				diff := la - lb
				if diff < 0 {
					diff = -diff
				}
				if diff > 1 {
					t.Fatalf("adjacent cells %+v=%d %+v=%d differ by more than 1", a, la, b, lb)
				}
			}
		}
	}
}

func TestSkyLightStraightDownPreservesLevel(t *testing.T) {
	s := chunk.NewStore(1)
	top := chunk.BlockPos{X: 0, Y: 100, Z: 0}
	below := chunk.BlockPos{X: 0, Y: 99, Z: 0}
	s.SetSkyLight(top, 15)

	UpdateSkyLight(s, top)

	if got := s.SkyLight(below); got != 15 {
		t.Fatalf("straight-down propagation should preserve level, got %d", got)
	}
}

func TestSkyLightSidewaysDecaysByOne(t *testing.T) {
	s := chunk.NewStore(1)
	top := chunk.BlockPos{X: 0, Y: 100, Z: 0}
	side := chunk.BlockPos{X: 1, Y: 100, Z: 0}
	s.SetSkyLight(top, 15)

	UpdateSkyLight(s, top)

	if got := s.SkyLight(side); got != 14 {
		t.Fatalf("sideways propagation should decay by 1, got %d", got)
	}
}

func TestHighestEmissionWinsInConnectedRegion(t *testing.T) {
	s := chunk.NewStore(1)
	dim := int32(42) // torch, emission 14
	bright := int32(47) // glowstone, emission 15
	dimPos := chunk.BlockPos{X: 0, Y: 64, Z: 0}
	brightPos := chunk.BlockPos{X: 0, Y: 64, Z: 1}

	s.SetBlock(dimPos, dim)
	s.SetBlock(brightPos, bright)
	UpdateBlockLight(s, dimPos, dim)
	UpdateBlockLight(s, brightPos, bright)

	if got := s.BlockLight(brightPos); got != 15 {
		t.Fatalf("glowstone cell should hold its own emission 15, got %d", got)
	}
}
