package worldgen

// biome describes terrain generation parameters for one biome.
type biome struct {
	id              byte
	name            string
	surfaceBlock    int32 // legacy block state (id<<4|damage)
	fillerBlock     int32
	baseHeight      int
	heightVariation float64
	treeDensity     float64 // 0 = none, higher = denser
	boulderDensity  float64 // 0 = none, chance per column
}

var (
	biomeOcean = &biome{
		id: 0, name: "ocean",
		surfaceBlock: 12 << 4, fillerBlock: 12 << 4,
		baseHeight: 38, heightVariation: 8,
	}
	biomePlains = &biome{
		id: 1, name: "plains",
		surfaceBlock: 2 << 4, fillerBlock: 3 << 4,
		baseHeight: 66, heightVariation: 12,
		treeDensity: 0.006, boulderDensity: 0.03,
	}
	biomeDesert = &biome{
		id: 2, name: "desert",
		surfaceBlock: 12 << 4, fillerBlock: 24 << 4,
		baseHeight: 64, heightVariation: 10,
		boulderDensity: 0.02,
	}
	biomeExtremeHills = &biome{
		id: 3, name: "extreme_hills",
		surfaceBlock: 2 << 4, fillerBlock: 1 << 4,
		baseHeight: 72, heightVariation: 50,
		treeDensity: 0.015, boulderDensity: 0.08,
	}
	biomeForest = &biome{
		id: 4, name: "forest",
		surfaceBlock: 2 << 4, fillerBlock: 3 << 4,
		baseHeight: 68, heightVariation: 14,
		treeDensity: 0.05, boulderDensity: 0.04,
	}
	biomeJungle = &biome{
		id: 21, name: "jungle",
		surfaceBlock: 2 << 4, fillerBlock: 3 << 4,
		baseHeight: 70, heightVariation: 20,
		treeDensity: 0.12, boulderDensity: 0.02,
	}
	biomeDarkForest = &biome{
		id: 29, name: "dark_forest",
		surfaceBlock: 2 << 4, fillerBlock: 3 << 4,
		baseHeight: 68, heightVariation: 10,
		treeDensity: 0.25, boulderDensity: 0.02,
	}
	biomeSnowyTundra = &biome{
		id: 12, name: "snowy_tundra",
		surfaceBlock: 80 << 4, fillerBlock: 3 << 4,
		baseHeight: 66, heightVariation: 8,
		treeDensity: 0.004, boulderDensity: 0.02,
	}
)

// biomeAt selects a biome for a world block position from low-frequency
// temperature/rainfall noise, so biomes form large contiguous regions.
func biomeAt(tempNoise, rainNoise *perlin, worldX, worldZ int) *biome {
	const scale = 0.003
	bx := float64(worldX) * scale
	bz := float64(worldZ) * scale

	temp := tempNoise.octaveNoise2D(bx, bz, 4, 2.0, 0.5)
	rain := rainNoise.octaveNoise2D(bx+500, bz+500, 4, 2.0, 0.5)

	temp = (temp + 1) / 2
	rain = (rain + 1) / 2

	switch {
	case temp < 0.25:
		return biomeSnowyTundra
	case temp < 0.45:
		switch {
		case rain > 0.7:
			return biomeDarkForest
		case rain > 0.4:
			return biomeForest
		default:
			return biomePlains
		}
	case temp < 0.75:
		switch {
		case rain > 0.8:
			return biomeJungle
		case rain > 0.5:
			return biomeDarkForest
		case rain > 0.3:
			return biomeForest
		case rain < 0.2:
			return biomeExtremeHills
		default:
			return biomePlains
		}
	default:
		switch {
		case rain > 0.7:
			return biomeJungle
		case rain < 0.3:
			return biomeDesert
		default:
			return biomePlains
		}
	}
}
