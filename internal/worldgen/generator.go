package worldgen

const (
	SectionHeight    = 16
	SectionsPerChunk = 16
	ChunkHeight      = SectionsPerChunk * SectionHeight
	sectionVolume    = SectionHeight * SectionHeight * SectionHeight
)

// WaterLevel is the sea level used by terrain and decoration passes.
const WaterLevel = 62

// Column is one generated chunk's blocks (legacy id<<4|damage numbering,
// section-major, then y,z,x minor — matching the 1.8 section layout) and
// biome ids, before internal/convert lifts it into the in-memory id space.
type Column struct {
	Sections [SectionsPerChunk][sectionVolume]int32
	Biomes   [256]byte
}

// Generator produces terrain from a seed using layered Perlin noise. It is
// not safe for concurrent use; internal/chunk pools one per worker via its
// generator pool since generators are not safe for concurrent use.
type Generator struct {
	seed         int64
	terrain      *perlin
	tempNoise    *perlin
	rainNoise    *perlin
	caveNoise    *perlin
	caveNoise2   *perlin
	treeNoise    *perlin
	boulderNoise *perlin
	lakeNoise    *perlin
	riverNoise   *perlin
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:         seed,
		terrain:      newPerlin(seed),
		tempNoise:    newPerlin(seed + 1),
		rainNoise:    newPerlin(seed + 2),
		caveNoise:    newPerlin(seed + 3),
		treeNoise:    newPerlin(seed + 4),
		caveNoise2:   newPerlin(seed + 5),
		boulderNoise: newPerlin(seed + 200),
		lakeNoise:    newPerlin(seed + 300),
		riverNoise:   newPerlin(seed + 400),
	}
}

func (g *Generator) surfaceHeight(x, z int) int {
	b := biomeAt(g.tempNoise, g.rainNoise, x, z)

	const noiseScale = 0.015
	h := g.terrain.octaveNoise2D(float64(x)*noiseScale, float64(z)*noiseScale, 3, 2.0, 0.5)
	height := float64(b.baseHeight) + h*b.heightVariation

	const riverScale = 0.003
	rv := g.riverNoise.noise2D(float64(x)*riverScale, float64(z)*riverScale)
	if rv < 0 {
		rv = -rv
	}
	if rv < 0.04 {
		factor := (0.04 - rv) / 0.04
		height -= factor * 15.0
	}

	const lakeScale = 0.01
	lv := g.lakeNoise.noise2D(float64(x)*lakeScale, float64(z)*lakeScale)
	if lv > 0.82 {
		factor := (lv - 0.82) / (1.0 - 0.82)
		height -= factor * 12.0
	}

	return int(height)
}

func (g *Generator) isCave(x, y, z int) bool {
	lowRes := g.caveNoise.noise3D(float64(x)*0.03, float64(y)*0.03, float64(z)*0.03)
	if lowRes > 0.5 {
		spaghetti := g.caveNoise2.noise3D(float64(x)*0.08, float64(y)*0.08, float64(z)*0.08)
		return spaghetti > 0.3
	}
	return false
}

func (g *Generator) shouldPlaceTree(x, z int, b *biome) bool {
	if b.treeDensity <= 0 {
		return false
	}
	const clusterScale = 0.02
	clusterVal := g.treeNoise.noise2D(float64(x)*clusterScale, float64(z)*clusterScale)
	clusterVal = (clusterVal + 1) / 2
	effectiveDensity := b.treeDensity * (clusterVal * 1.5)

	hash := uint32(x*73856093 ^ z*191152071 ^ int(g.seed))
	hash ^= hash >> 16
	hash *= 0x85ebca6b
	hash ^= hash >> 13
	hash *= 0xc2b2ae35
	hash ^= hash >> 16

	return float64(hash)/float64(0xFFFFFFFF) < effectiveDensity
}

// Generate realizes one 16x256x16 chunk column at (chunkX, chunkZ).
func (g *Generator) Generate(chunkX, chunkZ int32) *Column {
	col := &Column{}

	for lx := 0; lx < 16; lx++ {
		for lz := 0; lz < 16; lz++ {
			wx, wz := int(chunkX)*16+lx, int(chunkZ)*16+lz
			b := biomeAt(g.tempNoise, g.rainNoise, wx, wz)
			col.Biomes[lz*16+lx] = b.id

			surfH := g.surfaceHeight(wx, wz)

			for y := 0; y < ChunkHeight; y++ {
				sec, sy := y/SectionHeight, y%SectionHeight
				idx := (sy*16+lz)*16 + lx

				switch {
				case y == 0:
					col.Sections[sec][idx] = 7 << 4 // bedrock
				case y <= surfH:
					if g.isCave(wx, y, wz) && y < surfH-2 {
						if y <= WaterLevel {
							col.Sections[sec][idx] = 8 << 4
						}
						continue
					}
					if y < surfH {
						col.Sections[sec][idx] = int32(b.fillerBlock)
					} else if y < WaterLevel {
						col.Sections[sec][idx] = 12 << 4 // sand underwater
					} else {
						col.Sections[sec][idx] = int32(b.surfaceBlock)
					}
				case y <= WaterLevel:
					col.Sections[sec][idx] = 8 << 4 // water
				}
			}
		}
	}

	g.generateBoulders(chunkX, chunkZ, col)
	g.generateTrees(chunkX, chunkZ, col)
	return col
}

func (g *Generator) generateTrees(chunkX, chunkZ int32, col *Column) {
	for lx := 2; lx < 14; lx++ {
		for lz := 2; lz < 14; lz++ {
			wx, wz := int(chunkX)*16+lx, int(chunkZ)*16+lz
			b := biomeAt(g.tempNoise, g.rainNoise, wx, wz)
			if !g.shouldPlaceTree(wx, wz, b) {
				continue
			}
			surfaceY := g.surfaceHeight(wx, wz)
			if surfaceY > 240 || surfaceY >= ChunkHeight-8 || g.isCave(wx, surfaceY, wz) {
				continue
			}
			surfBlock := col.Sections[surfaceY/SectionHeight][(surfaceY%SectionHeight*16+lz)*16+lx] >> 4
			if surfBlock != 2 && surfBlock != 80 && surfBlock != 3 && surfBlock != 12 {
				continue
			}

			species := int32(0) // 0=oak,1=spruce,2=birch,3=jungle
			switch {
			case b == biomeJungle:
				species = 3
			case b == biomeExtremeHills, b == biomeSnowyTundra:
				species = 1
			case b == biomeForest && (wx*31+wz*17)%10 < 3:
				species = 2
			}
			g.buildTree(lx, surfaceY+1, lz, species, col)
		}
	}
}

// buildTree places a log column with a rounded canopy, the species only
// affecting the log/leaf metadata and canopy height.
func (g *Generator) buildTree(lx, y int, lz int, species int32, col *Column) {
	height := 4 + (lx*13+lz*7)%3
	if species == 3 {
		height = 8 + (lx*7+lz*13)%6
	}
	trunkTop := y + height - 1
	if trunkTop >= ChunkHeight {
		return
	}
	for ty := y; ty <= trunkTop; ty++ {
		sec, sy := ty/SectionHeight, ty%SectionHeight
		idx := (sy*16+lz)*16 + lx
		current := col.Sections[sec][idx] >> 4
		if current == 0 || current == 31 || current == 18 {
			col.Sections[sec][idx] = 17<<4 | species
		}
	}
	leafBase := int32(18<<4 | species)
	for dy := -1; dy <= 2; dy++ {
		ly := trunkTop + dy
		if ly < 0 || ly >= ChunkHeight {
			continue
		}
		sec, sy := ly/SectionHeight, ly%SectionHeight
		radius := 2
		if dy > 0 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if radius == 2 && (dx == -2 || dx == 2) && (dz == -2 || dz == 2) {
					continue
				}
				nlx, nlz := lx+dx, lz+dz
				if nlx < 0 || nlx >= 16 || nlz < 0 || nlz >= 16 {
					continue
				}
				idx := (sy*16+nlz)*16 + nlx
				if col.Sections[sec][idx] == 0 {
					col.Sections[sec][idx] = leafBase
				}
			}
		}
	}
}

// generateBoulders scatters rock clusters in biomes that define a boulder
// density, giving plains/hills terrain some relief beyond flat ground.
func (g *Generator) generateBoulders(chunkX, chunkZ int32, col *Column) {
	for lx := 1; lx < 15; lx++ {
		for lz := 1; lz < 15; lz++ {
			wx, wz := int(chunkX)*16+lx, int(chunkZ)*16+lz
			b := biomeAt(g.tempNoise, g.rainNoise, wx, wz)
			if b.boulderDensity <= 0 {
				continue
			}

			const clusterScale = 0.01
			clusterVal := g.boulderNoise.noise2D(float64(wx)*clusterScale, float64(wz)*clusterScale)
			clusterVal = (clusterVal + 1) / 2
			effectiveDensity := (b.boulderDensity / 40.0) * (clusterVal * 2.0)

			hash := uint32(wx*142071 ^ wz*650021 ^ int(g.seed+42))
			hash ^= hash >> 16
			hash *= 0x85ebca6b
			hash ^= hash >> 13
			hash *= 0xc2b2ae35
			hash ^= hash >> 16

			if float64(hash)/float64(0xFFFFFFFF) > effectiveDensity {
				continue
			}

			y := g.surfaceHeight(wx, wz)
			if y < 0 || y >= ChunkHeight {
				continue
			}
			sec, sy := y/SectionHeight, y%SectionHeight
			surf := col.Sections[sec][(sy*16+lz)*16+lx] >> 4
			if surf != 2 && surf != 3 {
				continue
			}
			col.Sections[sec][(sy*16+lz)*16+lx] = 4 << 4 // cobblestone boulder
		}
	}
}
