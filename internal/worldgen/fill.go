package worldgen

import "github.com/holyfoxgames-hue/cubicmage/internal/world"

// Mountain cap thresholds: a column is treated as mountain-dominant when
// the mountain weight clears mountainCapWeight, dominates the other
// biomes, and the surface sits above mountainCapHeight01 of the chunk.
const (
	mountainCapWeight   = 0.5
	mountainCapHeight01 = 0.45
)

// ColumnFiller writes material layers into a chunk column between a bottom
// and a surface elevation. Everything below bottomY and at or above
// surfaceY stays air; the filled band is grass, then dirt, then stone by
// depth from the surface.
type ColumnFiller struct {
	chunkHeight int
	grassDepth  int
	dirtDepth   int
}

// NewColumnFiller clamps the configured depths to safe minimums.
func NewColumnFiller(chunkHeight, grassDepth, dirtDepth int) *ColumnFiller {
	return &ColumnFiller{
		chunkHeight: max(chunkHeight, 1),
		grassDepth:  max(grassDepth, 1),
		dirtDepth:   max(dirtDepth, 0),
	}
}

// Fill writes one column of chunk c at local (lx,lz).
func (f *ColumnFiller) Fill(c *world.Chunk, lx, lz, bottomY, surfaceY int, bw BiomeWeights) {
	bottomY = clampI(bottomY, 0, f.chunkHeight)
	surfaceY = clampI(surfaceY, 0, f.chunkHeight)
	if surfaceY <= bottomY {
		return
	}

	grass := f.grassDepth
	dirt := f.dirtDepth

	if f.mountainDominant(bw, surfaceY) {
		// Steep peaks: no dirt band, a deeper solid cap, and a guaranteed
		// minimum shell scaled by the mountain influence so thin spires
		// never show gaps.
		dirt = 0
		grass = f.grassDepth + 2
		minThick := 3 + int(4*bw.Normalized().Mountains)
		if surfaceY-bottomY < minThick {
			bottomY = max(surfaceY-minThick, 0)
		}
	}

	// A column too thin for grass+dirt would leave no stone at all; give
	// one dirt voxel back to stone.
	if surfaceY-bottomY <= grass+dirt && dirt > 0 {
		dirt--
	}

	for y := bottomY; y < surfaceY; y++ {
		depth := surfaceY - 1 - y
		switch {
		case depth < grass:
			c.Set(lx, y, lz, world.BlockSolid)
		case depth < grass+dirt:
			c.Set(lx, y, lz, world.BlockDirt)
		default:
			c.Set(lx, y, lz, world.BlockStone)
		}
	}
}

func (f *ColumnFiller) mountainDominant(bw BiomeWeights, surfaceY int) bool {
	m := bw.Mountains
	if m < mountainCapWeight {
		return false
	}
	if m < bw.Plains || m < bw.Hills || m < bw.Plateau {
		return false
	}
	return float64(surfaceY) > float64(f.chunkHeight)*mountainCapHeight01
}
