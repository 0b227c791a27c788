package meshing

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/holyfoxgames-hue/cubicmage/internal/world"
	"github.com/holyfoxgames-hue/cubicmage/internal/worldgen"
)

// Material tints multiplied into the biome gradient color.
var (
	roadTint     = mgl32.Vec3{0.42, 0.38, 0.34}
	riverbedTint = mgl32.Vec3{0.45, 0.42, 0.30}
	dirtTint     = mgl32.Vec3{0.52, 0.38, 0.26}
	stoneLight   = mgl32.Vec3{0.62, 0.62, 0.64}
	stoneDark    = mgl32.Vec3{0.38, 0.38, 0.42}
	baseTint     = mgl32.Vec3{0.35, 0.32, 0.36} // island underside rock
	waterTint    = mgl32.Vec3{0.25, 0.40, 0.75}
)

// Per-biome gradient endpoints: the color at the grid floor and at the top
// of the chunk. Columns blend these by their biome weights.
var biomeGradients = [4][2]mgl32.Vec3{
	{{0.33, 0.52, 0.25}, {0.55, 0.72, 0.38}}, // plains
	{{0.30, 0.46, 0.24}, {0.50, 0.62, 0.34}}, // hills
	{{0.42, 0.42, 0.40}, {0.85, 0.87, 0.90}}, // mountains: rock into snow
	{{0.45, 0.42, 0.28}, {0.62, 0.58, 0.38}}, // plateau
}

const speckleFreq = 0.35

// colorizer computes per-vertex colors for one chunk. Biome weights are
// sampled once per column and cached: every face of a column shares the
// same gradient endpoints.
type colorizer struct {
	chunk   *world.Chunk
	opts    Options
	biomes  worldgen.BiomeSampler
	speckle *perlin.Perlin

	cache map[[2]int]worldgen.BiomeWeights
}

func newColorizer(c *world.Chunk, opts Options) *colorizer {
	biomes := opts.Biomes
	if biomes == nil {
		biomes = defaultBiomes{}
	}
	return &colorizer{
		chunk:   c,
		opts:    opts,
		biomes:  biomes,
		speckle: perlin.NewPerlin(2, 2, 3, opts.Seed+9001),
		cache:   make(map[[2]int]worldgen.BiomeWeights),
	}
}

type defaultBiomes struct{}

func (defaultBiomes) SampleBiomeWeights01(wx, wz float64) worldgen.BiomeWeights {
	return worldgen.BiomeWeights{Plains: 0.7, Hills: 0.2, Mountains: 0.1}
}

func (cz *colorizer) columnWeights(lx, lz int) worldgen.BiomeWeights {
	key := [2]int{lx, lz}
	if bw, ok := cz.cache[key]; ok {
		return bw
	}
	wx := float64(cz.chunk.CX*cz.chunk.Size()+lx) + 0.5
	wz := float64(cz.chunk.CZ*cz.chunk.Size()+lz) + 0.5
	bw := cz.biomes.SampleBiomeWeights01(wx, wz).Normalized()
	cz.cache[key] = bw
	return bw
}

// gradientColor blends the per-biome height gradients at normalized height t.
func gradientColor(bw worldgen.BiomeWeights, t float32) mgl32.Vec3 {
	weights := [4]float32{
		float32(bw.Plains), float32(bw.Hills), float32(bw.Mountains), float32(bw.Plateau),
	}
	var out mgl32.Vec3
	for i, w := range weights {
		if w == 0 {
			continue
		}
		lo := biomeGradients[i][0]
		hi := biomeGradients[i][1]
		out = out.Add(lerpVec3(lo, hi, t).Mul(w))
	}
	return out
}

// vertexColor combines the column's biome gradient color at the vertex's
// world height with the material tint. Stone additionally blends a
// vertical gradient and a coherent-noise speckle; in floating-island mode
// everything below the base-tint threshold leans toward the underside
// rock color.
func (cz *colorizer) vertexColor(lx, lz int, y float64, id world.BlockID) mgl32.Vec3 {
	t := clamp01f(float32(y) / float32(cz.chunk.Height()))
	grad := gradientColor(cz.columnWeights(lx, lz), t)

	var c mgl32.Vec3
	switch id {
	case world.BlockSolid:
		c = grad
	case world.BlockRoad:
		c = lerpVec3(grad, roadTint, 0.85)
	case world.BlockRiverbed:
		c = lerpVec3(grad, riverbedTint, 0.8)
	case world.BlockDirt:
		c = lerpVec3(grad, dirtTint, 0.75)
	case world.BlockWater:
		c = waterTint
	case world.BlockStone:
		c = cz.stoneColor(lx, lz, y, t)
	default:
		c = grad
	}

	if cz.opts.FloatingIsland && cz.opts.BaseTintBelow > 0 {
		if wy := float32(y); wy < float32(cz.opts.BaseTintBelow) {
			bias := 1 - wy/float32(cz.opts.BaseTintBelow)
			c = lerpVec3(c, baseTint, 0.7*bias)
		}
	}
	return c
}

func (cz *colorizer) stoneColor(lx, lz int, y float64, t float32) mgl32.Vec3 {
	c := lerpVec3(stoneDark, stoneLight, t)
	wx := float64(cz.chunk.CX*cz.chunk.Size() + lx)
	wz := float64(cz.chunk.CZ*cz.chunk.Size() + lz)
	sp := float32(cz.speckle.Noise3D(wx*speckleFreq, y*speckleFreq, wz*speckleFreq))
	return c.Mul(1 + 0.12*sp)
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
