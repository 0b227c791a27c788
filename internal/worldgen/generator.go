package worldgen

import (
	"log"
	"runtime"

	"github.com/alitto/pond/v2"

	"github.com/holyfoxgames-hue/cubicmage/internal/config"
	"github.com/holyfoxgames-hue/cubicmage/internal/profiling"
	"github.com/holyfoxgames-hue/cubicmage/internal/world"
)

// Generator drives the full pipeline: distance field, parallel chunk fill,
// then the serialized feature-carving pass. Meshing is left to the caller
// so that meshes can be built lazily or per chunk.
type Generator struct {
	cfg      config.Config
	biomes   BiomeSampler
	features FeatureSampler
	distance DistanceSampler
	params   ShapeParams
}

// Samplers carries the optional external mask collaborators. Nil fields
// fall back to defined defaults: plains-leaning biome weights, zero
// feature strength and zero edge distance.
type Samplers struct {
	Biomes   BiomeSampler
	Features FeatureSampler
	Distance DistanceSampler
}

// NewGenerator builds a generator from a sanitized config.
func NewGenerator(cfg config.Config, s Samplers) *Generator {
	cfg.Sanitize()
	g := &Generator{
		cfg:      cfg,
		biomes:   s.Biomes,
		features: s.Features,
		distance: s.Distance,
	}
	if g.biomes == nil {
		g.biomes = uniformBiomes{}
	}
	if g.features == nil {
		g.features = zeroFeatures{}
	}

	if cfg.Terrain.AutoTune {
		g.params = AutoTuneShapeParams(cfg.World.ChunkHeight)
	} else {
		t := cfg.Terrain
		g.params = ShapeParams{
			Lift:         t.Lift,
			CliffDrop:    t.CliffDrop,
			CliffPower:   t.CliffPower,
			MinThickness: t.MinThickness,
			MaxThickness: t.MaxThickness,
			SpireHeight:  t.SpireHeight,
		}.sanitized()
	}
	return g
}

// Generate allocates and fills a world. Chunks are filled in parallel:
// every column is a pure function of the seed and the read-only samplers,
// and each worker owns disjoint chunks. The carving pass runs after the
// pool drains because road flattening reads 3x3 neighborhoods that span
// chunk borders.
func (g *Generator) Generate() *world.World {
	defer profiling.Track("worldgen.Generate")()
	cfg := g.cfg
	w := world.NewWorld(cfg.Seed, cfg.World.ChunksX, cfg.World.ChunksZ,
		cfg.World.ChunkSize, cfg.World.ChunkHeight)

	if cfg.Terrain.FloatingIsland && g.distance == nil {
		g.distance = g.buildDistanceField(w)
	}
	if g.distance == nil {
		g.distance = zeroDistance{}
	}

	height := NewHeightSynth(cfg.Seed, cfg.World.ChunkHeight, cfg.Terrain.FloatingIsland, g.params)
	under := NewUndersideShaper(cfg.Seed, cfg.World.ChunkHeight, w.SizeX(), w.SizeZ(), g.params)
	filler := NewColumnFiller(cfg.World.ChunkHeight, cfg.Terrain.GrassDepth, cfg.Terrain.DirtDepth)

	fill := profiling.Track("worldgen.fill")
	pool := pond.NewPool(runtime.GOMAXPROCS(0))
	for _, c := range w.Chunks() {
		c := c
		pool.Submit(func() {
			g.fillChunk(c, height, under, filler)
		})
	}
	pool.StopAndWait()
	fill()

	carve := profiling.Track("worldgen.carve")
	carver := NewFeatureCarver(w, g.features, CarverParams{
		RoadThreshold:   cfg.Features.RoadThreshold,
		RoadWidth:       cfg.Features.RoadWidth,
		RoadFade:        cfg.Features.RoadFade,
		RoadFlatten:     cfg.Features.RoadFlatten,
		RiverThreshold:  cfg.Features.RiverThreshold,
		RiverWidth:      cfg.Features.RiverWidth,
		RiverBankWidth:  cfg.Features.RiverBankWidth,
		RiverBedDepth:   cfg.Features.RiverBedDepth,
		RiverBankHeight: cfg.Features.RiverBankHeight,
	}, cfg.World.ChunkHeight/2)
	carver.Run()
	carve()

	return w
}

func (g *Generator) fillChunk(c *world.Chunk, height *HeightSynth, under *UndersideShaper, filler *ColumnFiller) {
	cfg := g.cfg
	baseX := c.CX * c.Size()
	baseZ := c.CZ * c.Size()
	for lz := 0; lz < c.Size(); lz++ {
		for lx := 0; lx < c.Size(); lx++ {
			wx := baseX + lx
			wz := baseZ + lz
			center := [2]float64{float64(wx) + 0.5, float64(wz) + 0.5}

			bw := g.biomes.SampleBiomeWeights01(center[0], center[1])
			if cfg.Terrain.FloatingIsland && bw.Sum() <= cfg.Terrain.VoidThreshold {
				continue // void column stays air
			}

			edge01 := 1.0
			if cfg.Terrain.FloatingIsland {
				edge01 = g.distance.SampleIslandDistance01(center[0], center[1])
			}

			surfaceY := height.SurfaceY(wx, wz, bw, edge01)
			bottomY := 0
			if cfg.Terrain.FloatingIsland {
				bottomY = under.BottomY(wx, wz, surfaceY, edge01)
			}
			filler.Fill(c, lx, lz, bottomY, surfaceY, bw)
		}
	}
}

// buildDistanceField computes the void distance field once, before any
// chunk is filled. Mask-backed samplers expose their native pixel grid;
// otherwise the biome sampler is rasterized at one sample per column.
func (g *Generator) buildDistanceField(w *world.World) DistanceSampler {
	defer profiling.Track("worldgen.distfield")()
	threshold := g.cfg.Terrain.VoidThreshold

	if mg, ok := g.biomes.(maskGridProvider); ok {
		gw, gh, sums, rect := mg.MaskGrid()
		return ComputeVoidDistanceField(sums, gw, gh, threshold, rect)
	}

	sizeX := w.SizeX()
	sizeZ := w.SizeZ()
	sums := make([]float64, sizeX*sizeZ)
	for wz := 0; wz < sizeZ; wz++ {
		for wx := 0; wx < sizeX; wx++ {
			bw := g.biomes.SampleBiomeWeights01(float64(wx)+0.5, float64(wz)+0.5)
			sums[wz*sizeX+wx] = bw.Sum()
		}
	}
	rect := MaskRect{MinX: 0, MinZ: 0, SizeX: float64(sizeX), SizeZ: float64(sizeZ)}
	log.Printf("worldgen: distance field rasterized at %dx%d (no mask grid available)", sizeX, sizeZ)
	return ComputeVoidDistanceField(sums, sizeX, sizeZ, threshold, rect)
}
