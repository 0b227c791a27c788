package main

import (
	"flag"
	"log"

	"github.com/holyfoxgames-hue/cubicmage/internal/config"
	"github.com/holyfoxgames-hue/cubicmage/internal/mask"
	"github.com/holyfoxgames-hue/cubicmage/internal/meshing"
	"github.com/holyfoxgames-hue/cubicmage/internal/profiling"
	"github.com/holyfoxgames-hue/cubicmage/internal/world"
	"github.com/holyfoxgames-hue/cubicmage/internal/worldgen"
)

func main() {
	configPath := flag.String("config", "", "path to YAML world config")
	seed := flag.Int64("seed", 0, "override config seed (0 keeps config value)")
	outPath := flag.String("out", "world.cw", "output world file")
	meshStats := flag.Bool("mesh-stats", false, "build all chunk meshes and report totals")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	samplers, err := buildSamplers(cfg)
	if err != nil {
		log.Fatalf("load masks: %v", err)
	}

	profiling.Reset()
	w := worldgen.NewGenerator(cfg, samplers).Generate()
	log.Printf("generated %dx%d chunks (%dx%d columns, height %d), seed %d",
		w.ChunksX, w.ChunksZ, w.SizeX(), w.SizeZ(), w.ChunkHeight, w.Seed)

	if *meshStats {
		reportMeshStats(w, cfg)
	}

	if err := w.SaveFile(*outPath); err != nil {
		log.Fatalf("save world: %v", err)
	}
	log.Printf("saved %s", *outPath)
	log.Printf("timings: %s", profiling.Summary())
}

func buildSamplers(cfg config.Config) (worldgen.Samplers, error) {
	rect := worldgen.MaskRect{
		SizeX: float64(cfg.World.ChunksX * cfg.World.ChunkSize),
		SizeZ: float64(cfg.World.ChunksZ * cfg.World.ChunkSize),
	}
	var s worldgen.Samplers
	if cfg.Masks.BiomePath != "" {
		bm, err := mask.LoadBiomeMask(cfg.Masks.BiomePath, cfg.Masks.GridW, cfg.Masks.GridH,
			rect, cfg.Terrain.VoidThreshold)
		if err != nil {
			return s, err
		}
		s.Biomes = bm
	}
	if cfg.Masks.FeaturePath != "" {
		fm, err := mask.LoadFeatureMask(cfg.Masks.FeaturePath, cfg.Masks.GridW, cfg.Masks.GridH, rect)
		if err != nil {
			return s, err
		}
		s.Features = fm
	}
	return s, nil
}

func reportMeshStats(w *world.World, cfg config.Config) {
	opts := meshing.Options{
		Seed:           w.Seed,
		FloatingIsland: cfg.Terrain.FloatingIsland,
		BaseTintBelow:  w.ChunkHeight * 35 / 100,
	}
	var vertices, triangles, wide int
	for _, c := range w.Chunks() {
		m := meshing.Build(c, opts)
		vertices += m.VertexCount()
		triangles += m.TriangleCount()
		if m.Wide() {
			wide++
		}
	}
	log.Printf("meshes: %d vertices, %d triangles, %d chunks need 32-bit indices",
		vertices, triangles, wide)
}
