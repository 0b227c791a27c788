package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures every tunable parameter of a generation run. Zero values
// in the file are replaced with defaults and degenerate numbers are clamped
// before the generator ever sees them.
type Config struct {
	Seed     int64         `yaml:"seed"`
	World    WorldConfig   `yaml:"world"`
	Terrain  TerrainConfig `yaml:"terrain"`
	Features FeatureConfig `yaml:"features"`
	Masks    MaskConfig    `yaml:"masks"`
}

type WorldConfig struct {
	ChunksX     int `yaml:"chunksX"`
	ChunksZ     int `yaml:"chunksZ"`
	ChunkSize   int `yaml:"chunkSize"`
	ChunkHeight int `yaml:"chunkHeight"`
}

type TerrainConfig struct {
	FloatingIsland bool    `yaml:"floatingIsland"`
	AutoTune       bool    `yaml:"autoTune"` // derive shape parameters from chunk height
	VoidThreshold  float64 `yaml:"voidThreshold"`
	GrassDepth     int     `yaml:"grassDepth"`
	DirtDepth      int     `yaml:"dirtDepth"`

	// Manual shape parameters, used only when autoTune is off.
	Lift         int     `yaml:"lift"`
	CliffDrop    float64 `yaml:"cliffDrop"`
	CliffPower   float64 `yaml:"cliffPower"`
	MinThickness float64 `yaml:"minThickness"`
	MaxThickness float64 `yaml:"maxThickness"`
	SpireHeight  float64 `yaml:"spireHeight"`
}

type FeatureConfig struct {
	RoadThreshold   float64 `yaml:"roadThreshold"`
	RoadWidth       float64 `yaml:"roadWidth"`
	RoadFade        float64 `yaml:"roadFade"`
	RoadFlatten     float64 `yaml:"roadFlatten"` // 0..1 flatten strength
	RiverThreshold  float64 `yaml:"riverThreshold"`
	RiverWidth      float64 `yaml:"riverWidth"`
	RiverBankWidth  float64 `yaml:"riverBankWidth"`
	RiverBedDepth   float64 `yaml:"riverBedDepth"`
	RiverBankHeight float64 `yaml:"riverBankHeight"`
}

type MaskConfig struct {
	BiomePath   string `yaml:"biomePath"`   // RGBA png: R=plains G=hills B=mountains A=plateau
	FeaturePath string `yaml:"featurePath"` // RG png: R=road G=river
	GridW       int    `yaml:"gridW"`
	GridH       int    `yaml:"gridH"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Seed: 1337,
		World: WorldConfig{
			ChunksX:     8,
			ChunksZ:     8,
			ChunkSize:   16,
			ChunkHeight: 128,
		},
		Terrain: TerrainConfig{
			FloatingIsland: true,
			AutoTune:       true,
			VoidThreshold:  0.05,
			GrassDepth:     1,
			DirtDepth:      3,
			Lift:           8,
			CliffDrop:      22,
			CliffPower:     1.6,
			MinThickness:   6,
			MaxThickness:   48,
			SpireHeight:    20,
		},
		Features: FeatureConfig{
			RoadThreshold:   0.5,
			RoadWidth:       2.5,
			RoadFade:        2.0,
			RoadFlatten:     0.65,
			RiverThreshold:  0.5,
			RiverWidth:      2.0,
			RiverBankWidth:  2.0,
			RiverBedDepth:   3.0,
			RiverBankHeight: 1.0,
		},
		Masks: MaskConfig{
			GridW: 128,
			GridH: 128,
		},
	}
}

// Load reads a YAML config file and applies defaults and clamping.
// A missing path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// Sanitize clamps degenerate values to safe minimums. The generator relies
// on this: negative widths or zero thicknesses must never reach the math.
func (c *Config) Sanitize() {
	def := Default()

	c.World.ChunksX = max(c.World.ChunksX, 1)
	c.World.ChunksZ = max(c.World.ChunksZ, 1)
	c.World.ChunkSize = max(c.World.ChunkSize, 4)
	c.World.ChunkHeight = max(c.World.ChunkHeight, 16)

	if c.Terrain.VoidThreshold <= 0 {
		c.Terrain.VoidThreshold = def.Terrain.VoidThreshold
	}
	c.Terrain.GrassDepth = max(c.Terrain.GrassDepth, 1)
	c.Terrain.DirtDepth = max(c.Terrain.DirtDepth, 0)
	c.Terrain.MinThickness = maxFloat(c.Terrain.MinThickness, 3)
	c.Terrain.MaxThickness = maxFloat(c.Terrain.MaxThickness, c.Terrain.MinThickness)
	c.Terrain.CliffPower = maxFloat(c.Terrain.CliffPower, 0.1)
	if c.Terrain.CliffDrop < 0 {
		c.Terrain.CliffDrop = 0
	}
	if c.Terrain.SpireHeight < 0 {
		c.Terrain.SpireHeight = 0
	}

	c.Features.RoadWidth = maxFloat(c.Features.RoadWidth, 0.5)
	c.Features.RoadFade = maxFloat(c.Features.RoadFade, 0)
	c.Features.RoadFlatten = clamp01(c.Features.RoadFlatten)
	c.Features.RiverWidth = maxFloat(c.Features.RiverWidth, 0.5)
	c.Features.RiverBankWidth = maxFloat(c.Features.RiverBankWidth, 0)
	c.Features.RiverBedDepth = maxFloat(c.Features.RiverBedDepth, 1)
	if c.Features.RiverBankHeight < 0 {
		c.Features.RiverBankHeight = 0
	}
	if c.Features.RoadThreshold <= 0 {
		c.Features.RoadThreshold = def.Features.RoadThreshold
	}
	if c.Features.RiverThreshold <= 0 {
		c.Features.RiverThreshold = def.Features.RiverThreshold
	}

	c.Masks.GridW = max(c.Masks.GridW, 8)
	c.Masks.GridH = max(c.Masks.GridH, 8)
}

func maxFloat(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
