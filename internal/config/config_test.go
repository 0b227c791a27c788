package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsAlreadySane(t *testing.T) {
	cfg := Default()
	clean := cfg
	clean.Sanitize()
	if cfg != clean {
		t.Error("Expected the default config to survive sanitizing unchanged")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load of an empty path failed: %v", err)
	}
	if cfg != Default() {
		t.Error("Expected the defaults for an empty path")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected a missing config file to error")
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	body := `
seed: 42
world:
  chunksX: 3
  chunksZ: 5
  chunkHeight: 64
terrain:
  floatingIsland: false
  grassDepth: 2
features:
  riverWidth: 4.5
`
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Seed)
	}
	if cfg.World.ChunksX != 3 || cfg.World.ChunksZ != 5 {
		t.Errorf("Expected 3x5 chunks, got %dx%d", cfg.World.ChunksX, cfg.World.ChunksZ)
	}
	if cfg.World.ChunkHeight != 64 {
		t.Errorf("Expected chunk height 64, got %d", cfg.World.ChunkHeight)
	}
	if cfg.Terrain.FloatingIsland {
		t.Error("Expected floating island off")
	}
	if cfg.Terrain.GrassDepth != 2 {
		t.Errorf("Expected grass depth 2, got %d", cfg.Terrain.GrassDepth)
	}
	if cfg.Features.RiverWidth != 4.5 {
		t.Errorf("Expected river width 4.5, got %f", cfg.Features.RiverWidth)
	}
	// Untouched keys keep their defaults.
	if cfg.World.ChunkSize != 16 {
		t.Errorf("Expected default chunk size, got %d", cfg.World.ChunkSize)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("world: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected malformed YAML to error")
	}
}

func TestSanitizeClampsDegenerateValues(t *testing.T) {
	cfg := Config{}
	cfg.World.ChunkSize = -3
	cfg.World.ChunkHeight = 2
	cfg.Terrain.MinThickness = -1
	cfg.Terrain.MaxThickness = 1
	cfg.Features.RoadFlatten = 7
	cfg.Features.RiverWidth = -2
	cfg.Sanitize()

	if cfg.World.ChunksX < 1 || cfg.World.ChunksZ < 1 {
		t.Error("Expected at least one chunk per axis")
	}
	if cfg.World.ChunkSize < 4 {
		t.Errorf("Expected chunk size clamped to 4, got %d", cfg.World.ChunkSize)
	}
	if cfg.World.ChunkHeight < 16 {
		t.Errorf("Expected chunk height clamped to 16, got %d", cfg.World.ChunkHeight)
	}
	if cfg.Terrain.MinThickness < 3 {
		t.Errorf("Expected min thickness clamped to 3, got %f", cfg.Terrain.MinThickness)
	}
	if cfg.Terrain.MaxThickness < cfg.Terrain.MinThickness {
		t.Error("Expected max thickness to cover min thickness")
	}
	if cfg.Features.RoadFlatten != 1 {
		t.Errorf("Expected road flatten clamped to 1, got %f", cfg.Features.RoadFlatten)
	}
	if cfg.Features.RiverWidth < 0.5 {
		t.Errorf("Expected river width clamped to 0.5, got %f", cfg.Features.RiverWidth)
	}
	if cfg.Features.RoadThreshold <= 0 || cfg.Features.RiverThreshold <= 0 {
		t.Error("Expected positive feature thresholds after sanitizing")
	}
}
