package worldgen

import (
	"testing"

	"github.com/holyfoxgames-hue/cubicmage/internal/world"
)

// pointFeatures reports a fixed feature weight at exactly one column and
// zero everywhere else.
type pointFeatures struct {
	wx, wz int
	fw     FeatureWeights
}

func (p pointFeatures) SampleFeatureWeights01(wx, wz float64) FeatureWeights {
	if int(wx) == p.wx && int(wz) == p.wz {
		return p.fw
	}
	return FeatureWeights{}
}

// constantFeatures reports the same feature weight at every column.
type constantFeatures struct{ fw FeatureWeights }

func (c constantFeatures) SampleFeatureWeights01(wx, wz float64) FeatureWeights {
	return c.fw
}

// lineFeatures reports a river along a single world-Z column line.
type lineFeatures struct{ wx int }

func (l lineFeatures) SampleFeatureWeights01(wx, wz float64) FeatureWeights {
	if int(wx) == l.wx {
		return FeatureWeights{River: 1}
	}
	return FeatureWeights{}
}

// flatWorld builds a world whose every column is stone up to and
// including surfaceY.
func flatWorld(chunks, size, height, surfaceY int) *world.World {
	w := world.NewWorld(1, chunks, chunks, size, height)
	for wz := 0; wz < w.SizeZ(); wz++ {
		for wx := 0; wx < w.SizeX(); wx++ {
			for y := 0; y <= surfaceY; y++ {
				w.Set(wx, y, wz, world.BlockStone)
			}
		}
	}
	return w
}

func TestCarveRiverBedDepthAndMarker(t *testing.T) {
	const surfaceY = 20
	w := flatWorld(2, 16, 64, surfaceY)

	params := CarverParams{
		RiverThreshold: 0.5,
		RiverWidth:     2,
		RiverBedDepth:  3,
	}
	NewFeatureCarver(w, lineFeatures{wx: 16}, params, surfaceY).Run()

	carved := 0
	for wz := 0; wz < w.SizeZ(); wz++ {
		for wx := 0; wx < w.SizeX(); wx++ {
			top := w.TopY(wx, wz)
			if w.Get(wx, top, wz) != world.BlockRiverbed {
				continue
			}
			carved++
			drop := surfaceY - top
			if drop < 1 || drop > 3 {
				t.Fatalf("Riverbed at %d,%d dropped %d voxels, want 1..3", wx, wz, drop)
			}
			// Everything above the bed must be open.
			for y := top + 1; y <= surfaceY; y++ {
				if !w.IsAir(wx, y, wz) {
					t.Fatalf("Expected air above the riverbed at %d,%d,%d", wx, y, wz)
				}
			}
		}
	}
	if carved == 0 {
		t.Fatal("Expected the river line to carve at least one column")
	}
	// The channel centerline must be fully carved.
	for wz := 2; wz < w.SizeZ()-2; wz++ {
		top := w.TopY(16, wz)
		if w.Get(16, top, wz) != world.BlockRiverbed {
			t.Fatalf("Expected a riverbed marker on the centerline at z=%d", wz)
		}
	}
}

func TestCarveRiverDoesNotRunAway(t *testing.T) {
	// Overlapping brushes along a line must not deepen the channel past
	// the configured bed depth no matter how many centers touch a column.
	const surfaceY = 30
	w := flatWorld(2, 16, 64, surfaceY)

	params := CarverParams{
		RiverThreshold: 0.5,
		RiverWidth:     3,
		RiverBedDepth:  4,
	}
	NewFeatureCarver(w, lineFeatures{wx: 10}, params, surfaceY).Run()

	for wz := 0; wz < w.SizeZ(); wz++ {
		for dx := -3; dx <= 3; dx++ {
			top := w.TopY(10+dx, wz)
			if drop := surfaceY - top; drop > 4 {
				t.Fatalf("Channel at %d,%d dropped %d voxels, deeper than the bed depth 4",
					10+dx, wz, drop)
			}
		}
	}
}

func TestCarveRiverBank(t *testing.T) {
	const surfaceY = 15
	w := flatWorld(2, 16, 64, surfaceY)

	params := CarverParams{
		RiverThreshold:  0.5,
		RiverWidth:      1,
		RiverBankWidth:  2,
		RiverBedDepth:   2,
		RiverBankHeight: 2,
	}
	NewFeatureCarver(w, pointFeatures{wx: 16, wz: 16, fw: FeatureWeights{River: 1}}, params, surfaceY).Run()

	// Just inside the bank annulus the terrain must have been raised.
	raised := false
	for _, d := range [][2]int{{2, 0}, {-2, 0}, {0, 2}, {0, -2}} {
		if w.TopY(16+d[0], 16+d[1]) > surfaceY {
			raised = true
		}
	}
	if !raised {
		t.Error("Expected the bank annulus to raise the terrain")
	}
	// The raised bank is solid, not a marker material.
	for _, d := range [][2]int{{2, 0}, {-2, 0}} {
		top := w.TopY(16+d[0], 16+d[1])
		if top > surfaceY && w.Get(16+d[0], top, 16+d[1]) != world.BlockSolid {
			t.Errorf("Expected a solid bank at %d,%d", 16+d[0], 16+d[1])
		}
	}
}

func TestCarveRiverConstantWeightKeepsBedExposed(t *testing.T) {
	// Every column is a brush center, so channels and bank annuli overlap
	// everywhere. Beds must stay within the bed depth of the original
	// surface, banks must not stack past the bank height, and every
	// carved column must keep its riverbed marker on top.
	const surfaceY = 40
	w := flatWorld(2, 16, 64, surfaceY)

	params := CarverParams{
		RiverThreshold:  0.5,
		RiverWidth:      2,
		RiverBankWidth:  2,
		RiverBedDepth:   3,
		RiverBankHeight: 1,
	}
	NewFeatureCarver(w, constantFeatures{fw: FeatureWeights{River: 1}}, params, surfaceY).Run()

	for wz := 0; wz < w.SizeZ(); wz++ {
		for wx := 0; wx < w.SizeX(); wx++ {
			top := w.TopY(wx, wz)
			if raise := top - surfaceY; raise > 1 {
				t.Fatalf("Column %d,%d rose %d voxels above the original surface, want at most 1",
					wx, wz, raise)
			}
			if got := w.Get(wx, top, wz); got != world.BlockRiverbed {
				t.Fatalf("Column %d,%d tops out in %v, want an exposed riverbed marker", wx, wz, got)
			}
			if drop := surfaceY - top; drop < 1 || drop > 3 {
				t.Fatalf("Riverbed at %d,%d dropped %d voxels, want 1..3", wx, wz, drop)
			}
		}
	}
}

func TestFlattenRoadOnFlatGroundKeepsSurface(t *testing.T) {
	const surfaceY = 12
	w := flatWorld(2, 16, 32, surfaceY)

	params := CarverParams{
		RoadThreshold: 0.5,
		RoadWidth:     2,
		RoadFade:      1,
		RoadFlatten:   1,
	}
	NewFeatureCarver(w, pointFeatures{wx: 16, wz: 16, fw: FeatureWeights{Road: 1}}, params, surfaceY).Run()

	for dz := -2; dz <= 2; dz++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dz*dz > 4 {
				continue
			}
			wx, wz := 16+dx, 16+dz
			top := w.TopY(wx, wz)
			if top != surfaceY {
				t.Errorf("Flat ground moved under the road at %d,%d: top %d", wx, wz, top)
			}
			if w.Get(wx, top, wz) != world.BlockRoad {
				t.Errorf("Expected a road marker at %d,%d", wx, wz)
			}
		}
	}
	// Outside the brush the world is untouched.
	if w.Get(25, surfaceY, 25) != world.BlockStone {
		t.Error("Expected ground far from the road to stay stone")
	}
}

func TestFlattenRoadPullsStepTowardMean(t *testing.T) {
	// A height step under a fully flattening road must end up at the 3x3
	// neighborhood mean.
	w := world.NewWorld(1, 2, 2, 16, 32)
	for wz := 0; wz < w.SizeZ(); wz++ {
		for wx := 0; wx < w.SizeX(); wx++ {
			top := 4
			if wx >= 8 {
				top = 8
			}
			for y := 0; y <= top; y++ {
				w.Set(wx, y, wz, world.BlockStone)
			}
		}
	}

	params := CarverParams{
		RoadThreshold: 0.5,
		RoadWidth:     1,
		RoadFlatten:   1,
	}
	NewFeatureCarver(w, pointFeatures{wx: 8, wz: 8, fw: FeatureWeights{Road: 1}}, params, 16).Run()

	// 3x3 around x=8: one column of tops at 4, two at 8 -> mean 6.
	want := (4*3 + 8*6) / 9
	top := w.TopY(8, 8)
	if top != want {
		t.Errorf("Expected the road center pulled to %d, got %d", want, top)
	}
	if w.Get(8, top, 8) != world.BlockRoad {
		t.Error("Expected a road marker at the flattened center")
	}
}
