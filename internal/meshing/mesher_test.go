package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/holyfoxgames-hue/cubicmage/internal/world"
)

func TestBuildEmptyChunk(t *testing.T) {
	c := world.NewChunk(0, 0, 16, 32)
	m := Build(c, Options{})

	if m.VertexCount() != 0 {
		t.Errorf("Expected no vertices for an empty chunk, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 0 {
		t.Errorf("Expected no triangles for an empty chunk, got %d", m.TriangleCount())
	}
}

func TestBuildSingleVoxel(t *testing.T) {
	c := world.NewChunk(0, 0, 16, 32)
	c.Set(5, 5, 5, world.BlockSolid)
	m := Build(c, Options{})

	// 6 faces, 4 vertices and 2 triangles each.
	if m.VertexCount() != 24 {
		t.Errorf("Expected 24 vertices for a lone voxel, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("Expected 12 triangles for a lone voxel, got %d", m.TriangleCount())
	}
	if m.Wide() {
		t.Error("Expected a lone voxel to fit narrow indices")
	}
	if got := len(m.Indices16()); got != 36 {
		t.Errorf("Expected 36 narrow indices, got %d", got)
	}

	// Every position must lie on the voxel's unit cube.
	for _, p := range m.Positions {
		for axis := 0; axis < 3; axis++ {
			if p[axis] != 5 && p[axis] != 6 {
				t.Fatalf("Vertex %v is off the voxel cube", p)
			}
		}
	}
}

func TestBuildHiddenFacesAreCulled(t *testing.T) {
	c := world.NewChunk(0, 0, 16, 32)
	// Two voxels side by side share one hidden face pair.
	c.Set(5, 5, 5, world.BlockSolid)
	c.Set(6, 5, 5, world.BlockSolid)
	m := Build(c, Options{})

	// 12 faces total minus the 2 touching ones.
	if m.VertexCount() != 10*4 {
		t.Errorf("Expected 40 vertices for a voxel pair, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 10*2 {
		t.Errorf("Expected 20 triangles for a voxel pair, got %d", m.TriangleCount())
	}
}

func TestBuildInteriorIsCulled(t *testing.T) {
	// A solid 3x3x3 cube exposes only its outer shell: 6 sides of 9 faces.
	c := world.NewChunk(0, 0, 16, 32)
	for y := 4; y < 7; y++ {
		for z := 4; z < 7; z++ {
			for x := 4; x < 7; x++ {
				c.Set(x, y, z, world.BlockStone)
			}
		}
	}
	m := Build(c, Options{})

	if m.TriangleCount() != 6*9*2 {
		t.Errorf("Expected 108 triangles for a 3x3x3 cube, got %d", m.TriangleCount())
	}
}

func TestBuildChunkBordersAlwaysClose(t *testing.T) {
	// A voxel on the chunk corner exposes all six faces: out-of-chunk
	// neighbors count as air.
	c := world.NewChunk(0, 0, 16, 32)
	c.Set(0, 0, 0, world.BlockSolid)
	m := Build(c, Options{})

	if m.TriangleCount() != 12 {
		t.Errorf("Expected all 6 corner-voxel faces exposed, got %d triangles", m.TriangleCount())
	}
}

func TestBuildNormalsMatchExposure(t *testing.T) {
	// A lone voxel's +Y face normals point up and sit at the top plane.
	c := world.NewChunk(0, 0, 16, 32)
	c.Set(3, 3, 3, world.BlockSolid)
	m := Build(c, Options{})

	up := mgl32.Vec3{0, 1, 0}
	found := 0
	for i, n := range m.Normals {
		if n == up {
			found++
			if m.Positions[i].Y() != 4 {
				t.Errorf("Up-facing vertex %v not on the top plane", m.Positions[i])
			}
		}
	}
	if found != 4 {
		t.Errorf("Expected 4 up-facing vertices, got %d", found)
	}
}

func TestBuildWideIndexSwitch(t *testing.T) {
	// A 3D checkerboard never culls: every voxel keeps all 6 faces. A
	// 16x32x16 half-filled chunk produces 4096 voxels * 24 vertices,
	// far past the narrow-index limit.
	c := world.NewChunk(0, 0, 16, 32)
	voxels := 0
	for y := 0; y < 32; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				if (x+y+z)%2 == 0 {
					c.Set(x, y, z, world.BlockStone)
					voxels++
				}
			}
		}
	}
	m := Build(c, Options{})

	if want := voxels * 24; m.VertexCount() != want {
		t.Fatalf("Expected %d vertices, got %d", want, m.VertexCount())
	}
	if !m.Wide() {
		t.Fatal("Expected a checkerboard chunk to need wide indices")
	}
	if m.Indices16() != nil {
		t.Error("Expected no narrow index view for a wide mesh")
	}
	if got := len(m.Indices32()); got != m.TriangleCount()*3 {
		t.Errorf("Expected %d wide indices, got %d", m.TriangleCount()*3, got)
	}
}

func TestBuildColorsVaryWithMaterial(t *testing.T) {
	c := world.NewChunk(0, 0, 16, 32)
	c.Set(2, 5, 2, world.BlockSolid)
	c.Set(6, 5, 2, world.BlockRoad)
	c.Set(10, 5, 2, world.BlockRiverbed)
	m := Build(c, Options{Seed: 4})

	// Each voxel contributes 24 vertices in scan order x, then z, then y.
	solid := m.Colors[0]
	road := m.Colors[24]
	riverbed := m.Colors[48]
	if solid == road || road == riverbed || solid == riverbed {
		t.Error("Expected distinct colors per material")
	}
}

func BenchmarkBuild(b *testing.B) {
	c := world.NewChunk(0, 0, 16, 128)
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			top := 40 + (x*7+z*5)%13
			for y := 0; y <= top; y++ {
				c.Set(x, y, z, world.BlockStone)
			}
			c.Set(x, top, z, world.BlockSolid)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(c, Options{Seed: 1})
	}
}
