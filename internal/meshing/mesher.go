package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/holyfoxgames-hue/cubicmage/internal/world"
	"github.com/holyfoxgames-hue/cubicmage/internal/worldgen"
)

// WideIndexThreshold is the vertex count above which the narrow uint16
// index format can no longer address every vertex.
const WideIndexThreshold = 65000

// Mesh holds one chunk's surface geometry in chunk-local coordinates.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec3
	indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.indices) / 3 }

// Wide reports whether the mesh needs the wide uint32 index format.
func (m *Mesh) Wide() bool { return len(m.Positions) > WideIndexThreshold }

// Indices32 returns the triangle indices in the wide format.
func (m *Mesh) Indices32() []uint32 { return m.indices }

// Indices16 returns the triangle indices in the narrow format, or nil when
// the mesh exceeds the narrow range.
func (m *Mesh) Indices16() []uint16 {
	if m.Wide() {
		return nil
	}
	out := make([]uint16, len(m.indices))
	for i, v := range m.indices {
		out[i] = uint16(v)
	}
	return out
}

// Options configures mesh building for one world.
type Options struct {
	Seed           int64
	FloatingIsland bool
	// BaseTintBelow is the world height under which stone blends toward
	// the island base tint; only used in floating-island mode.
	BaseTintBelow int
	// Biomes supplies the per-column weights behind the height gradient
	// color. Nil falls back to the same plains-leaning default the
	// generator uses.
	Biomes worldgen.BiomeSampler
}

// faceDef describes one of the six axis-aligned face directions: its
// neighbor offset, outward normal, and the four quad corners in CCW order
// (seen from outside) as offsets from the voxel's min corner.
type faceDef struct {
	dx, dy, dz int
	normal     mgl32.Vec3
	corners    [4][3]int
}

var faces = [6]faceDef{
	{1, 0, 0, mgl32.Vec3{1, 0, 0}, [4][3]int{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	{-1, 0, 0, mgl32.Vec3{-1, 0, 0}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{0, 1, 0, mgl32.Vec3{0, 1, 0}, [4][3]int{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{0, -1, 0, mgl32.Vec3{0, -1, 0}, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{0, 0, 1, mgl32.Vec3{0, 0, 1}, [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{0, 0, -1, mgl32.Vec3{0, 0, -1}, [4][3]int{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
}

// Build extracts the surface mesh of one chunk. Every non-air voxel is
// visited; a quad is emitted for each face whose same-chunk neighbor is
// air. Positions outside the chunk's local bounds count as air, so no
// cross-chunk culling happens and chunk borders always close. No greedy
// merging: each exposed face is its own quad.
func Build(c *world.Chunk, opts Options) *Mesh {
	m := &Mesh{}
	colors := newColorizer(c, opts)

	size := c.Size()
	height := c.Height()
	for y := 0; y < height; y++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				id := c.Get(x, y, z)
				if id == world.BlockAir {
					continue
				}
				for _, f := range faces {
					if c.Get(x+f.dx, y+f.dy, z+f.dz) != world.BlockAir {
						continue
					}
					m.emitQuad(x, y, z, f, id, colors)
				}
			}
		}
	}
	return m
}

// emitQuad appends one face: 4 vertices, 2 triangles with consistent
// winding for an outward-facing normal.
func (m *Mesh) emitQuad(x, y, z int, f faceDef, id world.BlockID, colors *colorizer) {
	base := uint32(len(m.Positions))
	for _, corner := range f.corners {
		vx := float32(x + corner[0])
		vy := float32(y + corner[1])
		vz := float32(z + corner[2])
		m.Positions = append(m.Positions, mgl32.Vec3{vx, vy, vz})
		m.Normals = append(m.Normals, f.normal)
		m.Colors = append(m.Colors, colors.vertexColor(x, z, float64(y+corner[1]), id))
	}
	m.indices = append(m.indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)
}
