package world

// Chunk owns a dense size x height x size grid of material IDs plus its
// integer grid coordinates. The grid is allocated once and never resized.
type Chunk struct {
	CX, CZ int

	size   int
	height int
	blocks []BlockID
}

// NewChunk allocates an all-air chunk at the given chunk coordinates.
func NewChunk(cx, cz, size, height int) *Chunk {
	return &Chunk{
		CX:     cx,
		CZ:     cz,
		size:   size,
		height: height,
		blocks: make([]BlockID, size*height*size),
	}
}

// Size returns the chunk edge length in voxels.
func (c *Chunk) Size() int { return c.size }

// Height returns the chunk height in voxels.
func (c *Chunk) Height() int { return c.height }

// Volume returns the total voxel count of the chunk.
func (c *Chunk) Volume() int { return len(c.blocks) }

// index flattens local coordinates so that x varies fastest, then z, then y.
// The save format streams runs in this exact order.
func (c *Chunk) index(x, y, z int) int {
	return (y*c.size+z)*c.size + x
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.height && z >= 0 && z < c.size
}

// Get returns the material at the specified local coordinates.
// Out-of-range coordinates read as air so that meshing and carving can
// probe past the chunk border without special cases.
func (c *Chunk) Get(x, y, z int) BlockID {
	if !c.inBounds(x, y, z) {
		return BlockAir
	}
	return c.blocks[c.index(x, y, z)]
}

// Set writes the material at the specified local coordinates.
// Out-of-range writes are silently dropped.
func (c *Chunk) Set(x, y, z int, id BlockID) {
	if !c.inBounds(x, y, z) {
		return
	}
	c.blocks[c.index(x, y, z)] = id
}

// IsAir checks if the voxel at the specified local coordinates is air.
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.Get(x, y, z) == BlockAir
}

// TopY returns the Y of the topmost non-air voxel in the (x,z) column,
// or -1 when the column is empty.
func (c *Chunk) TopY(x, z int) int {
	if x < 0 || x >= c.size || z < 0 || z >= c.size {
		return -1
	}
	for y := c.height - 1; y >= 0; y-- {
		if c.blocks[c.index(x, y, z)] != BlockAir {
			return y
		}
	}
	return -1
}
