package world

// World is a finite grid of chunks keyed by (chunkX, chunkZ). All chunks
// are allocated up front; generation, carving and meshing mutate them in
// place and never add or remove chunks.
type World struct {
	Seed int64

	ChunksX, ChunksZ       int
	ChunkSize, ChunkHeight int

	chunks map[[2]int]*Chunk
}

// NewWorld allocates an all-air world of chunksX x chunksZ chunks.
// Degenerate dimensions are clamped to 1 so indexing stays valid.
func NewWorld(seed int64, chunksX, chunksZ, chunkSize, chunkHeight int) *World {
	chunksX = max(chunksX, 1)
	chunksZ = max(chunksZ, 1)
	chunkSize = max(chunkSize, 1)
	chunkHeight = max(chunkHeight, 1)

	w := &World{
		Seed:        seed,
		ChunksX:     chunksX,
		ChunksZ:     chunksZ,
		ChunkSize:   chunkSize,
		ChunkHeight: chunkHeight,
		chunks:      make(map[[2]int]*Chunk, chunksX*chunksZ),
	}
	for cz := 0; cz < chunksZ; cz++ {
		for cx := 0; cx < chunksX; cx++ {
			w.chunks[[2]int{cx, cz}] = NewChunk(cx, cz, chunkSize, chunkHeight)
		}
	}
	return w
}

// SizeX returns the world width in columns.
func (w *World) SizeX() int { return w.ChunksX * w.ChunkSize }

// SizeZ returns the world depth in columns.
func (w *World) SizeZ() int { return w.ChunksZ * w.ChunkSize }

// Chunk returns the chunk at the given chunk coordinates, or nil when the
// coordinates fall outside the world.
func (w *World) Chunk(cx, cz int) *Chunk {
	return w.chunks[[2]int{cx, cz}]
}

// Chunks returns every chunk in row-major (z, then x) order. The order is
// stable so that iteration, saving and meshing stay deterministic.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, w.ChunksX*w.ChunksZ)
	for cz := 0; cz < w.ChunksZ; cz++ {
		for cx := 0; cx < w.ChunksX; cx++ {
			if c := w.chunks[[2]int{cx, cz}]; c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// ResolveColumn maps a world column to its chunk and local coordinates.
// It returns ok=false for columns outside the world bounds.
func (w *World) ResolveColumn(wx, wz int) (c *Chunk, lx, lz int, ok bool) {
	if wx < 0 || wx >= w.SizeX() || wz < 0 || wz >= w.SizeZ() {
		return nil, 0, 0, false
	}
	c = w.Chunk(wx/w.ChunkSize, wz/w.ChunkSize)
	if c == nil {
		return nil, 0, 0, false
	}
	return c, wx % w.ChunkSize, wz % w.ChunkSize, true
}

// Get returns the material at world coordinates; out-of-bounds reads are air.
func (w *World) Get(wx, wy, wz int) BlockID {
	c, lx, lz, ok := w.ResolveColumn(wx, wz)
	if !ok {
		return BlockAir
	}
	return c.Get(lx, wy, lz)
}

// Set writes the material at world coordinates; out-of-bounds writes are no-ops.
func (w *World) Set(wx, wy, wz int, id BlockID) {
	c, lx, lz, ok := w.ResolveColumn(wx, wz)
	if !ok {
		return
	}
	c.Set(lx, wy, lz, id)
}

// IsAir checks if the voxel at world coordinates is air.
func (w *World) IsAir(wx, wy, wz int) bool {
	return w.Get(wx, wy, wz) == BlockAir
}

// TopY returns the Y of the topmost non-air voxel of a world column, or -1
// for empty or out-of-bounds columns.
func (w *World) TopY(wx, wz int) int {
	c, lx, lz, ok := w.ResolveColumn(wx, wz)
	if !ok {
		return -1
	}
	return c.TopY(lx, lz)
}
