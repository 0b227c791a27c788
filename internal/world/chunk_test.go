package world

import "testing"

func TestChunkSetGet(t *testing.T) {
	c := NewChunk(0, 0, 16, 64)

	if b := c.Get(3, 10, 7); b != BlockAir {
		t.Errorf("Expected fresh chunk to be air, got %v", b)
	}

	c.Set(3, 10, 7, BlockSolid)
	if b := c.Get(3, 10, 7); b != BlockSolid {
		t.Errorf("Expected Solid at 3,10,7, got %v", b)
	}

	// Neighbors must stay untouched
	if b := c.Get(4, 10, 7); b != BlockAir {
		t.Errorf("Expected Air at 4,10,7, got %v", b)
	}
	if b := c.Get(3, 11, 7); b != BlockAir {
		t.Errorf("Expected Air at 3,11,7, got %v", b)
	}
}

func TestChunkOutOfBoundsReadsAir(t *testing.T) {
	c := NewChunk(0, 0, 16, 64)
	c.Set(0, 0, 0, BlockStone)

	cases := [][3]int{
		{-1, 0, 0}, {16, 0, 0},
		{0, -1, 0}, {0, 64, 0},
		{0, 0, -1}, {0, 0, 16},
	}
	for _, p := range cases {
		if b := c.Get(p[0], p[1], p[2]); b != BlockAir {
			t.Errorf("Expected Air at out-of-range %v, got %v", p, b)
		}
	}
}

func TestChunkOutOfBoundsWriteIsDropped(t *testing.T) {
	c := NewChunk(0, 0, 8, 32)
	c.Set(-1, 0, 0, BlockSolid)
	c.Set(8, 31, 7, BlockSolid)
	c.Set(0, 32, 0, BlockSolid)

	for y := 0; y < c.Height(); y++ {
		for z := 0; z < c.Size(); z++ {
			for x := 0; x < c.Size(); x++ {
				if !c.IsAir(x, y, z) {
					t.Fatalf("Out-of-range write leaked into %d,%d,%d", x, y, z)
				}
			}
		}
	}
}

func TestChunkTopY(t *testing.T) {
	c := NewChunk(0, 0, 16, 64)

	if top := c.TopY(5, 5); top != -1 {
		t.Errorf("Expected empty column TopY -1, got %d", top)
	}

	c.Set(5, 0, 5, BlockStone)
	c.Set(5, 12, 5, BlockSolid)
	if top := c.TopY(5, 5); top != 12 {
		t.Errorf("Expected TopY 12, got %d", top)
	}

	if top := c.TopY(-1, 5); top != -1 {
		t.Errorf("Expected out-of-range TopY -1, got %d", top)
	}
}

func TestWorldResolveColumn(t *testing.T) {
	w := NewWorld(1, 2, 2, 16, 64)

	c, lx, lz, ok := w.ResolveColumn(17, 30)
	if !ok {
		t.Fatal("Expected in-bounds column to resolve")
	}
	if c.CX != 1 || c.CZ != 1 {
		t.Errorf("Expected chunk 1,1, got %d,%d", c.CX, c.CZ)
	}
	if lx != 1 || lz != 14 {
		t.Errorf("Expected local 1,14, got %d,%d", lx, lz)
	}

	if _, _, _, ok := w.ResolveColumn(-1, 0); ok {
		t.Error("Expected negative column to miss")
	}
	if _, _, _, ok := w.ResolveColumn(32, 0); ok {
		t.Error("Expected column past the world edge to miss")
	}
}

func TestWorldGetSetAcrossChunks(t *testing.T) {
	w := NewWorld(1, 2, 2, 16, 64)

	w.Set(20, 5, 3, BlockDirt)
	if b := w.Get(20, 5, 3); b != BlockDirt {
		t.Errorf("Expected Dirt at 20,5,3, got %v", b)
	}
	if b := w.Chunk(1, 0).Get(4, 5, 3); b != BlockDirt {
		t.Errorf("Expected write to land in chunk 1,0 local 4,5,3, got %v", b)
	}

	if b := w.Get(-5, 0, 0); b != BlockAir {
		t.Errorf("Expected Air outside the world, got %v", b)
	}
}

func TestWorldChunksOrderIsDeterministic(t *testing.T) {
	w := NewWorld(1, 3, 2, 8, 32)

	chunks := w.Chunks()
	if len(chunks) != 6 {
		t.Fatalf("Expected 6 chunks, got %d", len(chunks))
	}
	i := 0
	for cz := 0; cz < 2; cz++ {
		for cx := 0; cx < 3; cx++ {
			if chunks[i].CX != cx || chunks[i].CZ != cz {
				t.Errorf("Expected chunk %d,%d at index %d, got %d,%d",
					cx, cz, i, chunks[i].CX, chunks[i].CZ)
			}
			i++
		}
	}
}
