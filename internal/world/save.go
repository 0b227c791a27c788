package world

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Save format: a fixed little-endian header followed by one run-length
// encoded block stream per chunk, chunks in row-major (z, then x) order.
// Runs are (runLength int32, material byte) pairs covering the chunk's
// voxels with x varying fastest, then z, then y. Runs never span chunks.
const (
	saveMagic   uint32 = 0x43554257 // "CUBW"
	saveVersion uint16 = 1
)

type saveHeader struct {
	Magic       uint32
	Version     uint16
	_           uint16 // padding, written as zero
	Seed        int64
	ChunksX     int32
	ChunksZ     int32
	ChunkSize   int32
	ChunkHeight int32
}

// Save writes the whole world to w in the RLE format above.
func (wd *World) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	hdr := saveHeader{
		Magic:       saveMagic,
		Version:     saveVersion,
		Seed:        wd.Seed,
		ChunksX:     int32(wd.ChunksX),
		ChunksZ:     int32(wd.ChunksZ),
		ChunkSize:   int32(wd.ChunkSize),
		ChunkHeight: int32(wd.ChunkHeight),
	}
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range wd.Chunks() {
		if err := writeChunkRuns(bw, c); err != nil {
			return fmt.Errorf("write chunk (%d,%d): %w", c.CX, c.CZ, err)
		}
	}
	return bw.Flush()
}

func writeChunkRuns(w io.Writer, c *Chunk) error {
	// blocks are already laid out x-fastest, then z, then y
	run := int32(0)
	cur := BlockAir
	flush := func() error {
		if run == 0 {
			return nil
		}
		if err := binary.Write(w, binary.LittleEndian, run); err != nil {
			return err
		}
		_, err := w.Write([]byte{byte(cur)})
		return err
	}
	for _, b := range c.blocks {
		if b == cur {
			run++
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		cur = b
		run = 1
	}
	return flush()
}

// Load reads a world previously written by Save. A truncated, corrupted or
// version-mismatched stream is a fatal error: no world is returned and
// nothing the caller holds is modified.
func Load(r io.Reader) (*World, error) {
	br := bufio.NewReader(r)
	var hdr saveHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if hdr.Magic != saveMagic {
		return nil, fmt.Errorf("bad magic 0x%08x: not a world file", hdr.Magic)
	}
	if hdr.Version != saveVersion {
		return nil, fmt.Errorf("unsupported world format version %d (want %d)", hdr.Version, saveVersion)
	}
	if hdr.ChunksX <= 0 || hdr.ChunksZ <= 0 || hdr.ChunkSize <= 0 || hdr.ChunkHeight <= 0 {
		return nil, fmt.Errorf("corrupt header: non-positive dimensions %dx%d chunks of %dx%d",
			hdr.ChunksX, hdr.ChunksZ, hdr.ChunkSize, hdr.ChunkHeight)
	}

	w := NewWorld(hdr.Seed, int(hdr.ChunksX), int(hdr.ChunksZ), int(hdr.ChunkSize), int(hdr.ChunkHeight))
	for _, c := range w.Chunks() {
		if err := readChunkRuns(br, c); err != nil {
			return nil, fmt.Errorf("read chunk (%d,%d): %w", c.CX, c.CZ, err)
		}
	}
	return w, nil
}

func readChunkRuns(r io.Reader, c *Chunk) error {
	filled := 0
	volume := c.Volume()
	var buf [1]byte
	for filled < volume {
		var run int32
		if err := binary.Read(r, binary.LittleEndian, &run); err != nil {
			return fmt.Errorf("read run length: %w", err)
		}
		if run <= 0 || filled+int(run) > volume {
			return fmt.Errorf("corrupt run of length %d at voxel %d/%d", run, filled, volume)
		}
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return fmt.Errorf("read material: %w", err)
		}
		id := BlockID(buf[0])
		if !id.IsValid() {
			return fmt.Errorf("corrupt material id %d at voxel %d", buf[0], filled)
		}
		for i := 0; i < int(run); i++ {
			c.blocks[filled+i] = id
		}
		filled += int(run)
	}
	return nil
}

// SaveFile writes the world to a file path, replacing any existing file.
func (wd *World) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := wd.Save(f); err != nil {
		return err
	}
	return f.Close()
}

// LoadFile reads a world from a file path.
func LoadFile(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
