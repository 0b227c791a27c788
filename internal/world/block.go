package world

// BlockID identifies a voxel material. Voxels are stored as one byte each.
type BlockID uint8

const (
	BlockAir BlockID = iota
	BlockSolid
	BlockRoad
	BlockRiverbed
	BlockWater // reserved for a later water pass; never written by the generator
	BlockStone
	BlockDirt

	blockCount
)

// IsValid reports whether id is a known material.
func (id BlockID) IsValid() bool {
	return id < blockCount
}

func (id BlockID) String() string {
	switch id {
	case BlockAir:
		return "air"
	case BlockSolid:
		return "solid"
	case BlockRoad:
		return "road"
	case BlockRiverbed:
		return "riverbed"
	case BlockWater:
		return "water"
	case BlockStone:
		return "stone"
	case BlockDirt:
		return "dirt"
	default:
		return "unknown"
	}
}
