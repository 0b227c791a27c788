package worldgen

import "math"

// Noise frequencies for surface synthesis, in cycles per voxel.
const (
	surfaceFreq = 1.0 / 48.0
	detailFreq  = 1.0 / 16.0
	crestFreq   = 1.0 / 24.0
	warpFreq    = 1.0 / 96.0
	warpAmp     = 12.0
)

// baseHeights holds the fixed per-biome base elevations, derived once from
// the chunk height.
type baseHeights struct {
	plains, hills, mountains, plateau float64
}

func newBaseHeights(chunkHeight int) baseHeights {
	h := float64(chunkHeight)
	return baseHeights{
		plains:    h * 0.30,
		hills:     h * 0.38,
		mountains: h * 0.50,
		plateau:   h * 0.44,
	}
}

// HeightSynth computes the terrain surface elevation for a world column.
// It is a pure function of the column coordinates, the biome weights, the
// edge distance and the world seed; repeated calls return identical
// results, which is what makes parallel chunk filling safe.
type HeightSynth struct {
	chunkHeight int
	island      bool
	params      ShapeParams
	base        baseHeights
	noise       *noiseSet
}

// NewHeightSynth builds a synthesizer for the given seed and chunk height.
// Pass island=true to enable edge damping, cliff drop and lift.
func NewHeightSynth(seed int64, chunkHeight int, island bool, params ShapeParams) *HeightSynth {
	chunkHeight = max(chunkHeight, 16)
	return &HeightSynth{
		chunkHeight: chunkHeight,
		island:      island,
		params:      params.sanitized(),
		base:        newBaseHeights(chunkHeight),
		noise:       newNoiseSet(seed),
	}
}

// SurfaceY returns the integer surface elevation for the column at (wx,wz).
// edge01 is the normalized distance to the island rim; pass 1 when
// floating-island mode is off. The result is clamped to
// [6, chunkHeight-2].
func (s *HeightSynth) SurfaceY(wx, wz int, bw BiomeWeights, edge01 float64) int {
	bw = bw.Normalized()
	edge01 = clampF(edge01, 0, 1)

	// Domain-warp the sample position with a very low frequency offset so
	// the height contours never line up into visible rings.
	fx := float64(wx)
	fz := float64(wz)
	sx := fx + warpAmp*sampleSigned(s.noise.warp, fx*warpFreq, fz*warpFreq)
	sz := fz + warpAmp*sampleSigned(s.noise.warp, fz*warpFreq+517.0, fx*warpFreq)

	base := bw.Plains*s.base.plains + bw.Hills*s.base.hills +
		bw.Mountains*s.base.mountains + bw.Plateau*s.base.plateau

	// Two blended coherent octaves; mountains widen the amplitude.
	amp := float64(s.chunkHeight)*0.05 + bw.Mountains*float64(s.chunkHeight)*0.16
	n1 := sampleSigned(s.noise.terrain, sx*surfaceFreq, sz*surfaceFreq)
	n2 := sampleSigned(s.noise.detail, sx*detailFreq, sz*detailFreq)
	noise := 0.65*n1 + 0.35*n2

	islandOffset := 0.0
	if s.island {
		// Calm the noise near the rim and drop the terrain toward it.
		amp *= smoothstep(0, 0.35, edge01)
		islandOffset = float64(s.params.Lift) -
			s.params.CliffDrop*math.Pow(1-edge01, s.params.CliffPower)
	}

	height := base + islandOffset + noise*amp

	// Mountain crest bonus: ridged noise sharpens peaks, squared weight
	// keeps it out of mixed-biome transition zones.
	if bw.Mountains > 0 {
		crest := sampleRidged(s.noise.crest, sx*crestFreq, sz*crestFreq)
		height += bw.Mountains * bw.Mountains * crest * float64(s.chunkHeight) * 0.10
		height += bw.Mountains * float64(s.chunkHeight) * 0.02
	}

	// Plateau flattening: pull the column back toward its base elevation.
	height = lerp(height, base+islandOffset, bw.Plateau*0.85)

	y := s.noise.stochasticRound(height, wx, wz)
	return clampI(y, 6, s.chunkHeight-2)
}
