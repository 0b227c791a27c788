package worldgen

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin generator construction parameters. Alpha is the weight falloff
// between octaves, beta the frequency multiplier; see aquilax/go-perlin.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// Seed offsets keep every consumer on an independent noise lattice while
// remaining a pure function of the world seed.
const (
	seedTerrain = 0
	seedDetail  = 1009
	seedWarp    = 2003
	seedCrest   = 3001
	seedBody    = 4001
	seedRidge   = 5003
	seedDither  = 6007
)

// noiseSet bundles the deterministic perlin generators used across the
// synthesis pipeline. Sampling is read-only, so a single set is shared by
// all fill workers.
type noiseSet struct {
	terrain *perlin.Perlin
	detail  *perlin.Perlin
	warp    *perlin.Perlin
	crest   *perlin.Perlin
	body    *perlin.Perlin
	ridge   *perlin.Perlin
	dither  *perlin.Perlin
}

func newNoiseSet(seed int64) *noiseSet {
	mk := func(off int64) *perlin.Perlin {
		return perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed+off)
	}
	return &noiseSet{
		terrain: mk(seedTerrain),
		detail:  mk(seedDetail),
		warp:    mk(seedWarp),
		crest:   mk(seedCrest),
		body:    mk(seedBody),
		ridge:   mk(seedRidge),
		dither:  mk(seedDither),
	}
}

// sample01 maps a perlin sample to [0,1]. The underlying generator is not
// strictly bounded to [-1,1], so the result is clamped.
func sample01(p *perlin.Perlin, x, z float64) float64 {
	return clampF((p.Noise2D(x, z)+1)*0.5, 0, 1)
}

// sampleSigned maps a perlin sample to [-1,1].
func sampleSigned(p *perlin.Perlin, x, z float64) float64 {
	return clampF(p.Noise2D(x, z), -1, 1)
}

// sampleRidged folds a perlin sample into a ridged [0,1] profile with sharp
// creases at the zero crossings, used for rock-like breakup.
func sampleRidged(p *perlin.Perlin, x, z float64) float64 {
	return 1 - math.Abs(sampleSigned(p, x, z))
}

// stochasticRound rounds v down or up by comparing its fractional part
// against a low-frequency dither sample at the same column. Naive rounding
// of slowly varying heights produces visible terracing; dithering the
// threshold breaks the contour rings up while staying deterministic.
func (n *noiseSet) stochasticRound(v float64, wx, wz int) int {
	floor := math.Floor(v)
	frac := v - floor
	threshold := sample01(n.dither, float64(wx)*0.11, float64(wz)*0.11)
	if frac > threshold {
		return int(floor) + 1
	}
	return int(floor)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothstep maps t in [edge0,edge1] to a smooth [0,1] ramp.
func smoothstep(edge0, edge1, t float64) float64 {
	if edge1 <= edge0 {
		if t < edge0 {
			return 0
		}
		return 1
	}
	u := clampF((t-edge0)/(edge1-edge0), 0, 1)
	return u * u * (3 - 2*u)
}
