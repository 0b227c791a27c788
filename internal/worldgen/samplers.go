package worldgen

// BiomeWeights is the per-column biome mix: four non-negative weights that
// either sum to 1 (land) or are all zero (void, floating-island mode only).
type BiomeWeights struct {
	Plains    float64
	Hills     float64
	Mountains float64
	Plateau   float64
}

// Sum returns the total weight, used for the land/void classification.
func (b BiomeWeights) Sum() float64 {
	return b.Plains + b.Hills + b.Mountains + b.Plateau
}

// Normalized returns the weights scaled to sum to 1. Zero-sum input falls
// back to pure plains so degenerate vectors never divide by zero.
func (b BiomeWeights) Normalized() BiomeWeights {
	s := b.Sum()
	if s <= 0 {
		return BiomeWeights{Plains: 1}
	}
	return BiomeWeights{
		Plains:    b.Plains / s,
		Hills:     b.Hills / s,
		Mountains: b.Mountains / s,
		Plateau:   b.Plateau / s,
	}
}

// FeatureWeights is the per-column road and river strength, each in [0,1]
// and independent of the other.
type FeatureWeights struct {
	Road  float64
	River float64
}

// BiomeSampler supplies biome weights for a world column center. Samples
// must be stable for the duration of a generation run.
type BiomeSampler interface {
	SampleBiomeWeights01(wx, wz float64) BiomeWeights
}

// FeatureSampler supplies road/river strengths for a world column center.
type FeatureSampler interface {
	SampleFeatureWeights01(wx, wz float64) FeatureWeights
}

// DistanceSampler supplies the normalized distance-to-void for a world
// position; 0 outside the mask rectangle. Only consulted in
// floating-island mode.
type DistanceSampler interface {
	SampleIslandDistance01(wx, wz float64) float64
}

// maskGridProvider is implemented by mask-backed biome samplers that can
// expose their pixel grid, letting the generator run the distance transform
// on the mask's native resolution instead of resampling per column.
type maskGridProvider interface {
	MaskGrid() (w, h int, sums []float64, rect MaskRect)
}

// uniformBiomes is the fallback when no biome mask is supplied: a gentle
// plains-leaning mix everywhere.
type uniformBiomes struct{}

func (uniformBiomes) SampleBiomeWeights01(wx, wz float64) BiomeWeights {
	return BiomeWeights{Plains: 0.7, Hills: 0.2, Mountains: 0.1}
}

// zeroFeatures is the fallback when no feature mask is supplied.
type zeroFeatures struct{}

func (zeroFeatures) SampleFeatureWeights01(wx, wz float64) FeatureWeights {
	return FeatureWeights{}
}

// zeroDistance is the fallback distance sampler.
type zeroDistance struct{}

func (zeroDistance) SampleIslandDistance01(wx, wz float64) float64 { return 0 }
