package worldgen

import (
	"math"

	"github.com/holyfoxgames-hue/cubicmage/internal/world"
)

// CarverParams configures the feature carving pass. Widths and depths are
// in voxels; thresholds apply to the sampled feature weights.
type CarverParams struct {
	RoadThreshold   float64
	RoadWidth       float64
	RoadFade        float64
	RoadFlatten     float64 // 0..1, how hard roads pull toward the neighborhood mean
	RiverThreshold  float64
	RiverWidth      float64
	RiverBankWidth  float64
	RiverBedDepth   float64
	RiverBankHeight float64
}

func (p CarverParams) sanitized() CarverParams {
	p.RoadWidth = math.Max(p.RoadWidth, 0.5)
	p.RoadFade = math.Max(p.RoadFade, 0)
	p.RoadFlatten = clampF(p.RoadFlatten, 0, 1)
	p.RiverWidth = math.Max(p.RiverWidth, 0.5)
	p.RiverBankWidth = math.Max(p.RiverBankWidth, 0)
	p.RiverBedDepth = math.Max(p.RiverBedDepth, 1)
	p.RiverBankHeight = math.Max(p.RiverBankHeight, 0)
	if p.RoadThreshold <= 0 {
		p.RoadThreshold = 0.5
	}
	if p.RiverThreshold <= 0 {
		p.RiverThreshold = 0.5
	}
	return p
}

// FeatureCarver runs once over every world column after all chunks are
// filled and carves roads and rivers into the terrain. It re-derives
// surface heights from the voxel data itself, because the fill phase's
// synthesized heights are no longer authoritative once neighbors have been
// carved. Carving reads 3x3 neighborhoods that may span chunk borders, so
// this pass is serialized; see Generator.
type FeatureCarver struct {
	w        *world.World
	features FeatureSampler
	params   CarverParams

	// fallbackSurface is used as the road target elevation when no column
	// in the 3x3 neighborhood resolves to a surface.
	fallbackSurface int

	// origTop snapshots every column's surface height before the pass.
	// River beds and bank heights are bounded against these, never
	// against already-carved terrain: overlapping brushes must not
	// compound.
	origTop []int
	// carved marks river-carved columns. Later brushes skip them, both
	// for re-carving and for bank raises that would bury the bed marker.
	carved []bool
}

// NewFeatureCarver builds a carver over a fully filled world. Columns whose
// chunk is missing or that fall outside the world are skipped, never
// errors.
func NewFeatureCarver(w *world.World, features FeatureSampler, params CarverParams, fallbackSurface int) *FeatureCarver {
	if features == nil {
		features = zeroFeatures{}
	}
	return &FeatureCarver{
		w:               w,
		features:        features,
		params:          params.sanitized(),
		fallbackSurface: clampI(fallbackSurface, 0, w.ChunkHeight-1),
	}
}

// Run performs the carving pass over the whole world.
func (fc *FeatureCarver) Run() {
	sizeX := fc.w.SizeX()
	sizeZ := fc.w.SizeZ()
	fc.origTop = make([]int, sizeX*sizeZ)
	fc.carved = make([]bool, sizeX*sizeZ)
	for wz := 0; wz < sizeZ; wz++ {
		for wx := 0; wx < sizeX; wx++ {
			fc.origTop[wz*sizeX+wx] = fc.w.TopY(wx, wz)
		}
	}
	for wz := 0; wz < sizeZ; wz++ {
		for wx := 0; wx < sizeX; wx++ {
			fw := fc.features.SampleFeatureWeights01(float64(wx)+0.5, float64(wz)+0.5)
			if fw.River >= fc.params.RiverThreshold {
				fc.carveRiver(wx, wz)
			}
			if fw.Road >= fc.params.RoadThreshold {
				fc.flattenRoad(wx, wz)
			}
		}
	}
}

// carveRiver removes terrain down to a noise-free bed curve inside the
// river width and raises a bank in the [width, width+bank] annulus. The
// riverbed marker lands exactly one voxel below the lowest carved cell of
// each column.
func (fc *FeatureCarver) carveRiver(cx, cz int) {
	p := fc.params
	sizeX := fc.w.SizeX()
	sizeZ := fc.w.SizeZ()
	radius := int(math.Ceil(p.RiverWidth + p.RiverBankWidth))
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			wx := cx + dx
			wz := cz + dz
			if wx < 0 || wx >= sizeX || wz < 0 || wz >= sizeZ {
				continue
			}
			idx := wz*sizeX + wx
			origTop := fc.origTop[idx]
			if origTop < 0 {
				continue // empty column
			}
			d := math.Hypot(float64(dx), float64(dz))
			switch {
			case d <= p.RiverWidth:
				if fc.carved[idx] {
					// Already carved by an overlapping brush. Re-carving
					// would dig the channel deeper on every pass.
					continue
				}
				// Cosine bed profile: full depth at the centerline, zero
				// at the edge of the channel. No noise here; riverbeds
				// read wrong when they wobble.
				depth := p.RiverBedDepth * 0.5 * (1 + math.Cos(d/p.RiverWidth*math.Pi))
				bedY := origTop - int(math.Round(depth))
				if bedY < 0 {
					bedY = 0
				}
				if bedY >= origTop {
					continue
				}
				// Clear everything above the bed, including bank fill an
				// earlier brush may have stacked on this column.
				top := fc.w.TopY(wx, wz)
				for y := top; y > bedY; y-- {
					fc.w.Set(wx, y, wz, world.BlockAir)
				}
				fc.w.Set(wx, bedY, wz, world.BlockRiverbed)
				fc.carved[idx] = true
			case d <= p.RiverWidth+p.RiverBankWidth && p.RiverBankWidth > 0:
				if fc.carved[idx] {
					continue // banks never bury a carved bed
				}
				t := 1 - (d-p.RiverWidth)/p.RiverBankWidth
				// Bank height is measured from the pre-pass surface, so
				// overlapping brushes converge instead of stacking.
				target := origTop + int(math.Round(p.RiverBankHeight*t))
				if target > fc.w.ChunkHeight-1 {
					target = fc.w.ChunkHeight - 1
				}
				for y := fc.w.TopY(wx, wz) + 1; y <= target; y++ {
					fc.w.Set(wx, y, wz, world.BlockSolid)
				}
			}
		}
	}
}

// flattenRoad pulls the surface toward the 3x3 neighborhood mean surface
// height, filling exposed gaps with solid and cutting raised excess to
// air, then stamps the road marker one level below the new surface.
func (fc *FeatureCarver) flattenRoad(cx, cz int) {
	p := fc.params
	target := fc.neighborhoodSurface(cx, cz)
	radius := int(math.Ceil(p.RoadWidth + p.RoadFade))
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			wx := cx + dx
			wz := cz + dz
			top := fc.w.TopY(wx, wz)
			if top < 0 {
				continue
			}
			d := math.Hypot(float64(dx), float64(dz))
			if d > p.RoadWidth+p.RoadFade {
				continue
			}
			falloff := 1.0
			if d > p.RoadWidth && p.RoadFade > 0 {
				falloff = 1 - (d-p.RoadWidth)/p.RoadFade
			}
			strength := falloff * p.RoadFlatten
			newTop := int(math.Round(lerp(float64(top), float64(target), strength)))
			newTop = clampI(newTop, 0, fc.w.ChunkHeight-1)
			switch {
			case newTop < top:
				for y := top; y > newTop; y-- {
					fc.w.Set(wx, y, wz, world.BlockAir)
				}
			case newTop > top:
				for y := top + 1; y <= newTop; y++ {
					fc.w.Set(wx, y, wz, world.BlockSolid)
				}
			}
			fc.w.Set(wx, newTop, wz, world.BlockRoad)
		}
	}
}

// neighborhoodSurface averages the surface height over the 3x3 columns
// around (cx,cz). Columns that do not resolve are ignored; if none
// resolve, the configured fallback elevation is returned.
func (fc *FeatureCarver) neighborhoodSurface(cx, cz int) int {
	sum := 0
	n := 0
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if top := fc.w.TopY(cx+dx, cz+dz); top >= 0 {
				sum += top
				n++
			}
		}
	}
	if n == 0 {
		return fc.fallbackSurface
	}
	return sum / n
}
