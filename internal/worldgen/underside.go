package worldgen

import "math"

// Underside noise frequencies, in cycles per voxel.
const (
	bodyWarpFreq  = 1.0 / 72.0
	ridgeFreq     = 1.0 / 20.0
	lobeCount     = 3.0
	spireRadius01 = 0.22 // fraction of the world radius covered by the spike
)

// UndersideShaper computes the lower bound elevation of a floating island
// column: the shell between the surface and this bottom is filled, below
// it is open sky.
//
// This is the warped-lobe body variant: the island's inward edge distance
// and a radial falloff from the world center combine into a single
// "centerness" measure, which is warped by low-frequency noise and
// asymmetric angular lobes before being mapped through a power curve to a
// thickness. The rim is thinned, the middle thickened into a tapering
// central spike, and ridged noise breaks the silhouette up so the island
// does not read as a smooth saucer.
type UndersideShaper struct {
	chunkHeight      int
	params           ShapeParams
	noise            *noiseSet
	centerX, centerZ float64
	radius           float64
}

// NewUndersideShaper builds a shaper for a world of worldSizeX x worldSizeZ
// columns. Determinism follows from the seed exactly as in HeightSynth.
func NewUndersideShaper(seed int64, chunkHeight, worldSizeX, worldSizeZ int, params ShapeParams) *UndersideShaper {
	radius := math.Hypot(float64(worldSizeX), float64(worldSizeZ)) * 0.5
	if radius < 1 {
		radius = 1
	}
	return &UndersideShaper{
		chunkHeight: max(chunkHeight, 16),
		params:      params.sanitized(),
		noise:       newNoiseSet(seed),
		centerX:     float64(worldSizeX) * 0.5,
		centerZ:     float64(worldSizeZ) * 0.5,
		radius:      radius,
	}
}

// BottomY returns the bottom elevation for the column at (wx,wz) with the
// given surface elevation and edge distance. The result always satisfies
// 0 <= bottomY <= surfaceY-3: the island never touches the grid floor and
// the shell never collapses below three voxels.
func (u *UndersideShaper) BottomY(wx, wz, surfaceY int, edge01 float64) int {
	edge01 = clampF(edge01, 0, 1)
	fx := float64(wx)
	fz := float64(wz)
	dx := fx - u.centerX
	dz := fz - u.centerZ
	r01 := clampF(math.Hypot(dx, dz)/u.radius, 0, 1)

	// Centerness blends the mask's inward distance with the radial falloff
	// so detached mask blobs still thin out away from the world middle.
	center01 := clampF(edge01*0.65+(1-r01)*0.35, 0, 1)

	// Angular lobes make the silhouette asymmetric; the warp noise keeps
	// the lobes themselves from being perfectly periodic.
	ang := math.Atan2(dz, dx)
	lobe := math.Sin(ang*lobeCount+sampleSigned(u.noise.warp, fx*bodyWarpFreq, fz*bodyWarpFreq)*2.0)
	center01 = clampF(center01+0.12*lobe*(1-center01), 0, 1)
	center01 = clampF(center01+0.18*sampleSigned(u.noise.body, fx*bodyWarpFreq, fz*bodyWarpFreq)*(1-center01), 0, 1)

	// Power curve: thin rim, thick body.
	t := u.params.MinThickness +
		(u.params.MaxThickness-u.params.MinThickness)*math.Pow(center01, 1.8)

	// Extra rim thinning below centerness 0.25.
	if center01 < 0.25 {
		t *= 0.55 + 0.45*(center01/0.25)
	}

	// Tapering central spike so the underside has a tip rather than a
	// uniform bowl.
	if r01 < spireRadius01 {
		taper := 1 - r01/spireRadius01
		t += u.params.SpireHeight * taper * taper
	}

	// Ridged breakup for a rocky profile.
	t *= 1 + 0.22*(sampleRidged(u.noise.ridge, fx*ridgeFreq, fz*ridgeFreq)-0.5)

	thickness := u.noise.stochasticRound(t, wx, wz)
	thickness = clampI(thickness, 3, surfaceY)
	bottom := surfaceY - thickness
	if bottom < 0 {
		bottom = 0
	}
	if bottom > surfaceY-3 {
		bottom = surfaceY - 3
		if bottom < 0 {
			bottom = 0
		}
	}
	return bottom
}
