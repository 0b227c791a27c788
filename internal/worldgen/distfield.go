package worldgen

import "math"

// MaskRect maps a mask pixel grid onto a world-space rectangle.
type MaskRect struct {
	MinX, MinZ   float64
	SizeX, SizeZ float64
}

// Contains reports whether a world position falls inside the rectangle.
func (r MaskRect) Contains(wx, wz float64) bool {
	return wx >= r.MinX && wx < r.MinX+r.SizeX && wz >= r.MinZ && wz < r.MinZ+r.SizeZ
}

// VoidDistanceField holds, per mask pixel, the normalized [0,1] distance to
// the nearest void pixel or image border. It is computed once per world and
// read-only afterwards.
type VoidDistanceField struct {
	w, h int
	dist []float64
	rect MaskRect
}

const chamferDiagonal = math.Sqrt2

// ComputeVoidDistanceField classifies each pixel of a WxH grid of
// biome-weight sums as land (sum > voidThreshold) or void and runs a
// two-pass chamfer distance transform: unit cost for axis steps, sqrt(2)
// for diagonal steps. Void pixels and land pixels on the image border start
// at distance 0 (the map edge counts as void); the result is divided by the
// maximum land distance (at least 1) and clamped to [0,1].
func ComputeVoidDistanceField(sums []float64, w, h int, voidThreshold float64, rect MaskRect) *VoidDistanceField {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dist := make([]float64, w*h)
	land := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			isLand := i < len(sums) && sums[i] > voidThreshold
			land[i] = isLand
			onBorder := x == 0 || y == 0 || x == w-1 || y == h-1
			if !isLand || onBorder {
				dist[i] = 0
			} else {
				dist[i] = math.Inf(1)
			}
		}
	}

	relax := func(i int, x, y, dx, dy int, cost float64) {
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			return
		}
		if d := dist[ny*w+nx] + cost; d < dist[i] {
			dist[i] = d
		}
	}

	// forward pass: relax from top/left neighbors
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !land[i] {
				continue
			}
			relax(i, x, y, -1, 0, 1)
			relax(i, x, y, 0, -1, 1)
			relax(i, x, y, -1, -1, chamferDiagonal)
			relax(i, x, y, 1, -1, chamferDiagonal)
		}
	}
	// backward pass: relax from bottom/right neighbors
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			if !land[i] {
				continue
			}
			relax(i, x, y, 1, 0, 1)
			relax(i, x, y, 0, 1, 1)
			relax(i, x, y, 1, 1, chamferDiagonal)
			relax(i, x, y, -1, 1, chamferDiagonal)
		}
	}

	maxDist := 0.0
	for i, d := range dist {
		if land[i] && !math.IsInf(d, 1) && d > maxDist {
			maxDist = d
		}
	}
	if maxDist < 1 {
		maxDist = 1
	}
	for i := range dist {
		if !land[i] || math.IsInf(dist[i], 1) {
			dist[i] = 0
			continue
		}
		dist[i] = clampF(dist[i]/maxDist, 0, 1)
	}

	return &VoidDistanceField{w: w, h: h, dist: dist, rect: rect}
}

// At returns the raw normalized distance at a pixel; out-of-grid pixels are 0.
func (f *VoidDistanceField) At(px, py int) float64 {
	if px < 0 || px >= f.w || py < 0 || py >= f.h {
		return 0
	}
	return f.dist[py*f.w+px]
}

// SampleIslandDistance01 converts a world position to mask-pixel space and
// bilinearly interpolates the four surrounding distances. Positions outside
// the mask rectangle return 0.
func (f *VoidDistanceField) SampleIslandDistance01(wx, wz float64) float64 {
	if !f.rect.Contains(wx, wz) {
		return 0
	}
	u := (wx - f.rect.MinX) / f.rect.SizeX * float64(f.w-1)
	v := (wz - f.rect.MinZ) / f.rect.SizeZ * float64(f.h-1)
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	d00 := f.At(x0, y0)
	d10 := f.At(x0+1, y0)
	d01 := f.At(x0, y0+1)
	d11 := f.At(x0+1, y0+1)
	return lerp(lerp(d00, d10, fx), lerp(d01, d11, fx), fy)
}
