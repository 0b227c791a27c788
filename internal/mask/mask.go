// Package mask provides image-backed implementations of the generation
// sampler interfaces. A painted RGBA mask is resampled onto a fixed grid
// and mapped over a world-space rectangle; the generator only ever sees
// the sampler interfaces, never the image.
package mask

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/holyfoxgames-hue/cubicmage/internal/worldgen"
)

// BiomeMask turns an RGBA image into per-column biome weights:
// R=plains, G=hills, B=mountains, A=plateau. Pixels whose channel sum
// stays at or below the void threshold classify as void (the all-zero
// vector); everything else is normalized to sum to 1.
type BiomeMask struct {
	w, h          int
	weights       []worldgen.BiomeWeights
	sums          []float64
	rect          worldgen.MaskRect
	voidThreshold float64
}

// NewBiomeMask resamples img onto a gridW x gridH grid with bilinear
// filtering and precomputes the weight vectors.
func NewBiomeMask(img image.Image, gridW, gridH int, rect worldgen.MaskRect, voidThreshold float64) *BiomeMask {
	gridW = max(gridW, 1)
	gridH = max(gridH, 1)
	grid := resample(img, gridW, gridH)

	m := &BiomeMask{
		w:             gridW,
		h:             gridH,
		weights:       make([]worldgen.BiomeWeights, gridW*gridH),
		sums:          make([]float64, gridW*gridH),
		rect:          rect,
		voidThreshold: voidThreshold,
	}
	for i := 0; i < gridW*gridH; i++ {
		o := i * 4
		bw := worldgen.BiomeWeights{
			Plains:    float64(grid.Pix[o]) / 255,
			Hills:     float64(grid.Pix[o+1]) / 255,
			Mountains: float64(grid.Pix[o+2]) / 255,
			Plateau:   float64(grid.Pix[o+3]) / 255,
		}
		m.sums[i] = bw.Sum()
		if m.sums[i] > voidThreshold {
			m.weights[i] = bw.Normalized()
		}
	}
	return m
}

// LoadBiomeMask reads a PNG file and builds a biome mask from it.
func LoadBiomeMask(path string, gridW, gridH int, rect worldgen.MaskRect, voidThreshold float64) (*BiomeMask, error) {
	img, err := loadPNG(path)
	if err != nil {
		return nil, err
	}
	return NewBiomeMask(img, gridW, gridH, rect, voidThreshold), nil
}

// SampleBiomeWeights01 bilinearly interpolates the four grid cells around
// a world position. Positions outside the mask rectangle are void.
func (m *BiomeMask) SampleBiomeWeights01(wx, wz float64) worldgen.BiomeWeights {
	if !m.rect.Contains(wx, wz) {
		return worldgen.BiomeWeights{}
	}
	x0, y0, fx, fy := m.cell(wx, wz)
	bw := worldgen.BiomeWeights{
		Plains:    m.bilinear(x0, y0, fx, fy, func(b worldgen.BiomeWeights) float64 { return b.Plains }),
		Hills:     m.bilinear(x0, y0, fx, fy, func(b worldgen.BiomeWeights) float64 { return b.Hills }),
		Mountains: m.bilinear(x0, y0, fx, fy, func(b worldgen.BiomeWeights) float64 { return b.Mountains }),
		Plateau:   m.bilinear(x0, y0, fx, fy, func(b worldgen.BiomeWeights) float64 { return b.Plateau }),
	}
	if bw.Sum() <= m.voidThreshold {
		return worldgen.BiomeWeights{}
	}
	return bw.Normalized()
}

// MaskGrid exposes the native pixel grid for the void distance transform.
func (m *BiomeMask) MaskGrid() (w, h int, sums []float64, rect worldgen.MaskRect) {
	return m.w, m.h, m.sums, m.rect
}

func (m *BiomeMask) cell(wx, wz float64) (x0, y0 int, fx, fy float64) {
	u := (wx - m.rect.MinX) / m.rect.SizeX * float64(m.w-1)
	v := (wz - m.rect.MinZ) / m.rect.SizeZ * float64(m.h-1)
	x0 = int(math.Floor(u))
	y0 = int(math.Floor(v))
	return x0, y0, u - float64(x0), v - float64(y0)
}

func (m *BiomeMask) at(x, y int) worldgen.BiomeWeights {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return worldgen.BiomeWeights{}
	}
	return m.weights[y*m.w+x]
}

func (m *BiomeMask) bilinear(x0, y0 int, fx, fy float64, get func(worldgen.BiomeWeights) float64) float64 {
	v00 := get(m.at(x0, y0))
	v10 := get(m.at(x0+1, y0))
	v01 := get(m.at(x0, y0+1))
	v11 := get(m.at(x0+1, y0+1))
	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fy)
}

// FeatureMask turns the red and green channels of an image into road and
// river strengths, each independently in [0,1].
type FeatureMask struct {
	w, h  int
	road  []float64
	river []float64
	rect  worldgen.MaskRect
}

// NewFeatureMask resamples img onto a gridW x gridH grid.
func NewFeatureMask(img image.Image, gridW, gridH int, rect worldgen.MaskRect) *FeatureMask {
	gridW = max(gridW, 1)
	gridH = max(gridH, 1)
	grid := resample(img, gridW, gridH)

	m := &FeatureMask{
		w:     gridW,
		h:     gridH,
		road:  make([]float64, gridW*gridH),
		river: make([]float64, gridW*gridH),
		rect:  rect,
	}
	for i := 0; i < gridW*gridH; i++ {
		o := i * 4
		m.road[i] = float64(grid.Pix[o]) / 255
		m.river[i] = float64(grid.Pix[o+1]) / 255
	}
	return m
}

// LoadFeatureMask reads a PNG file and builds a feature mask from it.
func LoadFeatureMask(path string, gridW, gridH int, rect worldgen.MaskRect) (*FeatureMask, error) {
	img, err := loadPNG(path)
	if err != nil {
		return nil, err
	}
	return NewFeatureMask(img, gridW, gridH, rect), nil
}

// SampleFeatureWeights01 bilinearly interpolates road and river strength.
// Positions outside the mask rectangle have zero strength.
func (m *FeatureMask) SampleFeatureWeights01(wx, wz float64) worldgen.FeatureWeights {
	if !m.rect.Contains(wx, wz) {
		return worldgen.FeatureWeights{}
	}
	u := (wx - m.rect.MinX) / m.rect.SizeX * float64(m.w-1)
	v := (wz - m.rect.MinZ) / m.rect.SizeZ * float64(m.h-1)
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)
	return worldgen.FeatureWeights{
		Road:  m.bilinear(m.road, x0, y0, fx, fy),
		River: m.bilinear(m.river, x0, y0, fx, fy),
	}
}

func (m *FeatureMask) bilinear(vals []float64, x0, y0 int, fx, fy float64) float64 {
	at := func(x, y int) float64 {
		if x < 0 || x >= m.w || y < 0 || y >= m.h {
			return 0
		}
		return vals[y*m.w+x]
	}
	return lerp(lerp(at(x0, y0), at(x0+1, y0), fx), lerp(at(x0, y0+1), at(x0+1, y0+1), fx), fy)
}

// resample scales an arbitrary image onto a gridW x gridH RGBA grid with
// bilinear filtering. The four channels are independent weight planes, not
// a color: scaling straight through a premultiplied RGBA destination would
// drag R/G/B toward zero wherever the plateau (alpha) channel is low, so
// each channel is filtered separately as a grayscale plane.
func resample(img image.Image, gridW, gridH int) *image.RGBA {
	b := img.Bounds()
	src := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	scaled := image.NewGray(image.Rect(0, 0, gridW, gridH))
	dst := image.NewRGBA(image.Rect(0, 0, gridW, gridH))
	for ch := 0; ch < 4; ch++ {
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				src.Pix[i] = channelAt(img, x, y, ch)
				i++
			}
		}
		draw.BiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
		for o, v := range scaled.Pix {
			dst.Pix[o*4+ch] = v
		}
	}
	return dst
}

// channelAt reads one raw channel byte at (x,y). RGBA and NRGBA images are
// read straight from Pix; going through the color model instead would
// zero the weight channels of any pixel with low alpha.
func channelAt(img image.Image, x, y, ch int) uint8 {
	switch im := img.(type) {
	case *image.RGBA:
		return im.Pix[im.PixOffset(x, y)+ch]
	case *image.NRGBA:
		return im.Pix[im.PixOffset(x, y)+ch]
	}
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	}
	return c.A
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mask %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode mask %s: %w", path, err)
	}
	return img, nil
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
