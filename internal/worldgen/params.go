package worldgen

// ShapeParams are the knobs of the island silhouette: how far the terrain
// is lifted, how thick the underside shell may get, how hard cliffs drop
// toward the rim and how tall the central spire grows.
type ShapeParams struct {
	Lift         int     // global elevation offset in island mode
	CliffDrop    float64 // max elevation lost at the island rim
	CliffPower   float64 // exponent of the rim drop curve
	MinThickness float64 // thinnest allowed underside shell
	MaxThickness float64 // thickest underside body
	SpireHeight  float64 // extra underside depth of the central spike
}

// AutoTuneShapeParams derives shape parameters from the chunk height alone.
// It is a pure function: the same height always yields the same bundle,
// which keeps auto-tuned worlds reproducible.
func AutoTuneShapeParams(chunkHeight int) ShapeParams {
	h := float64(max(chunkHeight, 16))
	p := ShapeParams{
		Lift:         int(h * 0.06),
		CliffDrop:    h * 0.18,
		CliffPower:   1.6,
		MinThickness: h * 0.05,
		MaxThickness: h * 0.38,
		SpireHeight:  h * 0.16,
	}
	return p.sanitized()
}

// sanitized clamps a parameter bundle to values the shapers can trust.
func (p ShapeParams) sanitized() ShapeParams {
	if p.MinThickness < 3 {
		p.MinThickness = 3
	}
	if p.MaxThickness < p.MinThickness {
		p.MaxThickness = p.MinThickness
	}
	if p.CliffPower <= 0 {
		p.CliffPower = 1
	}
	if p.CliffDrop < 0 {
		p.CliffDrop = 0
	}
	if p.SpireHeight < 0 {
		p.SpireHeight = 0
	}
	if p.Lift < 0 {
		p.Lift = 0
	}
	return p
}
