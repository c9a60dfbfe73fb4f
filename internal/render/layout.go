package render

import "math"

// MaxMagnitude is the largest value an analyzer bin can hold.
const MaxMagnitude = 255

// Geometry describes where the bars of one frame go.
type Geometry struct {
	Count    int
	BarWidth float64
	Spacing  float64
	// Start is the left edge of the first bar.
	Start float64
}

// Layout computes bar geometry for n bars across width pixels.
// With wrap the spacing also appears before the first and after the last bar.
// Negative widths are returned as is.
func Layout(n int, width, spacing float64, wrap bool) Geometry {
	g := Geometry{Count: n, Spacing: spacing}
	if n <= 0 {
		return g
	}
	gaps := float64(n - 1)
	if wrap {
		gaps = float64(n + 1)
		g.Start = spacing
	}
	g.BarWidth = (width - gaps*spacing) / float64(n)
	return g
}

// Left returns the left edge of bar i.
func (g Geometry) Left(i int) float64 {
	return g.Start + float64(i)*(g.BarWidth+g.Spacing)
}

// Rescale maps v from [inMin, inMax] onto [outMin, outMax] and rounds.
func Rescale(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return math.Round(outMin + (outMax-outMin)/(inMax-inMin)*(v-inMin))
}

// BarHeight maps a magnitude onto [1, canvasHeight]. Silent bins keep a one pixel sliver.
func BarHeight(magnitude uint8, canvasHeight int) float64 {
	h := Rescale(float64(magnitude), 0, MaxMagnitude, 1, float64(canvasHeight))
	if !(h >= 1) {
		return 1
	}
	return h
}
