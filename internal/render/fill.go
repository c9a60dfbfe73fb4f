package render

import (
	"image/color"

	"github.com/guidoenr/streambars/internal/settings"
)

// Fill is either a flat color or a vertical linear gradient from Top (y=0)
// to Bottom (y=Height).
type Fill struct {
	Top      color.RGBA
	Bottom   color.RGBA
	Height   float64
	Gradient bool
}

// Solid returns a flat fill.
func Solid(c color.RGBA) Fill {
	return Fill{Top: c, Bottom: c}
}

// LinearGradient returns a top to bottom gradient spanning height pixels.
func LinearGradient(top, bottom color.RGBA, height float64) Fill {
	return Fill{Top: top, Bottom: bottom, Height: height, Gradient: true}
}

// BarFill builds the bar fill style for a canvas of the given height.
func BarFill(s settings.Settings, canvasHeight int) Fill {
	if !s.Gradient {
		return Solid(s.Bar1)
	}
	return LinearGradient(s.Bar1, s.Bar2, float64(canvasHeight))
}

// At returns the fill color at canvas row y.
func (f Fill) At(y float64) color.RGBA {
	if !f.Gradient || f.Height <= 0 {
		return f.Top
	}
	t := clamp01(y / f.Height)
	return color.RGBA{
		R: lerp8(f.Top.R, f.Bottom.R, t),
		G: lerp8(f.Top.G, f.Bottom.G, t),
		B: lerp8(f.Top.B, f.Bottom.B, t),
		A: lerp8(f.Top.A, f.Bottom.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
