package render

import (
	"image"
	"image/png"
	"io"
	"math"
)

// Surface is a 2D paint target measured in physical pixels.
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h float64, f Fill)
}

// Raster is an in-memory Surface backed by an RGBA image.
type Raster struct {
	img *image.RGBA
}

// NewRaster allocates a width x height raster.
func NewRaster(width, height int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Resize reallocates the backing image when the size changed.
func (r *Raster) Resize(width, height int) {
	w, h := r.Size()
	if w == width && h == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// FillRect paints every pixel whose center lies inside the rectangle. Blending is not applied.
func (r *Raster) FillRect(x, y, w, h float64, f Fill) {
	if !(w > 0) || !(h > 0) {
		return
	}
	width, height := r.Size()
	x0 := clampInt(int(math.Ceil(x-0.5)), 0, width)
	x1 := clampInt(int(math.Ceil(x+w-0.5)), 0, width)
	y0 := clampInt(int(math.Ceil(y-0.5)), 0, height)
	y1 := clampInt(int(math.Ceil(y+h-0.5)), 0, height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	for py := y0; py < y1; py++ {
		c := f.At(float64(py) + 0.5)
		row := r.img.PixOffset(x0, py)
		for px := x0; px < x1; px++ {
			r.img.Pix[row+0] = c.R
			r.img.Pix[row+1] = c.G
			r.img.Pix[row+2] = c.B
			r.img.Pix[row+3] = c.A
			row += 4
		}
	}
}

// EncodePNG writes the raster as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
