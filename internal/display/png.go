package display

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/render"
)

// PNG is a headless presenter. It paints Frames frames and writes the last one
// to Path, then quits.
type PNG struct {
	Path   string
	Frames int

	raster *render.Raster
	count  int
}

// NewPNG creates a headless canvas of the given size.
func NewPNG(path string, width, height, frames int) *PNG {
	if frames < 1 {
		frames = 1
	}
	return &PNG{Path: path, Frames: frames, raster: render.NewRaster(width, height)}
}

func (p *PNG) Canvas() (render.Surface, error) {
	return p.raster, nil
}

func (p *PNG) Present(string) error {
	p.count++
	if p.count < p.Frames {
		return nil
	}
	if err := p.write(); err != nil {
		return err
	}
	return app.ErrQuit
}

// Raster returns the canvas the frames are painted on.
func (p *PNG) Raster() *render.Raster { return p.raster }

func (p *PNG) write() error {
	tmp, err := os.CreateTemp(filepath.Dir(p.Path), ".streambars-*.png")
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	if err := p.raster.EncodePNG(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("png encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("png: %w", err)
	}
	return os.Rename(tmp.Name(), p.Path)
}
