//go:build sdl

package display

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/render"
)

// SupportsSDL reports whether the binary was built with the sdl tag.
func SupportsSDL() bool { return true }

// SDL presents frames through an SDL streaming texture.
type SDL struct {
	app      *app.App
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	raster   *render.Raster
	width    int
	height   int
	title    string
}

// NewSDL opens a resizable HiDPI-aware window.
func NewSDL(a *app.App, width, height int) (*SDL, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}
	s := &SDL{app: a, raster: render.NewRaster(width, height)}

	window, err := sdl.CreateWindow(
		"streambars",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.renderer = renderer
	return s, nil
}

// Canvas sizes the raster to the renderer output in physical pixels.
func (s *SDL) Canvas() (render.Surface, error) {
	w, h, err := s.renderer.GetOutputSize()
	if err != nil {
		return nil, err
	}
	if err := s.ensureTexture(int(w), int(h)); err != nil {
		return nil, err
	}
	s.raster.Resize(int(w), int(h))
	return s.raster, nil
}

func (s *SDL) ensureTexture(width, height int) error {
	if s.texture != nil && s.width == width && s.height == height {
		return nil
	}
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	tex, err := s.renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height),
	)
	if err != nil {
		return fmt.Errorf("sdl texture: %w", err)
	}
	s.texture = tex
	s.width = width
	s.height = height
	return nil
}

// Present uploads the raster and handles pending window events.
func (s *SDL) Present(status string) error {
	if status != "" && status != s.title {
		s.window.SetTitle("streambars | " + status)
		s.title = status
	}
	img := s.raster.Image()
	if err := s.texture.Update(nil, img.Pix, img.Stride); err != nil {
		return err
	}
	if err := s.renderer.Clear(); err != nil {
		return err
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return err
	}
	s.renderer.Present()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return app.ErrQuit
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			act := app.ActionForKey(rune(e.Keysym.Sym))
			if e.Keysym.Sym == sdl.K_ESCAPE {
				act = app.ActionQuit
			}
			if !s.app.Apply(act) {
				return app.ErrQuit
			}
		}
	}
	return nil
}

// Close destroys the window and releases SDL video.
func (s *SDL) Close() error {
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
	return nil
}
