package display

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/render"
)

// WindowConfig configures the desktop window.
type WindowConfig struct {
	Width  int
	Height int
	FPS    float64
}

var windowKeys = []struct {
	key    ebiten.Key
	action app.Action
}{
	{ebiten.KeyW, app.ActionToggleWrap},
	{ebiten.KeyG, app.ActionToggleGradient},
	{ebiten.KeyEqual, app.ActionSpacingUp},
	{ebiten.KeyNumpadAdd, app.ActionSpacingUp},
	{ebiten.KeyMinus, app.ActionSpacingDown},
	{ebiten.KeyNumpadSubtract, app.ActionSpacingDown},
	{ebiten.KeyQ, app.ActionQuit},
	{ebiten.KeyEscape, app.ActionQuit},
}

type window struct {
	ctx     context.Context
	app     *app.App
	surface *imageSurface
	title   string
}

// RunWindow opens a resizable window and paints a frame on every ebiten draw
// until ctx is cancelled or the user quits.
func RunWindow(ctx context.Context, a *app.App, cfg WindowConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 400
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("streambars")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.FPS > 0 {
		ebiten.SetTPS(int(cfg.FPS + 0.5))
	}

	w := &window{ctx: ctx, app: a, surface: &imageSurface{}}
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (w *window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) && !w.app.Apply(k.action) {
			return ebiten.Termination
		}
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	w.surface.dst = screen
	w.app.Frame(w.surface)
	w.app.EndFrame()

	if line := w.app.Status().Line; line != w.title {
		ebiten.SetWindowTitle("streambars | " + line)
		w.title = line
	}
}

// Layout renders at physical resolution so bars stay sharp on HiDPI screens.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// imageSurface paints onto an ebiten image. Gradients are drawn as a quad with
// per-vertex colors.
type imageSurface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (s *imageSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *imageSurface) FillRect(x, y, w, h float64, f render.Fill) {
	if w <= 0 || h <= 0 {
		return
	}
	if !f.Gradient {
		vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), f.Top, false)
		return
	}

	top, bottom := f.At(y), f.At(y+h)
	s.vertices = append(s.vertices[:0],
		quadVertex(x, y, top),
		quadVertex(x+w, y, top),
		quadVertex(x, y+h, bottom),
		quadVertex(x+w, y+h, bottom),
	)
	s.indices = append(s.indices[:0], 0, 1, 2, 1, 2, 3)
	s.dst.DrawTriangles(s.vertices, s.indices, whitePixel(), &ebiten.DrawTrianglesOptions{})
}

func quadVertex(x, y float64, c color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}
