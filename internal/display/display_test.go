package display

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eiannone/keyboard"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/audio"
	"github.com/guidoenr/streambars/internal/settings"
)

type sineSource struct{}

func (sineSource) Samples(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * 4 * float64(i) / float64(n))
	}
	return out
}

func (sineSource) SampleRate() float64 { return 44100 }
func (sineSource) Close() error        { return nil }

func newApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(app.Config{
		OpenSource: func(app.SourceConfig, *log.Logger) (audio.Source, error) {
			return sineSource{}, nil
		},
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestTerminalPresent(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(context.Background(), newApp(t), TerminalConfig{
		Out:  &out,
		Size: func() (int, int, error) { return 12, 5, nil },
	})

	surface, err := term.Canvas()
	if err != nil {
		t.Fatal(err)
	}
	if w, h := surface.Size(); w != 12 || h != 8 {
		t.Fatalf("canvas=%dx%d want 12x8", w, h)
	}
	out.Reset()
	if err := term.Present("bars=16"); err != nil {
		t.Fatalf("Present: %v", err)
	}

	text := out.String()
	if !strings.HasPrefix(text, "\x1b[H") {
		t.Fatalf("frame does not start at home: %q", text[:8])
	}
	if got := strings.Count(text, "\r\n"); got != 4 {
		t.Fatalf("rows=%d want 4", got)
	}
	if !strings.HasSuffix(text, "bars=16     ") {
		t.Fatalf("status bar not padded: %q", text[len(text)-16:])
	}

	out.Reset()
	term.Close()
	if !strings.Contains(out.String(), "\x1b[?1049l") {
		t.Fatalf("alternate screen not restored")
	}
}

func TestTerminalFallbackSize(t *testing.T) {
	term := NewTerminal(context.Background(), newApp(t), TerminalConfig{
		Out:    &bytes.Buffer{},
		Size:   func() (int, int, error) { return 0, 0, errors.New("not a tty") },
		Width:  20,
		Height: 1,
	})
	surface, _ := term.Canvas()
	if w, h := surface.Size(); w != 20 || h != 2 {
		t.Fatalf("canvas=%dx%d want 20x2", w, h)
	}
}

func TestTerminalKeys(t *testing.T) {
	a := newApp(t)
	term := NewTerminal(context.Background(), a, TerminalConfig{
		Out:  &bytes.Buffer{},
		Size: func() (int, int, error) { return 8, 4, nil },
	})

	wrap := a.Settings().Snapshot().WrapEdges
	if !term.handleKey('w', 0) {
		t.Fatalf("w should not quit")
	}
	if a.Settings().Snapshot().WrapEdges == wrap {
		t.Fatalf("wrap not toggled")
	}
	if term.handleKey(0, keyboard.KeyEsc) {
		t.Fatalf("esc should quit")
	}
	if _, err := term.Canvas(); err != nil {
		t.Fatal(err)
	}
	if err := term.Present(""); !errors.Is(err, app.ErrQuit) {
		t.Fatalf("Present err=%v want ErrQuit", err)
	}
}

func TestStatusBar(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abcd"},
		{"abc", 0, "abc"},
	}
	for _, c := range cases {
		if got := statusBar(c.text, c.width); got != c.want {
			t.Fatalf("statusBar(%q,%d)=%q want %q", c.text, c.width, got, c.want)
		}
	}
}

func TestPNGWritesLastFrame(t *testing.T) {
	a := newApp(t)
	a.Settings().SetGradient(false)
	path := filepath.Join(t.TempDir(), "frame.png")
	p := NewPNG(path, 64, 32, 3)

	if err := app.NewLoop(a, p, 1000).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.count != 3 {
		t.Fatalf("frames=%d want 3", p.count)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Fatalf("bounds=%v", b)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	bg := settings.Defaults().Background
	if uint8(r>>8) != bg.R || uint8(g>>8) != bg.G || uint8(b>>8) != bg.B {
		t.Fatalf("corner pixel is not background")
	}
}
