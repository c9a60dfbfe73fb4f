package display

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/render"
)

// TerminalConfig configures the terminal display.
type TerminalConfig struct {
	Out io.Writer
	// Size reports the terminal size in cells. Defaults to the size of stdout.
	Size func() (int, int, error)
	// Keyboard enables the raw-mode key listener.
	Keyboard bool
	// Width and Height are used when Size fails.
	Width  int
	Height int
	Log    *log.Logger
}

// Terminal paints frames as truecolor half blocks, two pixel rows per cell,
// with a status bar on the last line.
type Terminal struct {
	app    *app.App
	cfg    TerminalConfig
	out    *bufio.Writer
	raster *render.Raster
	width  int
	quit   atomic.Bool

	cancelInput context.CancelFunc
	closeOnce   sync.Once
}

// NewTerminal switches to the alternate screen and starts the key listener.
func NewTerminal(ctx context.Context, a *app.App, cfg TerminalConfig) *Terminal {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Size == nil {
		cfg.Size = func() (int, int, error) { return term.GetSize(int(os.Stdout.Fd())) }
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.Height <= 0 {
		cfg.Height = 24
	}
	if cfg.Log == nil {
		cfg.Log = log.New(io.Discard, "", 0)
	}

	t := &Terminal{
		app:    a,
		cfg:    cfg,
		out:    bufio.NewWriter(cfg.Out),
		raster: render.NewRaster(cfg.Width, 2*(cfg.Height-1)),
	}
	t.out.WriteString("\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l")
	t.out.Flush()

	if cfg.Keyboard {
		inputCtx, cancel := context.WithCancel(ctx)
		t.cancelInput = cancel
		t.startInputListener(inputCtx)
	}
	return t
}

// Canvas resizes the raster to the current terminal size.
func (t *Terminal) Canvas() (render.Surface, error) {
	w, h, err := t.cfg.Size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = t.cfg.Width, t.cfg.Height
	}
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	t.width = w
	t.raster.Resize(w, rows*2)
	return t.raster, nil
}

// Present writes the painted raster and the status bar.
func (t *Terminal) Present(status string) error {
	if t.quit.Load() {
		return app.ErrQuit
	}
	t.out.WriteString("\x1b[H")
	for _, line := range render.EncodeANSI(t.raster) {
		t.out.WriteString(line)
		t.out.WriteString("\r\n")
	}
	t.out.WriteString(statusBar(status, t.width))
	return t.out.Flush()
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		if t.cancelInput != nil {
			t.cancelInput()
		}
		t.out.WriteString("\x1b[?25h\x1b[?1049l\x1b[0m")
		err = t.out.Flush()
	})
	return err
}

func (t *Terminal) startInputListener(ctx context.Context) {
	if err := keyboard.Open(); err != nil {
		t.cfg.Log.Printf("keyboard input disabled: %v", err)
		return
	}

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if ctx.Err() != nil {
				return
			}
			if !t.handleKey(char, key) {
				return
			}
		}
	}()
}

// handleKey applies a key press. It returns false once the user quit.
func (t *Terminal) handleKey(char rune, key keyboard.Key) bool {
	act := app.ActionForKey(char)
	if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
		act = app.ActionQuit
	}
	if !t.app.Apply(act) {
		t.quit.Store(true)
		return false
	}
	return true
}

func statusBar(text string, width int) string {
	if width <= 0 {
		return text
	}
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}
