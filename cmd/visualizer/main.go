package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/audio"
	"github.com/guidoenr/streambars/internal/display"
	"github.com/guidoenr/streambars/internal/settings"
	"github.com/guidoenr/streambars/internal/web"
)

var (
	red    = color.New(color.FgRed, color.Bold)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

func main() {
	var (
		source       = flag.String("source", "stream", "Audio source ("+strings.Join(audio.SourceNames(), "|")+")")
		streamURL    = flag.String("url", audio.DefaultStreamURL, "MP3 stream URL for -source stream")
		filePath     = flag.String("file", "", "Audio file (wav|mp3|flac) for -source file")
		deviceName   = flag.String("audio-device", "", "Optional PortAudio device name (substring match) for -source mic")
		bufferSize   = flag.Int("buffer-size", 2048, "Capture buffer size for -source mic")
		listDevs     = flag.Bool("list-audio-devices", false, "List available audio input devices and exit")
		displayMode  = flag.String("display", "window", "Display (window|terminal|sdl|png)")
		pngPath      = flag.String("png", "streambars.png", "Output path for -display png")
		pngFrames    = flag.Int("png-frames", 120, "Frames painted before the png is written")
		width        = flag.Int("width", 800, "Window width in logical pixels")
		height       = flag.Int("height", 400, "Window height in logical pixels")
		targetFPS    = flag.Float64("fps", 60, "Target frames per second")
		settingsPath = flag.String("settings", "", "Optional YAML settings file read at startup")
		httpAddr     = flag.String("http", ":8080", "Settings server address (empty disables)")
		profilePath  = flag.String("profile", "", "Write per-frame timings as CSV to this file")
		debug        = flag.Bool("debug", false, "Enable verbose logging")
		noColor      = flag.Bool("no-color", false, "Disable colored output")
	)

	flag.Parse()
	color.NoColor = color.NoColor || *noColor

	if *width <= 0 || *height <= 0 {
		fatalf("invalid dimensions: width=%d height=%d", *width, *height)
	}
	if *targetFPS <= 0 {
		fatalf("fps must be positive (got %.2f)", *targetFPS)
	}

	logger := log.New(os.Stdout, "[streambars] ", log.LstdFlags)
	if !*debug {
		logger.SetOutput(os.Stderr)
		logger.SetFlags(0)
	}

	if *listDevs {
		listDevices()
		return
	}

	initial := settings.Defaults()
	if *settingsPath != "" {
		loaded, err := settings.LoadFile(*settingsPath)
		if err != nil {
			fatalf("settings: %v", err)
		}
		initial = loaded
		logger.Printf("settings loaded from %s", *settingsPath)
	}
	store := settings.NewStore(initial)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(app.Config{
		Settings: store,
		Source: app.SourceConfig{
			Kind:       *source,
			URL:        *streamURL,
			Path:       *filePath,
			DeviceName: *deviceName,
			BufferSize: *bufferSize,
		},
		ProfilePath: *profilePath,
		Log:         logger,
	})
	if err != nil {
		fatalf("failed to create app: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			yellow.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()
	a.Start(ctx)

	if *httpAddr != "" {
		server := web.NewServer(a, logger)
		go func() {
			if err := server.Run(ctx, *httpAddr); err != nil {
				logger.Printf("%v", err)
			}
		}()
	}

	if err := run(ctx, a, *displayMode, displayConfig{
		width:     *width,
		height:    *height,
		fps:       *targetFPS,
		pngPath:   *pngPath,
		pngFrames: *pngFrames,
		log:       logger,
	}); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExiting...")
			return
		}
		fatalf("runtime error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
}

type displayConfig struct {
	width, height int
	fps           float64
	pngPath       string
	pngFrames     int
	log           *log.Logger
}

func run(ctx context.Context, a *app.App, mode string, cfg displayConfig) error {
	switch strings.ToLower(mode) {
	case "window":
		return display.RunWindow(ctx, a, display.WindowConfig{Width: cfg.width, Height: cfg.height, FPS: cfg.fps})
	case "terminal":
		term := display.NewTerminal(ctx, a, display.TerminalConfig{
			Keyboard: true,
			Width:    80,
			Height:   24,
			Log:      cfg.log,
		})
		defer term.Close()
		return app.NewLoop(a, term, cfg.fps).Run(ctx)
	case "sdl":
		sdl, err := display.NewSDL(a, cfg.width, cfg.height)
		if err != nil {
			return err
		}
		defer sdl.Close()
		return app.NewLoop(a, sdl, cfg.fps).Run(ctx)
	case "png":
		out := display.NewPNG(cfg.pngPath, cfg.width, cfg.height, cfg.pngFrames)
		if err := app.NewLoop(a, out, cfg.fps).Run(ctx); err != nil {
			return err
		}
		cfg.log.Printf("frame written to %s", cfg.pngPath)
		return nil
	default:
		return errors.New("unknown display " + mode + " (want window|terminal|sdl|png)")
	}
}

func listDevices() {
	if err := audio.Initialize(); err != nil {
		fatalf("failed to initialize PortAudio: %v", err)
	}
	defer audio.Terminate()

	devices, err := audio.ListDevices()
	if err != nil {
		fatalf("list devices: %v", err)
	}
	cyan.Printf("\n=== Audio Input Devices ===\n\n")
	for _, dev := range audio.InputDevices(devices) {
		markers := ""
		if dev.IsDefaultInput {
			markers += " (default)"
		}
		fmt.Printf("- %s [%s]%s\n    inputs:%d outputs:%d sample:%.0f Hz\n",
			dev.Name, dev.HostAPI, markers, dev.MaxInput, dev.MaxOutput, dev.DefaultSampleHz)
	}
	if dev, err := audio.AutoDetectDevice(); err == nil && dev != nil {
		cyan.Printf("\nAuto-detected input: %s (%.0f Hz, %d channels)\n", dev.Name, dev.DefaultSampleRate, dev.MaxInputChannels)
	}
}

func fatalf(format string, args ...any) {
	red.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
