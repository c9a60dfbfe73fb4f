package app

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/guidoenr/streambars/internal/analyzer"
	"github.com/guidoenr/streambars/internal/audio"
	"github.com/guidoenr/streambars/internal/render"
	"github.com/guidoenr/streambars/internal/settings"
)

const unsupportedTitle = "streambars"

// Config configures the application runtime.
type Config struct {
	Settings *settings.Store
	Source   SourceConfig
	// OpenSource overrides how the source is created. Defaults to OpenSource.
	OpenSource  func(SourceConfig, *log.Logger) (audio.Source, error)
	Notify      Notifier
	ProfilePath string
	Log         *log.Logger
}

// Status describes the most recent frame.
type Status struct {
	Audio    bool    `json:"audio"`
	Source   string  `json:"source"`
	FPS      float64 `json:"fps"`
	Frames   uint64  `json:"frames"`
	Bars     int     `json:"bars"`
	BarWidth float64 `json:"barWidth"`
	Line     string  `json:"line"`
}

// App ties together the audio source, analysis, and rendering.
type App struct {
	cfg      Config
	store    *settings.Store
	source   audio.Source
	analyzer *analyzer.Analyzer
	renderer *render.Renderer
	stats    *Stats
	profiler *profiler
	log      *log.Logger

	analysis   settings.Settings
	magnitudes []uint8

	mu     sync.RWMutex
	status Status
}

// New constructs the application. When the audio backend is unsupported the
// user is notified and the app keeps running with a static canvas.
func New(cfg Config) (*App, error) {
	if cfg.Log == nil {
		cfg.Log = log.New(io.Discard, "", 0)
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.NewStore(settings.Defaults())
	}
	if cfg.OpenSource == nil {
		cfg.OpenSource = OpenSource
	}
	if cfg.Notify == nil {
		cfg.Notify = DialogNotifier
	}
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "stream"
	}

	app := &App{
		cfg:      cfg,
		store:    cfg.Settings,
		renderer: render.New(),
		stats:    newStats(),
		profiler: newProfiler(cfg.ProfilePath, cfg.Log),
		log:      cfg.Log,
	}
	app.status.Source = cfg.Source.Kind

	source, err := cfg.OpenSource(cfg.Source, cfg.Log)
	switch {
	case errors.Is(err, audio.ErrUnsupported):
		app.log.Printf("%v", err)
		if nerr := cfg.Notify(unsupportedTitle, audio.ErrUnsupported.Error()); nerr != nil {
			app.log.Printf("notification failed: %v", nerr)
		}
	case err != nil:
		app.profiler.Close()
		return nil, err
	default:
		st := app.store.Snapshot()
		app.source = source
		app.analyzer = analyzer.New(analysisConfig(st))
		app.analysis = st
		app.status.Audio = true
	}
	return app, nil
}

// Start begins loading sources that stream in the background. It does not wait.
func (a *App) Start(ctx context.Context) {
	if s, ok := a.source.(starter); ok {
		s.Start(ctx)
	}
}

// Settings returns the store the app renders from.
func (a *App) Settings() *settings.Store { return a.store }

// Frame paints one frame onto s from the current settings and audio.
func (a *App) Frame(s render.Surface) render.Geometry {
	a.profiler.beginFrame()
	st := a.store.Snapshot()

	var geo render.Geometry
	if a.analyzer == nil {
		a.renderer.Clear(s, st)
		a.profiler.markSection("paint")
	} else {
		if !st.SameAnalysis(a.analysis) {
			a.analyzer.Configure(analysisConfig(st))
			a.analysis = st
		}
		samples := a.source.Samples(st.SampleCount)
		a.magnitudes = a.analyzer.ByteFrequencyData(samples, a.magnitudes)
		a.profiler.markSection("analyze")

		geo = a.renderer.Render(s, st, a.magnitudes)
		a.profiler.markSection("paint")
	}

	a.stats.Tick(time.Now())
	fps := a.stats.FPS()
	line := a.renderer.Status(st, geo, fps)

	a.mu.Lock()
	a.status.FPS = fps
	a.status.Frames = a.stats.Frames()
	a.status.Bars = geo.Count
	a.status.BarWidth = geo.BarWidth
	a.status.Line = line
	a.mu.Unlock()
	return geo
}

// EndFrame closes the profiler record for a presented frame.
func (a *App) EndFrame() {
	a.profiler.markSection("present")
	a.profiler.endFrame()
}

// Status returns a copy of the latest frame status.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Apply performs a keyboard action. It returns false when the user asked to quit.
func (a *App) Apply(act Action) bool {
	switch act {
	case ActionToggleWrap:
		wrap := a.store.ToggleEdgeWrap()
		a.log.Printf("edge wrap -> %v", wrap)
	case ActionToggleGradient:
		on := !a.store.Snapshot().Gradient
		a.store.SetGradient(on)
		a.log.Printf("gradient -> %v", on)
	case ActionSpacingUp, ActionSpacingDown:
		spacing := a.store.Snapshot().BarSpacing
		if act == ActionSpacingUp {
			spacing++
		} else {
			spacing--
		}
		if err := a.store.SetBarSpacing(spacing); err != nil {
			a.log.Printf("bar spacing: %v", err)
			break
		}
		a.log.Printf("bar spacing -> %d", spacing)
	case ActionQuit:
		return false
	}
	return true
}

// Close releases held resources.
func (a *App) Close() error {
	var errs []error
	if a.source != nil {
		errs = append(errs, a.source.Close())
	}
	errs = append(errs, a.profiler.Close())
	return errors.Join(errs...)
}

func analysisConfig(st settings.Settings) analyzer.Config {
	return analyzer.Config{
		FFTSize:     st.SampleCount,
		MinDecibels: st.MinDecibels,
		MaxDecibels: st.MaxDecibels,
		Smoothing:   st.Smoothing,
	}
}
