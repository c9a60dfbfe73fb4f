package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guidoenr/streambars/internal/render"
)

// ErrQuit is returned by a Presenter when the user closed the output.
var ErrQuit = errors.New("quit requested")

// Presenter is an output the loop paints onto.
type Presenter interface {
	// Canvas returns the surface for the next frame, sized to the current output.
	Canvas() (render.Surface, error)
	// Present shows the painted canvas. It returns ErrQuit when the user is done.
	Present(status string) error
}

// Loop owns the render loop for a presenter. Frames are painted one at a time
// at the target rate until the context is cancelled, Stop is called, or the
// presenter returns ErrQuit.
type Loop struct {
	app       *App
	presenter Presenter
	interval  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewLoop creates a loop painting fps frames per second.
func NewLoop(app *App, presenter Presenter, fps float64) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		app:       app,
		presenter: presenter,
		interval:  time.Duration(float64(time.Second) / fps),
	}
}

// Run paints frames until ctx is cancelled or the presenter quits. A quit
// returns nil; cancellation returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if err := l.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Start runs the loop in a new goroutine.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go func() {
		defer close(l.done)
		err := l.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
	}()
}

// Done is closed when a started loop exits.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Stop cancels a started loop, waits for the current frame to finish and
// returns the error the loop ended with.
func (l *Loop) Stop() error {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	cancel()
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Loop) step() error {
	surface, err := l.presenter.Canvas()
	if err != nil {
		return err
	}
	l.app.Frame(surface)
	err = l.presenter.Present(l.app.Status().Line)
	l.app.EndFrame()
	return err
}
