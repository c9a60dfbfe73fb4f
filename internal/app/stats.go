package app

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

const fpsWindow = 60

// Stats keeps a rolling frame rate over the last fpsWindow frame intervals.
type Stats struct {
	mu        sync.Mutex
	intervals *queue.Queue
	sum       time.Duration
	last      time.Time
	frames    uint64
}

func newStats() *Stats {
	return &Stats{intervals: queue.New()}
}

// Tick records a frame painted at now.
func (s *Stats) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	if !s.last.IsZero() {
		d := now.Sub(s.last)
		if d > 0 {
			s.intervals.Add(d)
			s.sum += d
			for s.intervals.Length() > fpsWindow {
				s.sum -= s.intervals.Remove().(time.Duration)
			}
		}
	}
	s.last = now
}

// FPS returns the average frame rate over the window, or 0 before two frames.
func (s *Stats) FPS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.intervals.Length() == 0 || s.sum <= 0 {
		return 0
	}
	return float64(s.intervals.Length()) / s.sum.Seconds()
}

// Frames returns the number of frames painted so far.
func (s *Stats) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
