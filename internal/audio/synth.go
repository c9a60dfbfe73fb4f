package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

const synthRate = 44100

// Synth generates a drifting mix of tones so the visualizer can run without
// any audio hardware.
type Synth struct {
	mu   sync.Mutex
	rng  *rand.Rand
	now  func() time.Time
	last time.Time
	pos  float64
}

// NewSynth creates a synthetic source.
func NewSynth() *Synth {
	return newSynth(rand.NewSource(time.Now().UnixNano()), time.Now)
}

func newSynth(src rand.Source, now func() time.Time) *Synth {
	return &Synth{rng: rand.New(src), now: now, last: now()}
}

// Samples returns the n samples ending at the current wall-clock position.
func (s *Synth) Samples(n int) []float64 {
	if n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pos += now.Sub(s.last).Seconds()
	s.last = now

	bass := 0.5 + 0.5*math.Sin(s.pos*0.7)
	mid := 0.4 + 0.4*math.Sin(s.pos*1.2+0.5)
	treble := 0.3 + 0.3*math.Sin(s.pos*2.1+1.0)

	out := make([]float64, n)
	start := s.pos*synthRate - float64(n)
	for i := range out {
		t := (start + float64(i)) / synthRate
		v := bass*math.Sin(2*math.Pi*80*t) +
			mid*math.Sin(2*math.Pi*660*t) +
			treble*math.Sin(2*math.Pi*5200*t) +
			(s.rng.Float64()-0.5)*0.02
		out[i] = v / 3
	}
	return out
}

func (s *Synth) SampleRate() float64 { return synthRate }

func (s *Synth) Close() error { return nil }
