package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap records the last samples that passed through a beep streamer into a
// mono ring buffer so the analyzer can read them while the speaker plays.
type Tap struct {
	mu        sync.RWMutex
	buffer    []float64
	nextIndex int
	filled    int
}

// NewTap allocates a tap holding up to size samples.
func NewTap(size int) *Tap {
	if size <= 0 {
		size = defaultRingSize
	}
	return &Tap{buffer: make([]float64, size)}
}

// Wrap returns a streamer that forwards src and records what it produced.
func (t *Tap) Wrap(src beep.Streamer) beep.Streamer {
	return &tapStreamer{source: src, tap: t}
}

// Record appends stereo frames, downmixed to mono.
func (t *Tap) Record(frames [][2]float64) {
	if len(frames) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range frames {
		t.buffer[t.nextIndex] = (f[0] + f[1]) * 0.5
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	t.filled = min(t.filled+len(frames), len(t.buffer))
}

// RecordInterleaved appends interleaved float32 frames with the given channel
// count, averaged to mono.
func (t *Tap) RecordInterleaved(in []float32, channels int) {
	if channels <= 0 || len(in) < channels {
		return
	}
	frames := len(in) / channels
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < frames; i++ {
		var sum float64
		for _, v := range in[i*channels : (i+1)*channels] {
			sum += float64(v)
		}
		t.buffer[t.nextIndex] = sum / float64(channels)
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	t.filled = min(t.filled+frames, len(t.buffer))
}

// Reset forgets all recorded samples.
func (t *Tap) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.buffer)
	t.nextIndex = 0
	t.filled = 0
}

// Samples returns the last n samples, oldest first, zero-padded at the front.
func (t *Tap) Samples(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)

	t.mu.RLock()
	defer t.mu.RUnlock()

	avail := min(n, t.filled)
	idx := t.nextIndex - 1
	for i := n - 1; i >= n-avail; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		out[i] = t.buffer[idx]
		idx--
	}
	return out
}

type tapStreamer struct {
	source beep.Streamer
	tap    *Tap
}

func (s *tapStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.source.Stream(samples)
	if n > 0 {
		s.tap.Record(samples[:n])
	}
	return n, ok
}

func (s *tapStreamer) Err() error { return s.source.Err() }
