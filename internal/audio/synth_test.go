package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestSynthProducesBoundedSignal(t *testing.T) {
	clock := time.Unix(0, 0)
	s := newSynth(rand.NewSource(1), func() time.Time { return clock })
	clock = clock.Add(time.Second)

	out := s.Samples(2048)
	if len(out) != 2048 {
		t.Fatalf("len=%d", len(out))
	}
	energy := 0.0
	for _, v := range out {
		if math.Abs(v) > 1 {
			t.Fatalf("sample %f out of range", v)
		}
		energy += v * v
	}
	if energy == 0 {
		t.Fatalf("synth is silent")
	}
	if s.Samples(0) != nil {
		t.Fatalf("expected nil for n=0")
	}
	if s.SampleRate() != synthRate {
		t.Fatalf("rate=%f", s.SampleRate())
	}
}
