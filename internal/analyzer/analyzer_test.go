package analyzer

import (
	"math"
	"testing"
)

func TestNextPow2(t *testing.T) {
	cases := map[int]int{
		0:   1,
		1:   1,
		2:   2,
		3:   4,
		5:   8,
		16:  16,
		31:  32,
		257: 512,
	}
	for input, want := range cases {
		if got := nextPow2(input); got != want {
			t.Fatalf("nextPow2(%d)=%d want=%d", input, got, want)
		}
	}
}

func TestConfigureDefaults(t *testing.T) {
	a := New(Config{FFTSize: 48, MinDecibels: -10, MaxDecibels: -20, Smoothing: 3})
	cfg := a.Config()
	if cfg.FFTSize != 64 {
		t.Fatalf("fft size=%d want 64", cfg.FFTSize)
	}
	if cfg.MinDecibels != defaultMinDecibels || cfg.MaxDecibels != defaultMaxDecibels {
		t.Fatalf("decibels=%v..%v", cfg.MinDecibels, cfg.MaxDecibels)
	}
	if cfg.Smoothing != defaultSmoothing {
		t.Fatalf("smoothing=%v", cfg.Smoothing)
	}
	if a.FrequencyBinCount() != 32 {
		t.Fatalf("bins=%d", a.FrequencyBinCount())
	}
}

func TestSilenceIsZero(t *testing.T) {
	a := New(Config{FFTSize: 32, MinDecibels: -120, MaxDecibels: -20, Smoothing: 0.8})
	out := a.ByteFrequencyData(make([]float64, 32), nil)
	if len(out) != 16 {
		t.Fatalf("len=%d want 16", len(out))
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("bin %d=%d want 0", i, v)
		}
	}
}

func TestEmptyInputIsZero(t *testing.T) {
	a := New(Config{FFTSize: 64, MinDecibels: -120, MaxDecibels: -20})
	for i, v := range a.ByteFrequencyData(nil, nil) {
		if v != 0 {
			t.Fatalf("bin %d=%d want 0", i, v)
		}
	}
}

func TestToneLandsInItsBin(t *testing.T) {
	const size = 256
	const bin = 20
	a := New(Config{FFTSize: size, MinDecibels: -100, MaxDecibels: 0, Smoothing: 0})
	samples := make([]float64, size)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * bin * float64(i) / size)
	}
	out := a.ByteFrequencyData(samples, nil)

	peak := 0
	for i, v := range out {
		if v > out[peak] {
			peak = i
		}
	}
	if peak != bin {
		t.Fatalf("peak bin=%d want %d", peak, bin)
	}
	if out[bin] < 200 {
		t.Fatalf("peak magnitude=%d", out[bin])
	}
	if out[bin+10] >= out[bin] {
		t.Fatalf("far bin %d not below peak", out[bin+10])
	}
}

func TestSmoothingCarriesOver(t *testing.T) {
	const size = 64
	a := New(Config{FFTSize: size, MinDecibels: -100, MaxDecibels: 0, Smoothing: 0.9})
	tone := make([]float64, size)
	for i := range tone {
		tone[i] = math.Sin(2 * math.Pi * 8 * float64(i) / size)
	}
	loud := a.ByteFrequencyData(tone, nil)[8]
	quiet := a.ByteFrequencyData(make([]float64, size), nil)[8]
	if quiet == 0 || quiet >= loud {
		t.Fatalf("smoothed silence=%d, previous=%d", quiet, loud)
	}

	a.Configure(Config{FFTSize: size * 2, MinDecibels: -100, MaxDecibels: 0, Smoothing: 0.9})
	if got := a.ByteFrequencyData(make([]float64, size*2), nil)[8]; got != 0 {
		t.Fatalf("resize kept history: %d", got)
	}
}

func TestToByteClamps(t *testing.T) {
	scale := 255.0 / 100.0
	if toByte(0, -100, scale) != 0 {
		t.Fatalf("zero magnitude")
	}
	if toByte(10, -100, scale) != 255 {
		t.Fatalf("loud magnitude not clamped")
	}
	if toByte(1e-9, -100, scale) != 0 {
		t.Fatalf("quiet magnitude not clamped")
	}
}
