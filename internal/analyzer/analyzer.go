package analyzer

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	defaultFFTSize     = 2048
	defaultMinDecibels = -100
	defaultMaxDecibels = -30
	defaultSmoothing   = 0.8
)

// Config controls Analyzer behavior.
type Config struct {
	// FFTSize is the number of time-domain samples per analysis. It is rounded
	// up to a power of two.
	FFTSize     int
	MinDecibels float64
	MaxDecibels float64
	// Smoothing blends each bin with its value from the previous frame.
	Smoothing float64
}

// Analyzer turns time-domain samples into byte frequency data: one value in
// [0, 255] per bin, scaled between MinDecibels and MaxDecibels.
type Analyzer struct {
	cfg Config

	buffer   []float64
	window   []float64
	smoothed []float64
}

// New creates an Analyzer.
func New(cfg Config) *Analyzer {
	a := &Analyzer{}
	a.Configure(cfg)
	return a
}

// Configure applies cfg. Changing the FFT size resets the smoothing history.
func (a *Analyzer) Configure(cfg Config) {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}
	cfg.FFTSize = nextPow2(cfg.FFTSize)
	if !(cfg.MinDecibels < cfg.MaxDecibels) {
		cfg.MinDecibels = defaultMinDecibels
		cfg.MaxDecibels = defaultMaxDecibels
	}
	if !(cfg.Smoothing >= 0 && cfg.Smoothing <= 1) {
		cfg.Smoothing = defaultSmoothing
	}
	a.cfg = cfg
	a.ensureWorkspace(cfg.FFTSize)
}

// Config returns the active configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// FrequencyBinCount is half the FFT size.
func (a *Analyzer) FrequencyBinCount() int {
	return a.cfg.FFTSize / 2
}

// ByteFrequencyData analyzes the most recent FFTSize samples and writes one byte per
// bin into dst, growing it when needed. Short input is zero-padded at the front.
func (a *Analyzer) ByteFrequencyData(samples []float64, dst []uint8) []uint8 {
	size := a.cfg.FFTSize
	bins := size / 2
	if cap(dst) < bins {
		dst = make([]uint8, bins)
	}
	dst = dst[:bins]

	if len(samples) > size {
		samples = samples[len(samples)-size:]
	}
	pad := size - len(samples)
	for i := 0; i < pad; i++ {
		a.buffer[i] = 0
	}
	for i, v := range samples {
		a.buffer[pad+i] = v * a.window[pad+i]
	}

	spectrum := fft.FFTReal(a.buffer)

	tau := a.cfg.Smoothing
	scale := 255 / (a.cfg.MaxDecibels - a.cfg.MinDecibels)
	for k := 0; k < bins; k++ {
		mag := cmag(spectrum[k]) / float64(size)
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
		if math.IsNaN(a.smoothed[k]) || math.IsInf(a.smoothed[k], 0) {
			a.smoothed[k] = 0
		}
		dst[k] = toByte(a.smoothed[k], a.cfg.MinDecibels, scale)
	}
	return dst
}

func toByte(mag, minDecibels, scale float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(scale * (db - minDecibels))
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func (a *Analyzer) ensureWorkspace(size int) {
	if len(a.buffer) != size {
		a.buffer = make([]float64, size)
	}
	if len(a.window) != size {
		a.window = window.Blackman(size)
	}
	if len(a.smoothed) != size/2 {
		a.smoothed = make([]float64, size/2)
	}
}

func cmag(c complex128) float64 {
	return math.Sqrt(real(c)*real(c) + imag(c)*imag(c))
}

func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}
