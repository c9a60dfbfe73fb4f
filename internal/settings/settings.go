package settings

import (
	"errors"
	"image/color"
)

const (
	MinSampleCount = 32
	MaxSampleCount = 2048
)

var (
	ErrInvalidSpacing      = errors.New("bar spacing must not be negative")
	ErrInvalidSampleCount  = errors.New("sample count must be a power of two in [32, 2048]")
	ErrInvalidDecibelRange = errors.New("min decibels must be below max decibels")
	ErrInvalidSmoothing    = errors.New("smoothing must be within [0, 1]")
)

// Settings holds the analysis and style parameters read by the renderer every frame.
type Settings struct {
	SampleCount int
	MinDecibels float64
	MaxDecibels float64
	Smoothing   float64

	Background color.RGBA
	Bar1       color.RGBA
	Bar2       color.RGBA
	Gradient   bool
	BarSpacing int
	WrapEdges  bool
}

// Defaults returns the settings the visualizer starts with.
func Defaults() Settings {
	return Settings{
		SampleCount: 32,
		MinDecibels: -120,
		MaxDecibels: -20,
		Smoothing:   0.8,
		Background:  Black,
		Bar1:        Cyan,
		Bar2:        GreenAcid,
		Gradient:    true,
		BarSpacing:  10,
		WrapEdges:   true,
	}
}

// SameAnalysis reports whether two settings values configure the analyzer the same way.
func (s Settings) SameAnalysis(o Settings) bool {
	return s.SampleCount == o.SampleCount &&
		s.MinDecibels == o.MinDecibels &&
		s.MaxDecibels == o.MaxDecibels &&
		s.Smoothing == o.Smoothing
}

// Validate checks every bounded field.
func (s Settings) Validate() error {
	if err := validateSampleCount(s.SampleCount); err != nil {
		return err
	}
	if err := validateDecibels(s.MinDecibels, s.MaxDecibels); err != nil {
		return err
	}
	if err := validateSmoothing(s.Smoothing); err != nil {
		return err
	}
	if s.BarSpacing < 0 {
		return ErrInvalidSpacing
	}
	return nil
}

func validateSampleCount(n int) error {
	if n < MinSampleCount || n > MaxSampleCount || n&(n-1) != 0 {
		return ErrInvalidSampleCount
	}
	return nil
}

func validateDecibels(min, max float64) error {
	if !(min < max) {
		return ErrInvalidDecibelRange
	}
	return nil
}

func validateSmoothing(v float64) error {
	if !(v >= 0 && v <= 1) {
		return ErrInvalidSmoothing
	}
	return nil
}
