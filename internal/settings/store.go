package settings

import (
	"image/color"
	"sync"
)

// Store owns a Settings value shared between UI callbacks and the render loop.
type Store struct {
	mu       sync.RWMutex
	current  Settings
	watchers []chan struct{}
}

// NewStore creates a store holding s. Invalid values fall back to Defaults.
func NewStore(s Settings) *Store {
	if s.Validate() != nil {
		s = Defaults()
	}
	return &Store{current: s}
}

// Snapshot returns a copy of the current settings.
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Subscribe returns a channel signalled after every change. Signals coalesce.
func (st *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	st.mu.Lock()
	st.watchers = append(st.watchers, ch)
	st.mu.Unlock()
	return ch
}

func (st *Store) SetBackgroundColor(c color.RGBA) {
	st.update(func(s *Settings) { s.Background = c })
}

func (st *Store) SetBarColor1(c color.RGBA) {
	st.update(func(s *Settings) { s.Bar1 = c })
}

func (st *Store) SetBarColor2(c color.RGBA) {
	st.update(func(s *Settings) { s.Bar2 = c })
}

func (st *Store) SetGradient(on bool) {
	st.update(func(s *Settings) { s.Gradient = on })
}

// SetBarSpacing sets the pixel gap between bars.
func (st *Store) SetBarSpacing(n int) error {
	if n < 0 {
		return ErrInvalidSpacing
	}
	st.update(func(s *Settings) { s.BarSpacing = n })
	return nil
}

// ToggleEdgeWrap flips the wrap flag and returns the new value.
func (st *Store) ToggleEdgeWrap() bool {
	var wrap bool
	st.update(func(s *Settings) {
		s.WrapEdges = !s.WrapEdges
		wrap = s.WrapEdges
	})
	return wrap
}

func (st *Store) SetSampleCount(n int) error {
	if err := validateSampleCount(n); err != nil {
		return err
	}
	st.update(func(s *Settings) { s.SampleCount = n })
	return nil
}

func (st *Store) SetDecibelRange(min, max float64) error {
	if err := validateDecibels(min, max); err != nil {
		return err
	}
	st.update(func(s *Settings) {
		s.MinDecibels = min
		s.MaxDecibels = max
	})
	return nil
}

func (st *Store) SetSmoothing(v float64) error {
	if err := validateSmoothing(v); err != nil {
		return err
	}
	st.update(func(s *Settings) { s.Smoothing = v })
	return nil
}

func (st *Store) update(fn func(*Settings)) {
	st.mu.Lock()
	fn(&st.current)
	watchers := st.watchers
	st.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
