package settings

import (
	"errors"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestToggleEdgeWrapTwiceRestores(t *testing.T) {
	st := NewStore(Defaults())
	orig := st.Snapshot().WrapEdges
	if got := st.ToggleEdgeWrap(); got == orig {
		t.Fatalf("first toggle returned %v, want %v", got, !orig)
	}
	st.ToggleEdgeWrap()
	if got := st.Snapshot().WrapEdges; got != orig {
		t.Fatalf("wrap=%v after two toggles, want %v", got, orig)
	}
}

func TestSetBarSpacingRejectsNegative(t *testing.T) {
	st := NewStore(Defaults())
	if err := st.SetBarSpacing(-1); !errors.Is(err, ErrInvalidSpacing) {
		t.Fatalf("SetBarSpacing(-1) err=%v", err)
	}
	if got := st.Snapshot().BarSpacing; got != 10 {
		t.Fatalf("spacing changed to %d", got)
	}
	if err := st.SetBarSpacing(0); err != nil {
		t.Fatalf("SetBarSpacing(0): %v", err)
	}
	if got := st.Snapshot().BarSpacing; got != 0 {
		t.Fatalf("spacing=%d want 0", got)
	}
}

func TestSetSampleCount(t *testing.T) {
	cases := map[int]bool{
		16:   false,
		32:   true,
		48:   false,
		64:   true,
		1024: true,
		2048: true,
		4096: false,
		0:    false,
		-32:  false,
	}
	for n, ok := range cases {
		st := NewStore(Defaults())
		err := st.SetSampleCount(n)
		if ok && err != nil {
			t.Fatalf("SetSampleCount(%d) unexpected error %v", n, err)
		}
		if !ok {
			if !errors.Is(err, ErrInvalidSampleCount) {
				t.Fatalf("SetSampleCount(%d) err=%v want ErrInvalidSampleCount", n, err)
			}
			if got := st.Snapshot().SampleCount; got != 32 {
				t.Fatalf("SetSampleCount(%d) changed count to %d", n, got)
			}
		}
	}
}

func TestSetDecibelRange(t *testing.T) {
	st := NewStore(Defaults())
	if err := st.SetDecibelRange(-20, -120); !errors.Is(err, ErrInvalidDecibelRange) {
		t.Fatalf("inverted range err=%v", err)
	}
	if err := st.SetDecibelRange(-50, -50); !errors.Is(err, ErrInvalidDecibelRange) {
		t.Fatalf("empty range err=%v", err)
	}
	if err := st.SetDecibelRange(-90, -10); err != nil {
		t.Fatalf("valid range: %v", err)
	}
	s := st.Snapshot()
	if s.MinDecibels != -90 || s.MaxDecibels != -10 {
		t.Fatalf("range=%v..%v", s.MinDecibels, s.MaxDecibels)
	}
}

func TestSetSmoothing(t *testing.T) {
	st := NewStore(Defaults())
	for _, v := range []float64{-0.1, 1.1} {
		if err := st.SetSmoothing(v); !errors.Is(err, ErrInvalidSmoothing) {
			t.Fatalf("SetSmoothing(%v) err=%v", v, err)
		}
	}
	if err := st.SetSmoothing(0); err != nil {
		t.Fatalf("SetSmoothing(0): %v", err)
	}
}

func TestSubscribeSignalsOnChange(t *testing.T) {
	st := NewStore(Defaults())
	ch := st.Subscribe()
	st.SetGradient(false)
	st.SetBarColor2(Pink)
	select {
	case <-ch:
	default:
		t.Fatalf("expected change signal")
	}
	select {
	case <-ch:
		t.Fatalf("signals should coalesce")
	default:
	}
}

func TestNewStoreFallsBackOnInvalid(t *testing.T) {
	bad := Defaults()
	bad.SampleCount = 33
	if got := NewStore(bad).Snapshot(); got != Defaults() {
		t.Fatalf("invalid settings kept: %+v", got)
	}
}

func TestSameAnalysis(t *testing.T) {
	a := Defaults()
	b := a
	b.Bar1 = Pink
	b.BarSpacing = 3
	if !a.SameAnalysis(b) {
		t.Fatalf("style changes should not affect analysis")
	}
	b.SampleCount = 64
	if a.SameAnalysis(b) {
		t.Fatalf("sample count change should affect analysis")
	}
}
