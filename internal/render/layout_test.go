package render

import (
	"math"
	"testing"
)

func TestLayoutWrapThirtyTwoBars(t *testing.T) {
	g := Layout(32, 800, 10, true)
	if g.BarWidth != 14.6875 {
		t.Fatalf("barWidth=%f want 14.6875", g.BarWidth)
	}
	if g.Left(0) != 10 {
		t.Fatalf("first left edge=%f want 10", g.Left(0))
	}
}

func TestLayoutTilesCanvas(t *testing.T) {
	for _, n := range []int{1, 2, 16, 32, 513, 1024} {
		for _, spacing := range []float64{0, 1, 3, 10} {
			for _, width := range []float64{320, 800, 1919} {
				wrap := Layout(n, width, spacing, true)
				total := spacing
				for i := 0; i < n; i++ {
					total += wrap.BarWidth + spacing
				}
				if math.Abs(total-width) > 1e-6 {
					t.Fatalf("wrap n=%d s=%v w=%v: total=%f", n, spacing, width, total)
				}

				flush := Layout(n, width, spacing, false)
				if flush.Left(0) != 0 {
					t.Fatalf("flush n=%d: leading gap %f", n, flush.Left(0))
				}
				right := flush.Left(n-1) + flush.BarWidth
				if math.Abs(right-width) > 1e-6 {
					t.Fatalf("flush n=%d s=%v w=%v: right edge=%f", n, spacing, width, right)
				}
			}
		}
	}
}

func TestLayoutNegativeWidthNotClamped(t *testing.T) {
	g := Layout(32, 100, 10, true)
	if g.BarWidth >= 0 {
		t.Fatalf("expected negative width, got %f", g.BarWidth)
	}
}

func TestLayoutEmpty(t *testing.T) {
	g := Layout(0, 800, 10, true)
	if g.Count != 0 || g.BarWidth != 0 {
		t.Fatalf("empty layout=%+v", g)
	}
}

func TestBarHeightBounds(t *testing.T) {
	if got := BarHeight(0, 400); got != 1 {
		t.Fatalf("BarHeight(0)=%f want 1", got)
	}
	if got := BarHeight(255, 400); got != 400 {
		t.Fatalf("BarHeight(255, 400)=%f want 400", got)
	}
	if got := BarHeight(128, 0); got != 1 {
		t.Fatalf("BarHeight on empty canvas=%f want 1", got)
	}
}

func TestBarHeightMonotonicAndBounded(t *testing.T) {
	for _, h := range []int{1, 2, 7, 100, 400, 2160} {
		prev := 0.0
		for v := 0; v <= 255; v++ {
			got := BarHeight(uint8(v), h)
			if got < 1 || got > float64(h) {
				t.Fatalf("BarHeight(%d, %d)=%f out of [1,%d]", v, h, got, h)
			}
			if got < prev {
				t.Fatalf("BarHeight(%d, %d)=%f decreased from %f", v, h, got, prev)
			}
			prev = got
		}
	}
}

func TestRescaleDegenerateInput(t *testing.T) {
	if got := Rescale(5, 3, 3, 1, 10); got != 1 {
		t.Fatalf("Rescale with empty input range=%f", got)
	}
}
