package render

import (
	"strconv"
	"strings"

	"github.com/guidoenr/streambars/internal/settings"
)

// Renderer paints frequency snapshots as bar charts.
type Renderer struct {
	statusBuilder strings.Builder
}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render paints one frame: background, then one bar per magnitude anchored to
// the bottom edge. It returns the geometry used.
func (r *Renderer) Render(s Surface, st settings.Settings, magnitudes []uint8) Geometry {
	width, height := s.Size()
	w := float64(width)
	h := float64(height)

	s.FillRect(0, 0, w, h, Solid(st.Background))

	fill := BarFill(st, height)
	geo := Layout(len(magnitudes), w, float64(st.BarSpacing), st.WrapEdges)

	x := geo.Start
	for _, v := range magnitudes {
		barHeight := BarHeight(v, height)
		s.FillRect(x, h-barHeight, geo.BarWidth, barHeight, fill)
		x += geo.BarWidth + geo.Spacing
	}
	return geo
}

// Clear paints only the background. Used when no analyzer is available.
func (r *Renderer) Clear(s Surface, st settings.Settings) {
	width, height := s.Size()
	s.FillRect(0, 0, float64(width), float64(height), Solid(st.Background))
}

// Status builds a one line summary of the current frame.
func (r *Renderer) Status(st settings.Settings, geo Geometry, fps float64) string {
	builder := &r.statusBuilder
	builder.Reset()
	builder.Grow(96)
	builder.WriteString("bars=")
	builder.WriteString(strconv.Itoa(geo.Count))
	builder.WriteString(" width=")
	appendFloat(builder, geo.BarWidth, 1)
	builder.WriteString(" spacing=")
	builder.WriteString(strconv.Itoa(st.BarSpacing))
	builder.WriteString(" wrap=")
	builder.WriteString(onOff(st.WrapEdges))
	builder.WriteString(" gradient=")
	builder.WriteString(onOff(st.Gradient))
	builder.WriteString(" | fps ")
	appendFloat(builder, fps, 1)
	return builder.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func appendFloat(builder *strings.Builder, value float64, precision int) {
	var buf [32]byte
	b := strconv.AppendFloat(buf[:0], value, 'f', precision, 64)
	builder.Write(b)
}
