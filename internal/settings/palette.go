package settings

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

var (
	Black     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	White     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Cyan      = color.RGBA{R: 0x00, G: 0xab, B: 0xeb, A: 0xff}
	GreenAcid = color.RGBA{R: 0xa8, G: 0xeb, B: 0x12, A: 0xff}
	Pink      = color.RGBA{R: 0xcb, G: 0x0e, B: 0xd9, A: 0xff}
)

var namedColors = map[string]color.RGBA{
	"black":     Black,
	"white":     White,
	"cyan":      Cyan,
	"greenacid": GreenAcid,
	"pink":      Pink,
}

// Palette returns the named colors keyed by their lowercase name.
func Palette() map[string]color.RGBA {
	out := make(map[string]color.RGBA, len(namedColors))
	for name, c := range namedColors {
		out[name] = c
	}
	return out
}

// PaletteNames returns all palette identifiers.
func PaletteNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseColor accepts "#rrggbb", "#rgb" or a palette name.
func ParseColor(s string) (color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[key]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(key, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
