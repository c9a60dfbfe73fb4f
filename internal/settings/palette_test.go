package settings

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"#00ABEB":    Cyan,
		"#a8eb12":    GreenAcid,
		"#fff":       White,
		"pink":       Pink,
		" GreenAcid": GreenAcid,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q)=%v want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "#12", "#gggggg", "blurple"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("ParseColor(%q) expected error", in)
		}
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	if got := FormatColor(Cyan); got != "#00abeb" {
		t.Fatalf("FormatColor=%s", got)
	}
}

func TestPaletteNamesSorted(t *testing.T) {
	names := PaletteNames()
	if len(names) != 5 || names[0] != "black" {
		t.Fatalf("names=%v", names)
	}
}
