package settings

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v2"
)

// fileSettings mirrors the startup YAML file. Every key is optional.
type fileSettings struct {
	Samples     *int     `yaml:"samples"`
	MinDecibels *float64 `yaml:"min_decibels"`
	MaxDecibels *float64 `yaml:"max_decibels"`
	Smoothing   *float64 `yaml:"smoothing"`
	Background  *string  `yaml:"background"`
	BarColor1   *string  `yaml:"bar_color1"`
	BarColor2   *string  `yaml:"bar_color2"`
	Gradient    *bool    `yaml:"gradient"`
	BarSpacing  *int     `yaml:"bar_spacing"`
	Wrap        *bool    `yaml:"wrap"`
}

// LoadFile reads a YAML settings file on top of Defaults.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings on top of Defaults. Values go through the Store setters.
func Parse(data []byte) (Settings, error) {
	var f fileSettings
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	st := NewStore(Defaults())
	if f.Samples != nil {
		if err := st.SetSampleCount(*f.Samples); err != nil {
			return Settings{}, fmt.Errorf("samples: %w", err)
		}
	}
	if f.MinDecibels != nil || f.MaxDecibels != nil {
		cur := st.Snapshot()
		min, max := cur.MinDecibels, cur.MaxDecibels
		if f.MinDecibels != nil {
			min = *f.MinDecibels
		}
		if f.MaxDecibels != nil {
			max = *f.MaxDecibels
		}
		if err := st.SetDecibelRange(min, max); err != nil {
			return Settings{}, fmt.Errorf("decibels: %w", err)
		}
	}
	if f.Smoothing != nil {
		if err := st.SetSmoothing(*f.Smoothing); err != nil {
			return Settings{}, fmt.Errorf("smoothing: %w", err)
		}
	}

	if err := applyColor(f.Background, "background", st.SetBackgroundColor); err != nil {
		return Settings{}, err
	}
	if err := applyColor(f.BarColor1, "bar_color1", st.SetBarColor1); err != nil {
		return Settings{}, err
	}
	if err := applyColor(f.BarColor2, "bar_color2", st.SetBarColor2); err != nil {
		return Settings{}, err
	}
	if f.Gradient != nil {
		st.SetGradient(*f.Gradient)
	}
	if f.BarSpacing != nil {
		if err := st.SetBarSpacing(*f.BarSpacing); err != nil {
			return Settings{}, fmt.Errorf("bar_spacing: %w", err)
		}
	}
	if f.Wrap != nil && *f.Wrap != st.Snapshot().WrapEdges {
		st.ToggleEdgeWrap()
	}
	return st.Snapshot(), nil
}

func applyColor(value *string, key string, set func(color.RGBA)) error {
	if value == nil {
		return nil
	}
	c, err := ParseColor(*value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	set(c)
	return nil
}
