package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSpan    = 5.0
	DefaultSamples = 21
	DefaultClipLo  = 0.02
	DefaultClipHi  = 0.98
	DefaultWidthIn = 8.0
)

// Config describes one portrait: the field, its parameters, the sampling
// window, and the visual encoding.
type Config struct {
	Field  string             `yaml:"field"`
	Params map[string]float64 `yaml:"params"`
	Args   []float64          `yaml:"args"`
	Grid   GridConfig         `yaml:"grid"`
	Render RenderConfig       `yaml:"render"`
}

// GridConfig is the rectangular sampling window and resolution.
type GridConfig struct {
	QMin float64 `yaml:"q_min"`
	QMax float64 `yaml:"q_max"`
	QN   int     `yaml:"q_samples"`
	PMin float64 `yaml:"p_min"`
	PMax float64 `yaml:"p_max"`
	PN   int     `yaml:"p_samples"`
}

// RenderConfig is the visual encoding: glyph mode, colormap, magnitude
// clip percentiles, canvas size, and output target.
type RenderConfig struct {
	Mode     string  `yaml:"mode"`     // arrows, lines, both
	Colormap string  `yaml:"colormap"` // blackbody, kindlmann, bluered, hsl
	ClipLo   float64 `yaml:"clip_lo"`
	ClipHi   float64 `yaml:"clip_hi"`
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
	Dark     bool    `yaml:"dark"`
	Out      string  `yaml:"out"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: "pendulum",
		Grid: GridConfig{
			QMin: -DefaultSpan, QMax: DefaultSpan, QN: DefaultSamples,
			PMin: -DefaultSpan, PMax: DefaultSpan, PN: DefaultSamples,
		},
		Render: RenderConfig{
			Mode:     "both",
			Colormap: "blackbody",
			ClipLo:   DefaultClipLo,
			ClipHi:   DefaultClipHi,
			WidthIn:  DefaultWidthIn,
			HeightIn: DefaultWidthIn,
			Dark:     true,
			Out:      "phase_portrait.png",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
