package config

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"librations": {
			Field: "pendulum",
			Grid:  GridConfig{QMin: -3.0, QMax: 3.0, QN: 25, PMin: -6.0, PMax: 6.0, PN: 25},
		},
		"separatrix": {
			Field: "pendulum",
			Grid:  GridConfig{QMin: -9.5, QMax: 9.5, QN: 41, PMin: -8.0, PMax: 8.0, PN: 31},
		},
	},
	"harmonic": {
		"stiff": {
			Field:  "harmonic",
			Params: map[string]float64{"k": 10.0, "m": 2.0},
			Grid:   GridConfig{QMin: -5.0, QMax: 5.0, QN: 21, PMin: -5.0, PMax: 5.0, PN: 31},
		},
		"soft": {
			Field:  "harmonic",
			Params: map[string]float64{"k": 0.5},
			Grid:   GridConfig{QMin: -5.0, QMax: 5.0, QN: 21, PMin: -5.0, PMax: 5.0, PN: 21},
		},
	},
	"duffing": {
		"doublewell": {
			Field: "duffing",
			Grid:  GridConfig{QMin: -2.0, QMax: 2.0, QN: 31, PMin: -1.5, PMax: 1.5, PN: 25},
		},
	},
	"shear": {
		"onion": {
			Field:  "shear",
			Params: map[string]float64{"k": 3.0},
			Grid:   GridConfig{QMin: -5.0, QMax: 5.0, QN: 21, PMin: -5.0, PMax: 5.0, PN: 31},
		},
	},
	"inverse": {
		"singular": {
			Field: "inverse",
			Grid:  GridConfig{QMin: -2.0, QMax: 2.0, QN: 21, PMin: -2.0, PMax: 2.0, PN: 21},
		},
	},
}

func GetPreset(field, preset string) *Config {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	cfg, ok := fieldPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ResolvePreset returns a complete config: defaults overlaid with the
// preset's field, params, args, and grid. Render settings stay at their
// defaults so command line flags still apply on top.
func ResolvePreset(field, preset string) *Config {
	p := GetPreset(field, preset)
	if p == nil {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Field = p.Field
	cfg.Params = p.Params
	cfg.Args = p.Args
	cfg.Grid = p.Grid
	return cfg
}

func ListPresets(field string) []string {
	fieldPresets, ok := Presets[field]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fieldPresets))
	for name := range fieldPresets {
		names = append(names, name)
	}
	return names
}
