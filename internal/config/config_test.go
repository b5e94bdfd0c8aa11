package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field == "" {
		t.Error("default config has no field")
	}
	if cfg.Grid.QN < 2 || cfg.Grid.PN < 2 {
		t.Errorf("default grid too coarse: %dx%d", cfg.Grid.QN, cfg.Grid.PN)
	}
	if cfg.Render.ClipLo >= cfg.Render.ClipHi {
		t.Errorf("default clip percentiles inverted: %v >= %v", cfg.Render.ClipLo, cfg.Render.ClipHi)
	}
	if cfg.Render.Out == "" {
		t.Error("default config has no output path")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portrait.yaml")

	cfg := DefaultConfig()
	cfg.Field = "duffing"
	cfg.Params = map[string]float64{"alpha": -2, "beta": 0.5}
	cfg.Args = []float64{1, 2}
	cfg.Grid.QMin = -3
	cfg.Render.Mode = "arrows"
	cfg.Render.Dark = false

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Field != "duffing" {
		t.Errorf("Field = %q", loaded.Field)
	}
	if loaded.Params["alpha"] != -2 || loaded.Params["beta"] != 0.5 {
		t.Errorf("Params = %v", loaded.Params)
	}
	if len(loaded.Args) != 2 || loaded.Args[1] != 2 {
		t.Errorf("Args = %v", loaded.Args)
	}
	if loaded.Grid.QMin != -3 {
		t.Errorf("Grid.QMin = %v", loaded.Grid.QMin)
	}
	if loaded.Render.Mode != "arrows" || loaded.Render.Dark {
		t.Errorf("Render = %+v", loaded.Render)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	for field, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Field != field {
				t.Errorf("preset %s/%s names field %q", field, name, cfg.Field)
			}
			if cfg.Grid.QN < 2 || cfg.Grid.PN < 2 {
				t.Errorf("preset %s/%s grid too coarse", field, name)
			}
		}
	}

	if GetPreset("pendulum", "separatrix") == nil {
		t.Error("pendulum/separatrix preset missing")
	}
	if GetPreset("pendulum", "nope") != nil {
		t.Error("unknown preset should return nil")
	}
	if GetPreset("nope", "nope") != nil {
		t.Error("unknown field should return nil")
	}
}

func TestResolvePreset(t *testing.T) {
	cfg := ResolvePreset("harmonic", "stiff")
	if cfg == nil {
		t.Fatal("harmonic/stiff did not resolve")
	}
	if cfg.Params["k"] != 10 {
		t.Errorf("Params = %v", cfg.Params)
	}
	// Render settings come from defaults, not the preset stub.
	if cfg.Render.Colormap == "" || cfg.Render.Out == "" {
		t.Errorf("resolved preset missing render defaults: %+v", cfg.Render)
	}
	if ResolvePreset("harmonic", "nope") != nil {
		t.Error("unknown preset should resolve to nil")
	}
}
