package render

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/phaseflow/internal/eval"
	"github.com/san-kum/phaseflow/internal/norm"
	"github.com/san-kum/phaseflow/internal/phase"
)

func normalized(t *testing.T, f func(q, p float64, args []float64) (float64, float64)) *norm.Field {
	t.Helper()
	g, err := phase.NewGrid(phase.Linspace(-2, 2, 9), phase.Linspace(-2, 2, 9))
	if err != nil {
		t.Fatal(err)
	}
	s, err := eval.Evaluate(g, phase.FieldFunc(f), nil)
	if err != nil {
		t.Fatal(err)
	}
	return norm.Normalize(s, norm.DefaultOptions())
}

func rotation(q, p float64, _ []float64) (float64, float64) { return p, -q }

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"arrows", ModeArrows, false},
		{"lines", ModeLines, false},
		{"both", ModeBoth, false},
		{"", ModeBoth, false},
		{"quiver", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPortrait_AllModes(t *testing.T) {
	f := normalized(t, rotation)
	for _, mode := range []Mode{ModeArrows, ModeLines, ModeBoth} {
		if _, err := Portrait(f, Spec{Mode: mode}); err != nil {
			t.Errorf("mode %v: %v", mode, err)
		}
	}
}

func TestPortrait_UnknownColormap(t *testing.T) {
	f := normalized(t, rotation)
	if _, err := Portrait(f, Spec{Colormap: "inferno"}); err == nil {
		t.Error("unknown colormap should fail")
	}
}

func TestPortrait_ToleratesSingularAndZeroNodes(t *testing.T) {
	f := normalized(t, func(q, p float64, _ []float64) (float64, float64) {
		return 1 / q, p // singular column at q=0, equilibrium nowhere
	})
	p, err := Portrait(f, Spec{Mode: ModeBoth, Dark: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Encode(p, 4, 4, "png"); err != nil {
		t.Fatal(err)
	}

	// And a field that is zero everywhere: only markers, no glyphs.
	f = normalized(t, func(q, p float64, _ []float64) (float64, float64) {
		return 0, 0
	})
	if _, err := Portrait(f, Spec{}); err != nil {
		t.Fatal(err)
	}
}

func TestPortrait_Deterministic(t *testing.T) {
	f := normalized(t, rotation)
	spec := Spec{Mode: ModeBoth, Colormap: "hsl", Dark: true, Title: "rotation"}

	p1, err := Portrait(f, spec)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Portrait(f, spec)
	if err != nil {
		t.Fatal(err)
	}

	b1, err := Encode(p1, 4, 4, "png")
	if err != nil {
		t.Fatal(err)
	}
	b2, err := Encode(p2, 4, 4, "png")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b2) {
		t.Error("two renders of identical inputs differ")
	}
}

func TestSave(t *testing.T) {
	f := normalized(t, rotation)
	p, err := Portrait(f, Spec{Mode: ModeArrows})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "portrait.png")
	if err := Save(p, 4, 4, path); err != nil {
		t.Fatal(err)
	}

	if err := Save(p, 4, 4, filepath.Join(t.TempDir(), "portrait.nope")); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestNewColorMap(t *testing.T) {
	for _, name := range []string{"", "blackbody", "kindlmann", "bluered", "hsl"} {
		if _, err := NewColorMap(name, 0, 1); err != nil {
			t.Errorf("NewColorMap(%q): %v", name, err)
		}
	}
	if _, err := NewColorMap("viridis", 0, 1); err == nil {
		t.Error("unknown colormap should fail")
	}
}

func TestColorMap_ClampsOutOfRange(t *testing.T) {
	cm, err := NewColorMap("blackbody", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	low := cm.At(0.5)
	atMin := cm.At(1)
	if !sameColor(low, atMin) {
		t.Error("below-range magnitude should clamp to the minimum color")
	}
	high := cm.At(math.Inf(1))
	atMax := cm.At(2)
	if !sameColor(high, atMax) {
		t.Error("above-range magnitude should clamp to the maximum color")
	}
}

func TestHSLMap_Endpoints(t *testing.T) {
	cm, err := NewColorMap("hsl", 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	r0, _, b0, _ := cm.At(0).RGBA()
	if b0 <= r0 {
		t.Error("low magnitude should lean blue")
	}
	r1, _, b1, _ := cm.At(1).RGBA()
	if r1 <= b1 {
		t.Error("high magnitude should lean red")
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
