package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ColorMap assigns a color to a magnitude. Values outside the configured
// bounds are clamped, never rejected: clipped outliers still render, pinned
// to the end of the scale.
type ColorMap interface {
	At(mag float64) color.Color
}

// NewColorMap builds the named colormap over [min, max].
func NewColorMap(name string, min, max float64) (ColorMap, error) {
	switch name {
	case "", "blackbody":
		return newMoreland(moreland.ExtendedBlackBody(), min, max), nil
	case "kindlmann":
		return newMoreland(moreland.Kindlmann(), min, max), nil
	case "bluered":
		return newMoreland(moreland.SmoothBlueRed(), min, max), nil
	case "hsl":
		return &hslMap{min: min, max: max}, nil
	}
	return nil, fmt.Errorf("unknown colormap %q (have blackbody, kindlmann, bluered, hsl)", name)
}

type morelandMap struct {
	cm       palette.ColorMap
	min, max float64
}

func newMoreland(cm palette.ColorMap, min, max float64) *morelandMap {
	cm.SetMin(min)
	cm.SetMax(max)
	return &morelandMap{cm: cm, min: min, max: max}
}

func (m *morelandMap) At(mag float64) color.Color {
	c, err := m.cm.At(clamp(mag, m.min, m.max))
	if err != nil {
		return color.Gray{Y: 128}
	}
	return c
}

// hslMap sweeps hue from blue (low) to red (high) at fixed saturation and
// lightness.
type hslMap struct {
	min, max float64
}

func (m *hslMap) At(mag float64) color.Color {
	t := 0.0
	if m.max > m.min {
		t = (clamp(mag, m.min, m.max) - m.min) / (m.max - m.min)
	}
	hue := (1 - t) * 2.0 / 3.0
	r, g, b := hslToRGB(hue, 0.7, 0.5)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
