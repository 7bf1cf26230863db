// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Spaces are the color spaces in which ramp colors are interpolated.
type Spaces int32

const (
	// RGB interpolates gamma encoded sRGB components.
	RGB Spaces = iota

	// LinearRGB interpolates linear light RGB components.
	LinearRGB

	// Lab interpolates in CIE L*a*b*, which is perceptually uniform.
	Lab
)

var spaceNames = [...]string{"rgb", "linear", "lab"}

func (s Spaces) String() string {
	if s < 0 || int(s) >= len(spaceNames) {
		return fmt.Sprintf("Spaces(%d)", int32(s))
	}
	return spaceNames[s]
}

// MarshalText implements [encoding.TextMarshaler].
func (s Spaces) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Spaces) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, nm := range spaceNames {
		if nm == name {
			*s = Spaces(i)
			return nil
		}
	}
	return fmt.Errorf("transfer: unknown color space %q", text)
}

// Point is a control point of a [Ramp].
type Point struct {

	// Value is the sample value of this point.
	Value float32

	// Color is the hex color at this point, as #rrggbb or #rgb.
	Color string

	// Opacity is the opacity at this point, in [0, 1].
	Opacity float32
}

// Ramp is a piecewise linear transfer function defined by control points.
// Samples below the first point or above the last take its color and opacity.
type Ramp struct {
	Points []Point

	// Space is the color space for interpolating colors.
	Space Spaces
}

type rampPoint struct {
	value   float32
	color   colorful.Color
	opacity float32
}

// Build samples the ramp at bucket values 0..n-1 into a [Function].
func (r *Ramp) Build(n int) (*Function, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalid, n)
	}
	if len(r.Points) == 0 {
		return nil, fmt.Errorf("%w: ramp has no points", ErrInvalid)
	}
	pts := make([]rampPoint, len(r.Points))
	for i, p := range r.Points {
		c, err := colorful.Hex(p.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %w", ErrInvalid, i, err)
		}
		if !(p.Opacity >= 0 && p.Opacity <= 1) {
			return nil, fmt.Errorf("%w: point %d opacity %v not in [0, 1]", ErrInvalid, i, p.Opacity)
		}
		pts[i] = rampPoint{value: p.Value, color: c, opacity: p.Opacity}
	}
	slices.SortStableFunc(pts, func(a, b rampPoint) int {
		switch {
		case a.value < b.value:
			return -1
		case a.value > b.value:
			return 1
		}
		return 0
	})

	f := New(n)
	seg := 0
	for b := 0; b < n; b++ {
		v := float32(b)
		for seg < len(pts)-1 && v >= pts[seg+1].value {
			seg++
		}
		var c colorful.Color
		var o float32
		switch {
		case seg == len(pts)-1:
			c, o = pts[seg].color, pts[seg].opacity
		case v <= pts[0].value:
			c, o = pts[0].color, pts[0].opacity
		default:
			p0, p1 := pts[seg], pts[seg+1]
			t := (v - p0.value) / (p1.value - p0.value)
			c = r.blend(p0.color, p1.color, float64(t))
			o = p0.opacity + (p1.opacity-p0.opacity)*t
		}
		f.Colors[b] = toRGBA(c)
		f.Opacities[b] = o
	}
	return f, nil
}

func (r *Ramp) blend(a, b colorful.Color, t float64) colorful.Color {
	switch r.Space {
	case LinearRGB:
		r1, g1, b1 := a.LinearRgb()
		r2, g2, b2 := b.LinearRgb()
		return colorful.LinearRgb(r1+t*(r2-r1), g1+t*(g2-g1), b1+t*(b2-b1))
	case Lab:
		return a.BlendLab(b, t)
	default:
		return a.BlendRgb(b, t)
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// Gray returns a transfer function of size n ramping from transparent
// black at 0 to opaque white at n-1.
func Gray(n int) (*Function, error) {
	r := &Ramp{Points: []Point{
		{Value: 0, Color: "#000000", Opacity: 0},
		{Value: float32(n - 1), Color: "#ffffff", Opacity: 1},
	}}
	return r.Build(n)
}

// Rainbow returns a transfer function of size n sweeping the hue from
// blue at 0 to red at n-1, with opacity ramping linearly from 0 to 1.
func Rainbow(n int) (*Function, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalid, n)
	}
	f := New(n)
	for b := 0; b < n; b++ {
		t := float64(b) / float64(n-1)
		f.Colors[b] = toRGBA(colorful.Hsv(240*(1-t), 1, 1))
		f.Opacities[b] = float32(t)
	}
	return f, nil
}

// Preset returns the named preset transfer function of size n:
// "gray" or "rainbow".
func Preset(name string, n int) (*Function, error) {
	switch strings.ToLower(name) {
	case "gray", "grey":
		return Gray(n)
	case "rainbow":
		return Rainbow(n)
	}
	return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
}
