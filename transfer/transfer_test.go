// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket(t *testing.T) {
	f := New(10)
	assert.Equal(t, 0, f.Bucket(-3.5))
	assert.Equal(t, 0, f.Bucket(0))
	assert.Equal(t, 0, f.Bucket(0.99))
	assert.Equal(t, 4, f.Bucket(4.7))
	assert.Equal(t, 9, f.Bucket(9))
	// past the end of the tables clamps to the last bucket
	assert.Equal(t, 9, f.Bucket(10))
	assert.Equal(t, 9, f.Bucket(1e9))
}

func TestCheckRange(t *testing.T) {
	f := New(256)
	assert.NoError(t, f.CheckRange(255))
	assert.NoError(t, f.CheckRange(-10))
	assert.ErrorIs(t, f.CheckRange(256), ErrOutOfRange)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New(4).Validate())
	assert.ErrorIs(t, New(0).Validate(), ErrInvalid)
	f := New(4)
	f.Opacities = f.Opacities[:3]
	assert.ErrorIs(t, f.Validate(), ErrInvalid)
	f = New(4)
	f.Opacities[2] = 1.5
	assert.ErrorIs(t, f.Validate(), ErrInvalid)
}

func TestRampBuild(t *testing.T) {
	r := &Ramp{Points: []Point{
		{Value: 8, Color: "#ffffff", Opacity: 1},
		{Value: 0, Color: "#000000", Opacity: 0},
	}}
	f, err := r.Build(12)
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	assert.Equal(t, 12, f.Size())

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, f.ColorAt(0))
	assert.Equal(t, float32(0), f.OpacityAt(0))
	assert.InDelta(t, 0.5, f.OpacityAt(4), 1e-6)
	assert.InDelta(t, 128, int(f.ColorAt(4).R), 1)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.ColorAt(8))
	// beyond the last point holds its value
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.ColorAt(11))
	assert.Equal(t, float32(1), f.OpacityAt(11))

	for i := 1; i < f.Size(); i++ {
		assert.GreaterOrEqual(t, f.OpacityAt(i), f.OpacityAt(i-1))
	}
}

func TestRampSpaces(t *testing.T) {
	pts := []Point{{Value: 0, Color: "#ff0000", Opacity: 1}, {Value: 10, Color: "#0000ff", Opacity: 1}}
	for _, sp := range []Spaces{RGB, LinearRGB, Lab} {
		r := &Ramp{Points: pts, Space: sp}
		f, err := r.Build(11)
		require.NoError(t, err, sp.String())
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, f.ColorAt(0), sp.String())
		assert.Equal(t, color.RGBA{0, 0, 255, 255}, f.ColorAt(10), sp.String())
	}
	// the middle of red to blue is half intensity in linear light,
	// which encodes brighter than the gamma encoded midpoint
	mid := func(sp Spaces) color.RGBA {
		f, err := (&Ramp{Points: pts, Space: sp}).Build(11)
		require.NoError(t, err)
		return f.ColorAt(5)
	}
	assert.Equal(t, color.RGBA{128, 0, 128, 255}, mid(RGB))
	lin := mid(LinearRGB)
	assert.InDelta(t, 188, lin.R, 1)
	assert.InDelta(t, 188, lin.B, 1)
	assert.Equal(t, uint8(0), lin.G)

	var sp Spaces
	require.NoError(t, sp.UnmarshalText([]byte("Lab")))
	assert.Equal(t, Lab, sp)
	assert.Error(t, sp.UnmarshalText([]byte("cmyk")))
}

func TestRampErrors(t *testing.T) {
	_, err := (&Ramp{}).Build(4)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = (&Ramp{Points: []Point{{Color: "red"}}}).Build(4)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = (&Ramp{Points: []Point{{Color: "#fff", Opacity: 2}}}).Build(4)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = (&Ramp{Points: []Point{{Color: "#fff"}}}).Build(0)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRampStep(t *testing.T) {
	r := &Ramp{Points: []Point{
		{Value: 0, Color: "#000000", Opacity: 0},
		{Value: 5, Color: "#000000", Opacity: 0},
		{Value: 5, Color: "#ff0000", Opacity: 1},
	}}
	f, err := r.Build(8)
	require.NoError(t, err)
	assert.Equal(t, float32(0), f.OpacityAt(4))
	assert.Equal(t, float32(1), f.OpacityAt(5))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, f.ColorAt(5))
}

func TestPresets(t *testing.T) {
	f, err := Preset("gray", 256)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, f.ColorAt(255))
	assert.Equal(t, float32(1), f.OpacityAt(255))

	f, err = Preset("rainbow", 256)
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, f.ColorAt(0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, f.ColorAt(255))

	_, err = Preset("viridis", 256)
	assert.Error(t, err)
}
