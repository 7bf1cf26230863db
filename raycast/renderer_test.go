// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"context"
	"image/color"
	"testing"
	"time"

	"cogentcore.org/volray/base/iox/imagex"
	"cogentcore.org/volray/math32"
	"cogentcore.org/volray/transfer"
	"cogentcore.org/volray/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{255, 0, 0, 255}

// sphereScene returns a 16^3 sphere volume with peak value 100, and a
// camera on the +Z axis that sees the whole box except the image corners.
func sphereScene(t *testing.T, size int) (*volume.Grid, *Camera) {
	t.Helper()
	g, err := volume.NewSphere([3]int{16, 16, 16}, 100)
	require.NoError(t, err)
	center := g.Bounds().Center()
	cam := lookCamera(center.Add(math32.Vec3(0, 0, 45)), center, 1, 100, size, size)
	return g, cam
}

// unitScene returns the (2, 2, 2) volume with every sample 1, a transfer
// function mapping 1 to opaque red, and a camera looking down its center.
func unitScene(t *testing.T) (*volume.Grid, *transfer.Function, *Camera) {
	t.Helper()
	g, err := volume.NewConstant([3]int{2, 2, 2}, 1)
	require.NoError(t, err)
	g.Max = math32.Vec3(1, 1, 1)
	tf := transfer.New(2)
	tf.Colors[1] = red
	tf.Opacities[1] = 1
	cam := lookCamera(math32.Vec3(0.5, 0.5, 5), math32.Vec3(0.5, 0.5, 0.5), 0.1, 100, 1, 1)
	return g, tf, cam
}

func newTracer(t *testing.T, cfg *Config, g *volume.Grid, tf *transfer.Function, cam *Camera, light Light) *Tracer {
	t.Helper()
	s, err := NewSampler(g)
	require.NoError(t, err)
	pos, err := cam.Position()
	require.NoError(t, err)
	return &Tracer{
		Config:      cfg,
		Intersector: NewIntersector(g.Bounds(), testTransform(t, cam)),
		Sampler:     s,
		Transfer:    tf,
		Directions:  NewDirections(pos, light.Position),
	}
}

func defaultConfig() Config {
	var cfg Config
	cfg.Defaults()
	return cfg
}

func TestConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, float32(0.5), cfg.SamplingStep)
	assert.Equal(t, float32(0.97), cfg.OpaqueThreshold)
	assert.Equal(t, DefaultShading(Lambert), cfg.Shading)
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.SamplingStep = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
	bad = cfg
	bad.OpaqueThreshold = 1.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
	bad = cfg
	bad.Workers = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
	bad = cfg
	bad.Shading.Ka = -0.1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidShading)
}

func TestRenderTransparent(t *testing.T) {
	g, cam := sphereScene(t, 32)
	tf := transfer.New(101)
	for i := range tf.Colors {
		tf.Colors[i] = red
	}
	r := NewDefaultRenderer()
	light := Light{Position: math32.Vec3(0, 0, 100)}
	require.NoError(t, r.Render(context.Background(), g, tf, cam, light))

	w, h := r.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
	for i, b := range r.Color() {
		require.Equal(t, uint8(0), b, "byte %d", i)
	}

	tc := newTracer(t, &r.Config, g, tf, cam, light)
	depth := r.Depth()
	hits := 0
	for row := range h {
		for col := range w {
			sm := tc.Trace(float32(col)+0.5, float32(h-row)-0.5)
			d := depth[row*w+col]
			if sm.Hit {
				hits++
				assert.Less(t, d, float32(1))
			} else {
				assert.Equal(t, float32(1), d)
			}
			assert.Equal(t, sm.Depth, d)
		}
	}
	assert.Equal(t, hits, r.Stats.Hits)
	assert.Greater(t, hits, 0)
	assert.Less(t, hits, w*h, "corners miss the box")
	assert.Equal(t, float32(1), depth[0])
}

func TestRenderUnitVoxel(t *testing.T) {
	g, tf, cam := unitScene(t)
	light := Light{Position: math32.Vec3(0, 0, 100)}

	r := NewDefaultRenderer()
	r.Config.Shading = Shading{Type: Lambert, Ka: 1}
	require.NoError(t, r.Render(context.Background(), g, tf, cam, light))
	assert.Equal(t, []byte{255, 0, 0, 247}, r.Color())
	assert.Less(t, r.Depth()[0], float32(1))
	assert.Equal(t, 1, r.Stats.Hits)
	assert.Equal(t, 1, r.Stats.Samples)

	// a uniform field has no gradient, so only ambient light remains
	cfg := defaultConfig()
	sm := newTracer(t, &cfg, g, tf, cam, light).Trace(0.5, 0.5)
	assert.True(t, sm.Hit)
	assert.Equal(t, 1, sm.Steps)
	assert.Equal(t, float32(0.97), sm.Alpha)
	assert.InDelta(t, 255*0.5, sm.Color[0], 1e-4)
	assert.Equal(t, float32(0), sm.Color[1])
	assert.Equal(t, float32(0), sm.Color[2])
}

func TestRenderAlphaMonotonic(t *testing.T) {
	g, cam := sphereScene(t, 8)
	tf := transfer.New(101)
	for i := range tf.Colors {
		tf.Colors[i] = color.RGBA{200, 180, 160, 255}
		tf.Opacities[i] = 0.5 * float32(i) / 100
	}
	cfg := defaultConfig()
	cfg.Shading = DefaultShading(Phong)
	tc := newTracer(t, &cfg, g, tf, cam, Light{Position: math32.Vec3(30, 40, 50)})

	opaque := 0
	for y := float32(0.5); y < 8; y++ {
		for x := float32(0.5); x < 8; x++ {
			var alphas []float32
			tc.Observer = func(pos math32.Vector3, value, alpha float32) {
				alphas = append(alphas, alpha)
			}
			sm := tc.Trace(x, y)
			require.Len(t, alphas, sm.Steps)
			for i := 1; i < len(alphas); i++ {
				assert.GreaterOrEqual(t, alphas[i], alphas[i-1])
			}
			for _, a := range alphas {
				assert.LessOrEqual(t, a, cfg.OpaqueThreshold)
			}
			if sm.Steps > 0 {
				assert.Equal(t, alphas[len(alphas)-1], sm.Alpha)
			}
			if sm.Alpha == cfg.OpaqueThreshold {
				opaque++
			}
		}
	}
	assert.Greater(t, opaque, 0, "rays through the center saturate")
}

func TestRenderSamplingStep(t *testing.T) {
	g, cam := sphereScene(t, 1)
	light := Light{Position: math32.Vec3(0, 0, 100)}
	coarse := defaultConfig()
	fine := defaultConfig()
	fine.SamplingStep = coarse.SamplingStep / 2

	// no opacity: the number of samples follows the ray length
	empty := transfer.New(101)
	sc := newTracer(t, &coarse, g, empty, cam, light).Trace(0.5, 0.5)
	sf := newTracer(t, &fine, g, empty, cam, light).Trace(0.5, 0.5)
	assert.InDelta(t, 2*sc.Steps, sf.Steps, 2)
	assert.Equal(t, sc.Alpha, sf.Alpha)
	assert.Equal(t, float32(0), sf.Alpha)

	// saturating uniform opacity: the same result at either step
	cg, err := volume.NewConstant([3]int{16, 16, 16}, 50)
	require.NoError(t, err)
	half := transfer.New(101)
	for i := range half.Colors {
		half.Colors[i] = red
		half.Opacities[i] = 0.5
	}
	sc = newTracer(t, &coarse, cg, half, cam, light).Trace(0.5, 0.5)
	sf = newTracer(t, &fine, cg, half, cam, light).Trace(0.5, 0.5)
	assert.Equal(t, coarse.OpaqueThreshold, sc.Alpha)
	assert.Equal(t, sc.Alpha, sf.Alpha)
	assert.InDelta(t, sc.Color[0], sf.Color[0], 1e-3)
	assert.Equal(t, 6, sc.Steps)
	assert.Equal(t, 6, sf.Steps)
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()
	g, tf, cam := unitScene(t)
	light := Light{}

	fg, err := volume.New([3]int{2, 2, 2}, make([]float32, 8))
	require.NoError(t, err)
	r := NewDefaultRenderer()
	err = r.Render(ctx, fg, tf, cam, light)
	assert.ErrorIs(t, err, ErrUnsupportedDataType)
	assert.ErrorIs(t, err, volume.ErrUnsupportedType)
	assert.Nil(t, r.Color(), "no image on failure")

	small := transfer.New(1)
	assert.ErrorIs(t, r.Render(ctx, g, small, cam, light), transfer.ErrOutOfRange)
	assert.ErrorIs(t, r.Render(ctx, g, nil, cam, light), transfer.ErrInvalid)
	assert.ErrorIs(t, r.Render(ctx, g, tf, nil, light), ErrNoCamera)

	r.Config.SamplingStep = -1
	assert.ErrorIs(t, r.Render(ctx, g, tf, cam, light), ErrInvalidConfig)
}

func TestRenderBackground(t *testing.T) {
	g, cam := sphereScene(t, 16)
	tf, err := transfer.Rainbow(101)
	require.NoError(t, err)
	for _, workers := range []int{0, 1, 3, 64} {
		r := NewDefaultRenderer()
		r.Config.Workers = workers
		require.NoError(t, r.Render(context.Background(), g, tf, cam, Light{}), "workers %d", workers)
		assert.Greater(t, r.Stats.Hits, 0)
		assert.GreaterOrEqual(t, r.Stats.Samples, r.Stats.Hits)
		assert.Greater(t, r.Stats.Elapsed, time.Duration(0))
	}
}

// halfOpaque returns a 16^3 volume with every sample 50, mapped to red
// with opacity 0.5, which saturates after six samples.
func halfOpaque(t *testing.T) (*volume.Grid, *transfer.Function) {
	t.Helper()
	g, err := volume.NewConstant([3]int{16, 16, 16}, 50)
	require.NoError(t, err)
	tf := transfer.New(101)
	for i := range tf.Colors {
		tf.Colors[i] = red
		tf.Opacities[i] = 0.5
	}
	return g, tf
}

func TestRenderNearPlaneCut(t *testing.T) {
	g, tf := halfOpaque(t)
	center := g.Bounds().Center()
	light := Light{Position: math32.Vec3(0, 0, 100)}
	tests := []struct {
		name string
		eye  math32.Vector3
	}{
		{"outside", center.Add(math32.Vec3(0, 0, 12.5))},
		{"near plane inside", center.Add(math32.Vec3(0, 0, 7.6))},
		{"eye inside", center},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := lookCamera(tt.eye, tt.eye.Sub(math32.Vec3(0, 0, 1)), 1, 100, 4, 4)
			r := NewDefaultRenderer()
			require.NoError(t, r.Render(context.Background(), g, tf, cam, light))
			assert.Equal(t, 16, r.Stats.Hits)
			assert.Equal(t, 16*6, r.Stats.Samples)
			for i := range 16 {
				assert.Equal(t, uint8(247), r.Color()[4*i+3], "alpha of pixel %d", i)
				assert.Less(t, r.Depth()[i], float32(1))
			}
		})
	}
}

func TestRenderCanceled(t *testing.T) {
	g, cam := sphereScene(t, 16)
	tf, err := transfer.Rainbow(101)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewDefaultRenderer()
	assert.ErrorIs(t, r.Render(ctx, g, tf, cam, Light{}), context.Canceled)
}

func TestRenderWorkers(t *testing.T) {
	g, cam := sphereScene(t, 24)
	tf, err := transfer.Rainbow(101)
	require.NoError(t, err)
	light := Light{Position: math32.Vec3(20, 30, 40)}

	serial := NewDefaultRenderer()
	serial.Config.Workers = 1
	require.NoError(t, serial.Render(context.Background(), g, tf, cam, light))
	parallel := NewDefaultRenderer()
	parallel.Config.Workers = 8
	require.NoError(t, parallel.Render(context.Background(), g, tf, cam, light))

	assert.Equal(t, serial.Color(), parallel.Color())
	assert.Equal(t, serial.Depth(), parallel.Depth())
	assert.Equal(t, serial.Stats.Samples, parallel.Stats.Samples)

	// a new size reallocates, the same size reuses the buffers
	buf := parallel.Color()
	require.NoError(t, parallel.Render(context.Background(), g, tf, cam, light))
	assert.Same(t, &buf[0], &parallel.Color()[0])
	cam.Width = 12
	require.NoError(t, parallel.Render(context.Background(), g, tf, cam, light))
	assert.Len(t, parallel.Color(), 4*12*24)
	assert.Len(t, parallel.Depth(), 12*24)
}

func TestRenderImage(t *testing.T) {
	g, cam := sphereScene(t, 64)
	tf, err := transfer.Rainbow(101)
	require.NoError(t, err)
	r := NewDefaultRenderer()
	r.Config.Shading = DefaultShading(BlinnPhong)
	require.NoError(t, r.Render(context.Background(), g, tf, cam, Light{Position: math32.Vec3(20, 30, 40)}))

	img := r.Image()
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
	imagex.Assert(t, img, "sphere")

	depth := r.DepthImage()
	assert.Equal(t, uint16(0xffff), depth.Gray16At(0, 0).Y)
	assert.Less(t, depth.Gray16At(32, 32).Y, uint16(0xffff))
	imagex.Assert(t, depth, "sphere-depth")
}
