// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raycast renders structured scalar volumes by casting one ray
// per pixel through the volume box, sampling the field at a fixed step,
// and compositing the transfer function colors front to back.
package raycast

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"cogentcore.org/volray/base/iox/imagex"
	"cogentcore.org/volray/math32"
	"cogentcore.org/volray/transfer"
	"cogentcore.org/volray/volume"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedDataType is returned when the volume samples are not int32.
var ErrUnsupportedDataType = errors.New("raycast: unsupported volume data type")

// Sample is the result of tracing one ray.
type Sample struct {

	// Color is the accumulated color, with components in 0..255
	// premultiplied by Alpha.
	Color [3]float32

	// Alpha is the accumulated opacity.
	Alpha float32

	// Depth is the window depth of the entry point, or 1 on a miss.
	Depth float32

	// Steps is the number of samples taken.
	Steps int

	// Hit is whether the ray entered the volume box.
	Hit bool
}

// Tracer traces single rays. It holds the per-worker state of a render
// and is not safe for concurrent use.
type Tracer struct {
	Config      *Config
	Intersector *Intersector
	Sampler     *Sampler
	Transfer    *transfer.Function
	Directions  Directions

	// Observer, if set, is called for every sample taken with the
	// sample position, the sample value and the opacity accumulated so far.
	Observer func(pos math32.Vector3, value, alpha float32)
}

// Trace traces the ray through window position (x, y), where (0, 0)
// is the bottom left corner of the viewport.
func (tc *Tracer) Trace(x, y float32) Sample {
	it := tc.Intersector
	it.SetOrigin(x, y)
	if !it.Intersected() {
		return Sample{Depth: 1}
	}
	sm := Sample{Hit: true, Depth: it.Depth()}
	sh := &tc.Config.Shading
	threshold := tc.Config.OpaqueThreshold
	for {
		pos := it.Point()
		tc.Sampler.Attach(pos)
		s := max(tc.Sampler.Scalar(), 0)
		b := tc.Transfer.Bucket(s)
		sm.Steps++
		opaque := false
		if density := tc.Transfer.OpacityAt(b); density != 0 {
			att := sh.Attenuation(tc.Sampler.Gradient(), tc.Directions)
			cur := (1 - sm.Alpha) * density
			c := tc.Transfer.ColorAt(b)
			f := cur * att
			sm.Color[0] += float32(c.R) * f
			sm.Color[1] += float32(c.G) * f
			sm.Color[2] += float32(c.B) * f
			sm.Alpha += cur
			if sm.Alpha > threshold {
				sm.Alpha = threshold
				opaque = true
			}
		}
		if tc.Observer != nil {
			tc.Observer(pos, s, sm.Alpha)
		}
		if opaque {
			break
		}
		it.Step(tc.Config.SamplingStep)
		if !it.Inside() {
			break
		}
	}
	return sm
}

// Stats are statistics of the last frame.
type Stats struct {
	Hits    int
	Samples int
	Elapsed time.Duration
}

// Renderer renders volumes into a color and a depth buffer. The buffers
// are kept between frames and reallocated when the image size changes.
// A Renderer must not be used by more than one goroutine at once.
type Renderer struct {
	Config Config

	// Stats of the last completed frame.
	Stats Stats

	width, height int
	color         []byte
	depth         []float32
}

// NewRenderer returns a renderer with the given config.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{Config: cfg}
}

// NewDefaultRenderer returns a renderer with the default config.
func NewDefaultRenderer() *Renderer {
	r := &Renderer{}
	r.Config.Defaults()
	return r
}

// Render renders the grid with the transfer function tf, as seen by
// cam and lit by light. Only int32 grids are supported: any other
// sample type fails with [ErrUnsupportedDataType] before any pixel is
// written. Rows are rendered in parallel by up to Config.Workers workers,
// each owning one [Tracer], and ctx is checked between rows.
func (r *Renderer) Render(ctx context.Context, grid *volume.Grid, tf *transfer.Function, cam *Camera, light Light) error {
	if err := r.Config.Validate(); err != nil {
		return err
	}
	if grid == nil {
		return fmt.Errorf("%w: no volume", ErrUnsupportedDataType)
	}
	if _, err := grid.Int32s(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedDataType, err)
	}
	if err := grid.Validate(); err != nil {
		return err
	}
	if tf == nil {
		return fmt.Errorf("%w: no transfer function", transfer.ErrInvalid)
	}
	if err := tf.Validate(); err != nil {
		return err
	}
	_, maxValue, err := grid.Range()
	if err != nil {
		return err
	}
	if err := tf.CheckRange(maxValue); err != nil {
		return err
	}
	tr, err := cam.Transform()
	if err != nil {
		return err
	}
	camPos, err := cam.Position()
	if err != nil {
		return err
	}
	dirs := NewDirections(camPos, light.Position)

	r.resize(cam.Width, cam.Height)

	start := time.Now()
	var hits, samples, next atomic.Int64
	workers := r.Config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(min(workers, r.height), 1)
	bounds := grid.Bounds()
	eg, gctx := errgroup.WithContext(ctx)
	for range workers {
		eg.Go(func() error {
			sampler, err := NewSampler(grid)
			if err != nil {
				return err
			}
			tc := &Tracer{
				Config:      &r.Config,
				Intersector: NewIntersector(bounds, tr),
				Sampler:     sampler,
				Transfer:    tf,
				Directions:  dirs,
			}
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := int(next.Add(1) - 1)
				if row >= r.height {
					return nil
				}
				h, n := r.renderRow(tc, row)
				hits.Add(int64(h))
				samples.Add(int64(n))
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	// gctx is always canceled once Wait returns; only the caller's ctx counts
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Stats = Stats{Hits: int(hits.Load()), Samples: int(samples.Load()), Elapsed: time.Since(start)}
	slog.Debug("raycast: rendered frame", "width", r.width, "height", r.height, "workers", workers,
		"hits", r.Stats.Hits, "samples", r.Stats.Samples, "elapsed", r.Stats.Elapsed)
	return nil
}

// renderRow renders one image row, where row 0 is the top of the image,
// and returns the number of rays that hit the volume and samples taken.
func (r *Renderer) renderRow(tc *Tracer, row int) (hits, samples int) {
	y := float32(r.height-row) - 0.5
	for col := range r.width {
		sm := tc.Trace(float32(col)+0.5, y)
		pi := row*r.width + col
		r.depth[pi] = sm.Depth
		px := r.color[4*pi : 4*pi+4 : 4*pi+4]
		px[0] = toByte(sm.Color[0])
		px[1] = toByte(sm.Color[1])
		px[2] = toByte(sm.Color[2])
		px[3] = toByte(sm.Alpha * 255)
		if sm.Hit {
			hits++
		}
		samples += sm.Steps
	}
	return
}

// resize reallocates the buffers if the image size changed.
func (r *Renderer) resize(width, height int) {
	if width == r.width && height == r.height && r.color != nil {
		return
	}
	r.width, r.height = width, height
	r.color = make([]byte, 4*width*height)
	r.depth = make([]float32, width*height)
}

func toByte(v float32) uint8 {
	return uint8(math32.Round(math32.Clamp(v, 0, 255)))
}

// Size returns the size of the last rendered image.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Color returns the color buffer: RGBA bytes per pixel, row by row
// from the top left of the image, with color premultiplied by alpha.
func (r *Renderer) Color() []byte {
	return r.color
}

// Depth returns the depth buffer: the window depth of the volume entry
// point per pixel, row by row from the top left, with 1 for no hit.
func (r *Renderer) Depth() []float32 {
	return r.depth
}

// Image returns the color buffer as an image, sharing its memory.
func (r *Renderer) Image() *image.RGBA {
	return imagex.WrapRGBA(r.color, r.width, r.height)
}

// DepthImage returns a copy of the depth buffer as a 16 bit gray image,
// where white is the far plane.
func (r *Renderer) DepthImage() *image.Gray16 {
	return imagex.Gray16(r.depth, r.width, r.height)
}
