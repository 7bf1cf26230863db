// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"cogentcore.org/volray/base/iox/imagex"
	"cogentcore.org/volray/raycast"
	"cogentcore.org/volray/transfer"
	"github.com/lucasb-eyer/go-colorful"
)

// Transfer describes the transfer function: either a ramp through
// control points or a named preset.
type Transfer struct {

	// Preset is the preset used when there are no Points: gray or rainbow.
	Preset string

	// Size is the number of buckets. 0 means the maximum sample
	// value of the volume plus one.
	Size int

	// Space is the color space in which Points are interpolated.
	Space transfer.Spaces

	// Points are the control points of a ramp.
	Points []transfer.Point
}

// Defaults sets the default settings.
func (t *Transfer) Defaults() {
	t.Preset = "rainbow"
	t.Space = transfer.Lab
}

// Validate checks the settings.
func (t *Transfer) Validate() error {
	if t.Size < 0 {
		return fmt.Errorf("%w: transfer size %d", ErrInvalid, t.Size)
	}
	if len(t.Points) == 0 && t.Preset == "" {
		return fmt.Errorf("%w: transfer function needs points or a preset", ErrInvalid)
	}
	return nil
}

// Projections are the camera projections.
const (
	Perspective  = "perspective"
	Orthographic = "orthographic"
)

// Camera describes the camera.
type Camera struct {

	// Projection is perspective or orthographic.
	Projection string

	// Auto places the camera on the +Z axis of the volume, looking at
	// its center from a distance at which the whole volume is in view.
	// Eye and Target are ignored.
	Auto bool

	// Eye is the position of the camera.
	Eye [3]float32

	// Target is the point the camera looks at.
	Target [3]float32

	// Up is the up direction of the camera.
	Up [3]float32

	// FOV is the vertical field of view of a perspective camera, in degrees.
	FOV float32

	// ViewHeight is the height of the view of an orthographic
	// camera in world units. 0 fits the volume.
	ViewHeight float32

	// Near and Far are the distances of the clip planes.
	Near, Far float32

	// Width and Height are the size of the image in pixels.
	Width, Height int
}

// Defaults sets the default settings.
func (c *Camera) Defaults() {
	c.Projection = Perspective
	c.Auto = true
	c.Up = [3]float32{0, 1, 0}
	c.FOV = 30
	c.Near = 0.1
	c.Far = 1000
	c.Width = 512
	c.Height = 512
}

// Validate checks the settings.
func (c *Camera) Validate() error {
	switch c.Projection {
	case Perspective:
		if !(c.FOV > 0 && c.FOV < 180) {
			return fmt.Errorf("%w: field of view %v", ErrInvalid, c.FOV)
		}
	case Orthographic:
		if c.ViewHeight < 0 {
			return fmt.Errorf("%w: view height %v", ErrInvalid, c.ViewHeight)
		}
	default:
		return fmt.Errorf("%w: unknown projection %q", ErrInvalid, c.Projection)
	}
	if !(c.Near > 0 && c.Far > c.Near) {
		return fmt.Errorf("%w: clip planes near %v far %v", ErrInvalid, c.Near, c.Far)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if !c.Auto && c.Eye == c.Target {
		return fmt.Errorf("%w: camera eye and target are the same", ErrInvalid)
	}
	if c.Up == [3]float32{} {
		return fmt.Errorf("%w: camera up is zero", ErrInvalid)
	}
	return nil
}

// Light describes the point light.
type Light struct {

	// Headlight puts the light at the camera. Position is ignored.
	Headlight bool

	// Position of the light.
	Position [3]float32
}

// Defaults sets the default settings.
func (l *Light) Defaults() {
	l.Headlight = true
}

// Render has the renderer settings. Shading coefficients that are not
// set take the defaults of the shading model.
type Render struct {
	SamplingStep    float32
	OpaqueThreshold float32
	Shading         raycast.Shadings
	Ka, Kd, Ks, S   *float32 `json:",omitempty" yaml:",omitempty" toml:",omitempty"`

	// Workers is the number of rows rendered at once. 0 means one per CPU.
	Workers int
}

// Defaults sets the default settings.
func (r *Render) Defaults() {
	var cfg raycast.Config
	cfg.Defaults()
	r.SamplingStep = cfg.SamplingStep
	r.OpaqueThreshold = cfg.OpaqueThreshold
	r.Shading = cfg.Shading.Type
	r.Workers = cfg.Workers
}

// Config returns the renderer config.
func (r *Render) Config() raycast.Config {
	cfg := raycast.Config{
		SamplingStep:    r.SamplingStep,
		OpaqueThreshold: r.OpaqueThreshold,
		Shading:         raycast.DefaultShading(r.Shading),
		Workers:         r.Workers,
	}
	set := func(dst *float32, src *float32) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.Shading.Ka, r.Ka)
	set(&cfg.Shading.Kd, r.Kd)
	set(&cfg.Shading.Ks, r.Ks)
	set(&cfg.Shading.S, r.S)
	return cfg
}

// Validate checks the settings.
func (r *Render) Validate() error {
	cfg := r.Config()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Output describes the files written.
type Output struct {

	// Image is the color image file, in a format given by its extension.
	Image string

	// Depth is the depth image file. No depth image is written if empty.
	Depth string

	// Background is the hex color the image is composited over.
	// The image keeps its alpha channel if empty.
	Background string

	// Scale resizes the image by this factor.
	Scale float32
}

// Defaults sets the default settings.
func (o *Output) Defaults() {
	o.Image = "volray.png"
	o.Scale = 1
}

// Validate checks the settings.
func (o *Output) Validate() error {
	if o.Image == "" {
		return fmt.Errorf("%w: no output image", ErrInvalid)
	}
	if _, err := imagex.FileFormat(o.Image); err != nil {
		return fmt.Errorf("%w: output image: %w", ErrInvalid, err)
	}
	if o.Depth != "" {
		f, err := imagex.FileFormat(o.Depth)
		if err != nil {
			return fmt.Errorf("%w: depth image: %w", ErrInvalid, err)
		}
		if !f.Lossless() {
			return fmt.Errorf("%w: depth image %q needs a lossless format", ErrInvalid, o.Depth)
		}
	}
	if !(o.Scale > 0) {
		return fmt.Errorf("%w: output scale %v", ErrInvalid, o.Scale)
	}
	if o.Background != "" {
		if _, err := colorful.Hex(o.Background); err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalid, err)
		}
	}
	return nil
}

// BackgroundColor returns the background color, and false if there is none.
func (o *Output) BackgroundColor() (colorful.Color, bool) {
	if o.Background == "" {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(o.Background)
	return c, err == nil
}
