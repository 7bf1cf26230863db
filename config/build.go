// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"log/slog"

	"cogentcore.org/volray/math32"
	"cogentcore.org/volray/raycast"
	"cogentcore.org/volray/transfer"
	"cogentcore.org/volray/volume"
)

func vec3(v [3]float32) math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

// BuildGrid reads or generates the volume.
func (sc *Scene) BuildGrid() (*volume.Grid, error) {
	v := &sc.Volume
	var g *volume.Grid
	var err error
	if v.File != "" {
		order, oerr := volume.ByteOrder(v.ByteOrder)
		if oerr != nil {
			return nil, oerr
		}
		g, err = volume.OpenRaw(sc.Path(v.File), v.Resolution, v.Type, order)
	} else {
		g, err = volume.NewSource(v.Source, v.Resolution, v.MaxValue)
	}
	if err != nil {
		return nil, err
	}
	if v.Min != v.Max {
		g.Min, g.Max = vec3(v.Min), vec3(v.Max)
	}
	if v.Convert && g.ScalarType() != volume.Int32 {
		slog.Info("converting volume samples to int32", "type", g.ScalarType())
		if g, err = g.ToInt32(); err != nil {
			return nil, err
		}
	}
	return g, g.Validate()
}

// BuildTransfer returns the transfer function for the given volume.
func (sc *Scene) BuildTransfer(g *volume.Grid) (*transfer.Function, error) {
	t := &sc.Transfer
	n := t.Size
	if n == 0 {
		_, maxValue, err := g.Range()
		if err != nil {
			return nil, fmt.Errorf("config: transfer size from volume: %w", err)
		}
		n = int(max(maxValue, 0)) + 1
	}
	if len(t.Points) > 0 {
		r := &transfer.Ramp{Points: t.Points, Space: t.Space}
		return r.Build(n)
	}
	return transfer.Preset(t.Preset, n)
}

// BuildCamera returns the camera for the given volume.
func (sc *Scene) BuildCamera(g *volume.Grid) *raycast.Camera {
	c := &sc.Camera
	bounds := g.Bounds()
	eye, target := vec3(c.Eye), vec3(c.Target)
	up := vec3(c.Up)
	viewHeight := c.ViewHeight
	if c.Auto || viewHeight == 0 {
		// bounding sphere of the volume
		radius := bounds.Size().Length() / 2
		if viewHeight == 0 {
			viewHeight = 2 * radius
		}
		if c.Auto {
			target = bounds.Center()
			dist := radius / math32.Sin(math32.DegToRad(c.FOV/2))
			if c.Projection == Orthographic {
				dist = 2 * radius
			}
			eye = target.Add(math32.Vec3(0, 0, dist))
			up = math32.Vec3(0, 1, 0)
		}
	}
	if c.Projection == Orthographic {
		return raycast.NewOrthographicCamera(eye, target, up, viewHeight, c.Near, c.Far, c.Width, c.Height)
	}
	return raycast.NewPerspectiveCamera(eye, target, up, c.FOV, c.Near, c.Far, c.Width, c.Height)
}

// BuildLight returns the light for the given camera.
func (sc *Scene) BuildLight(cam *raycast.Camera) (raycast.Light, error) {
	if !sc.Light.Headlight {
		return raycast.Light{Position: vec3(sc.Light.Position)}, nil
	}
	pos, err := cam.Position()
	if err != nil {
		return raycast.Light{}, err
	}
	return raycast.Light{Position: pos}, nil
}

// RenderConfig returns the renderer config.
func (sc *Scene) RenderConfig() raycast.Config {
	return sc.Render.Config()
}
