// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the scene file of the volray command:
// the volume, transfer function, camera, light, render settings and
// output of one rendering, read from TOML, YAML or JSON.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/volray/base/iox/jsonx"
	"cogentcore.org/volray/base/iox/tomlx"
	"cogentcore.org/volray/base/iox/yamlx"
	"cogentcore.org/volray/volume"
)

// ErrInvalid is returned for scenes with missing or out of range settings.
var ErrInvalid = errors.New("config: invalid scene")

// Scene is a complete description of one rendering.
type Scene struct {

	// Volume is the volume to render.
	Volume Volume

	// Transfer is the transfer function.
	Transfer Transfer

	// Camera is the view of the volume.
	Camera Camera

	// Light is the light of the scene.
	Light Light

	// Render has the renderer settings.
	Render Render

	// Output are the files to write.
	Output Output

	// dir is the directory of the scene file, against which
	// relative file names are resolved.
	dir string
}

// NewScene returns a new scene with default settings.
func NewScene() *Scene {
	sc := &Scene{}
	sc.Defaults()
	return sc
}

// Defaults sets the default settings.
func (sc *Scene) Defaults() {
	sc.Volume.Defaults()
	sc.Transfer.Defaults()
	sc.Camera.Defaults()
	sc.Light.Defaults()
	sc.Render.Defaults()
	sc.Output.Defaults()
}

// Open reads a scene from the given file, whose format follows its
// extension: .toml, .yaml, .yml or .json. Settings missing from the
// file keep their defaults.
func Open(filename string) (*Scene, error) {
	sc := NewScene()
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = tomlx.Open(sc, filename)
	case ".yaml", ".yml":
		err = yamlx.Open(sc, filename)
	case ".json":
		err = jsonx.Open(sc, filename)
	default:
		return nil, fmt.Errorf("config: unsupported scene file extension %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	sc.dir = filepath.Dir(filename)
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sc, nil
}

// Save writes the scene to the given file, in the format of its extension.
func (sc *Scene) Save(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.Save(sc, filename)
	case ".yaml", ".yml":
		return yamlx.Save(sc, filename)
	case ".json":
		return jsonx.Save(sc, filename)
	}
	return fmt.Errorf("config: unsupported scene file extension %q", filepath.Ext(filename))
}

// Path returns the given file name resolved against the directory
// of the scene file.
func (sc *Scene) Path(name string) string {
	if name == "" || filepath.IsAbs(name) || sc.dir == "" {
		return name
	}
	return filepath.Join(sc.dir, name)
}

// Validate checks all the settings.
func (sc *Scene) Validate() error {
	return errors.Join(
		sc.Volume.Validate(),
		sc.Transfer.Validate(),
		sc.Camera.Validate(),
		sc.Render.Validate(),
		sc.Output.Validate(),
	)
}

// Volume describes the volume to render: either a raw file or
// one of the synthetic [volume.Sources].
type Volume struct {

	// File is a headerless raw volume file.
	File string

	// Source is the synthetic volume used when there is no File.
	Source string

	// Resolution is the number of samples along x, y and z.
	Resolution [3]int

	// Type is the sample type of File.
	Type volume.ScalarTypes

	// ByteOrder of File: little or big.
	ByteOrder string

	// MaxValue is the peak sample value of a synthetic Source.
	MaxValue int32

	// Min and Max are the world bounds of the volume. If they are
	// equal, the volume spans 0..n-1 on each axis.
	Min, Max [3]float32

	// Convert converts the samples to int32 if they are of another type.
	Convert bool
}

// Defaults sets the default settings.
func (v *Volume) Defaults() {
	v.Source = "sphere"
	v.Resolution = [3]int{64, 64, 64}
	v.Type = volume.Int32
	v.ByteOrder = "little"
	v.MaxValue = 255
}

// Validate checks the settings.
func (v *Volume) Validate() error {
	if v.File == "" && v.Source == "" {
		return fmt.Errorf("%w: volume needs a file or a source", ErrInvalid)
	}
	for _, n := range v.Resolution {
		if n < 2 {
			return fmt.Errorf("%w: volume resolution %v", ErrInvalid, v.Resolution)
		}
	}
	if v.File != "" && v.Type == volume.Unknown {
		return fmt.Errorf("%w: volume file needs a sample type", ErrInvalid)
	}
	if _, err := volume.ByteOrder(v.ByteOrder); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if v.Min != v.Max {
		for d := range 3 {
			if !(v.Min[d] < v.Max[d]) {
				return fmt.Errorf("%w: volume bounds min %v max %v", ErrInvalid, v.Min, v.Max)
			}
		}
	}
	return nil
}
