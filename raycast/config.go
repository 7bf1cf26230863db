// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for out of range render settings.
var ErrInvalidConfig = errors.New("raycast: invalid render config")

// Config has the settings of a [Renderer].
type Config struct {

	// SamplingStep is the distance advanced along the ray per sample,
	// in world units.
	SamplingStep float32

	// OpaqueThreshold is the accumulated opacity at which a ray stops.
	OpaqueThreshold float32

	// Shading is the illumination model.
	Shading Shading

	// Workers is the maximum number of rows rendered at once.
	// 0 means GOMAXPROCS.
	Workers int
}

// Defaults sets the default settings.
func (c *Config) Defaults() {
	c.SamplingStep = 0.5
	c.OpaqueThreshold = 0.97
	c.Shading = DefaultShading(Lambert)
	c.Workers = 0
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if !(c.SamplingStep > 0) {
		return fmt.Errorf("%w: sampling step %v must be positive", ErrInvalidConfig, c.SamplingStep)
	}
	if !(c.OpaqueThreshold > 0 && c.OpaqueThreshold <= 1) {
		return fmt.Errorf("%w: opaque threshold %v not in (0, 1]", ErrInvalidConfig, c.OpaqueThreshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative workers %d", ErrInvalidConfig, c.Workers)
	}
	return c.Shading.Validate()
}
