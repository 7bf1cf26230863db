// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transfer provides transfer functions, which map volume
// samples to a display color and an opacity through a pair of
// lookup tables indexed by the sample value.
package transfer

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrOutOfRange is returned when volume samples would index past
	// the end of the lookup tables.
	ErrOutOfRange = errors.New("transfer: sample value beyond the transfer function range")

	// ErrInvalid is returned for malformed transfer functions.
	ErrInvalid = errors.New("transfer: invalid transfer function")
)

// Function is a transfer function: a color map and an opacity map
// of the same size, both indexed by a sample bucket in 0..Size()-1.
type Function struct {

	// Colors is the color map. Alpha is ignored.
	Colors []color.RGBA

	// Opacities is the opacity map, with values in [0, 1].
	Opacities []float32
}

// New returns a transfer function of the given size with black,
// fully transparent entries.
func New(n int) *Function {
	return &Function{Colors: make([]color.RGBA, n), Opacities: make([]float32, n)}
}

// Size returns the number of buckets.
func (f *Function) Size() int {
	return len(f.Colors)
}

// Validate checks that both maps are non-empty, of the same size,
// and that all opacities are within [0, 1].
func (f *Function) Validate() error {
	if len(f.Colors) == 0 {
		return fmt.Errorf("%w: empty color map", ErrInvalid)
	}
	if len(f.Colors) != len(f.Opacities) {
		return fmt.Errorf("%w: %d colors and %d opacities", ErrInvalid, len(f.Colors), len(f.Opacities))
	}
	for i, o := range f.Opacities {
		if !(o >= 0 && o <= 1) {
			return fmt.Errorf("%w: opacity %v at %d not in [0, 1]", ErrInvalid, o, i)
		}
	}
	return nil
}

// Bucket returns the table index for a sample value: negative values
// collapse to 0 and the value is truncated toward zero. Values past
// the last bucket are clamped to it; use [Function.CheckRange] to
// reject such data up front.
func (f *Function) Bucket(s float32) int {
	if !(s > 0) {
		return 0
	}
	b := int(s)
	if last := len(f.Colors) - 1; b > last {
		return last
	}
	return b
}

// ColorAt returns the color of the given bucket.
func (f *Function) ColorAt(bucket int) color.RGBA {
	return f.Colors[bucket]
}

// OpacityAt returns the opacity of the given bucket.
func (f *Function) OpacityAt(bucket int) float32 {
	return f.Opacities[bucket]
}

// CheckRange returns [ErrOutOfRange] if a volume whose largest
// sample is maxValue would index past the end of the maps.
func (f *Function) CheckRange(maxValue int32) error {
	if int64(maxValue) > int64(f.Size()-1) {
		return fmt.Errorf("%w: maximum sample %d, last bucket %d", ErrOutOfRange, maxValue, f.Size()-1)
	}
	return nil
}
