// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package volume provides the structured scalar volume that is
// rendered by the raycast package: a regular 3D lattice of samples
// spanning an axis-aligned bounding box.
package volume

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/volray/math32"
)

var (
	// ErrUnsupportedType is returned when a sample type other than
	// int32 is used where only int32 samples are supported.
	ErrUnsupportedType = errors.New("volume: unsupported scalar data type")

	// ErrUnknownType is returned for sample slices of an unknown type.
	ErrUnknownType = errors.New("volume: unknown scalar data type")

	// ErrResolution is returned when an axis has fewer than 2 nodes.
	ErrResolution = errors.New("volume: resolution must be at least 2 on every axis")

	// ErrValueCount is returned when the number of samples does not
	// match the resolution.
	ErrValueCount = errors.New("volume: number of values does not match resolution")

	// ErrBounds is returned when the bounding box is empty or inverted.
	ErrBounds = errors.New("volume: bounding box min must be less than max on every axis")
)

// Grid is a structured volume: a lattice of Resolution[0] x Resolution[1]
// x Resolution[2] scalar samples whose corner nodes lie at Min and Max.
// Values is a flat slice of samples with x varying fastest, then y, then z.
// Grids are read-only while being rendered.
type Grid struct {

	// Resolution is the number of lattice nodes along x, y and z.
	Resolution [3]int

	// Min is the external (world) coordinate of the first lattice node.
	Min math32.Vector3

	// Max is the external (world) coordinate of the last lattice node.
	Max math32.Vector3

	// Values are the samples, as one of []int8, []uint8, []int16,
	// []uint16, []int32, []uint32, []float32 or []float64.
	Values any
}

// New returns a new validated grid with the given resolution and samples,
// with bounds spanning lattice coordinates 0..n-1 on each axis.
func New(res [3]int, values any) (*Grid, error) {
	g := &Grid{Resolution: res, Values: values}
	g.Min, g.Max = DefaultBounds(res)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewInt32 returns a new zeroed int32 grid with the given resolution
// and default bounds.
func NewInt32(res [3]int) (*Grid, error) {
	if res[0] < 2 || res[1] < 2 || res[2] < 2 {
		return nil, fmt.Errorf("%w: %v", ErrResolution, res)
	}
	return New(res, make([]int32, res[0]*res[1]*res[2]))
}

// DefaultBounds returns the bounds in which lattice node (i, j, k)
// lies at external coordinate (i, j, k).
func DefaultBounds(res [3]int) (min, max math32.Vector3) {
	return math32.Vector3{}, math32.Vec3(float32(res[0]-1), float32(res[1]-1), float32(res[2]-1))
}

// NumValues returns the number of lattice nodes.
func (g *Grid) NumValues() int {
	return g.Resolution[0] * g.Resolution[1] * g.Resolution[2]
}

// ScalarType returns the storage type of the samples.
func (g *Grid) ScalarType() ScalarTypes {
	t, _ := TypeOf(g.Values)
	return t
}

// Bounds returns the external coordinate bounding box.
func (g *Grid) Bounds() math32.Box3 {
	return math32.Box3{Min: g.Min, Max: g.Max}
}

// Index returns the flat index of lattice node (i, j, k).
func (g *Grid) Index(i, j, k int) int {
	return i + g.Resolution[0]*(j+g.Resolution[1]*k)
}

// Validate checks the resolution, number of samples, sample type and bounds.
func (g *Grid) Validate() error {
	res := g.Resolution
	if res[0] < 2 || res[1] < 2 || res[2] < 2 {
		return fmt.Errorf("%w: %v", ErrResolution, res)
	}
	t, n := TypeOf(g.Values)
	if t == Unknown {
		return fmt.Errorf("%w: %T", ErrUnknownType, g.Values)
	}
	if n != g.NumValues() {
		return fmt.Errorf("%w: %d values for resolution %v", ErrValueCount, n, res)
	}
	if !(g.Min.X < g.Max.X && g.Min.Y < g.Max.Y && g.Min.Z < g.Max.Z) {
		return fmt.Errorf("%w: min %v max %v", ErrBounds, g.Min, g.Max)
	}
	return nil
}

// Int32s returns the samples if they are stored as int32,
// and [ErrUnsupportedType] otherwise.
func (g *Grid) Int32s() ([]int32, error) {
	v, ok := g.Values.([]int32)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, g.ScalarType())
	}
	return v, nil
}

// At returns the int32 sample at lattice node (i, j, k).
// It panics if the samples are not int32.
func (g *Grid) At(i, j, k int) int32 {
	return g.Values.([]int32)[g.Index(i, j, k)]
}

// Set sets the int32 sample at lattice node (i, j, k).
// It panics if the samples are not int32.
func (g *Grid) Set(i, j, k int, v int32) {
	g.Values.([]int32)[g.Index(i, j, k)] = v
}

// Range returns the minimum and maximum int32 sample.
func (g *Grid) Range() (min, max int32, err error) {
	vals, err := g.Int32s()
	if err != nil {
		return 0, 0, err
	}
	if len(vals) == 0 {
		return 0, 0, fmt.Errorf("%w: empty grid", ErrValueCount)
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, nil
}

// ToInt32 returns a copy of the grid with samples converted to int32,
// rounding floating point samples and saturating at the int32 range.
// Int32 grids are returned as is.
func (g *Grid) ToInt32() (*Grid, error) {
	var out []int32
	switch v := g.Values.(type) {
	case []int32:
		return g, nil
	case []int8:
		out = toInt32(v)
	case []uint8:
		out = toInt32(v)
	case []int16:
		out = toInt32(v)
	case []uint16:
		out = toInt32(v)
	case []uint32:
		out = toInt32(v)
	case []float32:
		out = toInt32(v)
	case []float64:
		out = toInt32(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, g.Values)
	}
	ng := *g
	ng.Values = out
	return &ng, nil
}

type number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

func toInt32[T number](src []T) []int32 {
	out := make([]int32, len(src))
	for i, v := range src {
		f := math.Round(float64(v))
		switch {
		case f > math.MaxInt32:
			out[i] = math.MaxInt32
		case f < math.MinInt32:
			out[i] = math.MinInt32
		default:
			out[i] = int32(f)
		}
	}
	return out
}
