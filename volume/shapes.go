// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volume

import (
	"fmt"
	"math"
)

// Sources are the names of the synthetic volumes that can be generated.
var Sources = []string{"constant", "linear", "sphere", "shells"}

// NewConstant returns an int32 grid with every sample equal to k.
func NewConstant(res [3]int, k int32) (*Grid, error) {
	g, err := NewInt32(res)
	if err != nil {
		return nil, err
	}
	vals := g.Values.([]int32)
	for i := range vals {
		vals[i] = k
	}
	return g, nil
}

// NewLinear returns an int32 grid with the sample at lattice node
// (i, j, k) equal to a*i + b*j + c*k + d, rounded to the nearest integer.
func NewLinear(res [3]int, a, b, c, d float32) (*Grid, error) {
	g, err := NewInt32(res)
	if err != nil {
		return nil, err
	}
	g.fill(func(i, j, k int) float64 {
		return float64(a)*float64(i) + float64(b)*float64(j) + float64(c)*float64(k) + float64(d)
	})
	return g, nil
}

// NewSphere returns an int32 grid holding a radial field that is
// maxValue at the center of the lattice and falls off linearly to 0
// at the radius of the largest inscribed sphere.
func NewSphere(res [3]int, maxValue int32) (*Grid, error) {
	g, err := NewInt32(res)
	if err != nil {
		return nil, err
	}
	radius := g.inscribedRadius()
	g.fill(func(i, j, k int) float64 {
		r := g.centerDistance(i, j, k)
		return float64(maxValue) * math.Max(0, 1-r/radius)
	})
	return g, nil
}

// NewShells returns an int32 grid holding n concentric shells: a radial
// cosine wave between 0 and maxValue inside the inscribed sphere, and 0 outside.
func NewShells(res [3]int, maxValue int32, n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("volume: number of shells must be positive, got %d", n)
	}
	g, err := NewInt32(res)
	if err != nil {
		return nil, err
	}
	radius := g.inscribedRadius()
	g.fill(func(i, j, k int) float64 {
		r := g.centerDistance(i, j, k)
		if r > radius {
			return 0
		}
		return float64(maxValue) * (0.5 - 0.5*math.Cos(2*math.Pi*float64(n)*r/radius))
	})
	return g, nil
}

// NewSource returns the synthetic volume with the given name,
// one of [Sources], using maxValue as its peak sample.
func NewSource(name string, res [3]int, maxValue int32) (*Grid, error) {
	switch name {
	case "constant":
		return NewConstant(res, maxValue)
	case "linear":
		n := float32(res[0] + res[1] + res[2] - 3)
		s := float32(maxValue) / n
		return NewLinear(res, s, s, s, 0)
	case "sphere":
		return NewSphere(res, maxValue)
	case "shells":
		return NewShells(res, maxValue, 3)
	}
	return nil, fmt.Errorf("volume: unknown source %q, must be one of %v", name, Sources)
}

func (g *Grid) fill(f func(i, j, k int) float64) {
	vals := g.Values.([]int32)
	for k := 0; k < g.Resolution[2]; k++ {
		for j := 0; j < g.Resolution[1]; j++ {
			for i := 0; i < g.Resolution[0]; i++ {
				vals[g.Index(i, j, k)] = int32(math.Round(f(i, j, k)))
			}
		}
	}
}

func (g *Grid) inscribedRadius() float64 {
	n := min(g.Resolution[0], g.Resolution[1], g.Resolution[2])
	return float64(n-1) / 2
}

func (g *Grid) centerDistance(i, j, k int) float64 {
	dx := float64(i) - float64(g.Resolution[0]-1)/2
	dy := float64(j) - float64(g.Resolution[1]-1)/2
	dz := float64(k) - float64(g.Resolution[2]-1)/2
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
