// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"cogentcore.org/volray/math32"
	"cogentcore.org/volray/volume"
)

// Sampler reconstructs the scalar field of an int32 volume and its
// gradient at arbitrary points by trilinear interpolation.
// Attach selects the point, and Scalar and Gradient evaluate there.
// It is not safe for concurrent use.
type Sampler struct {
	vals   []int32
	res    [3]int
	min    math32.Vector3
	scale  math32.Vector3
	cell   [3]int
	frac   math32.Vector3
	corner [8]int32
}

// NewSampler returns a sampler for the given grid, which must hold
// int32 samples.
func NewSampler(g *volume.Grid) (*Sampler, error) {
	vals, err := g.Int32s()
	if err != nil {
		return nil, err
	}
	s := &Sampler{vals: vals, res: g.Resolution, min: g.Min}
	n := math32.Vec3(float32(g.Resolution[0]-1), float32(g.Resolution[1]-1), float32(g.Resolution[2]-1))
	s.scale = n.Div(g.Max.Sub(g.Min))
	return s, nil
}

// Attach selects the world point p for subsequent evaluation.
func (s *Sampler) Attach(p math32.Vector3) {
	s.AttachLattice(p.Sub(s.min).Mul(s.scale))
}

// AttachLattice selects the point p given in lattice coordinates,
// where node (i, j, k) is at (i, j, k).
func (s *Sampler) AttachLattice(p math32.Vector3) {
	for d := math32.X; d <= math32.Z; d++ {
		x := p.Dim(d)
		c := int(math32.Floor(x))
		c = min(max(c, 0), s.res[d]-2)
		s.cell[d] = c
		s.frac.SetDim(d, math32.Clamp(x-float32(c), 0, 1))
	}
	for n := range s.corner {
		i, j, k := s.cornerNode(n)
		s.corner[n] = s.at(i, j, k)
	}
}

// cornerNode returns the lattice node of cell corner n, with bit 0
// selecting +x, bit 1 +y and bit 2 +z.
func (s *Sampler) cornerNode(n int) (i, j, k int) {
	return s.cell[0] + n&1, s.cell[1] + (n>>1)&1, s.cell[2] + (n>>2)&1
}

func (s *Sampler) at(i, j, k int) int32 {
	return s.vals[i+s.res[0]*(j+s.res[1]*k)]
}

// blend interpolates the values at the 8 cell corners at the attached
// point, one axis at a time, so that equal corners blend exactly.
func (s *Sampler) blend(c *[8]float32) float32 {
	fx, fy, fz := s.frac.X, s.frac.Y, s.frac.Z
	x00 := lerp(c[0], c[1], fx)
	x10 := lerp(c[2], c[3], fx)
	x01 := lerp(c[4], c[5], fx)
	x11 := lerp(c[6], c[7], fx)
	return lerp(lerp(x00, x10, fy), lerp(x01, x11, fy), fz)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Scalar returns the interpolated value at the attached point.
func (s *Sampler) Scalar() float32 {
	var c [8]float32
	for n, v := range s.corner {
		c[n] = float32(v)
	}
	return s.blend(&c)
}

// Gradient returns the interpolated gradient at the attached point,
// in lattice units. The gradient at each cell corner is a central
// difference, one-sided at the lattice boundary.
func (s *Sampler) Gradient() math32.Vector3 {
	var gx, gy, gz [8]float32
	for n := range s.corner {
		g := s.nodeGradient(s.cornerNode(n))
		gx[n], gy[n], gz[n] = g.X, g.Y, g.Z
	}
	return math32.Vec3(s.blend(&gx), s.blend(&gy), s.blend(&gz))
}

// nodeGradient returns the finite difference gradient at a lattice node.
func (s *Sampler) nodeGradient(i, j, k int) math32.Vector3 {
	i0, i1 := max(i-1, 0), min(i+1, s.res[0]-1)
	j0, j1 := max(j-1, 0), min(j+1, s.res[1]-1)
	k0, k1 := max(k-1, 0), min(k+1, s.res[2]-1)
	return math32.Vec3(
		(float32(s.at(i1, j, k))-float32(s.at(i0, j, k)))/float32(i1-i0),
		(float32(s.at(i, j1, k))-float32(s.at(i, j0, k)))/float32(j1-j0),
		(float32(s.at(i, j, k1))-float32(s.at(i, j, k0)))/float32(k1-k0),
	)
}
