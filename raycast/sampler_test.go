// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raycast

import (
	"math/rand"
	"testing"

	"cogentcore.org/volray/math32"
	"cogentcore.org/volray/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPoint returns a random point inside the lattice of res.
func randomPoint(rnd *rand.Rand, res [3]int) math32.Vector3 {
	return math32.Vec3(
		rnd.Float32()*float32(res[0]-1),
		rnd.Float32()*float32(res[1]-1),
		rnd.Float32()*float32(res[2]-1),
	)
}

func TestSamplerConstant(t *testing.T) {
	res := [3]int{4, 5, 6}
	g, err := volume.NewConstant(res, 7)
	require.NoError(t, err)
	s, err := NewSampler(g)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(1))
	for range 200 {
		p := randomPoint(rnd, res)
		s.Attach(p)
		assert.Equal(t, float32(7), s.Scalar(), "at %v", p)
		assert.Equal(t, math32.Vector3{}, s.Gradient(), "at %v", p)
	}

	// points outside the lattice clamp to the boundary cells
	s.Attach(math32.Vec3(-5, 100, 2))
	assert.Equal(t, float32(7), s.Scalar())
}

func TestSamplerLinear(t *testing.T) {
	res := [3]int{5, 4, 6}
	a, b, c, d := float32(2), float32(-3), float32(5), float32(40)
	g, err := volume.NewLinear(res, a, b, c, d)
	require.NoError(t, err)
	s, err := NewSampler(g)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(2))
	for range 200 {
		p := randomPoint(rnd, res)
		s.Attach(p)
		assert.InDelta(t, a*p.X+b*p.Y+c*p.Z+d, s.Scalar(), 1e-3, "at %v", p)
		assertNearVector3(t, 1e-4, math32.Vec3(a, b, c), s.Gradient())
	}

	// lattice nodes, including the boundary
	for _, n := range [][3]int{{0, 0, 0}, {4, 3, 5}, {2, 1, 3}, {4, 0, 5}} {
		s.AttachLattice(math32.Vec3(float32(n[0]), float32(n[1]), float32(n[2])))
		assert.Equal(t, float32(g.At(n[0], n[1], n[2])), s.Scalar())
		assertNearVector3(t, 1e-5, math32.Vec3(a, b, c), s.Gradient())
	}
}

func TestSamplerBounds(t *testing.T) {
	g, err := volume.NewLinear([3]int{3, 3, 3}, 1, 10, 100, 0)
	require.NoError(t, err)
	g.Min = math32.Vec3(-1, -1, -1)
	g.Max = math32.Vec3(1, 1, 1)
	s, err := NewSampler(g)
	require.NoError(t, err)

	s.Attach(math32.Vec3(0, 0, 0))
	assert.InDelta(t, 111, s.Scalar(), 1e-4)
	s.Attach(math32.Vec3(1, 1, 1))
	assert.InDelta(t, 222, s.Scalar(), 1e-4)
	s.Attach(math32.Vec3(-0.5, 0, 0.5))
	assert.InDelta(t, 0.5+10+150, s.Scalar(), 1e-4)
}

func TestSamplerGradientBoundary(t *testing.T) {
	g, err := volume.NewInt32([3]int{3, 2, 2})
	require.NoError(t, err)
	for k := range 2 {
		for j := range 2 {
			g.Set(0, j, k, 0)
			g.Set(1, j, k, 10)
			g.Set(2, j, k, 40)
		}
	}
	s, err := NewSampler(g)
	require.NoError(t, err)

	// one-sided differences at the ends, central in the middle
	s.AttachLattice(math32.Vec3(0, 0, 0))
	assert.Equal(t, float32(10), s.Gradient().X)
	s.AttachLattice(math32.Vec3(1, 0, 0))
	assert.Equal(t, float32(20), s.Gradient().X)
	s.AttachLattice(math32.Vec3(2, 1, 1))
	assert.Equal(t, float32(30), s.Gradient().X)
	s.AttachLattice(math32.Vec3(0.5, 0.5, 0.5))
	assert.InDelta(t, 15, s.Gradient().X, 1e-5)
	assert.Equal(t, float32(0), s.Gradient().Y)
	assert.Equal(t, float32(0), s.Gradient().Z)
}

func TestSamplerUnsupported(t *testing.T) {
	g, err := volume.New([3]int{2, 2, 2}, make([]float32, 8))
	require.NoError(t, err)
	_, err = NewSampler(g)
	assert.ErrorIs(t, err, volume.ErrUnsupportedType)
}
