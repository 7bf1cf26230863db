// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox3(t *testing.T) {
	b := B3(0, 0, 0, 2, 4, 6)
	assert.Equal(t, Vec3(1, 2, 3), b.Center())
	assert.Equal(t, Vec3(2, 4, 6), b.Size())
	assert.False(t, b.IsEmpty())
	assert.True(t, B3Empty().IsEmpty())

	assert.True(t, b.ContainsPoint(Vec3(0, 0, 0)))
	assert.False(t, b.ContainsPointStrict(Vec3(0, 0, 0)))
	assert.True(t, b.ContainsPointStrict(Vec3(1, 1, 1)))
	assert.False(t, b.ContainsPoint(Vec3(3, 1, 1)))

	b.ExpandByScalar(-0.5)
	assert.Equal(t, B3(0.5, 0.5, 0.5, 1.5, 3.5, 5.5), b)

	e := B3Empty()
	e.ExpandByPoint(Vec3(1, -1, 2))
	e.ExpandByPoint(Vec3(-1, 1, 0))
	assert.Equal(t, B3(-1, -1, 0, 1, 1, 2), e)
}

func TestBox3Corners(t *testing.T) {
	b := B3(0, 0, 0, 1, 2, 3)
	cs := b.Corners()
	assert.Equal(t, b.Min, cs[0])
	assert.Equal(t, b.Max, cs[6])
	for i := 0; i < 4; i++ {
		assert.Equal(t, b.Min.Z, cs[i].Z, "bottom corner %d", i)
		assert.Equal(t, b.Max.Z, cs[i+4].Z, "top corner %d", i)
		// top face repeats the bottom face order
		assert.Equal(t, cs[i].X, cs[i+4].X)
		assert.Equal(t, cs[i].Y, cs[i+4].Y)
	}
	// counter-clockwise seen from +Z
	n := cs[1].Sub(cs[0]).Cross(cs[2].Sub(cs[1]))
	assert.Greater(t, n.Z, float32(0))
}
