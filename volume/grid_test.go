// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volume

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"cogentcore.org/volray/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridValidate(t *testing.T) {
	_, err := New([3]int{2, 2, 1}, make([]int32, 4))
	assert.ErrorIs(t, err, ErrResolution)

	_, err = New([3]int{2, 2, 2}, make([]int32, 7))
	assert.ErrorIs(t, err, ErrValueCount)

	_, err = New([3]int{2, 2, 2}, make([]string, 8))
	assert.ErrorIs(t, err, ErrUnknownType)

	g, err := New([3]int{2, 3, 4}, make([]uint8, 24))
	require.NoError(t, err)
	assert.Equal(t, Uint8, g.ScalarType())
	assert.Equal(t, math32.B3(0, 0, 0, 1, 2, 3), g.Bounds())

	g.Max.Y = g.Min.Y
	assert.ErrorIs(t, g.Validate(), ErrBounds)
}

func TestGridInt32(t *testing.T) {
	g, err := New([3]int{2, 2, 2}, make([]float32, 8))
	require.NoError(t, err)
	_, err = g.Int32s()
	assert.ErrorIs(t, err, ErrUnsupportedType)
	_, _, err = g.Range()
	assert.ErrorIs(t, err, ErrUnsupportedType)

	g, err = NewInt32([3]int{3, 4, 5})
	require.NoError(t, err)
	g.Set(2, 3, 4, 7)
	g.Set(1, 0, 0, -2)
	assert.Equal(t, int32(7), g.At(2, 3, 4))
	assert.Equal(t, 3*4*5-1, g.Index(2, 3, 4))
	assert.Equal(t, 1, g.Index(1, 0, 0))
	assert.Equal(t, 3, g.Index(0, 1, 0))
	assert.Equal(t, 12, g.Index(0, 0, 1))

	mn, mx, err := g.Range()
	require.NoError(t, err)
	assert.Equal(t, int32(-2), mn)
	assert.Equal(t, int32(7), mx)
}

func TestToInt32(t *testing.T) {
	g, err := New([3]int{2, 2, 2}, []float64{-1.6, 0.4, 0.5, 2.5, 1e12, -1e12, 3, 4})
	require.NoError(t, err)
	ig, err := g.ToInt32()
	require.NoError(t, err)
	vals, err := ig.Int32s()
	require.NoError(t, err)
	assert.Equal(t, []int32{-2, 0, 1, 3, 2147483647, -2147483648, 3, 4}, vals)
	assert.Equal(t, Float64, g.ScalarType(), "original grid is unchanged")

	same, err := ig.ToInt32()
	require.NoError(t, err)
	assert.Same(t, ig, same)
}

func TestScalarTypes(t *testing.T) {
	var typ ScalarTypes
	require.NoError(t, typ.UnmarshalText([]byte("Float32")))
	assert.Equal(t, Float32, typ)
	assert.Equal(t, 4, typ.Size())
	b, err := Uint16.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "uint16", string(b))
	assert.Error(t, typ.SetString("unknown"))
	assert.Error(t, typ.SetString("complex64"))
}

func TestRaw(t *testing.T) {
	g, err := NewLinear([3]int{3, 3, 2}, 1, 10, 100, -5)
	require.NoError(t, err)

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		var buf bytes.Buffer
		require.NoError(t, WriteRaw(&buf, g, order))
		assert.Equal(t, g.NumValues()*4, buf.Len())
		rg, err := ReadRaw(&buf, g.Resolution, Int32, order)
		require.NoError(t, err)
		assert.Equal(t, g.Values, rg.Values)
	}

	fn := filepath.Join(t.TempDir(), "vol.raw")
	require.NoError(t, SaveRaw(fn, g, binary.LittleEndian))
	rg, err := OpenRaw(fn, g.Resolution, Int32, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, g.Values, rg.Values)

	_, err = ReadRaw(bytes.NewReader([]byte{1, 2, 3}), [3]int{2, 2, 2}, Uint8, binary.LittleEndian)
	assert.Error(t, err)

	order, err := ByteOrder("big")
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, order)
	_, err = ByteOrder("middle")
	assert.Error(t, err)
}

func TestShapes(t *testing.T) {
	res := [3]int{5, 5, 5}
	g, err := NewConstant(res, 9)
	require.NoError(t, err)
	mn, mx, _ := g.Range()
	assert.Equal(t, int32(9), mn)
	assert.Equal(t, int32(9), mx)

	g, err = NewLinear(res, 1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(1*1+2*2+3*3+4), g.At(1, 2, 3))

	g, err = NewSphere(res, 100)
	require.NoError(t, err)
	assert.Equal(t, int32(100), g.At(2, 2, 2))
	assert.Equal(t, int32(0), g.At(0, 0, 0))

	g, err = NewShells(res, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(0), g.At(2, 2, 2))
	assert.Equal(t, int32(100), g.At(3, 2, 2))

	for _, src := range Sources {
		g, err := NewSource(src, res, 50)
		require.NoError(t, err, src)
		_, mx, _ := g.Range()
		assert.LessOrEqual(t, mx, int32(50), src)
	}
	_, err = NewSource("torus", res, 50)
	assert.Error(t, err)
	_, err = NewShells(res, 1, 0)
	assert.Error(t, err)
}
