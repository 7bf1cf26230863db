// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volume

import (
	"fmt"
	"strings"
)

// ScalarTypes are the storage types of volume samples.
type ScalarTypes int32

const (
	// Unknown is any slice type that is not a supported sample type.
	Unknown ScalarTypes = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var scalarTypeNames = [...]string{"unknown", "int8", "uint8", "int16", "uint16", "int32", "uint32", "float32", "float64"}

var scalarTypeSizes = [...]int{0, 1, 1, 2, 2, 4, 4, 4, 8}

func (t ScalarTypes) String() string {
	if t < 0 || int(t) >= len(scalarTypeNames) {
		return fmt.Sprintf("ScalarTypes(%d)", int32(t))
	}
	return scalarTypeNames[t]
}

// SetString sets the type from its name, case insensitive.
func (t *ScalarTypes) SetString(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, nm := range scalarTypeNames {
		if i > 0 && nm == s {
			*t = ScalarTypes(i)
			return nil
		}
	}
	return fmt.Errorf("volume: %q is not a valid scalar type", s)
}

// Size returns the number of bytes of one sample of this type.
func (t ScalarTypes) Size() int {
	if t < 0 || int(t) >= len(scalarTypeSizes) {
		return 0
	}
	return scalarTypeSizes[t]
}

// MarshalText implements [encoding.TextMarshaler].
func (t ScalarTypes) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *ScalarTypes) UnmarshalText(text []byte) error {
	return t.SetString(string(text))
}

// MakeValues returns a new zeroed sample slice of this type with n elements.
func (t ScalarTypes) MakeValues(n int) (any, error) {
	switch t {
	case Int8:
		return make([]int8, n), nil
	case Uint8:
		return make([]uint8, n), nil
	case Int16:
		return make([]int16, n), nil
	case Uint16:
		return make([]uint16, n), nil
	case Int32:
		return make([]int32, n), nil
	case Uint32:
		return make([]uint32, n), nil
	case Float32:
		return make([]float32, n), nil
	case Float64:
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
}

// TypeOf returns the scalar type and length of the given sample slice.
func TypeOf(values any) (ScalarTypes, int) {
	switch v := values.(type) {
	case []int8:
		return Int8, len(v)
	case []uint8:
		return Uint8, len(v)
	case []int16:
		return Int16, len(v)
	case []uint16:
		return Uint16, len(v)
	case []int32:
		return Int32, len(v)
	case []uint32:
		return Uint32, len(v)
	case []float32:
		return Float32, len(v)
	case []float64:
		return Float64, len(v)
	}
	return Unknown, 0
}
