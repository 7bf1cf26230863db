// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package volume

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ReadRaw reads a headerless binary volume of the given resolution
// and sample type, with the given byte order, and returns it as a
// validated grid with default bounds.
func ReadRaw(r io.Reader, res [3]int, typ ScalarTypes, order binary.ByteOrder) (*Grid, error) {
	if res[0] < 2 || res[1] < 2 || res[2] < 2 {
		return nil, fmt.Errorf("%w: %v", ErrResolution, res)
	}
	vals, err := typ.MakeValues(res[0] * res[1] * res[2])
	if err != nil {
		return nil, err
	}
	if err := binary.Read(r, order, vals); err != nil {
		return nil, fmt.Errorf("volume: reading %v %v samples: %w", res, typ, err)
	}
	return New(res, vals)
}

// OpenRaw opens a headerless binary volume file, see [ReadRaw].
func OpenRaw(filename string, res [3]int, typ ScalarTypes, order binary.ByteOrder) (*Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRaw(bufio.NewReader(f), res, typ, order)
}

// WriteRaw writes the samples of the grid as headerless binary data
// in the given byte order.
func WriteRaw(w io.Writer, g *Grid, order binary.ByteOrder) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return binary.Write(w, order, g.Values)
}

// SaveRaw saves the samples of the grid to the given file, see [WriteRaw].
func SaveRaw(filename string, g *Grid, order binary.ByteOrder) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := WriteRaw(bw, g, order); err != nil {
		return err
	}
	return bw.Flush()
}

// ByteOrder returns the byte order with the given name:
// "little" (the default for an empty name) or "big".
func ByteOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("volume: unknown byte order %q", name)
}
