// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonx reads and writes JSON files into and from Go values.
package jsonx

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// Open reads the given object from the given filename using JSON encoding.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(v, bufio.NewReader(f))
}

// Read reads the given object from the given reader,
// using JSON encoding.
func Read(v any, reader io.Reader) error {
	return json.NewDecoder(reader).Decode(v)
}

// ReadBytes reads the given object from the given bytes,
// using JSON encoding.
func ReadBytes(v any, data []byte) error {
	return json.Unmarshal(data, v)
}

// Save writes the given object to the given filename using indented
// JSON encoding.
func Save(v any, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := Write(v, bw); err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the given object using indented JSON encoding.
func Write(v any, writer io.Writer) error {
	e := json.NewEncoder(writer)
	e.SetIndent("", "\t")
	return e.Encode(v)
}

// WriteBytes writes the given object, returning bytes of the
// indented JSON encoding.
func WriteBytes(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "\t")
}
