// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex reads and writes rendered frames, converts render
// buffers to images, and provides golden-image assertions for tests.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats are the image file formats frames can be written in.
type Formats int32

const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
)

// format describes how one of the [Formats] is named and encoded.
type format struct {
	name string
	exts []string

	// lossless formats keep the exact bytes of a frame
	lossless bool
	encode   func(w io.Writer, im image.Image) error
}

var formats = [...]format{
	None: {name: "None"},
	PNG:  {"PNG", []string{"png"}, true, png.Encode},
	JPEG: {"JPEG", []string{"jpg", "jpeg"}, false, func(w io.Writer, im image.Image) error {
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	}},
	GIF: {"GIF", []string{"gif"}, false, func(w io.Writer, im image.Image) error {
		return gif.Encode(w, im, nil)
	}},
	TIFF: {"TIFF", []string{"tif", "tiff"}, true, func(w io.Writer, im image.Image) error {
		return tiff.Encode(w, im, &tiff.Options{Compression: tiff.Deflate})
	}},
	BMP: {"BMP", []string{"bmp"}, true, bmp.Encode},
}

func (f Formats) valid() bool {
	return f > None && int(f) < len(formats)
}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formats) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formats[f].name
}

// Lossless reports whether the format stores frames without loss.
// Depth images should only be written in lossless formats.
func (f Formats) Lossless() bool {
	return f.valid() && formats[f].lossless
}

// ExtToFormat returns the format for a filename extension,
// which can start with a . or not.
func ExtToFormat(ext string) (Formats, error) {
	e := strings.ToLower(strings.TrimPrefix(ext, "."))
	if e == "" {
		return None, fmt.Errorf("imagex: no image extension")
	}
	for i := range formats {
		if slices.Contains(formats[i].exts, e) {
			return Formats(i), nil
		}
	}
	return None, fmt.Errorf("imagex: image extension %q not recognized", ext)
}

// Extensions returns the filename extensions of all the formats,
// or only of the lossless ones.
func Extensions(lossless bool) []string {
	var exts []string
	for i := range formats {
		f := Formats(i)
		if f.valid() && (f.Lossless() || !lossless) {
			exts = append(exts, formats[i].exts...)
		}
	}
	return exts
}

// FileFormat returns the format for the extension of a filename.
func FileFormat(filename string) (Formats, error) {
	return ExtToFormat(filepath.Ext(filename))
}

// Open opens an image file, returning its format.
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// Read decodes an image in any of the [Formats], returning its format.
func Read(r io.Reader) (image.Image, Formats, error) {
	im, name, err := image.Decode(r)
	if err != nil {
		return im, None, err
	}
	f, err := ExtToFormat(name)
	return im, f, err
}

// Save saves the image in the format given by the filename extension.
func Save(im image.Image, filename string) error {
	f, err := FileFormat(filename)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(file)
	err = Write(im, bw, f)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Write encodes the image in the given format.
func Write(im image.Image, w io.Writer, f Formats) error {
	if !f.valid() {
		return fmt.Errorf("imagex: cannot write format %v", f)
	}
	return formats[f].encode(w, im)
}
