// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages indicates whether to update currently saved test
// images in [Assert] instead of comparing against them.
// It is set if the environment variable "VOLRAY_UPDATE_TESTDATA" is
// set to "true". It should only be set when behavior has been updated
// that causes test images to change.
var UpdateTestImages = os.Getenv("VOLRAY_UPDATE_TESTDATA") == "true"

// CompareUint8 returns true if two numbers are no more different than tol
func CompareUint8(cc, ic uint8, tol int) bool {
	d := int(cc) - int(ic)
	return d >= -tol && d <= tol
}

// CompareColors returns true if two colors are no more different than tol
func CompareColors(cc, ic color.RGBA, tol int) bool {
	return CompareUint8(cc.R, ic.R, tol) && CompareUint8(cc.G, ic.G, tol) &&
		CompareUint8(cc.B, ic.B, tol) && CompareUint8(cc.A, ic.A, tol)
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// DiffImage returns the difference between two images,
// with pixels having the abs of the difference between pixels.
func DiffImage(a, b image.Image) image.Image {
	ab := a.Bounds()
	di := image.NewRGBA(ab)
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			cc := color.RGBAModel.Convert(a.At(x, y)).(color.RGBA)
			ic := color.RGBAModel.Convert(b.At(x, y)).(color.RGBA)
			di.Set(x, y, color.RGBA{absDiff(cc.R, ic.R), absDiff(cc.G, ic.G), absDiff(cc.B, ic.B), 255})
		}
	}
	return di
}

// Tolerance is the default per-channel tolerance of [Assert].
const Tolerance = 2

// mismatch describes how two images of equal bounds differ.
type mismatch struct {
	count    int
	at       image.Point
	got, exp color.RGBA
}

// compare counts the pixels of img differing from exp by more than tol
// on any channel, recording the first one.
func compare(img, exp image.Image, tol int) mismatch {
	var m mismatch
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cc := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			ic := color.RGBAModel.Convert(exp.At(x, y)).(color.RGBA)
			if CompareColors(cc, ic, tol) {
				continue
			}
			if m.count == 0 {
				m.at, m.got, m.exp = image.Pt(x, y), cc, ic
			}
			m.count++
		}
	}
	return m
}

// Assert asserts that the given image is equivalent
// to the image stored at the given filename in the testdata directory,
// with ".png" added to the filename if there is no extension
// (eg: "sphere" becomes "testdata/sphere.png"), within [Tolerance].
// If it is not, it fails the test with an error, but continues its
// execution, saving ".fail" and ".diff" images next to the expected one.
// If there is no image at the given filename in the testdata
// directory, it creates the image.
func Assert(t TestingT, img image.Image, filename string) {
	AssertTolerance(t, img, filename, Tolerance)
}

// AssertTolerance is [Assert] with the given per-channel tolerance.
func AssertTolerance(t TestingT, img image.Image, filename string, tol int) {
	filename = filepath.Join("testdata", filename)
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		t.Errorf("imagex: error making testdata directory: %v", err)
	}

	ext := filepath.Ext(filename)
	failFilename := strings.TrimSuffix(filename, ext) + ".fail" + ext
	diffFilename := strings.TrimSuffix(filename, ext) + ".diff" + ext
	clean := func() {
		os.RemoveAll(failFilename)
		os.RemoveAll(diffFilename)
	}

	if UpdateTestImages {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex: error saving updated image: %v", err)
		}
		clean()
		return
	}

	exp, _, err := Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		// first run: the rendered image becomes the expected one
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex: error saving new image: %v", err)
		}
		return
	}
	if err != nil {
		t.Errorf("imagex: error opening saved image: %v", err)
		return
	}

	if ib, eb := img.Bounds(), exp.Bounds(); ib != eb {
		t.Errorf("imagex: expected bounds %v for %s, but got %v; see %s", eb, filename, ib, failFilename)
		if err := Save(img, failFilename); err != nil {
			t.Errorf("imagex: error saving fail image: %v", err)
		}
		return
	}
	m := compare(img, exp, tol)
	if m.count == 0 {
		clean()
		return
	}
	n := img.Bounds().Dx() * img.Bounds().Dy()
	t.Errorf("imagex: %d of %d pixels of %s differ by more than %d; first at %v: expected %v, got %v; see %s",
		m.count, n, filename, tol, m.at, m.exp, m.got, diffFilename)
	if err := Save(img, failFilename); err != nil {
		t.Errorf("imagex: error saving fail image: %v", err)
	}
	if err := Save(DiffImage(img, exp), diffFilename); err != nil {
		t.Errorf("imagex: error saving diff image: %v", err)
	}
}
