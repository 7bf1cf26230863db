// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/fcolor"
	"github.com/anthonynsimon/bild/transform"
)

// WrapRGBA returns an image sharing pix, which holds w*h RGBA pixels
// row by row from the top left, with color premultiplied by alpha.
// That is the layout of [image.RGBA], so no conversion is needed.
func WrapRGBA(pix []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}

// Gray16 returns a 16 bit gray image of w*h values in [0, 1], row by
// row from the top left, with 1 as white. Values outside are clamped.
func Gray16(values []float32, w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for i, d := range values[:w*h] {
		v := uint16(min(max(d, 0), 1)*65535 + 0.5)
		img.Pix[2*i] = uint8(v >> 8)
		img.Pix[2*i+1] = uint8(v)
	}
	return img
}

// over composites premultiplied src over premultiplied dst.
func over(dst, src fcolor.RGBAF64) fcolor.RGBAF64 {
	t := 1 - src.A
	return fcolor.RGBAF64{R: src.R + dst.R*t, G: src.G + dst.G*t, B: src.B + dst.B*t, A: src.A + dst.A*t}
}

// Over returns the premultiplied image composited over an opaque
// background color. The blend modes of bild assume straight alpha,
// so the premultiplied over operator is applied through [blend.Blend].
func Over(img *image.RGBA, bg color.Color) *image.RGBA {
	r, g, b, _ := bg.RGBA()
	back := image.NewRGBA(img.Bounds())
	opaque := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
	draw.Draw(back, back.Bounds(), image.NewUniform(opaque), image.Point{}, draw.Src)
	return blend.Blend(back, img, over)
}

// Scale resizes the image by the given factor with bilinear filtering,
// returning it unchanged for a factor of 1.
func Scale(img image.Image, s float32) image.Image {
	if s == 1 {
		return img
	}
	sz := img.Bounds().Size()
	w, h := max(int(float32(sz.X)*s+0.5), 1), max(int(float32(sz.Y)*s+0.5), 1)
	return transform.Resize(img, w, h, transform.Linear)
}
