// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"log/slog"

	"cogentcore.org/volray/base/iox/imagex"
	"cogentcore.org/volray/config"
	"cogentcore.org/volray/raycast"
)

// writeOutput writes the images of the last frame of r.
func writeOutput(sc *config.Scene, r *raycast.Renderer) error {
	var img image.Image = r.Image()
	if bg, ok := sc.Output.BackgroundColor(); ok {
		img = imagex.Over(r.Image(), bg.Clamped())
	}
	img = imagex.Scale(img, sc.Output.Scale)
	fn := sc.Path(sc.Output.Image)
	if err := imagex.Save(img, fn); err != nil {
		return err
	}
	slog.Info("wrote image", "file", fn)
	if sc.Output.Depth == "" {
		return nil
	}
	fn = sc.Path(sc.Output.Depth)
	if err := imagex.Save(imagex.Scale(r.DepthImage(), sc.Output.Scale), fn); err != nil {
		return err
	}
	slog.Info("wrote depth image", "file", fn)
	return nil
}
