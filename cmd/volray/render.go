// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"cogentcore.org/volray/base/errors"
	"cogentcore.org/volray/base/fsx"
	"cogentcore.org/volray/base/iox/imagex"
	"cogentcore.org/volray/config"
	"cogentcore.org/volray/raycast"
	"github.com/spf13/cobra"
)

// renderOptions override settings of the scene file.
type renderOptions struct {
	out, depth string
	convert    bool
	workers    int
}

func (o *renderOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.out, "out", "o", "", "color image file, overriding the scene output")
	f.StringVar(&o.depth, "depth", "", "depth image file, overriding the scene output")
	f.BoolVar(&o.convert, "convert", false, "convert volume samples to int32 if needed")
	f.IntVar(&o.workers, "workers", -1, "number of rows rendered at once (0 for one per CPU)")
	errors.Must(cmd.MarkFlagFilename("out", imagex.Extensions(false)...))
	errors.Must(cmd.MarkFlagFilename("depth", imagex.Extensions(true)...))
}

// apply applies the options to the scene. Output files given on the
// command line are relative to the working directory.
func (o *renderOptions) apply(sc *config.Scene) error {
	if o.out != "" {
		sc.Output.Image = errors.Log1(filepath.Abs(o.out))
	}
	if o.depth != "" {
		sc.Output.Depth = errors.Log1(filepath.Abs(o.depth))
	}
	if o.convert {
		sc.Volume.Convert = true
	}
	if o.workers >= 0 {
		sc.Render.Workers = o.workers
	}
	return sc.Output.Validate()
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render <scene-file>",
		Short: "Render a scene file once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			_, err := renderFile(ctx, raycast.NewDefaultRenderer(), args[0], &opts)
			return err
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <scene-file>",
		Short: "Write a scene file with the default settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := fsx.FileExists(args[0])
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%s already exists", args[0])
			}
			return config.NewScene().Save(args[0])
		},
	}
}

// renderFile reads the scene file, renders it with r and writes the
// output files. It returns the scene.
func renderFile(ctx context.Context, r *raycast.Renderer, filename string, opts *renderOptions) (*config.Scene, error) {
	sc, err := config.Open(filename)
	if err != nil {
		return nil, err
	}
	if err := opts.apply(sc); err != nil {
		return sc, err
	}
	return sc, renderScene(ctx, r, sc)
}

// renderScene renders the scene with r and writes the output files.
func renderScene(ctx context.Context, r *raycast.Renderer, sc *config.Scene) error {
	g, err := sc.BuildGrid()
	if err != nil {
		return err
	}
	tf, err := sc.BuildTransfer(g)
	if err != nil {
		return err
	}
	cam := sc.BuildCamera(g)
	light, err := sc.BuildLight(cam)
	if err != nil {
		return err
	}
	r.Config = sc.RenderConfig()
	slog.Info("rendering", "volume", g.Resolution, "type", g.ScalarType(), "size", fmt.Sprintf("%dx%d", cam.Width, cam.Height),
		"shading", r.Config.Shading.Type, "step", r.Config.SamplingStep)
	if err := r.Render(ctx, g, tf, cam, light); err != nil {
		return err
	}
	slog.Info("rendered", "hits", r.Stats.Hits, "samples", r.Stats.Samples, "elapsed", r.Stats.Elapsed)
	return writeOutput(sc, r)
}
