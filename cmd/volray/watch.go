// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"cogentcore.org/volray/base/errors"
	"cogentcore.org/volray/raycast"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// settle is how long the scene file must be unchanged before rendering,
// so that a burst of writes from an editor renders once.
const settle = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "watch <scene-file>",
		Short: "Render a scene file again whenever it changes, until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, args[0], &opts, nil)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// watch renders the scene file, and then again every time it is written,
// until ctx is done. Render errors are logged and do not stop watching.
// If rendered is not nil, it is called after each render attempt.
func watch(ctx context.Context, filename string, opts *renderOptions, rendered func(error)) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// editors often replace the file, so the directory is watched
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	r := raycast.NewDefaultRenderer()
	render := func() {
		_, err := renderFile(ctx, r, abs, opts)
		if !errors.Is(err, context.Canceled) {
			errors.Log(err)
		}
		if rendered != nil {
			rendered(err)
		}
	}
	render()
	slog.Info("watching", "file", abs)

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("scene changed", "op", ev.Op)
			timer.Reset(settle)
		case <-timer.C:
			render()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}
