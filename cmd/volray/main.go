// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command volray renders structured scalar volumes described by scene
// files into images by software ray casting.
//
//	volray init scene.toml
//	volray render scene.toml
//	volray watch scene.toml
package main

import (
	"os"

	"cogentcore.org/volray/base/logx"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fl logx.Flags
	root := &cobra.Command{
		Use:           "volray",
		Short:         "Render scalar volumes by software ray casting",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			fl.Apply()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&fl.Verbose, "verbose", "v", false, "show informational messages")
	pf.BoolVar(&fl.VeryVerbose, "vv", false, "show debug messages")
	pf.BoolVarP(&fl.Quiet, "quiet", "q", false, "only show errors")

	root.AddCommand(newInitCmd(), newRenderCmd(), newWatchCmd())
	return root
}
