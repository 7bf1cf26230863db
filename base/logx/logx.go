// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the user verbosity level and the default
// structured logger used by the volray command and libraries.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the lowest level of the messages shown by handlers from
// [NewHandler]. It is [slog.LevelWarn] unless set from [Flags].
var UserLevel = slog.LevelWarn

// Flags are the verbosity flags of a command. The most verbose flag
// set wins: VeryVerbose shows debug messages, Verbose informational
// messages, and Quiet only errors.
type Flags struct {
	VeryVerbose, Verbose, Quiet bool
}

// Level returns the level selected by the flags.
func (f Flags) Level() slog.Level {
	switch {
	case f.VeryVerbose:
		return slog.LevelDebug
	case f.Verbose:
		return slog.LevelInfo
	case f.Quiet:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Apply sets [UserLevel] from the flags and installs a [NewHandler]
// logger on stderr as the default logger.
func (f Flags) Apply() {
	UserLevel = f.Level()
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// levelColors are the label colors of the levels at or above each level.
var levelColors = []struct {
	min   slog.Level
	color termenv.Color
}{
	{slog.LevelError, termenv.ANSIRed},
	{slog.LevelWarn, termenv.ANSIYellow},
	{slog.LevelInfo, termenv.ANSICyan},
}

// NewHandler returns a text [slog.Handler] writing to w that shows
// messages at or above [UserLevel]. Level labels are colored when w
// is a terminal that supports colors.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(LevelString(out, lvl))
			}
			return a
		},
	})
}

// LevelString returns the name of the level, colored for the
// profile of the given output.
func LevelString(out *termenv.Output, lvl slog.Level) string {
	var c termenv.Color = termenv.ANSIBrightBlack
	for _, lc := range levelColors {
		if lvl >= lc.min {
			c = lc.color
			break
		}
	}
	return out.String(lvl.String()).Foreground(c).String()
}
