// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package patch

import (
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/internal/config"
	"znkr.io/diffpatch/patch/color"
)

// IndentHeuristic applies a heuristic to make diffs easier to read by improving the placement of
// edit boundaries.
//
// This implements a heuristic that shifts edit boundaries to align with indentation patterns,
// making the resulting diff more readable for humans. The heuristic is particularly effective with
// code and structured text.
func IndentHeuristic() diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IndentHeuristic = true
		return config.IndentHeuristic
	}
}

// Labels sets the labels of the "---" and "+++" header lines. The defaults are "original" and
// "modified". If both labels are empty, the header lines are omitted.
func Labels(original, modified string) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.OriginalLabel = original
		cfg.ModifiedLabel = modified
		return config.Labels
	}
}

// TerminalColors decorates the output with ANSI escape sequences. By default, headers are bold,
// hunk headers are cyan, deletions are red, and insertions are green. Use the options in
// [color] to change the colors.
func TerminalColors(opts ...color.Option) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cc := &config.ColorConfig{
			Header:     color.Code(1),
			HunkHeader: color.Code(36),
			Delete:     color.Code(31),
			Insert:     color.Code(32),
		}
		for _, opt := range opts {
			opt(cc)
		}
		cfg.Color = cc
		return config.Color
	}
}

// MissingNewlineMessage controls whether a missing newline at the end of a file is marked with a
// "\ No newline at end of file" line. It's enabled by default. Without the message, a patch can't
// be parsed back faithfully.
func MissingNewlineMessage(enabled bool) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MissingNewlineMessage = enabled
		return config.MissingNewlineMessage
	}
}

// SuppressBlankEmpty controls whether empty context lines are written without the leading space.
// It's enabled by default.
func SuppressBlankEmpty(enabled bool) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.SuppressBlankEmpty = enabled
		return config.SuppressBlankEmpty
	}
}
