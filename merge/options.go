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


package merge

import (
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/internal/config"
)

// ConflictStyle selects how conflicts are rendered.
type ConflictStyle = config.ConflictStyle

const (
	// Diff3 renders conflicts with ours, the original, and theirs. This is the default.
	Diff3 = config.StyleDiff3

	// Conflict renders conflicts with ours and theirs only.
	Conflict = config.StyleMerge
)

// Style sets the conflict style.
func Style(style ConflictStyle) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.ConflictStyle = style
		return config.ConflictStyleFlag
	}
}

// MarkerSize sets the length of conflict markers, the default is 7. Sizes below 1 are treated as
// 1.
func MarkerSize(n int) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MarkerSize = max(n, 1)
		return config.MarkerSize
	}
}

// Labels sets the labels written after the conflict markers. The defaults are "ours",
// "original", and "theirs". An empty label leaves the marker without a label.
func Labels(ours, original, theirs string) diffpatch.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.OursLabel = ours
		cfg.BaseLabel = original
		cfg.TheirsLabel = theirs
		return config.MergeLabels
	}
}
