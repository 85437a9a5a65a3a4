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
	"znkr.io/diffpatch/internal/byteview"
	"znkr.io/diffpatch/internal/compact"
	"znkr.io/diffpatch/internal/config"
	"znkr.io/diffpatch/internal/indentheuristic"
	"znkr.io/diffpatch/internal/myers"
	"znkr.io/diffpatch/internal/rvecs"
	"znkr.io/diffpatch/internal/seqview"
)

// Create compares the lines in original and modified and returns a patch that converts one into
// the other. If both are identical, the patch has no hunks.
//
// The following options are supported: [diffpatch.Context], [IndentHeuristic], [Labels]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Create[T Text](original, modified T, opts ...diffpatch.Option) *Patch[T] {
	cfg := config.FromOptions(opts, config.Context|config.IndentHeuristic|config.Labels)
	return create(original, modified, cfg)
}

// Unified compares the lines in original and modified and returns the changes necessary to
// convert from one to the other in unified format.
//
// The following options are supported: [diffpatch.Context], [IndentHeuristic], [Labels],
// [TerminalColors], [MissingNewlineMessage], [SuppressBlankEmpty]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Unified[T Text](original, modified T, opts ...diffpatch.Option) T {
	cfg := config.FromOptions(opts, config.Context|config.IndentHeuristic|config.Labels|config.Formatting)
	p := create(original, modified, cfg)
	if len(p.Hunks) == 0 {
		// Identical inputs produce an empty diff, even with labels.
		var zero T
		return zero
	}
	var b byteview.Builder[T]
	format(&b, p, cfg)
	return b.Build()
}

func create[T Text](original, modified T, cfg config.Config) *Patch[T] {
	x, _ := byteview.SplitLines(byteview.From(original))
	y, _ := byteview.SplitLines(byteview.From(modified))

	ranges := compact.Compact(myers.Diff(x, y))
	if cfg.IndentHeuristic {
		ranges = indentheuristic.Apply(x, y, ranges)
	}
	rx, ry := rvecs.FromRanges(len(x), len(y), ranges)

	p := &Patch[T]{
		Original: cfg.OriginalLabel,
		Modified: cfg.ModifiedLabel,
	}
	for h := range rvecs.Hunks(rx, ry, cfg.Context) {
		lines := make([]Line[T], 0, h.Edits)
		for e := range rvecs.Edits(rx, ry, h.S0, h.S1, h.T0, h.T1) {
			switch e.Op {
			case seqview.Delete:
				lines = append(lines, Line[T]{Delete, byteview.To[T](x[e.S])})
			case seqview.Insert:
				lines = append(lines, Line[T]{Insert, byteview.To[T](y[e.T])})
			default:
				lines = append(lines, Line[T]{Context, byteview.To[T](x[e.S])})
			}
		}
		p.Hunks = append(p.Hunks, Hunk[T]{
			Old:   makeRange(h.S0, h.S1),
			New:   makeRange(h.T0, h.T1),
			Lines: lines,
		})
	}
	return p
}
