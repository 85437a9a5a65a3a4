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


package diffpatch

import (
	"slices"

	"znkr.io/diffpatch/internal/compact"
	"znkr.io/diffpatch/internal/config"
	"znkr.io/diffpatch/internal/myers"
	"znkr.io/diffpatch/internal/rvecs"
	"znkr.io/diffpatch/internal/seqview"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Two slice elements match
	Delete           // A deletion from an element on the left slice
	Insert           // An insertion of an element from the right side
)

// Edit describes a single edit of a diff.
//
//   - For Match, both X and Y contain the matching element.
//   - For Delete, X contains the deleted element and Y is unset (zero value).
//   - For Insert, Y contains the inserted element and X is unset (zero value).
type Edit[T any] struct {
	Op   Op
	X, Y T
}

// Hunk describes a sequence of consecutive edits.
type Hunk[T any] struct {
	PosX, EndX int       // Start and end position in x.
	PosY, EndY int       // Start and end position in y.
	Edits      []Edit[T] // Edits to transform x[PosX:EndX] to y[PosY:EndY]
}

// Range describes a maximal run of edits of the same kind.
//
//   - For Match, x[PosX:EndX] and y[PosY:EndY] are equal.
//   - For Delete, x[PosX:EndX] is deleted and PosY == EndY is the position in y.
//   - For Insert, y[PosY:EndY] is inserted and PosX == EndX is the position in x.
type Range struct {
	Op         Op
	PosX, EndX int
	PosY, EndY int
}

// Diff compares the contents of x and y and returns the ranges necessary to convert from one to
// the other.
//
// The result is a shortest edit script in canonical form: Ranges of the same kind never follow
// each other, a deletion always comes before an adjacent insertion, and every group of edits is
// moved down as far as possible. If x and y are both empty, the output has length zero.
func Diff[T comparable](x, y []T) []Range {
	ranges := solve(x, y)
	if len(ranges) == 0 {
		return nil
	}
	out := make([]Range, 0, len(ranges))
	s, t := 0, 0
	for _, r := range ranges {
		switch r.Op {
		case seqview.Equal:
			out = append(out, Range{Match, s, s + r.Old.Len(), t, t + r.New.Len()})
			s += r.Old.Len()
			t += r.New.Len()
		case seqview.Delete:
			out = append(out, Range{Delete, s, s + r.Old.Len(), t, t})
			s += r.Old.Len()
		case seqview.Insert:
			out = append(out, Range{Insert, s, s, t, t + r.New.Len()})
			t += r.New.Len()
		}
	}
	return out
}

// Hunks compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
//
// The output is a sequence of hunks. A hunk represents a contiguous block of changes (insertions
// and deletions) along with some surrounding context. The amount of context can be configured using
// [Context].
//
// If x and y are identical, the output has length zero.
//
// The following option is supported: [diffpatch.Context]
func Hunks[T comparable](x, y []T, opts ...Option) []Hunk[T] {
	cfg := config.FromOptions(opts, config.Context)
	rx, ry := rvecs.FromRanges(len(x), len(y), solve(x, y))

	// Compute the number of hunks and edits, this is relatively cheap and allows us to preallocate
	// the return values.
	var nhunks, nedits int
	for hunk := range rvecs.Hunks(rx, ry, cfg.Context) {
		nhunks++
		nedits += hunk.Edits
	}
	if nhunks == 0 {
		return nil
	}

	eout := make([]Edit[T], 0, nedits)
	hout := make([]Hunk[T], 0, nhunks)
	for hunk := range rvecs.Hunks(rx, ry, cfg.Context) {
		for e := range rvecs.Edits(rx, ry, hunk.S0, hunk.S1, hunk.T0, hunk.T1) {
			eout = append(eout, edit(x, y, e))
		}
		hout = append(hout, Hunk[T]{
			PosX:  hunk.S0,
			EndX:  hunk.S1,
			PosY:  hunk.T0,
			EndY:  hunk.T1,
			Edits: slices.Clip(eout),
		})
		eout = eout[len(eout):]
	}
	return hout
}

// Edits compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
//
// Edits returns one edit for every element in the input slices. If x and y are identical, the
// output will consist of a match edit for every input element.
func Edits[T comparable](x, y []T, opts ...Option) []Edit[T] {
	config.FromOptions(opts, 0)
	ranges := solve(x, y)

	var nedits int
	for _, r := range ranges {
		nedits += r.Len()
	}
	if nedits == 0 {
		return nil
	}

	rx, ry := rvecs.FromRanges(len(x), len(y), ranges)
	eout := make([]Edit[T], 0, nedits)
	for e := range rvecs.Edits(rx, ry, 0, len(x), 0, len(y)) {
		eout = append(eout, edit(x, y, e))
	}
	return eout
}

func edit[T any](x, y []T, e rvecs.Edit) Edit[T] {
	switch e.Op {
	case seqview.Delete:
		return Edit[T]{Op: Delete, X: x[e.S]}
	case seqview.Insert:
		return Edit[T]{Op: Insert, Y: y[e.T]}
	default:
		return Edit[T]{Op: Match, X: x[e.S], Y: y[e.T]}
	}
}

// solve computes a compacted shortest edit script.
func solve[T comparable](x, y []T) []seqview.Range[T] {
	return compact.Compact(myers.Diff(x, y))
}
