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


// Package merge performs a three-way merge of text.
//
// Both modified versions are compared line by line with their common original. Changes that
// don't overlap in the original are combined, overlapping changes that are identical on both
// sides are taken once, and all other overlapping changes are conflicts. Conflicts are marked in
// the output, like git merge-file does it:
//
//	<<<<<<< ours
//	our version
//	||||||| original
//	original version
//	=======
//	their version
//	>>>>>>> theirs
package merge

import (
	"slices"
	"strings"

	"znkr.io/diffpatch"
	"znkr.io/diffpatch/internal/byteview"
	"znkr.io/diffpatch/internal/compact"
	"znkr.io/diffpatch/internal/config"
	"znkr.io/diffpatch/internal/myers"
	"znkr.io/diffpatch/internal/seqview"
)

// Text is the type of inputs and outputs of this package.
type Text interface {
	string | []byte
}

// RegionKind describes how a region of a merge was resolved.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=RegionKind
type RegionKind int

const (
	Unchanged  RegionKind = iota // Neither side changed the region
	Ours                         // Only ours changed the region
	Theirs                       // Only theirs changed the region
	Both                         // Both sides changed the region in the same way
	Conflicted                   // Both sides changed the region differently
)

// Region is a part of a merge. Original, Ours, and Theirs are the lines of the region in the
// respective version, including line terminators.
type Region[T Text] struct {
	Kind                   RegionKind
	Original, Ours, Theirs []T
}

// Merge combines the changes from original to ours and from original to theirs. It returns the
// result and whether it's free of conflicts. If there are conflicts, they are marked in the
// result.
//
// The following options are supported: [Style], [MarkerSize], [Labels]
func Merge[T Text](original, ours, theirs T, opts ...diffpatch.Option) (T, bool) {
	cfg := config.FromOptions(opts, config.ConflictStyleFlag|config.MarkerSize|config.MergeLabels)
	regions := merge(byteview.From(original), byteview.From(ours), byteview.From(theirs))

	var b byteview.Builder[T]
	b.Grow(max(len(original), len(ours), len(theirs)))
	clean := true
	for _, r := range regions {
		switch r.Kind {
		case Unchanged:
			writeLines(&b, r.original)
		case Ours, Both:
			writeLines(&b, r.ours)
		case Theirs:
			writeLines(&b, r.theirs)
		case Conflicted:
			clean = false
			writeMarker(&b, '<', cfg.MarkerSize, cfg.OursLabel)
			writeSection(&b, r.ours)
			if cfg.ConflictStyle == config.StyleDiff3 {
				writeMarker(&b, '|', cfg.MarkerSize, cfg.BaseLabel)
				writeSection(&b, r.original)
			}
			writeMarker(&b, '=', cfg.MarkerSize, "")
			writeSection(&b, r.theirs)
			writeMarker(&b, '>', cfg.MarkerSize, cfg.TheirsLabel)
		}
	}
	return b.Build(), clean
}

// Regions performs the same merge as [Merge] and returns the merged regions in order.
func Regions[T Text](original, ours, theirs T) []Region[T] {
	regions := merge(byteview.From(original), byteview.From(ours), byteview.From(theirs))
	out := make([]Region[T], len(regions))
	for i, r := range regions {
		out[i] = Region[T]{
			Kind:     r.Kind,
			Original: toLines[T](r.original),
			Ours:     toLines[T](r.ours),
			Theirs:   toLines[T](r.theirs),
		}
	}
	return out
}

func toLines[T Text](lines []byteview.ByteView) []T {
	out := make([]T, len(lines))
	for i, l := range lines {
		out[i] = byteview.To[T](l)
	}
	return out
}

func writeLines[T Text](b *byteview.Builder[T], lines []byteview.ByteView) {
	for _, l := range lines {
		b.WriteByteView(l)
	}
}

// writeSection writes the lines of a conflict section and makes sure the section ends in a newline,
// so that the following marker starts on a line of its own.
func writeSection[T Text](b *byteview.Builder[T], lines []byteview.ByteView) {
	writeLines(b, lines)
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1].String(), "\n") {
		b.WriteByte('\n')
	}
}

func writeMarker[T Text](b *byteview.Builder[T], c byte, size int, label string) {
	for range size {
		b.WriteByte(c)
	}
	if label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	b.WriteByte('\n')
}

// region is the internal representation of a Region.
type region struct {
	Kind                   RegionKind
	original, ours, theirs []byteview.ByteView
}

// edit is a block of changes from the original to one side. The lines o[start:end] are replaced
// by side[sstart:send].
type edit struct {
	start, end   int
	sstart, send int
}

// before reports whether e is entirely before f, i.e., if both can be applied independently.
// Two edits that touch are independent only if both replace at least one line. An insertion at
// either end of another edit is not.
func (e edit) before(f edit) bool {
	return e.end < f.start || e.end == f.start && e.start < e.end && f.start < f.end
}

// edits returns the blocks of changes from o to side.
func edits(o, side []byteview.ByteView) []edit {
	ranges := compact.Compact(myers.Diff(o, side))
	var out []edit
	s, t := 0, 0
	inEdit := false
	for _, r := range ranges {
		switch r.Op {
		case seqview.Equal:
			s += r.Old.Len()
			t += r.New.Len()
			inEdit = false
			continue
		case seqview.Delete:
			if !inEdit {
				out = append(out, edit{s, s, t, t})
			}
			s += r.Old.Len()
		case seqview.Insert:
			if !inEdit {
				out = append(out, edit{s, s, t, t})
			}
			t += r.New.Len()
		}
		inEdit = true
		out[len(out)-1].end = s
		out[len(out)-1].send = t
	}
	return out
}

func merge(original, ours, theirs byteview.ByteView) []region {
	o, _ := byteview.SplitLines(original)
	a, _ := byteview.SplitLines(ours)
	b, _ := byteview.SplitLines(theirs)
	ea, eb := edits(o, a), edits(o, b)

	var out []region
	pos := 0 // next line in o
	i, j := 0, 0
	for i < len(ea) || j < len(eb) {
		// Start a group with the edit that starts first and add all edits that overlap with it.
		var span edit
		i0, j0 := i, j
		if j == len(eb) || i < len(ea) && ea[i].start <= eb[j].start {
			span = ea[i]
			i++
		} else {
			span = eb[j]
			j++
		}
	grow:
		for {
			switch {
			case i < len(ea) && !span.before(ea[i]):
				span.end = max(span.end, ea[i].end)
				i++
			case j < len(eb) && !span.before(eb[j]):
				span.end = max(span.end, eb[j].end)
				j++
			default:
				break grow
			}
		}
		if pos < span.start {
			out = append(out, unchanged(o[pos:span.start]))
		}

		r := region{original: o[span.start:span.end]}
		r.ours = apply(o, a, ea[i0:i], span)
		r.theirs = apply(o, b, eb[j0:j], span)
		switch {
		case j0 == j:
			r.Kind = Ours
		case i0 == i:
			r.Kind = Theirs
		case slices.Equal(r.ours, r.theirs):
			r.Kind = Both
		default:
			r.Kind = Conflicted
		}
		out = append(out, r)
		pos = span.end
	}
	if pos < len(o) {
		out = append(out, unchanged(o[pos:]))
	}
	return out
}

func unchanged(lines []byteview.ByteView) region {
	return region{Kind: Unchanged, original: lines, ours: lines, theirs: lines}
}

// apply returns the lines of o[span.start:span.end] with the edits applied.
func apply(o, side []byteview.ByteView, edits []edit, span edit) []byteview.ByteView {
	if len(edits) == 0 {
		return o[span.start:span.end]
	}
	if len(edits) == 1 && edits[0].start == span.start && edits[0].end == span.end {
		return side[edits[0].sstart:edits[0].send]
	}
	var out []byteview.ByteView
	pos := span.start
	for _, e := range edits {
		out = append(out, o[pos:e.start]...)
		out = append(out, side[e.sstart:e.send]...)
		pos = e.end
	}
	return append(out, o[pos:span.end]...)
}
