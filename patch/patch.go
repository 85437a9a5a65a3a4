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


// Package patch creates, formats, parses, and applies unified diffs.
//
// A [Patch] is created from two texts with [Create] or parsed from its unified diff
// representation with [Parse]. [Format] and [Write] render a patch in unified format and
// [Apply] and [ApplyWithConfig] apply it to a text.
//
// All functions work on strings and byte slices alike, without copying the inputs. Results share
// memory with the inputs and must not be modified if the inputs are byte slices.
package patch

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Text is the type of inputs and outputs of this package.
type Text interface {
	string | []byte
}

// LineKind describes the role of a line in a hunk.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=LineKind
type LineKind int

const (
	Context LineKind = iota // A line present in both versions
	Delete                  // A line only present in the original
	Insert                  // A line only present in the modified version
)

// LineEnd is the line terminator of a line.
type LineEnd string

const (
	LF        LineEnd = "\n"
	CRLF      LineEnd = "\r\n"
	NoLineEnd LineEnd = "" // The last line of a file without a trailing newline.
)

// Line is a single line of a hunk. Content includes the line terminator.
type Line[T Text] struct {
	Kind    LineKind
	Content T
}

// LineEnd returns the terminator of l.
func (l Line[T]) LineEnd() LineEnd {
	s := string(l.Content)
	switch {
	case strings.HasSuffix(s, string(CRLF)):
		return CRLF
	case strings.HasSuffix(s, string(LF)):
		return LF
	default:
		return NoLineEnd
	}
}

// MissingNewline reports whether l is the last line of a file that doesn't end in a newline.
func (l Line[T]) MissingNewline() bool {
	return len(l.Content) == 0 || l.Content[len(l.Content)-1] != '\n'
}

// HunkRange describes the lines a hunk covers in one version of a text.
//
// Start is 1-based. For an empty range, Start is the line after which the lines of the other
// version are inserted, 0 means the beginning of the file.
type HunkRange struct {
	Start, Len int
}

func (r HunkRange) String() string {
	return strconv.Itoa(r.Start) + "," + strconv.Itoa(r.Len)
}

// index returns the 0-based index of the first line in r or the index to insert at if r is empty.
func (r HunkRange) index() int {
	if r.Len == 0 {
		return r.Start
	}
	return r.Start - 1
}

func makeRange(s0, s1 int) HunkRange {
	if s0 == s1 {
		return HunkRange{Start: s0}
	}
	return HunkRange{Start: s0 + 1, Len: s1 - s0}
}

// Hunk is a contiguous block of changes with surrounding context.
type Hunk[T Text] struct {
	Old, New HunkRange
	Function string // Optional text after the hunk header, usually the enclosing function.
	Lines    []Line[T]
}

// Patch is a list of hunks that convert one text into another.
type Patch[T Text] struct {
	// Labels for the "---" and "+++" header lines. The headers are omitted if both are empty.
	Original, Modified string

	Hunks []Hunk[T]
}

// String returns p in unified format, using the default formatting options.
func (p *Patch[T]) String() string {
	return string(Format(p))
}

// Reverse returns a patch that reverts p.
func (p *Patch[T]) Reverse() *Patch[T] {
	r := &Patch[T]{
		Original: p.Modified,
		Modified: p.Original,
		Hunks:    make([]Hunk[T], len(p.Hunks)),
	}
	for i, h := range p.Hunks {
		lines := make([]Line[T], len(h.Lines))
		for j, l := range h.Lines {
			switch l.Kind {
			case Delete:
				l.Kind = Insert
			case Insert:
				l.Kind = Delete
			}
			lines[j] = l
		}

		// Deletions come before insertions in every block of changes.
		for j := 0; j < len(lines); {
			if lines[j].Kind == Context {
				j++
				continue
			}
			k := j
			for k < len(lines) && lines[k].Kind != Context {
				k++
			}
			slices.SortStableFunc(lines[j:k], func(a, b Line[T]) int {
				return cmp.Compare(a.Kind, b.Kind)
			})
			j = k
		}

		r.Hunks[i] = Hunk[T]{
			Old:      h.New,
			New:      h.Old,
			Function: h.Function,
			Lines:    lines,
		}
	}
	return r
}
