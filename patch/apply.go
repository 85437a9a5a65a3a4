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
	"errors"
	"fmt"
	"strings"

	"znkr.io/diffpatch/internal/byteview"
)

var (
	// ErrContextMismatch is returned if the lines of a hunk don't match the text.
	ErrContextMismatch = errors.New("context mismatch")

	// ErrOutOfBounds is returned if a hunk refers to lines outside of the text or before the
	// previous hunk.
	ErrOutOfBounds = errors.New("hunk out of bounds")
)

// ApplyError describes a hunk that could not be applied.
type ApplyError struct {
	Hunk int   // 1-based index of the hunk
	Line int   // 1-based line the hunk was expected at, including the offset of previous hunks
	Err  error // ErrContextMismatch or ErrOutOfBounds
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("hunk #%d at line %d: %v", e.Hunk, e.Line, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// LineEndHandling controls how line endings are treated when applying a patch.
type LineEndHandling int

const (
	// Line endings must match exactly.
	LineEndsStrict LineEndHandling = iota

	// LF and CRLF line endings are considered equal when matching lines.
	LineEndsIgnore

	// Like LineEndsIgnore, but inserted lines are converted to the line ending used by most lines
	// of the text.
	LineEndsFile
)

// FuzzyConfig configures the search for hunks that don't apply at their declared position.
type FuzzyConfig struct {
	// MaxOffset is the maximum number of lines a hunk is searched for before or after its
	// expected position. Positions closer to the expected position are preferred.
	MaxOffset int

	// MaxFuzz is the maximum number of context lines at the beginning and end of a hunk that are
	// ignored if the hunk doesn't match with full context.
	MaxFuzz int

	// If set, differences in whitespace are ignored when matching lines.
	IgnoreWhitespace bool

	// If set, differences in case are ignored when matching lines.
	IgnoreCase bool
}

// ApplyConfig configures [ApplyWithConfig].
type ApplyConfig struct {
	// Fuzzy enables searching for hunks that don't apply at their declared position. If nil,
	// every hunk must match exactly where it's declared.
	Fuzzy *FuzzyConfig

	LineEnds LineEndHandling
}

// Apply applies p to base. Every hunk must match base exactly at its declared position.
//
// On failure, the returned error is an [*ApplyError].
func Apply[T Text](base T, p *Patch[T]) (T, error) {
	return ApplyWithConfig(base, p, ApplyConfig{})
}

// ApplyWithConfig applies p to base.
//
// Hunks are applied in order. The expected position of a hunk is the position declared in its
// header adjusted by the offset at which the previous hunk was applied. With fuzzy matching, the
// search for a hunk never goes before the end of the previous hunk. Context lines are copied from
// base, only inserted lines are taken from the patch.
//
// On failure, the returned error is an [*ApplyError].
func ApplyWithConfig[T Text](base T, p *Patch[T], cfg ApplyConfig) (T, error) {
	lines, _ := byteview.SplitLines(byteview.From(base))
	m := newMatcher(cfg)
	var fuzzy FuzzyConfig
	if cfg.Fuzzy != nil {
		fuzzy = *cfg.Fuzzy
	}
	eol := byteview.LF
	if cfg.LineEnds == LineEndsFile {
		eol = dominantLineEnd(lines)
	}

	var b byteview.Builder[T]
	b.Grow(len(base))
	pos := 0    // first line in base that hasn't been consumed yet
	offset := 0 // offset of the previous hunk
	for i, h := range p.Hunks {
		want := h.Old.index() + offset
		at, hl, lead, err := locate(lines, pos, want, h.Lines, m, fuzzy)
		if err != nil {
			var zero T
			return zero, &ApplyError{Hunk: i + 1, Line: want + 1, Err: err}
		}
		for _, l := range lines[pos:at] {
			b.WriteByteView(l)
		}

		// hl is h.Lines without the context lines that were ignored.
		k := at
		for _, l := range hl {
			switch l.Kind {
			case Context:
				b.WriteByteView(lines[k])
				k++
			case Delete:
				k++
			case Insert:
				content := byteview.From(l.Content)
				if cfg.LineEnds == LineEndsFile {
					if c, e := byteview.CutLineEnd(content); e != "" {
						b.WriteByteView(c)
						b.WriteString(eol)
						continue
					}
				}
				b.WriteByteView(content)
			}
		}
		pos = k
		offset = at - lead - h.Old.index()
	}
	for _, l := range lines[pos:] {
		b.WriteByteView(l)
	}
	return b.Build(), nil
}

// locate finds the position of a hunk in lines. It returns the position, the lines of the hunk
// that matched there, and the number of context lines ignored at the beginning of the hunk.
func locate[T Text](lines []byteview.ByteView, pos, want int, hl []Line[T], m matcher, cfg FuzzyConfig) (int, []Line[T], int, error) {
	inBounds := false
	prev := -1
	for fuzz := 0; fuzz <= cfg.MaxFuzz; fuzz++ {
		trimmed, lead := trimContext(hl, fuzz)
		if len(trimmed) == prev {
			break // nothing left to ignore
		}
		prev = len(trimmed)

		n := oldLen(trimmed)
		probe := func(at int) bool {
			if at < pos || at+n > len(lines) {
				return false
			}
			inBounds = true
			return matches(m, lines[at:at+n], trimmed)
		}
		for d := 0; d <= cfg.MaxOffset; d++ {
			if at := want + lead - d; probe(at) {
				return at, trimmed, lead, nil
			}
			if at := want + lead + d; d > 0 && probe(at) {
				return at, trimmed, lead, nil
			}
		}
	}
	if !inBounds {
		return 0, nil, 0, ErrOutOfBounds
	}
	return 0, nil, 0, ErrContextMismatch
}

// trimContext removes up to fuzz context lines from the beginning and the end of hl. It returns
// the remaining lines and the number of lines removed from the beginning.
func trimContext[T Text](hl []Line[T], fuzz int) ([]Line[T], int) {
	lead := 0
	for lead < fuzz && lead < len(hl) && hl[lead].Kind == Context {
		lead++
	}
	trail := 0
	for trail < fuzz && len(hl)-trail > lead && hl[len(hl)-1-trail].Kind == Context {
		trail++
	}
	return hl[lead : len(hl)-trail], lead
}

func oldLen[T Text](hl []Line[T]) int {
	n := 0
	for _, l := range hl {
		if l.Kind != Insert {
			n++
		}
	}
	return n
}

func dominantLineEnd(lines []byteview.ByteView) string {
	lf, crlf := 0, 0
	for _, l := range lines {
		switch _, eol := byteview.CutLineEnd(l); eol {
		case byteview.LF:
			lf++
		case byteview.CRLF:
			crlf++
		}
	}
	if crlf > lf {
		return byteview.CRLF
	}
	return byteview.LF
}

type matcher struct {
	lineEnds         bool
	ignoreWhitespace bool
	ignoreCase       bool
}

func newMatcher(cfg ApplyConfig) matcher {
	m := matcher{lineEnds: cfg.LineEnds != LineEndsStrict}
	if cfg.Fuzzy != nil {
		m.ignoreWhitespace = cfg.Fuzzy.IgnoreWhitespace
		m.ignoreCase = cfg.Fuzzy.IgnoreCase
	}
	return m
}

// matches reports whether the original lines of hl match lines.
func matches[T Text](m matcher, lines []byteview.ByteView, hl []Line[T]) bool {
	k := 0
	for _, l := range hl {
		if l.Kind == Insert {
			continue
		}
		if !m.equal(lines[k], byteview.From(l.Content)) {
			return false
		}
		k++
	}
	return true
}

func (m matcher) equal(a, b byteview.ByteView) bool {
	x, y := a.String(), b.String()
	if x == y {
		return true
	}
	if m.lineEnds {
		ca, ea := byteview.CutLineEnd(a)
		cb, eb := byteview.CutLineEnd(b)
		if (ea == "") != (eb == "") {
			return false
		}
		x, y = ca.String(), cb.String()
	}
	if m.ignoreWhitespace {
		x = strings.Join(strings.Fields(x), " ")
		y = strings.Join(strings.Fields(y), " ")
	}
	if m.ignoreCase {
		return strings.EqualFold(x, y)
	}
	return x == y
}
