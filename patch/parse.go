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
	"fmt"
	"strconv"
	"strings"

	"znkr.io/diffpatch/internal/byteview"
)

// ParseError describes a syntax error in a unified diff.
type ParseError struct {
	Line int // 1-based line number of the offending line
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse parses a unified diff for a single file.
//
// Lines before the first "---" header or hunk header are ignored, e.g., the "diff --git" and
// "index" lines of a git diff. Timestamps after the labels of the header lines are dropped. Hunk
// lengths can be omitted from the hunk header and default to 1. A patch that ends in the middle of
// a hunk line is rejected, a missing newline must be marked with "\ No newline at end of file".
// The result shares memory with in.
func Parse[T Text](in T) (*Patch[T], error) {
	lines, _ := byteview.SplitLines(byteview.From(in))
	p := &parser[T]{lines: lines}
	return p.parse()
}

type parser[T Text] struct {
	lines []byteview.ByteView
	i     int // index of the next line
}

func (p *parser[T]) errorf(format string, args ...any) error {
	return &ParseError{Line: p.i + 1, Msg: fmt.Sprintf(format, args...)}
}

// line returns the next line without its terminator.
func (p *parser[T]) line() string {
	s, _ := byteview.CutLineEnd(p.lines[p.i])
	return s.String()
}

func (p *parser[T]) parse() (*Patch[T], error) {
	out := &Patch[T]{}

	// Skip preamble.
	for p.i < len(p.lines) {
		l := p.line()
		if strings.HasPrefix(l, "--- ") || strings.HasPrefix(l, "@@ ") {
			break
		}
		p.i++
	}
	if p.i == len(p.lines) {
		return out, nil
	}

	if l := p.line(); strings.HasPrefix(l, "--- ") {
		out.Original = label(l[len("--- "):])
		p.i++
		if p.i == len(p.lines) || !strings.HasPrefix(p.line(), "+++ ") {
			return nil, p.errorf(`expected "+++ " header after "--- " header`)
		}
		out.Modified = label(p.line()[len("+++ "):])
		p.i++
	}

	for p.i < len(p.lines) {
		h, err := p.hunk()
		if err != nil {
			return nil, err
		}
		out.Hunks = append(out.Hunks, h)
	}
	return out, nil
}

// label strips the timestamp from a header label.
func label(s string) string {
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	return s
}

func (p *parser[T]) hunk() (Hunk[T], error) {
	var h Hunk[T]
	if err := p.hunkHeader(&h); err != nil {
		return h, err
	}
	p.i++

	oldLen, newLen := h.Old.Len, h.New.Len
	for oldLen > 0 || newLen > 0 {
		if p.i == len(p.lines) {
			return h, p.errorf("unexpected end of hunk, %d original and %d modified lines missing", oldLen, newLen)
		}
		raw := p.lines[p.i]
		s := raw.String()
		if !strings.HasSuffix(s, "\n") && s[0] != '\\' {
			// Only the last line of the input can lack a newline. A file without a final newline
			// is marked explicitly, anything else is a truncated patch.
			return h, p.errorf(`line without newline and without "\ No newline at end of file" marker`)
		}
		var l Line[T]
		switch s[0] {
		case ' ':
			l = Line[T]{Context, byteview.To[T](byteview.From(s[1:]))}
			oldLen--
			newLen--
		case '\n', '\r':
			// An empty context line, written without the leading space.
			if s != "\n" && s != "\r\n" {
				return h, p.errorf("unexpected line prefix %q", s[0])
			}
			l = Line[T]{Context, byteview.To[T](raw)}
			oldLen--
			newLen--
		case '-':
			l = Line[T]{Delete, byteview.To[T](byteview.From(s[1:]))}
			oldLen--
		case '+':
			l = Line[T]{Insert, byteview.To[T](byteview.From(s[1:]))}
			newLen--
		case '\\':
			if err := p.noNewline(&h); err != nil {
				return h, err
			}
			continue
		default:
			return h, p.errorf("unexpected line prefix %q", s[0])
		}
		if oldLen < 0 || newLen < 0 {
			return h, p.errorf("hunk has more lines than its header declares")
		}
		h.Lines = append(h.Lines, l)
		p.i++
	}
	if p.i < len(p.lines) && strings.HasPrefix(p.lines[p.i].String(), "\\") {
		if err := p.noNewline(&h); err != nil {
			return h, err
		}
	}
	return h, nil
}

// noNewline handles a "\ No newline at end of file" line by removing the newline from the
// previous line.
func (p *parser[T]) noNewline(h *Hunk[T]) error {
	if len(h.Lines) == 0 {
		return p.errorf("unexpected %q", p.line())
	}
	l := &h.Lines[len(h.Lines)-1]
	s := string(l.Content)
	if !strings.HasSuffix(s, "\n") {
		return p.errorf("unexpected %q", p.line())
	}
	l.Content = l.Content[:len(l.Content)-1]
	p.i++
	return nil
}

// hunkHeader parses a line of the form "@@ -1,2 +3,4 @@ function".
func (p *parser[T]) hunkHeader(h *Hunk[T]) error {
	l := p.line()
	rest, ok := strings.CutPrefix(l, "@@ -")
	if !ok {
		return p.errorf("expected hunk header, got %q", l)
	}
	oldRange, rest, ok := strings.Cut(rest, " +")
	if !ok {
		return p.errorf("malformed hunk header %q", l)
	}
	newRange, rest, ok := strings.Cut(rest, " @@")
	if !ok {
		return p.errorf("malformed hunk header %q", l)
	}
	var err error
	if h.Old, err = parseRange(oldRange); err != nil {
		return p.errorf("malformed hunk header %q: %v", l, err)
	}
	if h.New, err = parseRange(newRange); err != nil {
		return p.errorf("malformed hunk header %q: %v", l, err)
	}
	if rest != "" {
		function, ok := strings.CutPrefix(rest, " ")
		if !ok {
			return p.errorf("malformed hunk header %q", l)
		}
		h.Function = function
	}
	return nil
}

func parseRange(s string) (HunkRange, error) {
	start, length, found := strings.Cut(s, ",")
	var r HunkRange
	var err error
	if r.Start, err = strconv.Atoi(start); err != nil {
		return r, fmt.Errorf("invalid start: %w", err)
	}
	r.Len = 1
	if found {
		if r.Len, err = strconv.Atoi(length); err != nil {
			return r, fmt.Errorf("invalid length: %w", err)
		}
	}
	if r.Start < 0 || r.Len < 0 || r.Len > 0 && r.Start == 0 {
		return r, fmt.Errorf("invalid range %q", s)
	}
	return r, nil
}
