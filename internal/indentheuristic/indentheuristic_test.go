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


package indentheuristic

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
	"znkr.io/diffpatch/internal/byteview"
	"znkr.io/diffpatch/internal/seqview"
)

func TestApply(t *testing.T) {
	tests, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no test cases found")
	}
	for _, test := range tests {
		name := strings.TrimPrefix(test, "testdata/")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(test)
			if err != nil {
				t.Fatalf("failed to parse test case: %v", err)
			}

			var input, want []byte
			for _, f := range ar.Files {
				switch f.Name {
				case "input":
					input = f.Data
				case "want":
					want = f.Data
				default:
					t.Fatalf("unknown file in archive: %v", f)
				}
			}

			x, y, ranges := parse(t, input)
			got := render(Apply(x, y, ranges))

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("indent heuristic produced different result.\ngot:\n%s\nwant:\n%s\ndiff\n%s", got, want, diff)
			}
		})
	}
}

func TestApplyLeavesReplacementsAlone(t *testing.T) {
	input := []byte(" a\n-b\n+c\n a\n b\n")
	x, y, ranges := parse(t, input)
	got := render(Apply(x, y, ranges))
	if diff := cmp.Diff(input, got); diff != "" {
		t.Errorf("Apply(...) moved a replacement [-want,+got]:\n%s", diff)
	}
}

func TestApplyKeepsEditsSeparated(t *testing.T) {
	// The insertion could slide up by two lines, but that would merge it with the deletion.
	input := []byte("-x\n a\n a\n+a\n b\n")
	x, y, ranges := parse(t, input)
	got := Apply(x, y, ranges)
	if err := seqview.Validate(x, y, got); err != nil {
		t.Fatalf("Apply(...) returned an invalid result: %v", err)
	}
	if len(got) != 4 || got[0].Op != seqview.Delete || got[1].Op != seqview.Equal || got[2].Op != seqview.Insert {
		t.Errorf("Apply(...) merged the insertion with the deletion:\n%s", render(got))
	}
}

func parse(t *testing.T, diff []byte) (x, y []byteview.ByteView, ranges []seqview.Range[byteview.ByteView]) {
	t.Helper()
	type group struct {
		op   seqview.Op
		n, m int // number of lines in x and y
	}
	var groups []group
	for line := range bytes.Lines(diff) {
		var op seqview.Op
		switch line[0] {
		case ' ':
			op = seqview.Equal
			x = append(x, byteview.From(line[1:]))
			y = append(y, byteview.From(line[1:]))
		case '-':
			op = seqview.Delete
			x = append(x, byteview.From(line[1:]))
		case '+':
			op = seqview.Insert
			y = append(y, byteview.From(line[1:]))
		default:
			t.Fatalf("failed to parse diff: unknown prefix %q", line[0])
		}
		if len(groups) == 0 || groups[len(groups)-1].op != op {
			groups = append(groups, group{op: op})
		}
		g := &groups[len(groups)-1]
		if op != seqview.Insert {
			g.n++
		}
		if op != seqview.Delete {
			g.m++
		}
	}

	vx, vy := seqview.New(x), seqview.New(y)
	s, u := 0, 0
	for _, g := range groups {
		switch g.op {
		case seqview.Equal:
			ranges = append(ranges, seqview.EqualRange(vx.Slice(s, s+g.n), vy.Slice(u, u+g.m)))
		case seqview.Delete:
			ranges = append(ranges, seqview.DeleteRange(vx.Slice(s, s+g.n)))
		case seqview.Insert:
			ranges = append(ranges, seqview.InsertRange(vy.Slice(u, u+g.m)))
		}
		s += g.n
		u += g.m
	}
	if err := seqview.Validate(x, y, ranges); err != nil {
		t.Fatalf("invalid test case: %v", err)
	}
	return x, y, ranges
}

func render(ranges []seqview.Range[byteview.ByteView]) []byte {
	var b bytes.Buffer
	for _, r := range ranges {
		prefix, lines := " ", r.Old.Elems()
		switch r.Op {
		case seqview.Delete:
			prefix = "-"
		case seqview.Insert:
			prefix, lines = "+", r.New.Elems()
		}
		for _, l := range lines {
			b.WriteString(prefix)
			b.WriteString(l.String())
		}
	}
	return b.Bytes()
}
