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

package rvecs

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diffpatch/internal/seqview"
)

// ABCABBA -> CBABAC as -A +C B -C A B -B A +C
var (
	abcX  = []bool{true, false, true, false, false, true, false, false}
	abcY  = []bool{true, false, false, false, false, true, false}
	abcXS = strings.Split("ABCABBA", "")
	abcYS = strings.Split("CBABAC", "")
)

func TestHunks(t *testing.T) {
	tests := []struct {
		name    string
		rx, ry  []bool
		context int
		want    []Hunk
	}{
		{
			name:    "empty",
			rx:      []bool{false},
			ry:      []bool{false},
			context: 3,
			want:    nil,
		},
		{
			name:    "ABCABBA_to_CBABAC_context_3",
			rx:      abcX,
			ry:      abcY,
			context: 3,
			want:    []Hunk{{0, 7, 0, 6, 9}},
		},
		{
			name:    "ABCABBA_to_CBABAC_context_1",
			rx:      abcX,
			ry:      abcY,
			context: 1,
			want:    []Hunk{{0, 7, 0, 6, 9}}, // overlapping hunks are merged
		},
		{
			name:    "ABCABBA_to_CBABAC_context_0",
			rx:      abcX,
			ry:      abcY,
			context: 0,
			want: []Hunk{
				{0, 1, 0, 1, 2},
				{2, 3, 2, 2, 1},
				{5, 6, 4, 4, 1},
				{7, 7, 5, 6, 1},
			},
		},
		{
			name:    "negative-context",
			rx:      abcX,
			ry:      abcY,
			context: -1,
			want: []Hunk{
				{0, 1, 0, 1, 2},
				{2, 3, 2, 2, 1},
				{5, 6, 4, 4, 1},
				{7, 7, 5, 6, 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Hunks(tt.rx, tt.ry, tt.context))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Hunks(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromRanges(t *testing.T) {
	vx, vy := seqview.New(abcXS), seqview.New(abcYS)
	ranges := []seqview.Range[string]{
		seqview.DeleteRange(vx.Slice(0, 1)),
		seqview.InsertRange(vy.Slice(0, 1)),
		seqview.EqualRange(vx.Slice(1, 2), vy.Slice(1, 2)),
		seqview.DeleteRange(vx.Slice(2, 3)),
		seqview.EqualRange(vx.Slice(3, 5), vy.Slice(2, 4)),
		seqview.DeleteRange(vx.Slice(5, 6)),
		seqview.EqualRange(vx.Slice(6, 7), vy.Slice(4, 5)),
		seqview.InsertRange(vy.Slice(5, 6)),
	}
	rx, ry := FromRanges(len(abcXS), len(abcYS), ranges)
	if diff := cmp.Diff(abcX, rx); diff != "" {
		t.Errorf("FromRanges(...) rx is different [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(abcY, ry); diff != "" {
		t.Errorf("FromRanges(...) ry is different [-want,+got]:\n%s", diff)
	}
}

func TestEdits(t *testing.T) {
	var sb strings.Builder
	for e := range Edits(abcX, abcY, 0, 7, 0, 6) {
		switch e.Op {
		case seqview.Equal:
			sb.WriteString(" " + abcXS[e.S])
		case seqview.Delete:
			sb.WriteString("-" + abcXS[e.S])
		case seqview.Insert:
			sb.WriteString("+" + abcYS[e.T])
		}
	}
	want := "-A+C B-C A B-B A+C"
	if got := sb.String(); got != want {
		t.Errorf("Edits(...) = %q, want %q", got, want)
	}
}
