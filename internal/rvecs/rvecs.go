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

// Package rvecs works with result vectors.
//
// A pair of result vectors rx, ry describes a diff between x and y with one flag per element:
// rx[s] is set if x[s] is deleted and ry[t] is set if y[t] is inserted. Both vectors have one
// extra element that is never set, a border that makes it easier to iterate over them.
//
// Result vectors lose the order of adjacent deletions and insertions. Iterating over them always
// yields deletions before insertions.
package rvecs

import (
	"iter"

	"znkr.io/diffpatch/internal/seqview"
)

// Make allocates result vectors for inputs of length n and m.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// FromRanges converts a solution for inputs of length n and m into result vectors.
func FromRanges[T comparable](n, m int, ranges []seqview.Range[T]) (rx, ry []bool) {
	rx, ry = Make(n, m)
	for _, r := range ranges {
		switch r.Op {
		case seqview.Delete:
			for s := r.Old.Offset(); s < r.Old.End(); s++ {
				rx[s] = true
			}
		case seqview.Insert:
			for t := r.New.Offset(); t < r.New.End(); t++ {
				ry[t] = true
			}
		}
	}
	return rx, ry
}

// Edit is a single edit in result vectors.
type Edit struct {
	Op   seqview.Op
	S, T int // Index into x for Equal and Delete, index into y for Equal and Insert.
}

// Edits iterates over all edits of x[s0:s1] and y[t0:t1], deletions before insertions before
// matches.
func Edits(rx, ry []bool, s0, s1, t0, t1 int) iter.Seq[Edit] {
	return func(yield func(Edit) bool) {
		for s, t := s0, t0; s < s1 || t < t1; {
			for s < s1 && rx[s] {
				if !yield(Edit{seqview.Delete, s, -1}) {
					return
				}
				s++
			}
			for t < t1 && ry[t] {
				if !yield(Edit{seqview.Insert, -1, t}) {
					return
				}
				t++
			}
			for s < s1 && t < t1 && !rx[s] && !ry[t] {
				if !yield(Edit{seqview.Equal, s, t}) {
					return
				}
				s++
				t++
			}
		}
	}
}
