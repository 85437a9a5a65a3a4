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

// Package compact canonicalizes the output of a diff algorithm.
//
// An edit next to a run of equal elements can often be moved without changing the result, e.g.
// inserting "b" into "ab" can be written as "a+bb" or "ab+b". Compact slides every edit up as
// far as possible and then down as far as possible. Along the way, edits of the same kind that
// meet are merged and a Delete that meets an Insert is moved in front of it. The result has the
// fewest possible edit groups and every group sits at its lowest possible position. Compacting
// a compacted diff doesn't change it.
package compact

import (
	"slices"

	"znkr.io/diffpatch/internal/seqview"
)

// Compact compacts ranges and returns the result. The input slice is reused.
//
// A pass compacts all deletions and then all insertions. Moving an insertion can bring two
// groups next to each other that the pass already visited, so passes repeat until one leaves
// the ranges unchanged.
func Compact[T comparable](ranges []seqview.Range[T]) []seqview.Range[T] {
	for {
		before := layout(ranges)
		for _, op := range []seqview.Op{seqview.Delete, seqview.Insert} {
			for p := 0; p < len(ranges); p++ {
				if ranges[p].Op != op {
					continue
				}
				ranges, p = shiftUp(ranges, p)
				ranges, p = shiftDown(ranges, p)
			}
		}
		if slices.Equal(before, layout(ranges)) {
			return ranges
		}
	}
}

type bounds struct {
	op     seqview.Op
	sx, ex int
	sy, ey int
}

// layout returns the position of every range.
func layout[T comparable](ranges []seqview.Range[T]) []bounds {
	out := make([]bounds, len(ranges))
	for i, r := range ranges {
		out[i] = bounds{r.Op, r.Old.Offset(), r.Old.End(), r.New.Offset(), r.New.End()}
	}
	return out
}

// side returns the view of an edit range that holds its elements.
func side[T comparable](r seqview.Range[T]) seqview.View[T] {
	switch r.Op {
	case seqview.Delete:
		return r.Old
	case seqview.Insert:
		return r.New
	}
	panic("range to shift must be either Insert or Delete")
}

// shiftEdit moves the elements of the edit range r by n (negative is up).
func shiftEdit[T comparable](r *seqview.Range[T], n int) {
	switch r.Op {
	case seqview.Delete:
		if n < 0 {
			r.Old = r.Old.ShiftUp(-n)
		} else {
			r.Old = r.Old.ShiftDown(n)
		}
	case seqview.Insert:
		if n < 0 {
			r.New = r.New.ShiftUp(-n)
		} else {
			r.New = r.New.ShiftDown(n)
		}
	default:
		panic("range to shift must be either Insert or Delete")
	}
}

// sameSide returns the view of an Equal range on the side of the edit range e.
func sameSide[T comparable](eq, e seqview.Range[T]) seqview.View[T] {
	if e.Op == seqview.Delete {
		return eq.Old
	}
	return eq.New
}

// shiftUp shifts the edit at p up as far as possible and returns the new ranges and the new
// position of the edit.
func shiftUp[T comparable](ranges []seqview.Range[T], p int) ([]seqview.Range[T], int) {
	for p > 0 {
		this, prev := ranges[p], ranges[p-1]
		switch {
		case prev.Op == seqview.Equal:
			if this.Op != seqview.Delete && this.Op != seqview.Insert {
				panic("range to shift must be either Insert or Delete")
			}
			n := side(this).CommonSuffixLen(sameSide(prev, this))
			if n == 0 {
				if prev.IsEmpty() {
					ranges = remove(ranges, p-1)
					p--
					continue
				}
				return ranges, p // can't shift up anymore
			}

			// The last n elements of prev move behind the edit.
			if p+1 < len(ranges) && ranges[p+1].Op == seqview.Equal {
				ranges[p+1].Old = ranges[p+1].Old.GrowFront(n)
				ranges[p+1].New = ranges[p+1].New.GrowFront(n)
			} else {
				var eq seqview.Range[T]
				e := side(this)
				if this.Op == seqview.Delete {
					eq = seqview.EqualRange(e.Slice(e.Len()-n, e.Len()), prev.New.Slice(prev.New.Len()-n, prev.New.Len()))
				} else {
					eq = seqview.EqualRange(prev.Old.Slice(prev.Old.Len()-n, prev.Old.Len()), e.Slice(e.Len()-n, e.Len()))
				}
				ranges = insert(ranges, p+1, eq)
			}
			shiftEdit(&ranges[p], -n)
			ranges[p-1].Old = ranges[p-1].Old.ShrinkBack(n)
			ranges[p-1].New = ranges[p-1].New.ShrinkBack(n)
			if ranges[p-1].IsEmpty() {
				ranges = remove(ranges, p-1)
				p--
			}

		case this.Op == seqview.Insert && prev.Op == seqview.Delete,
			this.Op == seqview.Delete && prev.Op == seqview.Insert:
			ranges[p-1], ranges[p] = ranges[p], ranges[p-1]
			p--

		case this.Op == seqview.Insert && prev.Op == seqview.Insert:
			ranges[p-1].New = ranges[p-1].New.GrowBack(this.New.Len())
			ranges = remove(ranges, p)
			p--

		case this.Op == seqview.Delete && prev.Op == seqview.Delete:
			ranges[p-1].Old = ranges[p-1].Old.GrowBack(this.Old.Len())
			ranges = remove(ranges, p)
			p--

		default:
			panic("range to shift must be either Insert or Delete")
		}
	}
	return ranges, p
}

// shiftDown shifts the edit at p down as far as possible and returns the new ranges and the new
// position of the edit.
func shiftDown[T comparable](ranges []seqview.Range[T], p int) ([]seqview.Range[T], int) {
	for p+1 < len(ranges) {
		this, next := ranges[p], ranges[p+1]
		switch {
		case next.Op == seqview.Equal:
			if this.Op != seqview.Delete && this.Op != seqview.Insert {
				panic("range to shift must be either Insert or Delete")
			}
			n := side(this).CommonPrefixLen(sameSide(next, this))
			if n == 0 {
				if next.IsEmpty() {
					ranges = remove(ranges, p+1)
					continue
				}
				return ranges, p // can't shift down anymore
			}

			// The first n elements of next move in front of the edit.
			if p > 0 && ranges[p-1].Op == seqview.Equal {
				ranges[p-1].Old = ranges[p-1].Old.GrowBack(n)
				ranges[p-1].New = ranges[p-1].New.GrowBack(n)
			} else {
				var eq seqview.Range[T]
				e := side(this)
				if this.Op == seqview.Delete {
					eq = seqview.EqualRange(e.Slice(0, n), next.New.Slice(0, n))
				} else {
					eq = seqview.EqualRange(next.Old.Slice(0, n), e.Slice(0, n))
				}
				ranges = insert(ranges, p, eq)
				p++
			}
			shiftEdit(&ranges[p], n)
			ranges[p+1].Old = ranges[p+1].Old.ShrinkFront(n)
			ranges[p+1].New = ranges[p+1].New.ShrinkFront(n)
			if ranges[p+1].IsEmpty() {
				ranges = remove(ranges, p+1)
			}

		case this.Op == seqview.Insert && next.Op == seqview.Delete,
			this.Op == seqview.Delete && next.Op == seqview.Insert:
			ranges[p], ranges[p+1] = ranges[p+1], ranges[p]
			p++

		case this.Op == seqview.Insert && next.Op == seqview.Insert:
			ranges[p].New = ranges[p].New.GrowBack(next.New.Len())
			ranges = remove(ranges, p+1)

		case this.Op == seqview.Delete && next.Op == seqview.Delete:
			ranges[p].Old = ranges[p].Old.GrowBack(next.Old.Len())
			ranges = remove(ranges, p+1)

		default:
			panic("range to shift must be either Insert or Delete")
		}
	}
	return ranges, p
}

func insert[T comparable](ranges []seqview.Range[T], i int, r seqview.Range[T]) []seqview.Range[T] {
	ranges = append(ranges, seqview.Range[T]{})
	copy(ranges[i+1:], ranges[i:])
	ranges[i] = r
	return ranges
}

func remove[T comparable](ranges []seqview.Range[T], i int) []seqview.Range[T] {
	copy(ranges[i:], ranges[i+1:])
	return ranges[:len(ranges)-1]
}
