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

// Package seqview provides immutable views into caller owned sequences and the ranges a diff is
// made of.
package seqview

import "fmt"

// View is an immutable view of seq[start:end]. Views never copy the underlying sequence and all
// methods that "modify" a view return a new one.
type View[T comparable] struct {
	seq        []T
	start, end int
}

// New returns a view of the whole sequence s.
func New[T comparable](s []T) View[T] {
	return View[T]{seq: s, start: 0, end: len(s)}
}

// Len returns the number of elements in v.
func (v View[T]) Len() int { return v.end - v.start }

// IsEmpty reports whether v has no elements.
func (v View[T]) IsEmpty() bool { return v.end == v.start }

// Offset returns the position of the first element of v in the underlying sequence.
func (v View[T]) Offset() int { return v.start }

// End returns the position after the last element of v in the underlying sequence.
func (v View[T]) End() int { return v.end }

// Elems returns the elements of v. The result aliases the underlying sequence.
func (v View[T]) Elems() []T { return v.seq[v.start:v.end:v.end] }

// At returns the i-th element of v.
func (v View[T]) At(i int) T {
	if i < 0 || i >= v.Len() {
		panic(fmt.Sprintf("seqview: index %d out of range [0:%d]", i, v.Len()))
	}
	return v.seq[v.start+i]
}

// Slice returns the view v[i:j].
func (v View[T]) Slice(i, j int) View[T] {
	if i < 0 || j < i || j > v.Len() {
		panic(fmt.Sprintf("seqview: slice bounds [%d:%d] out of range [0:%d]", i, j, v.Len()))
	}
	return View[T]{seq: v.seq, start: v.start + i, end: v.start + j}
}

// SplitAt splits v into v[:i] and v[i:].
func (v View[T]) SplitAt(i int) (View[T], View[T]) {
	return v.Slice(0, i), v.Slice(i, v.Len())
}

// Equal reports whether v and o contain the same elements. The position in the underlying
// sequence is irrelevant.
func (v View[T]) Equal(o View[T]) bool {
	if v.Len() != o.Len() {
		return false
	}
	for i := range v.Len() {
		if v.seq[v.start+i] != o.seq[o.start+i] {
			return false
		}
	}
	return true
}

// CommonPrefixLen returns the number of equal elements at the start of v and o.
func (v View[T]) CommonPrefixLen(o View[T]) int {
	n := min(v.Len(), o.Len())
	i := 0
	for i < n && v.seq[v.start+i] == o.seq[o.start+i] {
		i++
	}
	return i
}

// CommonSuffixLen returns the number of equal elements at the end of v and o.
func (v View[T]) CommonSuffixLen(o View[T]) int {
	n := min(v.Len(), o.Len())
	i := 0
	for i < n && v.seq[v.end-1-i] == o.seq[o.end-1-i] {
		i++
	}
	return i
}

// ShrinkFront drops the first n elements from v.
func (v View[T]) ShrinkFront(n int) View[T] { return v.Slice(n, v.Len()) }

// ShrinkBack drops the last n elements from v.
func (v View[T]) ShrinkBack(n int) View[T] { return v.Slice(0, v.Len()-n) }

// GrowFront extends v by n elements towards the start of the underlying sequence.
func (v View[T]) GrowFront(n int) View[T] { return v.move(-n, 0) }

// GrowBack extends v by n elements towards the end of the underlying sequence.
func (v View[T]) GrowBack(n int) View[T] { return v.move(0, n) }

// ShiftUp moves v by n elements towards the start of the underlying sequence.
func (v View[T]) ShiftUp(n int) View[T] { return v.move(-n, -n) }

// ShiftDown moves v by n elements towards the end of the underlying sequence.
func (v View[T]) ShiftDown(n int) View[T] { return v.move(n, n) }

func (v View[T]) move(ds, de int) View[T] {
	start, end := v.start+ds, v.end+de
	if start < 0 || end < start || end > len(v.seq) {
		panic(fmt.Sprintf("seqview: moving [%d:%d] by (%d, %d) leaves [0:%d]", v.start, v.end, ds, de, len(v.seq)))
	}
	return View[T]{seq: v.seq, start: start, end: end}
}

func (v View[T]) String() string {
	return fmt.Sprintf("%v", v.Elems())
}
