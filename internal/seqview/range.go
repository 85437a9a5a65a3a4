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

package seqview

import "fmt"

// Op describes the kind of a [Range].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Equal  Op = iota // Old and New contain the same elements
	Delete           // Old contains deleted elements, New is unset
	Insert           // New contains inserted elements, Old is unset
)

// Range is a region of a diff between an old and a new sequence.
//
// A sequence of ranges is a solution if the Old views of all Equal and Delete ranges concatenate
// to the old sequence and the New views of all Equal and Insert ranges concatenate to the new
// sequence.
type Range[T comparable] struct {
	Op       Op
	Old, New View[T]
}

// EqualRange returns an Equal range over old and new, which must have the same length.
func EqualRange[T comparable](old, new View[T]) Range[T] {
	if old.Len() != new.Len() {
		panic(fmt.Sprintf("seqview: equal range with different lengths %d and %d", old.Len(), new.Len()))
	}
	return Range[T]{Op: Equal, Old: old, New: new}
}

// DeleteRange returns a Delete range over old.
func DeleteRange[T comparable](old View[T]) Range[T] {
	return Range[T]{Op: Delete, Old: old}
}

// InsertRange returns an Insert range over new.
func InsertRange[T comparable](new View[T]) Range[T] {
	return Range[T]{Op: Insert, New: new}
}

// Len returns the number of elements covered by r on the side it applies to.
func (r Range[T]) Len() int {
	switch r.Op {
	case Equal, Delete:
		return r.Old.Len()
	case Insert:
		return r.New.Len()
	}
	panic("never reached")
}

// IsEmpty reports whether r covers no elements.
func (r Range[T]) IsEmpty() bool { return r.Len() == 0 }

func (r Range[T]) String() string {
	switch r.Op {
	case Equal:
		return fmt.Sprintf("Equal(%v@%d, %v@%d)", r.Old, r.Old.Offset(), r.New, r.New.Offset())
	case Delete:
		return fmt.Sprintf("Delete(%v@%d)", r.Old, r.Old.Offset())
	case Insert:
		return fmt.Sprintf("Insert(%v@%d)", r.New, r.New.Offset())
	}
	return fmt.Sprintf("Range(%v)", r.Op)
}

// Validate checks that ranges are a solution for old and new and returns a description of the
// first problem found or nil.
func Validate[T comparable](old, new []T, ranges []Range[T]) error {
	s, t := 0, 0
	for i, r := range ranges {
		switch r.Op {
		case Equal:
			if r.Old.Offset() != s || r.New.Offset() != t {
				return fmt.Errorf("range %d (%v) starts at (%d, %d), want (%d, %d)", i, r, r.Old.Offset(), r.New.Offset(), s, t)
			}
			if !r.Old.Equal(r.New) {
				return fmt.Errorf("range %d (%v) is not equal", i, r)
			}
			s, t = r.Old.End(), r.New.End()
		case Delete:
			if r.Old.Offset() != s {
				return fmt.Errorf("range %d (%v) starts at %d, want %d", i, r, r.Old.Offset(), s)
			}
			s = r.Old.End()
		case Insert:
			if r.New.Offset() != t {
				return fmt.Errorf("range %d (%v) starts at %d, want %d", i, r, r.New.Offset(), t)
			}
			t = r.New.End()
		default:
			return fmt.Errorf("range %d has invalid op %v", i, r.Op)
		}
	}
	if s != len(old) || t != len(new) {
		return fmt.Errorf("ranges end at (%d, %d), want (%d, %d)", s, t, len(old), len(new))
	}
	return nil
}
