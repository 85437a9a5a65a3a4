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


package merge_test

import (
	"fmt"

	"znkr.io/diffpatch/merge"
)

func ExampleMerge() {
	original := "carrots\ngarlic\nonions\n"
	ours := "carrots\nGARLIC\nonions\n"
	theirs := "carrots\ngarlic\nonions\nsalt\n"

	merged, clean := merge.Merge(original, ours, theirs)
	fmt.Print(merged)
	fmt.Println(clean)
	// Output:
	// carrots
	// GARLIC
	// onions
	// salt
	// true
}

func ExampleMerge_conflict() {
	original := "carrots\ngarlic\n"
	ours := "carrots\nGARLIC\n"
	theirs := "carrots\nleeks\n"

	merged, clean := merge.Merge(original, ours, theirs, merge.Labels("HEAD", "base", "feature"))
	fmt.Print(merged)
	fmt.Println(clean)
	// Output:
	// carrots
	// <<<<<<< HEAD
	// GARLIC
	// ||||||| base
	// garlic
	// =======
	// leeks
	// >>>>>>> feature
	// false
}

func ExampleStyle() {
	merged, _ := merge.Merge("a\nb\nc\n", "a\nB\nc\n", "a\nX\nc\n", merge.Style(merge.Conflict))
	fmt.Print(merged)
	// Output:
	// a
	// <<<<<<< ours
	// B
	// =======
	// X
	// >>>>>>> theirs
	// c
}

func ExampleRegions() {
	for _, r := range merge.Regions("a\nb\nc\n", "a\nB\nc\n", "a\nb\nC\n") {
		fmt.Printf("%v %q %q %q\n", r.Kind, r.Original, r.Ours, r.Theirs)
	}
	// Output:
	// Unchanged ["a\n"] ["a\n"] ["a\n"]
	// Ours ["b\n"] ["B\n"] ["b\n"]
	// Theirs ["c\n"] ["c\n"] ["C\n"]
}
