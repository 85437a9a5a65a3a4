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


package patch_test

import (
	"errors"
	"fmt"
	"os"

	"znkr.io/diffpatch"
	"znkr.io/diffpatch/patch"
)

func ExampleUnified() {
	x := `this paragraph
is not
changed and
barely long
enough to
create a
new hunk

this paragraph
is going to be
removed
`

	y := `this is a new paragraph
that is inserted at the top

this paragraph
is not
changed and
barely long
enough to
create a
new hunk
`
	fmt.Print(patch.Unified(x, y))
	// Output:
	// --- original
	// +++ modified
	// @@ -1,3 +1,6 @@
	// +this is a new paragraph
	// +that is inserted at the top
	// +
	//  this paragraph
	//  is not
	//  changed and
	// @@ -5,7 +8,3 @@
	//  enough to
	//  create a
	//  new hunk
	// -
	// -this paragraph
	// -is going to be
	// -removed
}

func ExampleUnified_context() {
	x := "one\ntwo\nthree\nfour\nfive\n"
	y := "one\ntwo\n3\nfour\nfive\n"
	fmt.Print(patch.Unified(x, y, diffpatch.Context(1), patch.Labels("a/numbers.txt", "b/numbers.txt")))
	// Output:
	// --- a/numbers.txt
	// +++ b/numbers.txt
	// @@ -2,3 +2,3 @@
	//  two
	// -three
	// +3
	//  four
}

func ExampleIndentHeuristic() {
	x := `// ...
["foo", "bar", "baz"].map do |i|
  i.upcase
end
`

	y := `// ...
["foo", "bar", "baz"].map do |i|
  i
end

["foo", "bar", "baz"].map do |i|
  i.upcase
end
`

	fmt.Println("With patch.IndentHeuristic:")
	fmt.Print(patch.Unified(x, y, patch.Labels("", ""), patch.IndentHeuristic()))
	fmt.Println()
	fmt.Println("Without patch.IndentHeuristic:")
	fmt.Print(patch.Unified(x, y, patch.Labels("", "")))
	// Output:
	// With patch.IndentHeuristic:
	// @@ -1,4 +1,8 @@
	//  // ...
	// +["foo", "bar", "baz"].map do |i|
	// +  i
	// +end
	// +
	//  ["foo", "bar", "baz"].map do |i|
	//    i.upcase
	//  end
	//
	// Without patch.IndentHeuristic:
	// @@ -1,4 +1,8 @@
	//  // ...
	//  ["foo", "bar", "baz"].map do |i|
	// +  i
	// +end
	// +
	// +["foo", "bar", "baz"].map do |i|
	//    i.upcase
	//  end
}

func ExampleParse() {
	p, err := patch.Parse(`--- a/greeting.txt	2025-01-01 12:00:00
+++ b/greeting.txt	2025-01-02 12:00:00
@@ -1,2 +1,2 @@ greet
 Hello,
-World
+Gopher
`)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s -> %s\n", p.Original, p.Modified)
	for _, h := range p.Hunks {
		fmt.Printf("old %v, new %v, function %q\n", h.Old, h.New, h.Function)
		for _, l := range h.Lines {
			fmt.Printf("%v %q\n", l.Kind, l.Content)
		}
	}
	// Output:
	// a/greeting.txt -> b/greeting.txt
	// old 1,2, new 1,2, function "greet"
	// Context "Hello,\n"
	// Delete "World\n"
	// Insert "Gopher\n"
}

// A patch that was created for an older version of a file can still be applied if its context is
// found close to the expected position.
func ExampleApplyWithConfig() {
	p := patch.Create("a\nb\nc\n", "a\nB\nc\n")
	base := "new first line\nnew second line\na\nb\nc\n"

	_, err := patch.Apply(base, p)
	fmt.Println("exact:", err, errors.Is(err, patch.ErrContextMismatch))

	out, err := patch.ApplyWithConfig(base, p, patch.ApplyConfig{
		Fuzzy: &patch.FuzzyConfig{MaxOffset: 5},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(out)
	// Output:
	// exact: hunk #1 at line 1: context mismatch true
	// new first line
	// new second line
	// a
	// B
	// c
}

func ExampleWrite() {
	p := patch.Create([]byte("last line"), []byte("last line\n"))
	if err := patch.Write(os.Stdout, p); err != nil {
		fmt.Println(err)
	}
	// Output:
	// --- original
	// +++ modified
	// @@ -1,1 +1,1 @@
	// -last line
	// \ No newline at end of file
	// +last line
}
