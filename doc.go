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


// Package diffpatch compares slices, creates and applies patches, and merges concurrent changes.
//
// This package contains the element level functions: [Diff] returns a canonical shortest edit
// script as ranges, [Hunks] groups changes into contextual blocks, and [Edits] returns every
// individual change. All of them use Myers' algorithm in linear space and always return a minimal
// diff. Time complexity is O(ND) where N = len(x) + len(y) and D is the number of edits.
//
// The result is compacted: Edits are moved across equal elements so that related changes form as
// few groups as possible, deletions come before insertions, and every group sits at its lowest
// possible position. This is the same placement conventional diff tools use.
//
// For text, see the sub packages:
//
//   - [znkr.io/diffpatch/patch] creates, formats, parses, and applies unified diffs.
//   - [znkr.io/diffpatch/merge] performs a three-way merge with conflict markers.
//
// [znkr.io/diffpatch/patch]: https://pkg.go.dev/znkr.io/diffpatch/patch
// [znkr.io/diffpatch/merge]: https://pkg.go.dev/znkr.io/diffpatch/merge
package diffpatch
