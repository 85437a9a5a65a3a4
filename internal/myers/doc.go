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

// Package myers finds shortest edit scripts using the linear space variant of Myers' algorithm.
//
// The result of a comparison is a sequence of [seqview.Range] values that, read in order,
// reconstruct both inputs. The ranges are views into the caller's slices, nothing is copied.
//
// # Edit Graph
//
// Comparing x = "ABCABBA" and y = "CBABAC" is a search for a cheapest path through this graph
// from the top left corner (x unchanged) to the bottom right corner (x converted to y):
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// A step to the right deletes an element of x, a step down inserts an element of y, and a
// diagonal step (only present where the elements are equal) keeps an element. Horizontal and
// vertical steps cost 1, diagonals are free.
//
// We use s and t for the horizontal and vertical coordinates and k = s - t to number diagonals.
// Diagonals are numbered consistently for the whole input, the forward and the backward search
// only differ in the diagonal they start on.
//
// A D-path is a path with exactly D non-diagonal steps. The facts from the paper we rely on are:
//
//   - A D-path ends on a diagonal with the same parity as D relative to its starting diagonal.
//   - The furthest reaching D-path on diagonal k extends the furthest reaching (D-1)-path on k-1
//     by a horizontal step or on k+1 by a vertical step, followed by as many diagonals as
//     possible.
//   - An optimal D-path can be split into a ⌈D/2⌉-path found searching forwards from the top
//     left and a ⌊D/2⌋-path found searching backwards from the bottom right. The diagonals in
//     the middle where the two searches meet are the "middle snake".
//
// Since the parity of an optimal D is the parity of N-M, overlaps only need to be checked in the
// forward search when N-M is odd and in the backward search when it is even.
//
// The comparison recursively splits the input at the middle snake. Both v-arrays are allocated
// once for the whole input and reused by every recursion level.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// Ukkonen, E. Algorithms for approximate string matching. Information and Control, Volume 64,
// Issues 1-3, 100-118 (1985). https://doi.org/10.1016/S0019-9958(85)80046-2
package myers
