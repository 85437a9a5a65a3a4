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

package myers

import (
	"math"

	"znkr.io/diffpatch/internal/seqview"
)

// Diff compares x and y and returns a minimal sequence of ranges that converts x into y.
//
// The result is not compacted, adjacent Delete and Insert ranges may appear in any order.
func Diff[T comparable](x, y []T) []seqview.Range[T] {
	var m myers[T]
	m.init(x, y)
	m.conquer(0, len(x), 0, len(y))
	return m.out
}

type myers[T comparable] struct {
	// Inputs to compare and views of them that are used to build the output.
	x, y   []T
	vx, vy seqview.View[T]

	// v-arrays for forwards and backwards iteration respectively. A v-array stores the furthest
	// reaching endpoint of a d-path in diagonal k in v[v0+k]. The endpoints only store the
	// s-coordinate since t = s - k.
	vf, vb []int
	v0     int

	out []seqview.Range[T]
}

// init prepares m for comparing x and y and returns the bounds of x and y without their common
// prefix and suffix.
func (m *myers[T]) init(x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	// The v-arrays are sized for the largest search. Every recursive search stays within the
	// diagonals of the initial one.
	N, M := smax-smin, tmax-tmin
	diagonals := N + M
	vlen := 2*diagonals + 3    // +1 for the middle point and +2 for the borders
	buf := make([]int, 2*vlen) // allocate space for vf and vb with a single allocation

	m.x, m.y = x, y
	m.vx, m.vy = seqview.New(x), seqview.New(y)
	m.vf = buf[:vlen]
	m.vb = buf[vlen:]
	m.v0 = diagonals + 1 // +1 for the middle point
	m.out = m.out[:0]
	return
}

// conquer appends the ranges converting x[smin:smax] to y[tmin:tmax] to m.out.
func (m *myers[T]) conquer(smin, smax, tmin, tmax int) {
	x, y := m.x, m.y

	// Strip common prefix and suffix, the suffix is emitted after everything else.
	pmin, qmin := smin, tmin
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	m.equal(pmin, smin, qmin, tmin)

	pmax, qmax := smax, tmax
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax && tmin == tmax:
		// Nothing left.
	case smin == smax:
		m.insert(tmin, tmax)
	case tmin == tmax:
		m.delete(smin, smax)
	default:
		// Use split to divide the input into three pieces:
		//
		//   (1) A, possibly empty, rect (smin, tmin) to (s0, t0)
		//   (2) A, possibly empty, sequence of diagonals (s0, t0) to (s1, t1)
		//   (3) A, possibly empty, rect (s1, t1) to (smax, tmax)
		s0, s1, t0, t1, _ := m.split(smin, smax, tmin, tmax)
		m.conquer(smin, s0, tmin, t0)
		m.equal(s0, s1, t0, t1)
		m.conquer(s1, smax, t1, tmax)
	}

	m.equal(smax, pmax, tmax, qmax)
}

func (m *myers[T]) equal(s0, s1, t0, t1 int) {
	if s0 == s1 {
		return
	}
	if n := len(m.out); n > 0 && m.out[n-1].Op == seqview.Equal && m.out[n-1].Old.End() == s0 {
		m.out[n-1].Old = m.out[n-1].Old.GrowBack(s1 - s0)
		m.out[n-1].New = m.out[n-1].New.GrowBack(t1 - t0)
		return
	}
	m.out = append(m.out, seqview.EqualRange(m.vx.Slice(s0, s1), m.vy.Slice(t0, t1)))
}

func (m *myers[T]) delete(s0, s1 int) {
	if n := len(m.out); n > 0 && m.out[n-1].Op == seqview.Delete && m.out[n-1].Old.End() == s0 {
		m.out[n-1].Old = m.out[n-1].Old.GrowBack(s1 - s0)
		return
	}
	m.out = append(m.out, seqview.DeleteRange(m.vx.Slice(s0, s1)))
}

func (m *myers[T]) insert(t0, t1 int) {
	if n := len(m.out); n > 0 && m.out[n-1].Op == seqview.Insert && m.out[n-1].New.End() == t0 {
		m.out[n-1].New = m.out[n-1].New.GrowBack(t1 - t0)
		return
	}
	m.out = append(m.out, seqview.InsertRange(m.vy.Slice(t0, t1)))
}

// split finds the endpoints of a, potentially empty, sequence of diagonals in the middle of an
// optimal path from (smin, tmin) to (smax, tmax). It also returns the length of the optimal path.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix and
// they may not both be empty.
func (m *myers[T]) split(smin, smax, tmin, tmax int) (s0, s1, t0, t1, d int) {
	N, M := smax-smin, tmax-tmin
	x, y := m.x, m.y
	vf, vb := m.vf, m.vb
	v0 := m.v0

	// Bounds for k. Since t = s - k, we can determine the min and max for k using: k = s - t.
	kmin, kmax := smin-tmax, smax-tmin

	// The forward search starts on diagonal fmid and the backward search on diagonal bmid.
	fmid, bmid := smin-tmin, smax-tmax
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid

	// An optimal path has odd length if and only if N-M is odd.
	odd := (N-M)%2 != 0

	// There is no 0-path, because there's no common prefix or suffix. The d=0 iteration is the
	// trivial result below, the search starts with d=1.
	vf[v0+fmid] = smin
	vb[v0+bmid] = smax

	// A middle snake is found by the time both searches reached ⌈(N+M)/2⌉.
	dmax := (N+M+1)/2 + 1
	for d := 1; d <= dmax; d++ {
		// Forwards iteration.
		//
		// Searching k = [fmid-d, fmid+d] would leave the edit grid. Instead k is kept within
		// [kmin, kmax] with the right parity and the v-array is padded with a border value on
		// each side, so that the top and left borders need no special handling in the k-loop.
		if fmin > kmin {
			fmin--
			vf[v0+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			vf[v0+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + v0 // k as an index into vf

			// Extend the furthest reaching (d-1)-path on diagonal k+1 by a vertical edge or
			// the one on diagonal k-1 by a horizontal edge, whichever reaches further. Ties
			// are broken in favor of the horizontal edge which puts deletions first.
			var s int
			if vf[k0-1] < vf[k0+1] {
				s = vf[k0+1]
			} else {
				s = vf[k0-1] + 1
			}
			t := s - k

			// Then follow the diagonals as long as possible.
			ss, tt := s, t
			for s < smax && t < tmax && x[s] == y[t] {
				s++
				t++
			}
			vf[k0] = s

			if odd && bmin <= k && k <= bmax && s >= vb[k0] {
				return ss, s, tt, t, 2*d - 1
			}
		}

		// Backwards iteration, analogous to the forward iteration.
		if bmin > kmin {
			bmin--
			vb[v0+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			vb[v0+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + v0
			var s int
			if vb[k0-1] < vb[k0+1] {
				s = vb[k0-1]
			} else {
				s = vb[k0+1] - 1
			}
			t := s - k

			ss, tt := s, t
			for s > smin && t > tmin && x[s-1] == y[t-1] {
				s--
				t--
			}
			vb[k0] = s

			if !odd && fmin <= k && k <= fmax && s <= vf[k0] {
				return s, ss, t, tt, 2 * d
			}
		}
	}
	panic("never reached: no middle snake found")
}
