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

// Package indentheuristic is an implementation of the indentation heuristic by Michael Haggerty
// (https://github.com/mhagger/diff-slider-tools).
//
// An insertion or deletion that is surrounded by matching lines can often slide up or down
// without changing the result: Inserting "b" into "a b c" after "a" is the same as inserting it
// after the first "b". Such a group is called a slider. Compaction always moves sliders to their
// lowest position, which is often not where a human would put them, e.g., in
//
//	 // ...
//	 ["foo", "bar", "baz"].map do |i|
//	+  i
//	+end
//	+
//	+["foo", "bar", "baz"].map do |i|
//	   i.upcase
//	 end
//
// The heuristic scores every position of a slider based on the indentation and blank lines around
// the split points at its start and end. The scores are based on human rated diffs.
//
// Only sliders that are not adjacent to another edit are moved. Replacements (a deletion next to
// an insertion) stay where compaction put them.
package indentheuristic

import (
	"cmp"

	"znkr.io/diffpatch/internal/byteview"
	"znkr.io/diffpatch/internal/seqview"
)

// Never move a group more than this many lines.
const maxSliding = 100

// We don't care if a line is indented more than this and clamp the value to maxIndent. That way,
// we don't overflow an int and avoid unnecessary work on input that's not human readable text.
const maxIndent = 200

// Don't consider more than this number of consecutive blank lines. This is to bound the work
// and avoid integer overflows.
const maxBlanks = 20

const startOfFilePenalty = 1               // No no-blank lines before the split
const endOfFilePenalty = 21                // No non-blank lines after the split
const totalBlankWeight = -30               // Weight for number of blank lines around the split
const postBlankWeight = 6                  // Weight for number of blank lines after the split
const relativeIndentPenalty = -4           // Indented more than predecessor
const relativeIndentWithBlankPenalty = 10  // Indented more than predecessor, with blank lines
const relativeOutdentPenalty = 24          // Indented less than predecessor
const relativeOutdentWithBlankPenalty = 17 // Indented less than predecessor, with blank lines
const relativeDentPenalty = 23             // Indented less than predecessor but not less than successor
const relativeDentWithBlankPenalty = 17    // Indented less than predecessor but not less than successor, with blank lines

// We only consider whether the sum of the effective indents for splits are less than (-1), equal
// to (0), or greater than (+1) each other. The resulting value is multiplied by the following
// weight and combined with the penalty to determine the better of two scores.
const indentWeight = 60

type line = byteview.ByteView

// Apply moves every slider in ranges to its best scoring position and returns the updated
// ranges. x and y are the lines ranges refers to.
func Apply(x, y []line, ranges []seqview.Range[line]) []seqview.Range[line] {
	for i := 0; i < len(ranges); i++ {
		r := ranges[i]
		if r.Op == seqview.Equal {
			continue
		}
		if i > 0 && ranges[i-1].Op != seqview.Equal || i+1 < len(ranges) && ranges[i+1].Op != seqview.Equal {
			continue
		}

		lines, v := x, r.Old
		if r.Op == seqview.Insert {
			lines, v = y, r.New
		}
		start, end := v.Offset(), v.End()
		grpLen := end - start

		// Determine how far the group can slide. At least one matching line has to stay between
		// the group and any other edit.
		up := 0
		if i > 0 {
			limit := ranges[i-1].Len()
			if i > 1 {
				limit--
			}
			for up < limit && lines[start-1-up] == lines[end-1-up] {
				up++
			}
		}
		down := 0
		if i+1 < len(ranges) {
			limit := ranges[i+1].Len()
			if i+2 < len(ranges) {
				limit--
			}
			for down < limit && lines[start+down] == lines[end+down] {
				down++
			}
		}
		if up == 0 && down == 0 {
			continue
		}

		// Shifts are identified by the end of the group.
		bestShift := -1
		var bestScore shiftScore
		for shift := max(end-up, end+down-maxSliding); shift <= end+down; shift++ {
			score := shiftScore{}
			score.add(measureShift(lines, shift))
			score.add(measureShift(lines, shift-grpLen))
			if bestShift == -1 || score.cmp(bestScore) <= 0 {
				bestShift = shift
				bestScore = score
			}
		}

		switch delta := bestShift - end; {
		case delta < 0:
			ranges = slideUp(ranges, i, -delta)
		case delta > 0:
			var inserted bool
			ranges, inserted = slideDown(ranges, i, delta)
			if inserted {
				i++
			}
		}
	}

	// Sliding to the start or end of the input may leave an empty match behind.
	out := ranges[:0]
	for _, r := range ranges {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}

// slideUp moves the edit at i up by n lines into the match before it.
func slideUp(ranges []seqview.Range[line], i, n int) []seqview.Range[line] {
	e, prev := ranges[i], ranges[i-1]
	if i+1 < len(ranges) {
		ranges[i+1].Old = ranges[i+1].Old.GrowFront(n)
		ranges[i+1].New = ranges[i+1].New.GrowFront(n)
	} else {
		var eq seqview.Range[line]
		if e.Op == seqview.Delete {
			eq = seqview.EqualRange(e.Old.Slice(e.Old.Len()-n, e.Old.Len()), prev.New.Slice(prev.New.Len()-n, prev.New.Len()))
		} else {
			eq = seqview.EqualRange(prev.Old.Slice(prev.Old.Len()-n, prev.Old.Len()), e.New.Slice(e.New.Len()-n, e.New.Len()))
		}
		ranges = append(ranges, eq)
	}
	if e.Op == seqview.Delete {
		ranges[i].Old = e.Old.ShiftUp(n)
	} else {
		ranges[i].New = e.New.ShiftUp(n)
	}
	ranges[i-1].Old = prev.Old.ShrinkBack(n)
	ranges[i-1].New = prev.New.ShrinkBack(n)
	return ranges
}

// slideDown moves the edit at i down by n lines into the match after it. It reports whether a
// new match was inserted before the edit.
func slideDown(ranges []seqview.Range[line], i, n int) ([]seqview.Range[line], bool) {
	e, next := ranges[i], ranges[i+1]
	if e.Op == seqview.Delete {
		ranges[i].Old = e.Old.ShiftDown(n)
	} else {
		ranges[i].New = e.New.ShiftDown(n)
	}
	ranges[i+1].Old = next.Old.ShrinkFront(n)
	ranges[i+1].New = next.New.ShrinkFront(n)
	if i > 0 {
		ranges[i-1].Old = ranges[i-1].Old.GrowBack(n)
		ranges[i-1].New = ranges[i-1].New.GrowBack(n)
		return ranges, false
	}
	var eq seqview.Range[line]
	if e.Op == seqview.Delete {
		eq = seqview.EqualRange(e.Old.Slice(0, n), next.New.Slice(0, n))
	} else {
		eq = seqview.EqualRange(next.Old.Slice(0, n), e.New.Slice(0, n))
	}
	ranges = append(ranges, seqview.Range[line]{})
	copy(ranges[1:], ranges)
	ranges[0] = eq
	return ranges, true
}

type measure struct {
	endOfFile  bool
	indent     int
	preBlank   int
	preIndent  int
	postBlank  int
	postIndent int
}

func measureShift(lines []byteview.ByteView, shift int) measure {
	m := measure{}
	if shift >= len(lines) {
		m.endOfFile = true
		m.indent = -1
	} else {
		m.indent = getIndent(lines[shift])
	}

	m.preIndent = -1
	for i := shift - 1; i >= 0; i-- {
		m.preIndent = getIndent(lines[i])
		if m.preIndent != -1 {
			break
		}
		m.preBlank++
		if m.preBlank == maxBlanks {
			m.preIndent = 0
			break
		}
	}

	m.postIndent = -1
	for i := shift + 1; i < len(lines); i++ {
		m.postIndent = getIndent(lines[i])
		if m.postIndent != -1 {
			break
		}
		m.postBlank++
		if m.postBlank == maxBlanks {
			m.postIndent = 0
			break
		}
	}
	return m
}

func getIndent(line byteview.ByteView) int {
	indent := 0
	for c := range line.Bytes() {
		switch c {
		case ' ':
			indent++
		case '\t':
			indent += 8 - indent%8
		case '\n', '\v', '\r':
			// Ignore other whitespace.
		default:
			return indent
		}
		if indent >= maxIndent {
			return maxIndent
		}
	}
	return -1 // only whitespace
}

type shiftScore struct {
	effectiveIndent int // smaller is better
	penalty         int // smaller is better
}

func (s *shiftScore) add(m measure) {
	if m.preIndent == -1 && m.preBlank == 0 {
		s.penalty += startOfFilePenalty
	}
	if m.endOfFile {
		s.penalty += endOfFilePenalty
	}

	postBlank := 0
	if m.indent == -1 {
		postBlank = 1 + m.postBlank
	}
	totalBlank := m.preBlank + postBlank

	// Penalties based on nearby blank lines
	s.penalty += totalBlankWeight * totalBlank
	s.penalty += postBlankWeight * postBlank

	indent := m.indent
	if indent == -1 {
		indent = m.postIndent
	}

	s.effectiveIndent += indent

	if indent == -1 || m.preIndent == -1 {
		// No additional adjustment needed.
	} else if indent > m.preIndent {
		if totalBlank != 0 {
			s.penalty += relativeIndentWithBlankPenalty
		} else {
			s.penalty += relativeIndentPenalty
		}
	} else if indent == m.preIndent {
		// Same indentation as previous line, no adjustments need.
	} else {
		// Indented less than the predecessor, either the end of a block or the start of a new
		// one (e.g., an "else" block). The next line decides.
		if m.postIndent != -1 && m.postIndent > indent {
			if totalBlank != 0 {
				s.penalty += relativeOutdentWithBlankPenalty
			} else {
				s.penalty += relativeOutdentPenalty
			}
		} else {
			if totalBlank != 0 {
				s.penalty += relativeDentWithBlankPenalty
			} else {
				s.penalty += relativeDentPenalty
			}
		}
	}
}

func (s *shiftScore) cmp(t shiftScore) int {
	return indentWeight*cmp.Compare(s.effectiveIndent, t.effectiveIndent) + s.penalty - t.penalty
}
