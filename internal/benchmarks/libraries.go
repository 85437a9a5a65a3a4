package benchmarks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diffpatch/patch"
)

// Impl is a diff library under comparison.
type Impl struct {
	Name string

	// Diff returns a line diff of x and y, ideally in unified format.
	Diff func(x, y []byte) []byte

	// Patch creates a patch from x to y with the library and returns a function that applies it
	// to x. It's nil for libraries that can't apply patches.
	Patch func(x, y []byte) (apply func() ([]byte, error))
}

var Impls = []Impl{
	{
		Name: "diffpatch",
		Diff: func(x, y []byte) []byte {
			return patch.Unified(x, y, patch.IndentHeuristic())
		},
		Patch: func(x, y []byte) func() ([]byte, error) {
			p := patch.Create(x, y)
			return func() ([]byte, error) {
				return patch.Apply(x, p)
			}
		},
	},
	{
		Name: "diffpatch-parsed",
		Diff: func(x, y []byte) []byte {
			return patch.Unified(x, y)
		},
		Patch: func(x, y []byte) func() ([]byte, error) {
			unified := patch.Unified(x, y)
			return func() ([]byte, error) {
				p, err := patch.Parse(unified)
				if err != nil {
					return nil, err
				}
				return patch.Apply(x, p)
			}
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				var prefix string
				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				case diffmatchpatch.DiffEqual:
					prefix = " "
				}
				for _, line := range strings.SplitAfter(diff.Text, "\n") {
					if line == "" {
						continue
					}
					buf.WriteString(prefix)
					buf.WriteString(line)
				}
			}
			return buf.Bytes()
		},
		Patch: func(x, y []byte) func() ([]byte, error) {
			dmp := diffmatchpatch.New()
			patches := dmp.PatchMake(string(x), string(y))
			return func() ([]byte, error) {
				out, applied := dmp.PatchApply(patches, string(x))
				for i, ok := range applied {
					if !ok {
						return nil, fmt.Errorf("patch %d failed", i)
					}
				}
				return []byte(out), nil
			}
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a := 0
			for _, ch := range changes {
				for ; a < ch.A; a++ {
					buf.WriteString(" ")
					buf.Write(d.x[a])
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
				}
				a += ch.Del
			}
			for ; a < len(d.x); a++ {
				buf.WriteString(" ")
				buf.Write(d.x[a])
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
		Patch: func(x, y []byte) func() ([]byte, error) {
			edits := udiff.Strings(string(x), string(y))
			return func() ([]byte, error) {
				out, err := udiff.Apply(string(x), edits)
				return []byte(out), err
			}
		},
	},
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }
