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

// Package config holds the configuration shared by all public packages. Options are defined in
// the public packages, every entry point declares which options it accepts.
package config

// ConflictStyle selects how conflicts are rendered by a merge.
type ConflictStyle int

const (
	// Conflicts show ours, the original, and theirs.
	StyleDiff3 ConflictStyle = iota

	// Conflicts show only ours and theirs.
	StyleMerge
)

// ColorConfig holds the SGR escape sequences used to decorate a unified diff. An empty string
// leaves the respective part undecorated.
type ColorConfig struct {
	Header     string // "--- " and "+++ " lines
	HunkHeader string // "@@ ... @@" lines
	Match      string // context lines
	Delete     string // deleted lines
	Insert     string // inserted lines
}

type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// If set, text diffs apply the indent heuristic.
	IndentHeuristic bool

	// Labels for the "---" and "+++" lines of a patch.
	OriginalLabel, ModifiedLabel string

	// Colors for formatting a patch, nil disables colors.
	Color *ColorConfig

	// If set, a missing newline at the end of a file is marked with "\ No newline at end of file".
	MissingNewlineMessage bool

	// If set, empty context lines are written without the leading space.
	SuppressBlankEmpty bool

	// How to render merge conflicts.
	ConflictStyle ConflictStyle

	// Length of conflict markers.
	MarkerSize int

	// Labels written after the conflict markers.
	OursLabel, BaseLabel, TheirsLabel string
}

var Default = Config{
	Context:               3,
	IndentHeuristic:       false,
	OriginalLabel:         "original",
	ModifiedLabel:         "modified",
	Color:                 nil,
	MissingNewlineMessage: true,
	SuppressBlankEmpty:    true,
	ConflictStyle:         StyleDiff3,
	MarkerSize:            7,
	OursLabel:             "ours",
	BaseLabel:             "original",
	TheirsLabel:           "theirs",
}

type Flag int

const (
	Context Flag = 1 << iota
	IndentHeuristic
	Labels
	Color
	MissingNewlineMessage
	SuppressBlankEmpty
	ConflictStyleFlag
	MarkerSize
	MergeLabels
)

// Formatting is the set of flags accepted when rendering a patch.
const Formatting = Color | MissingNewlineMessage | SuppressBlankEmpty

type Option func(*Config) Flag

func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "diffpatch.Context"
	case IndentHeuristic:
		return "patch.IndentHeuristic"
	case Labels:
		return "patch.Labels"
	case Color:
		return "patch.TerminalColors"
	case MissingNewlineMessage:
		return "patch.MissingNewlineMessage"
	case SuppressBlankEmpty:
		return "patch.SuppressBlankEmpty"
	case ConflictStyleFlag:
		return "merge.Style"
	case MarkerSize:
		return "merge.MarkerSize"
	case MergeLabels:
		return "merge.Labels"
	default:
		panic("never reached")
	}
}
