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


// Package color configures the colors of patches formatted with [patch.TerminalColors].
//
// Colors are given as SGR parameters, e.g., 31 for red or 1, 32 for bold green.
//
// [patch.TerminalColors]: https://pkg.go.dev/znkr.io/diffpatch/patch#TerminalColors
package color

import (
	"fmt"
	"strings"

	"znkr.io/diffpatch/internal/config"
)

// A Option makes it possible to configure custom colors in patch.TerminalColors.
type Option func(*config.ColorConfig)

// Headers colors the "---" and "+++" header lines.
func Headers(params ...int) Option {
	code := Code(params...)
	return func(cc *config.ColorConfig) {
		cc.Header = code
	}
}

// HunkHeaders colors hunk headers, the "@@ ... @@" part of the unified diff.
func HunkHeaders(params ...int) Option {
	code := Code(params...)
	return func(cc *config.ColorConfig) {
		cc.HunkHeader = code
	}
}

// Matches colors context lines.
func Matches(params ...int) Option {
	code := Code(params...)
	return func(cc *config.ColorConfig) {
		cc.Match = code
	}
}

// Deletes colors deleted lines.
func Deletes(params ...int) Option {
	code := Code(params...)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors inserted lines.
func Inserts(params ...int) Option {
	code := Code(params...)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

// Code returns the escape sequence for params. Without params, the result is empty and disables
// coloring.
func Code(params ...int) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}

// Reset is the escape sequence that ends a colored line.
const Reset = "\033[m"
