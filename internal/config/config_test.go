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


package config_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/internal/config"
	"znkr.io/diffpatch/merge"
	"znkr.io/diffpatch/patch"
	"znkr.io/diffpatch/patch/color"
)

func TestFromOptions(t *testing.T) {
	with := func(f func(cfg *config.Config)) config.Config {
		cfg := config.Default
		f(&cfg)
		return cfg
	}

	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "context",
			opts: []config.Option{
				diffpatch.Context(5),
			},
			want: with(func(cfg *config.Config) { cfg.Context = 5 }),
		},
		{
			name: "context-override",
			opts: []config.Option{
				diffpatch.Context(5),
				patch.IndentHeuristic(),
				diffpatch.Context(1),
			},
			want: with(func(cfg *config.Config) {
				cfg.Context = 1
				cfg.IndentHeuristic = true
			}),
		},
		{
			name: "patch-formatting",
			opts: []config.Option{
				patch.Labels("a", "b"),
				patch.TerminalColors(color.Deletes(1, 31)),
				patch.MissingNewlineMessage(false),
				patch.SuppressBlankEmpty(false),
			},
			want: with(func(cfg *config.Config) {
				cfg.OriginalLabel = "a"
				cfg.ModifiedLabel = "b"
				cfg.Color = &config.ColorConfig{
					Header:     "\033[1m",
					HunkHeader: "\033[36m",
					Delete:     "\033[1;31m",
					Insert:     "\033[32m",
				}
				cfg.MissingNewlineMessage = false
				cfg.SuppressBlankEmpty = false
			}),
		},
		{
			name: "merge",
			opts: []config.Option{
				merge.Style(merge.Conflict),
				merge.MarkerSize(10),
				merge.Labels("HEAD", "base", "feature"),
			},
			want: with(func(cfg *config.Config) {
				cfg.ConflictStyle = config.StyleMerge
				cfg.MarkerSize = 10
				cfg.OursLabel = "HEAD"
				cfg.BaseLabel = "base"
				cfg.TheirsLabel = "feature"
			}),
		},
	}

	const all = config.Context | config.IndentHeuristic | config.Labels | config.Formatting |
		config.ConflictStyleFlag | config.MarkerSize | config.MergeLabels
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, all)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	tests := []struct {
		opt     config.Option
		allowed config.Flag
		want    string
	}{
		{diffpatch.Context(1), 0, "Option diffpatch.Context not allowed here"},
		{patch.IndentHeuristic(), config.Context, "Option patch.IndentHeuristic not allowed here"},
		{patch.TerminalColors(), config.Labels, "Option patch.TerminalColors not allowed here"},
		{merge.MarkerSize(3), config.Formatting, "Option merge.MarkerSize not allowed here"},
		{merge.Labels("a", "b", "c"), config.Labels, "Option merge.Labels not allowed here"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			defer func() {
				if got := fmt.Sprint(recover()); got != tt.want {
					t.Errorf("FromOptions(...) panicked with %q, want %q", got, tt.want)
				}
			}()
			config.FromOptions([]config.Option{tt.opt}, tt.allowed)
		})
	}
}
