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


package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"znkr.io/diffpatch/patch"
)

func (a *app) applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [flags] FILE PATCH",
		Short: "Apply a unified diff to a file",
		Long: `Apply a unified diff to a file and write the result to stdout or the output file.

By default, every hunk must apply at the line it names. With --max-offset and --fuzz, hunks are
searched around their line and may ignore some of their context lines. The exit status is 1 if a
hunk can't be applied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.readFile(args[0])
			if err != nil {
				return err
			}
			text, err := a.readFile(args[1])
			if err != nil {
				return err
			}
			p, err := patch.Parse(text)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[1], err)
			}
			if a.v.GetBool("reverse") {
				p = p.Reverse()
			}

			cfg, err := a.applyConfig()
			if err != nil {
				return err
			}
			out, err := patch.ApplyWithConfig(base, p, cfg)
			if err != nil {
				var applyErr *patch.ApplyError
				if errors.As(err, &applyErr) {
					a.log.Debug("hunk failed",
						zap.Int("hunk", applyErr.Hunk),
						zap.Int("line", applyErr.Line),
						zap.Error(applyErr.Err))
				}
				fmt.Fprintf(a.stderr, "diffpatch: applying %s to %s: %v\n", args[1], args[0], err)
				return exitCode(1)
			}
			a.log.Info("applied patch", zap.String("file", args[0]), zap.Int("hunks", len(p.Hunks)))
			return a.writeOutput(out)
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolP("reverse", "R", false, "apply the patch in reverse")
	cmd.Flags().Int("max-offset", 0, "search hunks up to this many lines from where the patch places them")
	cmd.Flags().Int("fuzz", 0, "ignore up to this many leading and trailing context lines of a hunk")
	cmd.Flags().Bool("ignore-whitespace", false, "ignore whitespace differences in context lines")
	cmd.Flags().Bool("ignore-case", false, "ignore case differences in context lines")
	cmd.Flags().String("line-ends", "strict", "line end handling (strict, ignore, file)")
	return cmd
}

func (a *app) applyConfig() (patch.ApplyConfig, error) {
	var cfg patch.ApplyConfig
	switch le := a.v.GetString("line-ends"); le {
	case "strict":
		cfg.LineEnds = patch.LineEndsStrict
	case "ignore":
		cfg.LineEnds = patch.LineEndsIgnore
	case "file":
		cfg.LineEnds = patch.LineEndsFile
	default:
		return cfg, fmt.Errorf("invalid line end handling %q", le)
	}

	fuzzy := patch.FuzzyConfig{
		MaxOffset:        a.v.GetInt("max-offset"),
		MaxFuzz:          a.v.GetInt("fuzz"),
		IgnoreWhitespace: a.v.GetBool("ignore-whitespace"),
		IgnoreCase:       a.v.GetBool("ignore-case"),
	}
	if fuzzy.MaxOffset < 0 || fuzzy.MaxFuzz < 0 {
		return cfg, fmt.Errorf("--max-offset and --fuzz must not be negative")
	}
	if fuzzy != (patch.FuzzyConfig{}) {
		cfg.Fuzzy = &fuzzy
	}
	return cfg, nil
}
