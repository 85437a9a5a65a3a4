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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/patch"
)

func (a *app) diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [flags] ORIGINAL MODIFIED",
		Short: "Print the differences between two files as a unified diff",
		Long: `Print the differences between two files as a unified diff.

The exit status is 0 if the files are the same and 1 if they differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := a.readFile(args[0])
			if err != nil {
				return err
			}
			y, err := a.readFile(args[1])
			if err != nil {
				return err
			}

			n := a.v.GetInt("context")
			if n < 0 {
				return fmt.Errorf("invalid context %d", n)
			}
			labels, err := cmd.Flags().GetStringArray("label")
			if err != nil {
				return err
			}
			if len(labels) > 2 {
				return fmt.Errorf("expected at most 2 labels, got %d", len(labels))
			}
			labels = append(labels, args[len(labels):]...)

			opts := []diffpatch.Option{diffpatch.Context(n), patch.Labels(labels[0], labels[1])}
			if a.v.GetBool("indent-heuristic") {
				opts = append(opts, patch.IndentHeuristic())
			}
			p := patch.Create(x, y, opts...)
			a.log.Debug("created patch",
				zap.String("original", args[0]),
				zap.String("modified", args[1]),
				zap.Int("hunks", len(p.Hunks)))
			if len(p.Hunks) == 0 {
				return nil
			}

			colorize, err := a.colorize()
			if err != nil {
				return err
			}
			var fopts []diffpatch.Option
			if colorize {
				fopts = append(fopts, patch.TerminalColors())
			}
			if err := patch.Write(a.stdout, p, fopts...); err != nil {
				return err
			}
			return exitCode(1)
		},
	}
	cmd.Flags().IntP("context", "U", 3, "number of context lines")
	cmd.Flags().Bool("indent-heuristic", false, "shift edit boundaries to follow indentation")
	cmd.Flags().StringArrayP("label", "L", nil, "label of the original and then the modified file (default: the file names)")
	cmd.Flags().String("color", "auto", "colorize the output (auto, always, never)")
	return cmd
}

func (a *app) colorize() (bool, error) {
	switch c := a.v.GetString("color"); c {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := a.stdout.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid color mode %q", c)
	}
}
