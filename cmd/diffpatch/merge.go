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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/merge"
)

func (a *app) mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [flags] OURS ORIGINAL THEIRS",
		Short: "Merge the changes from ORIGINAL to OURS and THEIRS",
		Long: `Merge the changes from ORIGINAL to OURS and from ORIGINAL to THEIRS and write the result to
stdout or the output file. Conflicts are marked in the result.

The exit status is 1 if there are conflicts.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var texts [3][]byte
			for i, name := range args {
				var err error
				if texts[i], err = a.readFile(name); err != nil {
					return err
				}
			}

			labels, err := cmd.Flags().GetStringArray("label")
			if err != nil {
				return err
			}
			if len(labels) > 3 {
				return fmt.Errorf("expected at most 3 labels, got %d", len(labels))
			}
			labels = append(labels, args[len(labels):]...)

			opts := []diffpatch.Option{
				merge.MarkerSize(a.v.GetInt("marker-size")),
				merge.Labels(labels[0], labels[1], labels[2]),
			}
			switch style := a.v.GetString("style"); style {
			case "diff3":
				opts = append(opts, merge.Style(merge.Diff3))
			case "merge":
				opts = append(opts, merge.Style(merge.Conflict))
			default:
				return fmt.Errorf("invalid conflict style %q", style)
			}

			merged, clean := merge.Merge(texts[1], texts[0], texts[2], opts...)
			if err := a.writeOutput(merged); err != nil {
				return err
			}
			a.log.Info("merged", zap.String("ours", args[0]), zap.Bool("clean", clean))
			if !clean {
				return exitCode(1)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("style", "diff3", "conflict style (diff3, merge)")
	cmd.Flags().Int("marker-size", 7, "length of conflict markers")
	cmd.Flags().StringArrayP("label", "L", nil, "labels for ours, the original, and theirs (default: the file names)")
	return cmd
}
