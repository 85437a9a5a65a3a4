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


// Package unixpatch wraps the unix patch tool and git merge-file to validate results against
// them.
//
// This package is only for testing.
package unixpatch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Patch applies diff to orig using patch(1) and returns the result.
func Patch(orig, diff string) (string, error) {
	// Using patch with an empty diff will not create an output file.
	if len(diff) == 0 {
		return orig, nil
	}

	dir, err := os.MkdirTemp("", "patch-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	files, err := writeFiles(dir, map[string]string{"patch": diff, "orig": orig})
	if err != nil {
		return "", err
	}
	outfile := filepath.Join(dir, "out")

	cmd := exec.Command("patch", "-u", "-i", files["patch"], "-o", outfile, files["orig"])
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to run patch command: %s: %v\n%s", strings.Join(cmd.Args, " "), err, out)
	}

	out, err := os.ReadFile(outfile)
	if err != nil {
		return "", fmt.Errorf("failed to read outfile: %v", err)
	}

	return string(out), nil
}

// MergeFile performs a three-way merge using git merge-file with diff3 conflict markers and
// returns the result and whether the merge was free of conflicts.
func MergeFile(original, ours, theirs string) (string, bool, error) {
	dir, err := os.MkdirTemp("", "merge-*")
	if err != nil {
		return "", false, fmt.Errorf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	files, err := writeFiles(dir, map[string]string{"original": original, "ours": ours, "theirs": theirs})
	if err != nil {
		return "", false, err
	}

	cmd := exec.Command("git", "merge-file", "-p", "--diff3",
		"-L", "ours", "-L", "original", "-L", "theirs",
		files["ours"], files["original"], files["theirs"])
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return string(out), true, nil
	case errors.As(err, &exitErr) && exitErr.ExitCode() > 0 && exitErr.ExitCode() < 128:
		// The exit code is the number of conflicts.
		return string(out), false, nil
	default:
		return "", false, fmt.Errorf("failed to run git merge-file: %s: %v", strings.Join(cmd.Args, " "), err)
	}
}

func writeFiles(dir string, contents map[string]string) (map[string]string, error) {
	files := make(map[string]string, len(contents))
	for name, content := range contents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s file: %v", name, err)
		}
		files[name] = path
	}
	return files, nil
}
