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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name                   string
		original, ours, theirs string
		extra                  []string
		want                   string
		wantClean              bool
	}{
		{
			name:      "clean",
			original:  "a\nb\nc\n",
			ours:      "a\nB\nc\n",
			theirs:    "a\nb\nC\n",
			want:      "a\nB\nC\n",
			wantClean: true,
		},
		{
			name:     "conflict",
			original: "a\nb\nc\n",
			ours:     "a\nB\nc\n",
			theirs:   "a\nX\nc\n",
			extra:    []string{"3", "file.txt"},
			want:     "a\n<<< ours:file.txt\nB\n||| original:file.txt\nb\n===\nX\n>>> theirs:file.txt\nc\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			files := map[string]string{"original": tt.original, "ours": tt.ours, "theirs": tt.theirs}
			for name, content := range files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			args := []string{"gitmerge", filepath.Join(dir, "original"), filepath.Join(dir, "ours"), filepath.Join(dir, "theirs")}
			args = append(args, tt.extra...)

			clean, err := run(zap.NewNop(), args)
			if err != nil {
				t.Fatalf("run(...) failed: %v", err)
			}
			if clean != tt.wantClean {
				t.Errorf("run(...) = %t, want %t", clean, tt.wantClean)
			}
			got, err := os.ReadFile(filepath.Join(dir, "ours"))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("merge result differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := run(zap.NewNop(), []string{"gitmerge", "a"}); err == nil {
		t.Errorf("run(...) with too few arguments succeeded")
	}
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	if _, err := run(zap.NewNop(), []string{"gitmerge", missing, missing, missing}); err == nil {
		t.Errorf("run(...) with missing files succeeded")
	}
}
