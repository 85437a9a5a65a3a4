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


// gitmerge is a git merge driver.
//
// It can be used to try the merge algorithm on real merges by adding it as a driver to the git
// config
//
//	[merge "diffpatch"]
//		name = diffpatch merge
//		driver = gitmerge %O %A %B %L %P
//
// and selecting it in .gitattributes, e.g., with "* merge=diffpatch". Like any merge driver it
// writes the result to the file with our version and exits with a non-zero status if there are
// conflicts.
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/merge"
)

func main() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if os.Getenv("GITMERGE_DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	code := 0
	clean, err := run(log, os.Args)
	switch {
	case err != nil:
		log.Error("merge failed", zap.Error(err))
		code = 2
	case !clean:
		code = 1
	}
	_ = log.Sync()
	os.Exit(code)
}

func run(log *zap.Logger, args []string) (bool, error) {
	if len(args) < 4 {
		return false, fmt.Errorf("expected at least 3 args, got %v: %v", len(args)-1, args[1:])
	}
	originalFile, oursFile, theirsFile := args[1], args[2], args[3]
	path := oursFile
	opts := []diffpatch.Option{}
	if len(args) > 4 {
		size, err := strconv.Atoi(args[4])
		if err != nil {
			return false, fmt.Errorf("invalid marker size %q: %v", args[4], err)
		}
		opts = append(opts, merge.MarkerSize(size))
	}
	if len(args) > 5 {
		path = args[5]
	}
	opts = append(opts, merge.Labels("ours:"+path, "original:"+path, "theirs:"+path))

	var texts [3][]byte
	for i, name := range []string{originalFile, oursFile, theirsFile} {
		var err error
		if texts[i], err = os.ReadFile(name); err != nil {
			return false, fmt.Errorf("reading %s: %v", name, err)
		}
	}

	merged, clean := merge.Merge(texts[0], texts[1], texts[2], opts...)
	if err := os.WriteFile(oursFile, merged, 0o644); err != nil {
		return false, fmt.Errorf("writing result: %v", err)
	}
	log.Debug("merged", zap.String("path", path), zap.Bool("clean", clean))
	return clean, nil
}
