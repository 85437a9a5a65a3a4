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


// eval validates patches and merges against the history of a git repository.
//
// For every file changed by a commit, it creates a patch, checks that it applies and reverts
// cleanly, and that it survives formatting and parsing. Optionally, the patch is also applied with
// the unix patch tool. For every merge commit, it merges the files changed on both sides and
// compares the result with the recorded merge. Optionally, the result is compared with git
// merge-file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"znkr.io/diffpatch"
	"znkr.io/diffpatch/internal/cmd/eval/internal/git"
	"znkr.io/diffpatch/internal/unixpatch"
	"znkr.io/diffpatch/merge"
	"znkr.io/diffpatch/patch"
)

type config struct {
	repo     string
	sample   int
	parallel int
	stats    string
	validate bool
	merges   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", true, "if validation against patch and git merge-file should be performed")
	flag.BoolVar(&cfg.merges, "merges", false, "evaluate merge commits instead of patches")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(context.Background(), &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

// result is a line in the stats file.
type result struct {
	commitID string
	file     string
	variant  string
	hunks    int
	clean    bool
	duration time.Duration
}

// evaluation holds the state of a run.
type evaluation struct {
	cfg   *config
	repo  *git.Repo
	start time.Time
	total int

	commitsDone atomic.Int64
	processed   atomic.Int64
	failures    atomic.Int64

	mu    sync.Mutex // guards stdout and stats
	stats *bufio.Writer
}

func run(ctx context.Context, cfg *config) error {
	repo, err := git.Open(ctx, cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %v", err)
	}
	defer repo.Close()

	commits, err := repo.RevList(ctx, cfg.merges)
	if err != nil {
		return fmt.Errorf("reading rev-list: %v", err)
	}
	if cfg.sample > 0 && cfg.sample < len(commits) {
		rand.Shuffle(len(commits), func(i, j int) { commits[i], commits[j] = commits[j], commits[i] })
		commits = commits[:cfg.sample]
	}

	e := &evaluation{cfg: cfg, repo: repo, start: time.Now(), total: len(commits)}
	if cfg.stats != "" {
		f, err := os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer f.Close()
		e.stats = bufio.NewWriter(f)
		e.stats.WriteString("commit_id,file,variant,hunks,clean,duration_ns\n")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go e.renderLoop(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.parallel))
	for _, commit := range commits {
		g.Go(func() error {
			defer e.commitsDone.Add(1)
			var err error
			if cfg.merges {
				err = e.evalMerge(ctx, commit)
			} else {
				err = e.evalPatches(ctx, commit)
			}
			if err != nil {
				e.note(commit.ID, "error processing commit: %v", err)
			}
			return ctx.Err()
		})
	}
	err = g.Wait()
	cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.render()
	fmt.Printf("\n%d failures\n", e.failures.Load())
	if e.stats != nil {
		if ferr := e.stats.Flush(); ferr != nil {
			return fmt.Errorf("flushing stats: %v", ferr)
		}
	}
	return err
}

func (e *evaluation) evalPatches(ctx context.Context, commit git.Commit) error {
	files, err := e.repo.DiffTree(ctx, "", commit.ID)
	if err != nil {
		return err
	}
	for _, file := range files {
		if skip(file.Name) {
			continue
		}
		res, err := e.repo.Read(file.OldID, file.NewID)
		if err != nil {
			return err
		}
		x, y := res[0], res[1]
		prefix := commit.ID + ":" + file.Name

		variants := map[string][]diffpatch.Option{
			"default":          nil,
			"indent-heuristic": {patch.IndentHeuristic()},
		}
		for variant, opts := range variants {
			start := time.Now()
			p := patch.Create(x, y, opts...)
			duration := time.Since(start)
			ok := e.checkPatch(prefix+" ["+variant+"]", x, y, p)
			e.record(result{commit.ID, file.Name, variant, len(p.Hunks), ok, duration})
		}
		e.processed.Add(1)
	}
	return nil
}

// checkPatch verifies that p converts x to y and reports every problem it finds.
func (e *evaluation) checkPatch(prefix, x, y string, p *patch.Patch[string]) bool {
	ok := true
	fail := func(format string, args ...any) {
		ok = false
		e.note(prefix, format, args...)
	}

	if got, err := patch.Apply(x, p); err != nil {
		fail("failed to apply patch: %v", err)
	} else if got != y {
		fail("file is different after applying patch. got:\n%s\nwant:\n%s", got, y)
	}
	if got, err := patch.Apply(y, p.Reverse()); err != nil {
		fail("failed to apply reversed patch: %v", err)
	} else if got != x {
		fail("file is different after reverting patch. got:\n%s\nwant:\n%s", got, x)
	}

	unified := patch.Format(p)
	parsed, err := patch.Parse(unified)
	if err != nil {
		fail("failed to parse formatted patch: %v", err)
	} else if again := patch.Format(parsed); again != unified {
		fail("patch is different after parsing. got:\n%s\nwant:\n%s", again, unified)
	}

	if e.cfg.validate {
		patched, err := unixpatch.Patch(x, unified)
		if err != nil {
			fail("failed to run patch: %v", err)
		} else if patched != y {
			fail("file is different after applying patch with patch(1). got:\n%s\nwant:\n%s", patched, y)
		}
	}
	return ok
}

func (e *evaluation) evalMerge(ctx context.Context, commit git.Commit) error {
	if len(commit.Parents) != 2 {
		return nil // octopus merges
	}
	ours, theirs := commit.Parents[0], commit.Parents[1]
	base, err := e.repo.MergeBase(ctx, ours, theirs)
	if err != nil {
		return err
	}
	oursFiles, err := e.repo.DiffTree(ctx, base, ours)
	if err != nil {
		return err
	}
	theirsFiles, err := e.repo.DiffTree(ctx, base, theirs)
	if err != nil {
		return err
	}
	theirsByName := make(map[string]git.FileDiff, len(theirsFiles))
	for _, f := range theirsFiles {
		theirsByName[f.Name] = f
	}

	for _, of := range oursFiles {
		tf, ok := theirsByName[of.Name]
		if !ok || skip(of.Name) || of.NewID == tf.NewID {
			continue
		}
		resultID, err := e.repo.BlobID(ctx, commit.ID, of.Name)
		if err != nil {
			return err
		}
		res, err := e.repo.Read(of.OldID, of.NewID, tf.NewID, resultID)
		if err != nil {
			return err
		}
		o, a, b, recorded := res[0], res[1], res[2], res[3]
		prefix := commit.ID + ":" + of.Name

		start := time.Now()
		merged, clean := merge.Merge(o, a, b)
		duration := time.Since(start)
		e.record(result{commit.ID, of.Name, "merge", len(merge.Regions(o, a, b)), clean, duration})

		if clean && merged != recorded {
			e.note(prefix, "clean merge differs from the recorded merge")
		}
		if e.cfg.validate {
			_, gitClean, err := unixpatch.MergeFile(o, a, b)
			switch {
			case err != nil:
				e.note(prefix, "failed to run git merge-file: %v", err)
			case clean && !gitClean:
				e.note(prefix, "clean merge, but git merge-file found conflicts")
			}
		}
		e.processed.Add(1)
	}
	return nil
}

func skip(name string) bool {
	return strings.HasSuffix(name, ".zip") || strings.HasSuffix(name, ".syso")
}

func (e *evaluation) record(r result) {
	if e.stats == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.stats, "%s,%s,%s,%d,%t,%d\n", r.commitID, r.file, r.variant, r.hunks, r.clean, r.duration.Nanoseconds())
}

func (e *evaluation) note(prefix, format string, args ...any) {
	e.failures.Add(1)
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Printf("\r%s: %s\n", prefix, fmt.Sprintf(format, args...))
	e.render()
}

func (e *evaluation) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.mu.Lock()
			e.render()
			e.mu.Unlock()
		}
	}
}

// render prints the progress bar, e.mu must be held.
func (e *evaluation) render() {
	const width = 60
	commits := e.commitsDone.Load()
	processed := e.processed.Load()
	progress := 1.0
	if e.total > 0 {
		progress = float64(commits) / float64(e.total)
	}
	whole := int(progress * width)
	remainder := math.Mod(progress*width, 1)
	last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
	if width-whole < 1 {
		last = ""
	}
	bar := strings.Repeat(bars[len(bars)-1], whole) + last
	var commitsPerSec, procPerSec int
	if commits > 0 {
		commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(e.start))
	}
	if processed > 0 {
		procPerSec = int((time.Duration(processed) * time.Second) / time.Since(e.start))
	}
	fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s) ", width, bar, 100*progress, commitsPerSec, procPerSec)
}
