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


// Package git provides a simplified git interface for reading a repository for evaluations
package git

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// ZeroID is the object id git uses for a missing file.
const ZeroID = "0000000000000000000000000000000000000000"

type Repo struct {
	dir string

	mu  sync.Mutex // guards cat
	cat *catFile
}

func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	cat, err := startCatFile(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &Repo{dir: dir, cat: cat}, nil
}

func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cat.close()
}

// Commit is a commit and its parents.
type Commit struct {
	ID      string
	Parents []string
}

// RevList returns the commits reachable from HEAD. If merges is set, only merge commits are
// returned, otherwise merges are skipped.
func (r *Repo) RevList(ctx context.Context, merges bool) ([]Commit, error) {
	filter := "--no-merges"
	if merges {
		filter = "--merges"
	}
	out, err := r.git(ctx, "rev-list", "--parents", filter, "HEAD")
	if err != nil {
		return nil, err
	}
	var commits []Commit
	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		commits = append(commits, Commit{ID: fields[0], Parents: fields[1:]})
	}
	return commits, nil
}

// MergeBase returns the best common ancestor of a and b.
func (r *Repo) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := r.git(ctx, "merge-base", a, b)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type FileDiff struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns the files changed between the trees of from and to. If from is empty, the
// files changed by to are returned.
func (r *Repo) DiffTree(ctx context.Context, from, to string) ([]FileDiff, error) {
	args := []string{"diff-tree", "-r", "--no-commit-id"}
	if from != "" {
		args = append(args, from)
	}
	out, err := r.git(ctx, append(args, to)...)
	if err != nil {
		return nil, err
	}
	var ret []FileDiff
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree file not starting with ':': %q", line)
		}
		meta, name, ok := strings.Cut(line[1:], "\t")
		fields := strings.Fields(meta)
		if !ok || len(fields) < 5 {
			return nil, fmt.Errorf("malformed diff-tree line: %q", line)
		}
		ret = append(ret, FileDiff{
			Name:  name,
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return ret, nil
}

// BlobID returns the id of the file at path in commit, or ZeroID if it doesn't exist.
func (r *Repo) BlobID(ctx context.Context, commit, path string) (string, error) {
	out, err := r.git(ctx, "ls-tree", commit, "--", path)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return ZeroID, nil
	}
	return fields[2], nil
}

// Read returns the contents of the blobs with the given ids. ZeroID reads as an empty blob.
func (r *Repo) Read(ids ...string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(ids))
	for i, id := range ids {
		if id == ZeroID {
			continue
		}
		var err error
		if out[i], err = r.cat.read(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}

// catFile reads blobs through a long running git cat-file process.
type catFile struct {
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
}

func startCatFile(ctx context.Context, dir string) (*catFile, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %v", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %v", err)
	}
	return &catFile{cmd: cmd, in: in, out: bufio.NewReader(out)}, nil
}

func (c *catFile) read(id string) (string, error) {
	if _, err := fmt.Fprintf(c.in, "%s\n", id); err != nil {
		return "", fmt.Errorf("writing to git cat-file: %v", err)
	}
	header, err := c.out.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading from git cat-file: %v", err)
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return "", fmt.Errorf("found %v fields, expected 3: %q", len(fields), header)
	}
	if fields[0] != id {
		return "", fmt.Errorf("ids don't match %s vs %s", fields[0], id)
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid size in %q: %v", header, err)
	}
	buf := make([]byte, n+1) // contents are followed by a newline
	if _, err := io.ReadFull(c.out, buf); err != nil {
		return "", fmt.Errorf("reading blob %s: %v", id, err)
	}
	return string(buf[:n]), nil
}

func (c *catFile) close() error {
	c.in.Close()
	return c.cmd.Wait()
}
