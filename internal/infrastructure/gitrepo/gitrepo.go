// Package gitrepo inspects the version-controlled project data repository.
// It classifies project-status files by how they changed since the last
// commit and lists recent commits for the report footer. It never stages,
// commits, or modifies the working tree.
package gitrepo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const gitTimeout = 30 * time.Second

// Repository wraps a git working tree.
type Repository struct {
	dir string
}

// Open returns a Repository rooted at dir. No validation happens here; the
// first git call reports a missing or non-git directory.
func Open(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the working tree root.
func (r *Repository) Dir() string {
	return r.dir
}

// Changes holds the four disjoint categories of changed project-status
// files, as paths relative to the working tree root.
type Changes struct {
	Untracked         []string
	StagedNew         []string
	StagedModified    []string
	CommittedModified []string
}

// All returns every changed path across the four categories.
func (c *Changes) All() []string {
	all := make([]string, 0, len(c.Untracked)+len(c.StagedNew)+len(c.StagedModified)+len(c.CommittedModified))
	all = append(all, c.Untracked...)
	all = append(all, c.StagedNew...)
	all = append(all, c.StagedModified...)
	all = append(all, c.CommittedModified...)
	return all
}

// HasCommits reports whether the repository has a commit to diff against.
func (r *Repository) HasCommits(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "-C", r.dir, "rev-parse", "--verify", "HEAD")
	return cmd.Run() == nil
}

// Changes classifies every project-status file in the working tree. In a
// repository with no commits yet there is nothing to diff against, so all
// tracked categories are empty and only untracked files are reported. A file
// that is both staged and modified further is reported once, in its staged
// category, since staged content is what would be committed next.
func (r *Repository) Changes(ctx context.Context) (*Changes, error) {
	untracked, err := r.listPaths(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	changes := &Changes{Untracked: untracked}

	if !r.HasCommits(ctx) {
		return changes, nil
	}

	if changes.StagedNew, err = r.listPaths(ctx, "diff", "--cached", "--name-only", "--diff-filter=A"); err != nil {
		return nil, err
	}
	if changes.StagedModified, err = r.listPaths(ctx, "diff", "--cached", "--name-only", "--diff-filter=M"); err != nil {
		return nil, err
	}
	workingModified, err := r.listPaths(ctx, "diff", "--name-only", "--diff-filter=M")
	if err != nil {
		return nil, err
	}

	staged := make(map[string]struct{}, len(changes.StagedNew)+len(changes.StagedModified))
	for _, p := range changes.StagedNew {
		staged[p] = struct{}{}
	}
	for _, p := range changes.StagedModified {
		staged[p] = struct{}{}
	}
	for _, p := range workingModified {
		if _, ok := staged[p]; ok {
			continue
		}
		changes.CommittedModified = append(changes.CommittedModified, p)
	}

	return changes, nil
}

// TrackedFiles lists every committed or staged project-status file in the
// repository. A repository with an empty index yields an empty list.
func (r *Repository) TrackedFiles(ctx context.Context) ([]string, error) {
	return r.listPaths(ctx, "ls-files")
}

// Commit is one entry of the data repository's history.
type Commit struct {
	Hash    string
	Subject string
}

// RecentCommits returns the n most recent commits, newest first. A
// repository without commits yields an empty list.
func (r *Repository) RecentCommits(ctx context.Context, n int) ([]Commit, error) {
	if n < 1 {
		n = 1
	}
	if n > 1000 {
		n = 1000
	}
	if !r.HasCommits(ctx) {
		return nil, nil
	}

	out, err := r.git(ctx, "log", "-n", fmt.Sprintf("%d", n), "--pretty=format:%H|%s")
	if err != nil {
		return nil, err
	}

	var commits []Commit
	for _, line := range strings.Split(string(out), "\n") {
		hash, subject, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		commits = append(commits, Commit{Hash: hash, Subject: subject})
	}
	return commits, nil
}

func (r *Repository) git(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("git %s timed out after %s", args[0], gitTimeout)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

func (r *Repository) listPaths(ctx context.Context, args ...string) ([]string, error) {
	out, err := r.git(ctx, args...)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isRecordPath(line) {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// isRecordPath applies the project-status naming convention: JSON files
// outside hidden directories. Everything else in the tree is ignored.
func isRecordPath(path string) bool {
	if !strings.HasSuffix(path, ".json") {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	return true
}
