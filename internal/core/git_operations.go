package core

import (
	"context"

	git "github.com/driftool/driftool/internal/git"
)

// GitClient handles git command operations against sandbox directories.
// All methods that mutate tree state treat a non-zero exit as fatal except
// Merge, whose conflicts are an expected outcome, and MergeAbort, which is
// best-effort cleanup.
type GitClient interface {
	ConfigSet(ctx context.Context, dir, key, value string) error
	Checkout(ctx context.Context, dir, ref string) error
	ResetHard(ctx context.Context, dir string) error
	CleanForce(ctx context.Context, dir string) error
	MergeAbort(ctx context.Context, dir string)
	Merge(ctx context.Context, dir, ref string) (output string, clean bool, err error)
	Pull(ctx context.Context, dir, remote, branch string) error
	AddAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	HasChanges(ctx context.Context, dir string) (bool, error)
	Branches(ctx context.Context, dir string) ([]string, error)
	BranchActivity(ctx context.Context, dir string) (activities []git.Activity, skipped []string, err error)
}

// SystemGitClient implements GitClient using the system git binary.
type SystemGitClient struct {
	verbose bool
}

// NewSystemGitClient creates a new SystemGitClient
func NewSystemGitClient(verbose bool) *SystemGitClient {
	return &SystemGitClient{verbose: verbose}
}

// gitFor creates a plumbing Git instance for the given directory.
// Cheap allocation (single struct, no I/O) — the engine passes dir per-call
// while the plumbing layer stores it on the struct.
func (g *SystemGitClient) gitFor(dir string) *git.Git {
	return &git.Git{Dir: dir, Verbose: g.verbose}
}

// ConfigSet writes a git config key-value pair.
func (g *SystemGitClient) ConfigSet(ctx context.Context, dir, key, value string) error {
	return g.gitFor(dir).ConfigSet(ctx, key, value)
}

// Checkout checks out a branch or ref.
func (g *SystemGitClient) Checkout(ctx context.Context, dir, ref string) error {
	return g.gitFor(dir).Checkout(ctx, ref)
}

// ResetHard discards tracked modifications.
func (g *SystemGitClient) ResetHard(ctx context.Context, dir string) error {
	return g.gitFor(dir).ResetHard(ctx)
}

// CleanForce removes untracked and ignored files and directories.
func (g *SystemGitClient) CleanForce(ctx context.Context, dir string) error {
	return g.gitFor(dir).CleanForce(ctx)
}

// MergeAbort aborts an in-progress merge, ignoring failure.
func (g *SystemGitClient) MergeAbort(ctx context.Context, dir string) {
	g.gitFor(dir).MergeAbort(ctx)
}

// Merge merges ref into the current branch; conflicts are not an error.
func (g *SystemGitClient) Merge(ctx context.Context, dir, ref string) (string, bool, error) {
	return g.gitFor(dir).Merge(ctx, ref)
}

// Pull fetches and integrates a branch from a remote.
func (g *SystemGitClient) Pull(ctx context.Context, dir, remote, branch string) error {
	return g.gitFor(dir).Pull(ctx, remote, branch)
}

// AddAll stages every change in the working tree.
func (g *SystemGitClient) AddAll(ctx context.Context, dir string) error {
	return g.gitFor(dir).AddAll(ctx)
}

// Commit records the staged changes.
func (g *SystemGitClient) Commit(ctx context.Context, dir, message string) error {
	return g.gitFor(dir).Commit(ctx, message)
}

// HasChanges reports whether the tree differs from HEAD.
func (g *SystemGitClient) HasChanges(ctx context.Context, dir string) (bool, error) {
	return g.gitFor(dir).HasChanges(ctx)
}

// Branches returns the normalized branch list.
func (g *SystemGitClient) Branches(ctx context.Context, dir string) ([]string, error) {
	return g.gitFor(dir).Branches(ctx)
}

// BranchActivity returns per-branch last commit dates.
func (g *SystemGitClient) BranchActivity(ctx context.Context, dir string) ([]git.Activity, []string, error) {
	return g.gitFor(dir).BranchActivity(ctx)
}

// Compile-time interface satisfaction check.
var _ GitClient = (*SystemGitClient)(nil)

// IsGitInstalled reports whether the git binary is on PATH.
func IsGitInstalled() bool {
	return git.IsInstalled()
}
