package git

import (
	"context"
	"strings"
)

// Checkout checks out a branch or ref.
func (g *Git) Checkout(ctx context.Context, ref string) error {
	return g.RunSilent(ctx, "checkout", ref)
}

// ResetHard discards all tracked modifications in the working tree.
func (g *Git) ResetHard(ctx context.Context) error {
	return g.RunSilent(ctx, "reset", "--hard")
}

// CleanForce removes untracked files, directories and ignored files.
func (g *Git) CleanForce(ctx context.Context) error {
	return g.RunSilent(ctx, "clean", "-f", "-d", "-x")
}

// MergeAbort aborts an in-progress merge. Failure is expected when no merge
// is in progress, so the error is intentionally discarded.
func (g *Git) MergeAbort(ctx context.Context) {
	_ = g.RunSilent(ctx, "merge", "--abort")
}

// Merge merges ref into the current branch and returns git's stdout.
// A non-zero exit indicates conflicts and is not an error; clean reports
// whether the merge exited zero.
func (g *Git) Merge(ctx context.Context, ref string) (output string, clean bool, err error) {
	return g.RunTolerant(ctx, "merge", ref)
}

// Pull fetches and integrates a branch from a remote.
func (g *Git) Pull(ctx context.Context, remote, branch string) error {
	return g.RunSilent(ctx, "pull", remote, branch)
}

// AddAll stages every change in the working tree.
func (g *Git) AddAll(ctx context.Context) error {
	return g.RunSilent(ctx, "add", "--all")
}

// Commit records the staged changes with the given message.
func (g *Git) Commit(ctx context.Context, message string) error {
	return g.RunSilent(ctx, "-c", "commit.gpgsign=false", "commit", "-m", message)
}

// ConfigSet writes a repository-local git config key-value pair.
func (g *Git) ConfigSet(ctx context.Context, key, value string) error {
	return g.RunSilent(ctx, "config", key, value)
}

// HasChanges reports whether the working tree or index differs from HEAD.
func (g *Git) HasChanges(ctx context.Context) (bool, error) {
	out, err := g.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}
