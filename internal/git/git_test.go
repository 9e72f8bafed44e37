package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/driftool/driftool/internal/git/testutil"
)

func TestGitErrorMessage(t *testing.T) {
	base := errors.New("exit status 1")
	tests := []struct {
		name string
		err  *GitError
		want string
	}{
		{
			"stderr preferred",
			&GitError{Args: []string{"checkout", "x"}, Stderr: "error: pathspec 'x' did not match\n", Err: base},
			"error: pathspec 'x' did not match",
		},
		{
			"falls back to exec error",
			&GitError{Args: []string{"status"}, Err: base},
			"exit status 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGitErrorUnwrap(t *testing.T) {
	base := errors.New("exit status 128")
	err := &GitError{Args: []string{"merge"}, Err: base}
	if !errors.Is(err, base) {
		t.Error("Unwrap chain broken")
	}
}

func TestIsNotRepo(t *testing.T) {
	yes := &GitError{Stderr: "fatal: not a git repository (or any of the parent directories)"}
	if !IsNotRepo(yes) {
		t.Error("IsNotRepo = false for a not-a-repo error")
	}
	no := &GitError{Stderr: "error: something else"}
	if IsNotRepo(no) {
		t.Error("IsNotRepo = true for an unrelated error")
	}
	if IsNotRepo(errors.New("plain")) {
		t.Error("IsNotRepo = true for a non-git error")
	}
}

// ---------------------------------------------------------------------------
// Integration against a real repository
// ---------------------------------------------------------------------------

func TestBranchesIntegration(t *testing.T) {
	testutil.RequireGit(t)
	repo := testutil.NewTestRepo(t)
	repo.Commit("init", map[string]string{"a.txt": "one\n"})
	repo.Branch("feature")
	repo.Commit("feature work", map[string]string{"b.txt": "two\n"})
	repo.Checkout("main")

	g := New(repo.Dir)
	branches, err := g.Branches(context.Background())
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	want := []string{"feature", "main"}
	if len(branches) != len(want) {
		t.Fatalf("branches = %v, want %v", branches, want)
	}
	for i := range want {
		if branches[i] != want[i] {
			t.Errorf("branch %d = %q, want %q", i, branches[i], want[i])
		}
	}
}

func TestBranchActivityIntegration(t *testing.T) {
	testutil.RequireGit(t)
	repo := testutil.NewTestRepo(t)
	repo.Commit("init", map[string]string{"a.txt": "one\n"})

	g := New(repo.Dir)
	activities, skipped, err := g.BranchActivity(context.Background())
	if err != nil {
		t.Fatalf("BranchActivity: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped lines: %v", skipped)
	}
	if len(activities) != 1 || activities[0].Name != "main" {
		t.Fatalf("activities = %v", activities)
	}
	if activities[0].CommitDate.IsZero() {
		t.Error("commit date not parsed")
	}
}

func TestMergeConflictIntegration(t *testing.T) {
	testutil.RequireGit(t)
	repo := testutil.NewTestRepo(t)
	repo.Commit("base", map[string]string{"shared.txt": "line1\nline2\nline3\n"})
	repo.Branch("feature")
	repo.Commit("feature edit", map[string]string{"shared.txt": "line1\nfeature\nline3\n"})
	repo.Checkout("main")
	repo.Commit("main edit", map[string]string{"shared.txt": "line1\nmain\nline3\n"})

	g := New(repo.Dir)
	output, clean, err := g.Merge(context.Background(), "feature")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if clean {
		t.Error("conflicting merge reported clean")
	}
	if !strings.Contains(output, "Merge conflict in shared.txt") {
		t.Errorf("merge output missing conflict line: %q", output)
	}

	g.MergeAbort(context.Background())
	if err := g.ResetHard(context.Background()); err != nil {
		t.Fatalf("ResetHard after abort: %v", err)
	}
}

func TestRunSilentErrorCarriesOutput(t *testing.T) {
	testutil.RequireGit(t)
	repo := testutil.NewTestRepo(t)
	repo.Commit("init", map[string]string{"a.txt": "one\n"})

	g := New(repo.Dir)
	err := g.Checkout(context.Background(), "no-such-branch")
	if err == nil {
		t.Fatal("expected checkout failure")
	}
	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		t.Fatalf("error type = %T, want *GitError", err)
	}
	if gitErr.Stderr == "" {
		t.Error("stderr not captured")
	}
}
