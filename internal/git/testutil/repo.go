// Package testutil provides temporary git repository fixtures for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestRepo is a temporary git repository for testing.
type TestRepo struct {
	Dir string
	t   *testing.T
}

// NewTestRepo creates an initialized git repository in t.TempDir().
// Tests that need a repository should call RequireGit first.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()
	dir := t.TempDir()
	run(t, dir, "init", "-b", "main")
	run(t, dir, "config", "user.email", "test@example.com")
	run(t, dir, "config", "user.name", "Test User")
	return &TestRepo{Dir: dir, t: t}
}

// RequireGit skips the test when no git binary is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// Commit creates a commit with the given files and returns the commit SHA.
func (r *TestRepo) Commit(msg string, files map[string]string) string {
	r.t.Helper()
	for path, content := range files {
		writeFile(r.t, r.Dir, path, content)
	}
	run(r.t, r.Dir, "add", ".")
	run(r.t, r.Dir, "commit", "-m", msg)
	return strings.TrimSpace(run(r.t, r.Dir, "rev-parse", "HEAD"))
}

// Branch creates and checks out a new branch.
func (r *TestRepo) Branch(name string) {
	r.t.Helper()
	run(r.t, r.Dir, "checkout", "-b", name)
}

// Checkout switches to an existing branch or ref.
func (r *TestRepo) Checkout(ref string) {
	r.t.Helper()
	run(r.t, r.Dir, "checkout", ref)
}

// RemoveFile deletes a file from the working tree.
func (r *TestRepo) RemoveFile(name string) {
	r.t.Helper()
	if err := os.Remove(filepath.Join(r.Dir, name)); err != nil {
		r.t.Fatalf("remove %s: %v", name, err)
	}
}

func run(t *testing.T, dir string, args ...string) string {
	t.Helper()
	// Disable commit signing to avoid environment-specific failures.
	fullArgs := append([]string{"-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Dir = dir
	cmd.Env = sanitizedEnv()
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, string(out))
	}
	return string(out)
}

// sanitizedEnv returns os.Environ() with git hook variables removed so that
// fixture repos are isolated from any outer git hook context.
func sanitizedEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		key := strings.ToUpper(strings.SplitN(e, "=", 2)[0])
		if strings.HasPrefix(key, "GIT_AUTHOR_") ||
			strings.HasPrefix(key, "GIT_COMMITTER_") {
			continue
		}
		switch key {
		case "GIT_DIR", "GIT_INDEX_FILE", "GIT_WORK_TREE",
			"GIT_OBJECT_DIRECTORY", "GIT_ALTERNATE_OBJECT_DIRECTORIES":
			continue
		}
		env = append(env, e)
	}
	return env
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
}
