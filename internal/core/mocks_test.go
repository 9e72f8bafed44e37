package core

import (
	"context"
	"os"

	git "github.com/driftool/driftool/internal/git"
)

// ============================================================================
// MockGitClient
// ============================================================================

// MockGitClient implements GitClient for testing. Every method records its
// call and delegates to the corresponding func field when set.
type MockGitClient struct {
	ConfigSetFunc      func(dir, key, value string) error
	CheckoutFunc       func(dir, ref string) error
	ResetHardFunc      func(dir string) error
	CleanForceFunc     func(dir string) error
	MergeFunc          func(dir, ref string) (string, bool, error)
	PullFunc           func(dir, remote, branch string) error
	AddAllFunc         func(dir string) error
	CommitFunc         func(dir, message string) error
	HasChangesFunc     func(dir string) (bool, error)
	BranchesFunc       func(dir string) ([]string, error)
	BranchActivityFunc func(dir string) ([]git.Activity, []string, error)

	// Call tracking
	Calls           []string // flat sequence of method names for order checks
	ConfigSetCalls  [][]string
	CheckoutCalls   [][]string
	ResetHardCalls  []string
	CleanForceCalls []string
	MergeAbortCalls []string
	MergeCalls      [][]string
	PullCalls       [][]string
	AddAllCalls     []string
	CommitCalls     [][]string
}

func (m *MockGitClient) record(name string) {
	m.Calls = append(m.Calls, name)
}

// ConfigSet implements GitClient
func (m *MockGitClient) ConfigSet(_ context.Context, dir, key, value string) error {
	m.record("ConfigSet")
	m.ConfigSetCalls = append(m.ConfigSetCalls, []string{dir, key, value})
	if m.ConfigSetFunc != nil {
		return m.ConfigSetFunc(dir, key, value)
	}
	return nil
}

// Checkout implements GitClient
func (m *MockGitClient) Checkout(_ context.Context, dir, ref string) error {
	m.record("Checkout")
	m.CheckoutCalls = append(m.CheckoutCalls, []string{dir, ref})
	if m.CheckoutFunc != nil {
		return m.CheckoutFunc(dir, ref)
	}
	return nil
}

// ResetHard implements GitClient
func (m *MockGitClient) ResetHard(_ context.Context, dir string) error {
	m.record("ResetHard")
	m.ResetHardCalls = append(m.ResetHardCalls, dir)
	if m.ResetHardFunc != nil {
		return m.ResetHardFunc(dir)
	}
	return nil
}

// CleanForce implements GitClient
func (m *MockGitClient) CleanForce(_ context.Context, dir string) error {
	m.record("CleanForce")
	m.CleanForceCalls = append(m.CleanForceCalls, dir)
	if m.CleanForceFunc != nil {
		return m.CleanForceFunc(dir)
	}
	return nil
}

// MergeAbort implements GitClient
func (m *MockGitClient) MergeAbort(_ context.Context, dir string) {
	m.record("MergeAbort")
	m.MergeAbortCalls = append(m.MergeAbortCalls, dir)
}

// Merge implements GitClient
func (m *MockGitClient) Merge(_ context.Context, dir, ref string) (string, bool, error) {
	m.record("Merge")
	m.MergeCalls = append(m.MergeCalls, []string{dir, ref})
	if m.MergeFunc != nil {
		return m.MergeFunc(dir, ref)
	}
	return "Already up to date.\n", true, nil
}

// Pull implements GitClient
func (m *MockGitClient) Pull(_ context.Context, dir, remote, branch string) error {
	m.record("Pull")
	m.PullCalls = append(m.PullCalls, []string{dir, remote, branch})
	if m.PullFunc != nil {
		return m.PullFunc(dir, remote, branch)
	}
	return nil
}

// AddAll implements GitClient
func (m *MockGitClient) AddAll(_ context.Context, dir string) error {
	m.record("AddAll")
	m.AddAllCalls = append(m.AddAllCalls, dir)
	if m.AddAllFunc != nil {
		return m.AddAllFunc(dir)
	}
	return nil
}

// Commit implements GitClient
func (m *MockGitClient) Commit(_ context.Context, dir, message string) error {
	m.record("Commit")
	m.CommitCalls = append(m.CommitCalls, []string{dir, message})
	if m.CommitFunc != nil {
		return m.CommitFunc(dir, message)
	}
	return nil
}

// HasChanges implements GitClient
func (m *MockGitClient) HasChanges(_ context.Context, dir string) (bool, error) {
	m.record("HasChanges")
	if m.HasChangesFunc != nil {
		return m.HasChangesFunc(dir)
	}
	return false, nil
}

// Branches implements GitClient
func (m *MockGitClient) Branches(_ context.Context, dir string) ([]string, error) {
	m.record("Branches")
	if m.BranchesFunc != nil {
		return m.BranchesFunc(dir)
	}
	return []string{"main"}, nil
}

// BranchActivity implements GitClient
func (m *MockGitClient) BranchActivity(_ context.Context, dir string) ([]git.Activity, []string, error) {
	m.record("BranchActivity")
	if m.BranchActivityFunc != nil {
		return m.BranchActivityFunc(dir)
	}
	return nil, nil, nil
}

var _ GitClient = (*MockGitClient)(nil)

// ============================================================================
// MockFileSystem
// ============================================================================

// MockFileSystem implements FileSystem for testing. Files live in an
// in-memory map; copies succeed without touching the disk.
type MockFileSystem struct {
	CopyTreeFunc func(src, dst string, policy SymlinkPolicy) (CopyStats, error)
	ReadFileFunc func(path string) ([]byte, error)

	Files map[string][]byte

	CopyTreeCalls  [][]string
	RemoveAllCalls []string
	TempCount      int
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{Files: make(map[string][]byte)}
}

// CopyTree implements FileSystem
func (m *MockFileSystem) CopyTree(src, dst string, policy SymlinkPolicy) (CopyStats, error) {
	m.CopyTreeCalls = append(m.CopyTreeCalls, []string{src, dst})
	if m.CopyTreeFunc != nil {
		return m.CopyTreeFunc(src, dst, policy)
	}
	return CopyStats{FileCount: 1}, nil
}

// MkdirAll implements FileSystem
func (m *MockFileSystem) MkdirAll(_ string, _ os.FileMode) error { return nil }

// Stat implements FileSystem
func (m *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(os.TempDir()) // a directory that always exists
}

// CreateTemp implements FileSystem
func (m *MockFileSystem) CreateTemp(dir, _ string) (string, error) {
	m.TempCount++
	return dir + "/mock-temp", nil
}

// RemoveAll implements FileSystem
func (m *MockFileSystem) RemoveAll(path string) error {
	m.RemoveAllCalls = append(m.RemoveAllCalls, path)
	return nil
}

// WriteFile implements FileSystem
func (m *MockFileSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	m.Files[path] = append([]byte(nil), data...)
	return nil
}

// ReadFile implements FileSystem
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

var _ FileSystem = (*MockFileSystem)(nil)
