package core

import (
	"context"
)

// BranchEnumerator yields the sorted list of branches usable for merge
// measurement, after ignore regexes and the activity timeout were applied.
type BranchEnumerator interface {
	EnumerateBranches(ctx context.Context) ([]string, error)
}

// Compile-time interface satisfaction check.
var _ BranchEnumerator = (*BranchService)(nil)

// BranchService pairs branch materialisation with the configured filters.
// It is a thin facade over the sandbox's MaterializeBranches so the engine
// can be tested against the interface.
type BranchService struct {
	sandbox *SandboxService
	log     *RunLog
}

// NewBranchService creates a BranchService over a prepared sandbox.
func NewBranchService(sandbox *SandboxService, log *RunLog) *BranchService {
	return &BranchService{sandbox: sandbox, log: log}
}

// EnumerateBranches materializes and returns the branches of interest.
// A branch whose last-commit lookup failed has already been excluded and
// logged by the sandbox; an empty result is an error because no pair can
// be measured.
func (b *BranchService) EnumerateBranches(ctx context.Context) ([]string, error) {
	branches, err := b.sandbox.MaterializeBranches(ctx)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, ErrNoBranches
	}
	return branches, nil
}
