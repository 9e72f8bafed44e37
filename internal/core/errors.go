package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error format:
//
//	Error: <what went wrong>
//	  Context: <relevant details>
//	  Fix: <what the user should do>

// =============================================================================
// Sentinel Errors
// =============================================================================

// Sentinel errors for common error conditions.
// These can be used with errors.Is() for error type checking.
var (
	// ErrGitNotInstalled indicates the git binary is missing from PATH
	ErrGitNotInstalled = errors.New("git not found on PATH")

	// ErrNoBranches indicates that branch filtering left nothing to analyze
	ErrNoBranches = errors.New("no branches left after filtering")
)

// =============================================================================
// Structured Error Types
// =============================================================================

// ConfigError is returned when the run or system configuration is invalid.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("Error: Invalid configuration")
	if e.Field != "" {
		b.WriteString(fmt.Sprintf(" [field: %s]", e.Field))
	}
	b.WriteString(fmt.Sprintf("\n  Context: %s", e.Message))
	b.WriteString("\n  Fix: Edit the configuration file and re-run the analysis")
	return b.String()
}

// NewConfigError creates a ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// SandboxError is returned when a sandbox operation (copy, checkout, reset,
// clean, commit) fails and the sandbox must be considered corrupt.
type SandboxError struct {
	Op    string // operation that failed, e.g. "checkout", "clean"
	Path  string // sandbox directory
	Cause error
}

func (e *SandboxError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Error: Sandbox operation '%s' failed", e.Op))
	if e.Path != "" {
		b.WriteString(fmt.Sprintf("\n  Context: Sandbox at %s is corrupt and was abandoned", e.Path))
	}
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	b.WriteString("\n  Fix: Check disk space and permissions of the temporary root, then re-run")
	return b.String()
}

func (e *SandboxError) Unwrap() error {
	return e.Cause
}

// NewSandboxError creates a SandboxError.
func NewSandboxError(op, path string, cause error) *SandboxError {
	return &SandboxError{Op: op, Path: path, Cause: cause}
}

// WorkerError is returned when a merge worker fails or delivers an
// incomplete result set. It downgrades the run instead of aborting it.
type WorkerError struct {
	Worker  int
	Message string
	Cause   error
}

func (e *WorkerError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Error: Merge worker %d failed", e.Worker))
	b.WriteString(fmt.Sprintf("\n  Context: %s", e.Message))
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" (%v)", e.Cause))
	}
	b.WriteString("\n  Fix: Inspect log.txt in the output directory for the worker transcript")
	return b.String()
}

func (e *WorkerError) Unwrap() error {
	return e.Cause
}

// NewWorkerError creates a WorkerError.
func NewWorkerError(worker int, message string, cause error) *WorkerError {
	return &WorkerError{Worker: worker, Message: message, Cause: cause}
}

// CSVFormatError is returned when a distance CSV violates the expected
// format (header + square symmetric matrix with zero diagonal).
type CSVFormatError struct {
	Path    string
	Message string
}

func (e *CSVFormatError) Error() string {
	var b strings.Builder
	b.WriteString("Error: Invalid distance CSV")
	b.WriteString(fmt.Sprintf("\n  Context: %s: %s", e.Path, e.Message))
	b.WriteString("\n  Fix: The file must contain a ';'-separated branch header followed by a symmetric n×n matrix with a zero diagonal")
	return b.String()
}

// NewCSVFormatError creates a CSVFormatError.
func NewCSVFormatError(path, message string) *CSVFormatError {
	return &CSVFormatError{Path: path, Message: message}
}

// =============================================================================
// Error Type Checking Helpers
// =============================================================================

// IsConfigError returns true if err is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsSandboxError returns true if err is a SandboxError.
func IsSandboxError(err error) bool {
	var e *SandboxError
	return errors.As(err, &e)
}

// IsWorkerError returns true if err is a WorkerError.
func IsWorkerError(err error) bool {
	var e *WorkerError
	return errors.As(err, &e)
}

// IsCSVFormatError returns true if err is a CSVFormatError.
func IsCSVFormatError(err error) bool {
	var e *CSVFormatError
	return errors.As(err, &e)
}
