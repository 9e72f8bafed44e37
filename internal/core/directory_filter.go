package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DirectoryFilter deletes files from a sandbox tree according to the
// configured whitelist/blacklist regexes. Sandboxes are single-use, so
// partial progress is never rolled back; the first I/O failure surfaces.
type DirectoryFilter struct {
	log *RunLog
}

// NewDirectoryFilter creates a filter writing to the given log.
func NewDirectoryFilter(log *RunLog) *DirectoryFilter {
	return &DirectoryFilter{log: log}
}

// KeepWhitelist deletes every regular file below root whose basename
// matches none of the whitelist regexes. Symbolic links are removed
// unconditionally: they cannot be meaningfully merged. Paths containing
// .git are never touched. When removeHidden is set, top-level hidden
// entries other than .git are deleted as well.
func (f *DirectoryFilter) KeepWhitelist(patterns []string, root string, removeHidden bool) error {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return err
	}

	matchCount := 0
	symlinkCount := 0

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.Contains(path, ".git") {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if err := os.Remove(path); err != nil {
				return err
			}
			symlinkCount++
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		for _, pattern := range compiled {
			if pattern.MatchString(info.Name()) {
				return nil
			}
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		matchCount++
		return nil
	})
	if err != nil {
		f.log.Append("Exception during whitelist processing: " + err.Error())
		return err
	}

	if removeHidden {
		if err := f.removeHiddenEntries(root); err != nil {
			return err
		}
	}

	f.log.Appendf("PURGE %d FILES", matchCount)
	f.log.Appendf("SYMLK %d FILES", symlinkCount)
	return nil
}

// PurgeBlacklist deletes every non-directory entry (regular files and
// symbolic links alike) below root whose root-prefixed path matches any
// blacklist regex. Paths containing .git are never
// touched. When removeHidden is set, top-level hidden entries other than
// .git are deleted as well.
func (f *DirectoryFilter) PurgeBlacklist(patterns []string, root string, removeHidden bool) error {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.Contains(path, ".git") {
			return nil
		}
		if info.IsDir() {
			return nil
		}

		// Patterns match the root-prefixed path, so selectors can anchor
		// on directory names anywhere below the sandbox.
		for _, pattern := range compiled {
			if pattern.MatchString(path) {
				return os.Remove(path)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if removeHidden {
		return f.removeHiddenEntries(root)
	}
	return nil
}

// removeHiddenEntries deletes top-level dot entries except .git.
func (f *DirectoryFilter) removeHiddenEntries(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, ".") || name == ".git" {
			continue
		}
		f.log.Append("REMOVE HIDDEN: " + name)
		if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
			return err
		}
	}
	return nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		pattern, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid file selector %q: %w", raw, err)
		}
		compiled = append(compiled, pattern)
	}
	return compiled, nil
}
