package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Git identity written into every sandbox so merge commits never carry a
// real user's name.
const (
	SandboxUserName  = "driftool"
	SandboxUserEmail = "analysis@driftool.io"

	setupCommitMessage = "close setup (driftool)"

	conflictStartMarker = "<<<<<<<"
	conflictEndMarker   = ">>>>>>>"
	mergeConflictNeedle = "Merge conflict in "
)

// SandboxOptions configures a SandboxService.
type SandboxOptions struct {
	TempRoot      string   // directory owning all sandbox copies
	FetchUpdates  bool     // git pull origin <branch> during materialisation
	BranchIgnore  []string // regexes excluding branches
	FileIgnore    []string // blacklist regexes applied per branch
	FileWhitelist []string // whitelist regexes applied per branch
	TimeoutDays   int      // exclude branches older than this many days (0 = off)
}

// SandboxService owns the temporary repository copies the analysis runs on.
// A reference sandbox is materialized once and used as a template; working
// sandboxes are cloned from it, mutated by speculative merges, and destroyed
// again. In worker mode the service adopts a pre-cloned reference instead
// (see Adopt) and must only be used for MergeAndCount.
type SandboxService struct {
	inputDir string
	opts     SandboxOptions
	git      GitClient
	fs       FileSystem
	filter   *DirectoryFilter
	log      *RunLog
	now      func() time.Time

	referencePath string
	workingPath   string
	adopted       bool

	// Branches is the sorted list produced by MaterializeBranches.
	Branches []string
}

// NewSandboxService creates a sandbox service for the given input repository.
func NewSandboxService(inputDir string, opts SandboxOptions, gitClient GitClient, fs FileSystem, log *RunLog) *SandboxService {
	if opts.TempRoot == "" {
		opts.TempRoot = filepath.Join(os.TempDir(), "driftool")
	}
	return &SandboxService{
		inputDir: inputDir,
		opts:     opts,
		git:      gitClient,
		fs:       fs,
		filter:   NewDirectoryFilter(log),
		log:      log,
		now:      time.Now,
	}
}

// Adopt puts the service into bypass mode on a reference sandbox that was
// already cloned and configured by the worker pool. Only MergeAndCount and
// the working-sandbox lifecycle may be used afterwards.
func (s *SandboxService) Adopt(referencePath string) {
	s.referencePath = referencePath
	s.adopted = true
	s.log.Append("Bypassing sandbox setup, adopting " + referencePath)
}

// ReferencePath returns the reference sandbox directory.
func (s *SandboxService) ReferencePath() string {
	return s.referencePath
}

// CreateReference copies the input repository into a fresh reference
// sandbox (symlinks dereferenced, dangling ones stripped) and configures
// the synthetic git identity. The input tree is never written to.
func (s *SandboxService) CreateReference(ctx context.Context) error {
	path := filepath.Join(s.opts.TempRoot, uuid.NewString())
	if err := ensureDir(s.fs, s.opts.TempRoot); err != nil {
		return NewSandboxError("create", path, err)
	}
	if _, err := s.fs.CopyTree(s.inputDir, path, SymlinkDereference); err != nil {
		return NewSandboxError("copy", path, err)
	}
	s.referencePath = path
	if err := s.configureIdentity(ctx, path); err != nil {
		return err
	}
	s.log.Append("Created reference sandbox " + path)
	return nil
}

// CreateWorking clones the reference sandbox into a fresh working sandbox
// and re-configures the identity.
func (s *SandboxService) CreateWorking(ctx context.Context) error {
	s.log.Append("Creating working sandbox")
	path := filepath.Join(s.opts.TempRoot, uuid.NewString())
	if _, err := s.fs.CopyTree(s.referencePath, path, SymlinkPreserve); err != nil {
		return NewSandboxError("copy", path, err)
	}
	s.workingPath = path
	if err := s.configureIdentity(ctx, path); err != nil {
		return err
	}
	s.log.Appendf("FILE COUNT IN REFERENCE: %d", CountFiles(s.referencePath))
	s.log.Appendf("FILE COUNT IN WORKING: %d", CountFiles(path))
	return nil
}

// ClearWorking removes the working sandbox. Subsequent working-sandbox
// operations are undefined until CreateWorking runs again.
func (s *SandboxService) ClearWorking() {
	s.log.Append("Clearing working sandbox")
	if s.workingPath == "" {
		return
	}
	if err := s.fs.RemoveAll(s.workingPath); err != nil {
		s.log.Append("Failed to remove working sandbox: " + err.Error())
	}
	s.workingPath = ""
}

// ClearReference removes the reference sandbox. Adopted references are
// owned by the worker pool and are left alone.
func (s *SandboxService) ClearReference() {
	if s.referencePath == "" || s.adopted {
		return
	}
	if err := s.fs.RemoveAll(s.referencePath); err != nil {
		s.log.Append("Failed to remove reference sandbox: " + err.Error())
	}
	s.referencePath = ""
}

// configureIdentity writes the synthetic git identity into a sandbox.
func (s *SandboxService) configureIdentity(ctx context.Context, dir string) error {
	if err := s.git.ConfigSet(ctx, dir, "user.name", SandboxUserName); err != nil {
		return NewSandboxError("config", dir, err)
	}
	if err := s.git.ConfigSet(ctx, dir, "user.email", SandboxUserEmail); err != nil {
		return NewSandboxError("config", dir, err)
	}
	return nil
}

// MaterializeBranches enumerates all branches of the reference sandbox,
// drops ignored and inactive ones, and checks every kept branch out locally.
// When file selectors are configured, each kept branch additionally receives
// a deterministic commit restricting its content. The sorted result is
// stored on the service and returned.
func (s *SandboxService) MaterializeBranches(ctx context.Context) ([]string, error) {
	s.log.Append(">>> Start MaterializeBranches")
	path := s.referencePath

	allBranches, err := s.git.Branches(ctx, path)
	if err != nil {
		return nil, NewSandboxError("branch enumeration", path, err)
	}
	for _, branch := range allBranches {
		s.log.Append("branch of interest: " + branch)
	}

	excludes, err := compilePatterns(s.opts.BranchIgnore)
	if err != nil {
		return nil, NewConfigError("branch_ignore", err.Error())
	}

	lastCommits, err := s.branchActivityDays(ctx)
	if err != nil {
		return nil, err
	}

	s.Branches = nil
	for _, branch := range allBranches {
		if s.skipBranch(branch, excludes, lastCommits) {
			continue
		}
		s.Branches = append(s.Branches, branch)

		if err := s.git.Checkout(ctx, path, branch); err != nil {
			return nil, NewSandboxError("checkout "+branch, path, err)
		}
		if err := s.resetAndClean(ctx, path); err != nil {
			return nil, err
		}

		if s.opts.FetchUpdates {
			if err := s.git.Pull(ctx, path, "origin", branch); err != nil {
				s.log.Appendf("Pull of %s failed: %v", branch, err)
			}
		}

		s.log.Appendf("FILE COUNT IN %s = %d", branch, CountFiles(path))

		if err := s.commitFileSelectors(ctx); err != nil {
			return nil, err
		}
		if err := s.resetAndClean(ctx, path); err != nil {
			return nil, err
		}
	}

	// Branch names come in sorted from the enumeration; filtering keeps
	// the order.
	s.log.Appendf("Sorted branch list: %v", s.Branches)
	s.log.Append("<<< End MaterializeBranches")
	return s.Branches, nil
}

// skipBranch applies the ignore regexes and the activity timeout. A branch
// missing from the activity map is treated as suspect and excluded.
func (s *SandboxService) skipBranch(branch string, excludes []*regexp.Regexp, lastCommits map[string]int) bool {
	for _, expr := range excludes {
		if expr.MatchString(branch) {
			s.log.Append("IGNORE branch " + branch)
			return true
		}
	}
	days, ok := lastCommits[branch]
	if !ok {
		s.log.Append("PARSING PROBLEM: branch " + branch + " has no activity entry, excluding")
		return true
	}
	if s.opts.TimeoutDays > 0 && days > s.opts.TimeoutDays {
		s.log.Appendf("IGNORE branch %s: inactive for %d days", branch, days)
		return true
	}
	return false
}

// branchActivityDays returns the integer-day age of every branch's last
// commit, relative to 12:00 UTC of today. Pinning both sides of the
// subtraction to 12:00 keeps repeated runs on the same day identical.
func (s *SandboxService) branchActivityDays(ctx context.Context) (map[string]int, error) {
	s.log.Append(">>> Start branchActivityDays")
	activities, skipped, err := s.git.BranchActivity(ctx, s.referencePath)
	if err != nil {
		return nil, NewSandboxError("branch activity", s.referencePath, err)
	}
	for _, line := range skipped {
		s.log.Append("PARSING PROBLEM: cannot read activity line: " + line)
	}

	nowUTC := s.now().UTC()
	today := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 12, 0, 0, 0, time.UTC)

	lastCommits := make(map[string]int, len(activities))
	for _, act := range activities {
		d := act.CommitDate
		commitNoon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
		days := int(today.Sub(commitNoon).Hours() / 24)
		lastCommits[act.Name] = days
		s.log.Appendf("Branch %s last commit: %s (%d days)", act.Name, d.Format("2006-01-02"), days)
	}
	s.log.Append("<<< End branchActivityDays")
	return lastCommits, nil
}

// commitFileSelectors applies the whitelist and blacklist to the reference
// sandbox and commits the deletions, so every materialized branch carries
// the same restricted content.
func (s *SandboxService) commitFileSelectors(ctx context.Context) error {
	if len(s.opts.FileWhitelist) == 0 && len(s.opts.FileIgnore) == 0 {
		return nil
	}
	s.log.Append(">>> Commit file selectors")

	if len(s.opts.FileWhitelist) > 0 {
		s.log.Appendf("WHITELIST: %v", s.opts.FileWhitelist)
		if err := s.filter.KeepWhitelist(s.opts.FileWhitelist, s.referencePath, true); err != nil {
			return NewSandboxError("whitelist", s.referencePath, err)
		}
	}
	if len(s.opts.FileIgnore) > 0 {
		s.log.Appendf("BLACKLIST: %v", s.opts.FileIgnore)
		if err := s.filter.PurgeBlacklist(s.opts.FileIgnore, s.referencePath, true); err != nil {
			return NewSandboxError("blacklist", s.referencePath, err)
		}
	}

	if err := s.git.AddAll(ctx, s.referencePath); err != nil {
		return NewSandboxError("add", s.referencePath, err)
	}
	// Committing with an unchanged tree exits non-zero; the selectors may
	// legitimately match nothing on a branch.
	changed, err := s.git.HasChanges(ctx, s.referencePath)
	if err != nil {
		return NewSandboxError("status", s.referencePath, err)
	}
	if !changed {
		s.log.Append("File selectors matched nothing, skipping commit")
		return nil
	}
	if err := s.git.Commit(ctx, s.referencePath, setupCommitMessage); err != nil {
		return NewSandboxError("commit", s.referencePath, err)
	}
	return nil
}

// resetAndClean forces a pristine tracked state: reset --hard followed by
// clean -f -d -x.
func (s *SandboxService) resetAndClean(ctx context.Context, dir string) error {
	if err := s.git.ResetHard(ctx, dir); err != nil {
		return NewSandboxError("reset", dir, err)
	}
	if err := s.git.CleanForce(ctx, dir); err != nil {
		return NewSandboxError("clean", dir, err)
	}
	return nil
}

// MergeAndCount performs one speculative merge of incoming into base inside
// the working sandbox and returns the number of lines inside conflict
// regions across all conflicted files. The sandbox is forced back to a
// pristine state first, so the previous merge may leave arbitrary wreckage.
func (s *SandboxService) MergeAndCount(ctx context.Context, base, incoming string) (int, error) {
	dir := s.workingPath
	s.log.Append(">>> Start MergeAndCount")
	s.log.Appendf("Merge from %s into %s", incoming, base)

	// A prior conflicted merge leaves index entries, untracked files and
	// merge state that would poison the next checkout.
	s.git.MergeAbort(ctx, dir)
	if err := s.resetAndClean(ctx, dir); err != nil {
		return 0, err
	}

	if err := s.git.Checkout(ctx, dir, incoming); err != nil {
		return 0, NewSandboxError("checkout "+incoming, dir, err)
	}
	if err := s.resetAndClean(ctx, dir); err != nil {
		return 0, err
	}

	if err := s.git.Checkout(ctx, dir, base); err != nil {
		return 0, NewSandboxError("checkout "+base, dir, err)
	}
	if err := s.resetAndClean(ctx, dir); err != nil {
		return 0, err
	}

	s.log.Appendf("FILE COUNT IN BASE: %d", CountFiles(dir))

	output, clean, err := s.git.Merge(ctx, dir, incoming)
	if err != nil {
		return 0, NewSandboxError("merge", dir, err)
	}
	s.log.Append("#### MERGE STDOUT ####")
	s.log.Append(output)
	if clean {
		s.log.Append("Merge completed without conflicts")
	}

	distance := 0
	for _, file := range ConflictFiles(output) {
		data, err := s.fs.ReadFile(filepath.Join(dir, file))
		if err != nil {
			s.log.Append("Error: cannot open conflicting file: " + file)
			s.log.Append("--> Proceed without action")
			continue
		}
		lines, ok := CountConflictingLines(data)
		if !ok {
			s.log.Append("Error: conflicting file is not valid UTF-8: " + file)
			s.log.Append("--> Proceed without action")
			continue
		}
		distance += lines
	}

	s.log.Append("<<< End MergeAndCount")
	return distance, nil
}

// ConflictFiles extracts the conflicted file paths from git merge stdout.
// Git prints one "CONFLICT (content): Merge conflict in <path>" line per
// conflicted file.
func ConflictFiles(mergeOutput string) []string {
	var files []string
	for _, line := range strings.Split(mergeOutput, "\n") {
		idx := strings.Index(line, mergeConflictNeedle)
		if idx < 0 {
			continue
		}
		file := strings.TrimSpace(line[idx+len(mergeConflictNeedle):])
		if file != "" {
			files = append(files, file)
		}
	}
	return files
}

// CountConflictingLines walks a conflicted file and sums the line counts of
// all conflict regions, including both sides of each hunk. A region opens
// at a line whose stripped prefix is <<<<<<< and closes at >>>>>>>.
// Returns ok=false when the content is not valid UTF-8; such files are
// skipped by the caller.
func CountConflictingLines(data []byte) (sum int, ok bool) {
	if !utf8.Valid(data) {
		return 0, false
	}

	insideConflict := false
	startLine := 0

	for index, line := range strings.Split(string(data), "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, conflictStartMarker) && !insideConflict {
			insideConflict = true
			startLine = index
		} else if strings.HasPrefix(stripped, conflictEndMarker) && insideConflict {
			insideConflict = false
			sum += index - startLine
		}
	}
	return sum, true
}

// workerSandboxName produces a unique directory name for a per-worker
// reference clone.
func workerSandboxName(index int) string {
	return fmt.Sprintf("worker_%d_%s", index, uuid.NewString())
}
