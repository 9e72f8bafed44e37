package git

import (
	"context"
	"sort"
	"strings"
	"time"
)

const activityFormat = "%(committerdate:short)~%(refname:short)"

// Activity records the last commit date of a branch.
type Activity struct {
	Name       string
	CommitDate time.Time
}

// Branches returns the normalized names of all local and remote branches.
// Remote prefixes are stripped, the symbolic HEAD ref is rejected, and the
// result is deduplicated and sorted.
func (g *Git) Branches(ctx context.Context) ([]string, error) {
	lines, err := g.RunLines(ctx, "branch", "--all")
	if err != nil {
		return nil, err
	}
	return NormalizeBranchLines(lines), nil
}

// NormalizeBranchLines converts raw `git branch --all` output lines into a
// deduplicated, sorted list of branch names. The current-branch marker,
// whitespace and the remotes/origin/ prefix are dropped; the HEAD symref and
// empty lines are rejected.
func NormalizeBranchLines(lines []string) []string {
	seen := make(map[string]bool)
	var branches []string
	for _, line := range lines {
		name := strings.ReplaceAll(line, "remotes/origin/", "")
		name = strings.ReplaceAll(name, "*", "")
		name = strings.ReplaceAll(name, " ", "")
		if name == "" || strings.Contains(name, "HEAD->") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		branches = append(branches, name)
	}
	sort.Strings(branches)
	return branches
}

// BranchActivity returns the last commit date per branch, parsed from
// `git branch -a --format="%(committerdate:short)~%(refname:short)"`.
// The HEAD symref is filtered out and origin/ prefixes are stripped so the
// names line up with Branches. Lines that fail to parse are skipped and
// returned in the second value for the caller to log.
func (g *Git) BranchActivity(ctx context.Context) ([]Activity, []string, error) {
	lines, err := g.RunLines(ctx, "branch", "-a", "--format="+activityFormat)
	if err != nil {
		return nil, nil, err
	}
	var activities []Activity
	var skipped []string
	for _, line := range lines {
		if line == "" || strings.Contains(line, "HEAD") {
			continue
		}
		act, ok := ParseActivityLine(line)
		if !ok {
			skipped = append(skipped, line)
			continue
		}
		activities = append(activities, act)
	}
	return activities, skipped, nil
}

// ParseActivityLine parses one `<date>~<refname>` line. The date is the
// committerdate:short form (2006-01-02); refnames keep their full path minus
// an origin/ prefix.
func ParseActivityLine(line string) (Activity, bool) {
	idx := strings.Index(line, "~")
	if idx < 0 {
		return Activity{}, false
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(line[:idx]))
	if err != nil {
		return Activity{}, false
	}
	name := strings.TrimSpace(line[idx+1:])
	name = strings.TrimPrefix(name, "origin/")
	if name == "" {
		return Activity{}, false
	}
	return Activity{Name: name, CommitDate: date}, true
}
