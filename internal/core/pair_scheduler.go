package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/driftool/driftool/internal/types"
)

// PairSeparator joins the two branch names of a pair in the exchange files.
// '~' cannot occur in a git branch name, so the encoding is unambiguous.
const PairSeparator = "~"

// SchedulePairs produces the unordered pair set over the given branches in
// canonical order: for sorted input, every (branches[i], branches[j]) with
// i < j. Self-pairs and duplicates are skipped. The result has
// n(n-1)/2 elements.
func SchedulePairs(branches []string) []types.BranchPair {
	var pairs []types.BranchPair
	seen := make(map[string]bool)
	for _, b1 := range branches {
		for _, b2 := range branches {
			if b1 == b2 {
				continue
			}
			key := EncodePair(b1, b2)
			reversed := EncodePair(b2, b1)
			if seen[key] || seen[reversed] {
				continue
			}
			seen[key] = true
			seen[reversed] = true
			pairs = append(pairs, types.BranchPair{Base: b1, Incoming: b2})
		}
	}
	return pairs
}

// Partition distributes pairs round-robin across count partitions and drops
// the empty ones. Every pair lands in exactly one partition.
func Partition(pairs []types.BranchPair, count int) [][]types.BranchPair {
	if count < 1 {
		count = 1
	}
	buckets := make([][]types.BranchPair, count)
	for i, pair := range pairs {
		idx := i % count
		buckets[idx] = append(buckets[idx], pair)
	}
	var partitions [][]types.BranchPair
	for _, bucket := range buckets {
		if len(bucket) > 0 {
			partitions = append(partitions, bucket)
		}
	}
	return partitions
}

// EncodePair renders a pair as its task-file line.
func EncodePair(base, incoming string) string {
	return base + PairSeparator + incoming
}

// DecodePair parses one `a~b` task-file line.
func DecodePair(line string) (types.BranchPair, error) {
	parts := strings.Split(line, PairSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return types.BranchPair{}, fmt.Errorf("malformed pair line %q", line)
	}
	return types.BranchPair{Base: parts[0], Incoming: parts[1]}, nil
}

// EncodeEntry renders a measurement as its result-file line `a~b~k`.
func EncodeEntry(entry types.DistanceEntry) string {
	return entry.Base + PairSeparator + entry.Incoming + PairSeparator +
		strconv.FormatFloat(entry.ConflictingLines, 'f', -1, 64)
}

// DecodeEntry parses one `a~b~k` result-file line.
func DecodeEntry(line string) (types.DistanceEntry, error) {
	parts := strings.Split(line, PairSeparator)
	if len(parts) != 3 {
		return types.DistanceEntry{}, fmt.Errorf("malformed result line %q", line)
	}
	k, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return types.DistanceEntry{}, fmt.Errorf("malformed conflict count in %q: %w", line, err)
	}
	return types.DistanceEntry{Base: parts[0], Incoming: parts[1], ConflictingLines: k}, nil
}
