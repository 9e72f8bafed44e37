package core

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/driftool/driftool/internal/types"
)

// MeasurePartitionFunc measures every pair of one partition inside the
// given sandbox and returns the resulting distance entries, both directions
// per pair. ctx controls cancellation of the git operations.
type MeasurePartitionFunc func(ctx context.Context, sandboxPath string, pairs []types.BranchPair, workerLog *RunLog) ([]types.DistanceEntry, error)

// workerJob hands one partition to a worker: its pre-cloned sandbox and the
// task file carrying the pair encoding.
type workerJob struct {
	index    int
	sandbox  string
	taskFile string
}

// workerResult is the in-process equivalent of the worker wire protocol:
// ResultFile plays the role of the path printed on stdout, Err the role of
// non-empty stderr.
type workerResult struct {
	index      int
	resultFile string
	log        *RunLog
	err        error
}

// ParallelExecutor fans the merge phase out across per-partition workers.
// Workers share nothing: each owns a distinct sandbox directory cloned from
// the reference and a distinct result file in the exchange directory.
type ParallelExecutor struct {
	maxWorkers int
	gitClient  GitClient
	fs         FileSystem
	ui         UICallback
	log        *RunLog
}

// NewParallelExecutor creates a new parallel executor.
func NewParallelExecutor(opts types.ParallelOptions, gitClient GitClient, fs FileSystem, ui UICallback, log *RunLog) *ParallelExecutor {
	workers := opts.MaxWorkers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelExecutor{
		maxWorkers: workers,
		gitClient:  gitClient,
		fs:         fs,
		ui:         ui,
		log:        log,
	}
}

// ExecuteMergeMeasurements clones the reference sandbox once per partition,
// writes the task files, runs the workers concurrently and ingests their
// result files. Any worker failure or an incomplete result set aborts
// aggregation with a WorkerError; the caller downgrades the run.
func (p *ParallelExecutor) ExecuteMergeMeasurements(
	ctx context.Context,
	referencePath string,
	partitions [][]types.BranchPair,
	measure MeasurePartitionFunc,
) ([]types.DistanceEntry, error) {
	if len(partitions) == 0 {
		return nil, nil
	}

	root := filepath.Dir(referencePath)
	exchangeDir, err := p.fs.CreateTemp(root, "exchange-*")
	if err != nil {
		return nil, NewSandboxError("exchange dir", root, err)
	}
	defer func() { _ = p.fs.RemoveAll(exchangeDir) }()

	jobs := make(chan workerJob, len(partitions))
	results := make(chan workerResult, len(partitions))

	var workerDirs []string
	defer func() {
		for _, dir := range workerDirs {
			_ = p.fs.RemoveAll(dir)
		}
	}()

	for i, partition := range partitions {
		workerDir := filepath.Join(root, workerSandboxName(i))
		p.log.Append("create reference copy " + workerDir)
		if _, err := p.fs.CopyTree(referencePath, workerDir, SymlinkPreserve); err != nil {
			return nil, NewSandboxError("worker clone", workerDir, err)
		}
		workerDirs = append(workerDirs, workerDir)
		if err := p.gitClient.ConfigSet(ctx, workerDir, "user.name", SandboxUserName); err != nil {
			return nil, NewSandboxError("config", workerDir, err)
		}
		if err := p.gitClient.ConfigSet(ctx, workerDir, "user.email", SandboxUserEmail); err != nil {
			return nil, NewSandboxError("config", workerDir, err)
		}

		taskFile, err := p.writeTaskFile(exchangeDir, i, partition)
		if err != nil {
			return nil, err
		}

		jobs <- workerJob{index: i, sandbox: workerDir, taskFile: taskFile}
	}
	close(jobs)

	workerCount := p.maxWorkers
	if workerCount > len(partitions) {
		workerCount = len(partitions)
	}

	tracker := p.ui.NewProgress(len(partitions), "Measuring merge drift")

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go p.mergeWorker(ctx, &wg, exchangeDir, jobs, results, measure)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results; the matrix is independent of completion order
	// because every entry is keyed by branch pair.
	var entries []types.DistanceEntry
	var firstErr error
	for result := range results {
		p.log.Extend(result.log)
		if result.err != nil {
			tracker.Fail(result.err)
			if firstErr == nil {
				firstErr = NewWorkerError(result.index, "worker reported a failure", result.err)
			}
			continue
		}
		tracker.Increment(fmt.Sprintf("worker %d finished", result.index))

		partitionEntries, err := p.readResultFile(result.resultFile)
		if err != nil {
			if firstErr == nil {
				firstErr = NewWorkerError(result.index, "result file unreadable", err)
			}
			continue
		}
		if len(partitionEntries) != 2*len(partitions[result.index]) {
			if firstErr == nil {
				firstErr = NewWorkerError(result.index,
					fmt.Sprintf("incomplete results: got %d entries, want %d",
						len(partitionEntries), 2*len(partitions[result.index])), nil)
			}
			continue
		}
		entries = append(entries, partitionEntries...)
	}

	if firstErr != nil {
		p.log.Append("Error during parallel execution: " + firstErr.Error())
		return nil, firstErr
	}
	tracker.Complete()
	return entries, nil
}

// mergeWorker processes partitions from the jobs channel. Each job re-reads
// its pairs from the task file so the exchange files remain the single
// source of truth for what a worker measured.
func (p *ParallelExecutor) mergeWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	exchangeDir string,
	jobs <-chan workerJob,
	results chan<- workerResult,
	measure MeasurePartitionFunc,
) {
	defer wg.Done()

	for job := range jobs {
		workerLog := NewRunLog(fmt.Sprintf("########## WORKER %d ##########", job.index))

		if ctx.Err() != nil {
			results <- workerResult{index: job.index, log: workerLog, err: ctx.Err()}
			continue
		}

		pairs, err := p.readTaskFile(job.taskFile)
		if err != nil {
			results <- workerResult{index: job.index, log: workerLog, err: err}
			continue
		}

		entries, err := measure(ctx, job.sandbox, pairs, workerLog)
		if err != nil {
			results <- workerResult{index: job.index, log: workerLog, err: err}
			continue
		}

		resultFile, err := p.writeResultFile(exchangeDir, job.index, entries)
		if err != nil {
			results <- workerResult{index: job.index, log: workerLog, err: err}
			continue
		}

		results <- workerResult{index: job.index, resultFile: resultFile, log: workerLog}
	}
}

// writeTaskFile writes one `a~b` line per pair.
func (p *ParallelExecutor) writeTaskFile(exchangeDir string, index int, pairs []types.BranchPair) (string, error) {
	var b strings.Builder
	for _, pair := range pairs {
		b.WriteString(EncodePair(pair.Base, pair.Incoming))
		b.WriteString("\n")
	}
	path := filepath.Join(exchangeDir, fmt.Sprintf("out_%d_%s.txt", index, uuid.NewString()))
	if err := p.fs.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", NewSandboxError("task file", path, err)
	}
	return path, nil
}

// readTaskFile parses a task file back into pairs.
func (p *ParallelExecutor) readTaskFile(path string) ([]types.BranchPair, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pairs []types.BranchPair
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pair, err := DecodePair(line)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// writeResultFile writes one `a~b~k` line per entry.
func (p *ParallelExecutor) writeResultFile(exchangeDir string, index int, entries []types.DistanceEntry) (string, error) {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(EncodeEntry(entry))
		b.WriteString("\n")
	}
	path := filepath.Join(exchangeDir, fmt.Sprintf("in_%d_%s.txt", index, uuid.NewString()))
	if err := p.fs.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// readResultFile parses a result file into distance entries.
func (p *ParallelExecutor) readResultFile(path string) ([]types.DistanceEntry, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []types.DistanceEntry
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := DecodeEntry(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
