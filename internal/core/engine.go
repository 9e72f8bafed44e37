package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/driftool/driftool/internal/types"
)

// Manager orchestrates a drift analysis run: repository preparation,
// pairwise merge measurement (sequential or via the worker pool), matrix
// aggregation, embedding and the drift metric. It owns the temporary root
// all sandboxes live under and the central analysis log.
type Manager struct {
	config  types.AnalysisConfig
	sysconf types.SysConf

	gitClient GitClient
	fs        FileSystem
	ui        UICallback
	log       *RunLog
	csv       *CSVService
	report    *ReportService

	tempRoot string
	now      func() time.Time
}

// NewManager creates a Manager with production wiring. The UI defaults to
// silent; the CLI injects a terminal callback via SetUICallback.
func NewManager(config types.AnalysisConfig, sysconf types.SysConf) *Manager {
	log := NewRunLog(">>>>>>>> LOGSTART")
	csv := NewCSVService()
	return &Manager{
		config:    config,
		sysconf:   sysconf,
		gitClient: NewSystemGitClient(false),
		fs:        NewOSFileSystem(),
		ui:        &SilentUICallback{},
		log:       log,
		csv:       csv,
		report:    NewReportService(csv, log),
		tempRoot:  filepath.Join(os.TempDir(), "driftool"),
		now:       time.Now,
	}
}

// SetUICallback replaces the user-interaction sink.
func (m *Manager) SetUICallback(ui UICallback) {
	m.ui = ui
}

// SetVerbose switches the git layer to verbose command tracing.
func (m *Manager) SetVerbose(verbose bool) {
	m.gitClient = NewSystemGitClient(verbose)
}

// Log exposes the central analysis log.
func (m *Manager) Log() *RunLog {
	return m.log
}

// Analyze runs the full measurement pipeline and returns the measured
// environment. Worker-level failures degrade the result (sd = -1, zero
// matrices) instead of failing the run; configuration and sandbox-setup
// failures surface as errors.
func (m *Manager) Analyze(ctx context.Context) (types.MeasuredEnvironment, error) {
	m.log.Append(">>> Starting analysis")

	if m.config.CSVFile != "" {
		if m.config.HasRepositoryOptions() {
			return types.MeasuredEnvironment{}, NewConfigError("csv_file",
				"CSV ingress forbids repository operations (branch_ignore, blacklist, whitelist, fetch_updates)")
		}
		return m.analyzeCSV()
	}

	if !IsGitInstalled() {
		return types.MeasuredEnvironment{}, ErrGitNotInstalled
	}

	sandbox := NewSandboxService(m.config.InputRepository, SandboxOptions{
		TempRoot:      m.tempRoot,
		FetchUpdates:  m.config.FetchUpdates,
		BranchIgnore:  m.config.BranchIgnore,
		FileIgnore:    m.config.FileIgnore,
		FileWhitelist: m.config.FileWhitelist,
		TimeoutDays:   m.config.Timeout,
	}, m.gitClient, m.fs, m.log)

	if err := sandbox.CreateReference(ctx); err != nil {
		return types.MeasuredEnvironment{}, err
	}
	defer sandbox.ClearReference()

	branches, err := NewBranchService(sandbox, m.log).EnumerateBranches(ctx)
	if err != nil {
		return types.MeasuredEnvironment{}, err
	}

	var entries []types.DistanceEntry
	if m.sysconf.NumberThreads < 2 {
		m.log.Append("Running in single-thread mode")
		entries, err = m.measureSequential(ctx, sandbox, branches)
		if err != nil {
			return types.MeasuredEnvironment{}, err
		}
	} else {
		m.log.Appendf("Running in multi-thread mode on %d workers", m.sysconf.NumberThreads)
		entries, err = m.measureParallel(ctx, sandbox, branches)
		if err != nil {
			// Worker failures downgrade the run: the environment is
			// emitted with zero matrices and sd = -1 so reports can
			// discriminate.
			m.log.Append("Error during distance calculation. Emitting degraded environment.")
			m.ui.ShowWarning("Degraded Run", err.Error())
			return DegradedEnvironment(branches), nil
		}
	}

	env, err := ConstructEnvironment(entries, branches)
	if err != nil {
		return types.MeasuredEnvironment{}, err
	}
	m.log.Appendf("statement drift (sd) = %v", env.SD)
	m.log.Append(">>> Finished analysis")
	return env, nil
}

// analyzeCSV bypasses all git work and feeds a precomputed distance matrix
// into aggregation, embedding and the metric.
func (m *Manager) analyzeCSV() (types.MeasuredEnvironment, error) {
	m.log.Append("CSV ingress from " + m.config.CSVFile)
	branches, entries, err := m.csv.Read(m.config.CSVFile)
	if err != nil {
		return types.MeasuredEnvironment{}, err
	}
	env, err := ConstructEnvironment(entries, branches)
	if err != nil {
		return types.MeasuredEnvironment{}, err
	}
	m.log.Appendf("statement drift (sd) = %v", env.SD)
	return env, nil
}

// measureSequential measures every unordered pair in both directions on a
// single working sandbox lineage and stores the average for both
// directions.
func (m *Manager) measureSequential(ctx context.Context, sandbox *SandboxService, branches []string) ([]types.DistanceEntry, error) {
	pairs := SchedulePairs(branches)
	m.log.Appendf("Calculating distances for %d branch combinations", len(pairs)*2)

	tracker := m.ui.NewProgress(len(pairs), "Measuring merge drift")

	var entries []types.DistanceEntry
	for _, pair := range pairs {
		distanceA, err := m.measureOnce(ctx, sandbox, pair.Base, pair.Incoming)
		if err != nil {
			tracker.Fail(err)
			return nil, err
		}
		distanceB, err := m.measureOnce(ctx, sandbox, pair.Incoming, pair.Base)
		if err != nil {
			tracker.Fail(err)
			return nil, err
		}

		avg := (distanceA + distanceB) * 0.5
		entries = append(entries,
			types.DistanceEntry{Base: pair.Base, Incoming: pair.Incoming, ConflictingLines: avg},
			types.DistanceEntry{Base: pair.Incoming, Incoming: pair.Base, ConflictingLines: avg},
		)
		tracker.Increment(EncodePair(pair.Base, pair.Incoming))
	}

	tracker.Complete()
	return entries, nil
}

// measureOnce runs one directed merge measurement on a fresh working
// sandbox.
func (m *Manager) measureOnce(ctx context.Context, sandbox *SandboxService, base, incoming string) (float64, error) {
	if err := sandbox.CreateWorking(ctx); err != nil {
		return 0, err
	}
	defer sandbox.ClearWorking()
	distance, err := sandbox.MergeAndCount(ctx, base, incoming)
	if err != nil {
		return 0, err
	}
	return float64(distance), nil
}

// measureParallel partitions the pair set and fans it out across the worker
// pool. Each worker adopts its pre-cloned sandbox in bypass mode and
// measures one direction per pair, storing the value for both directions —
// a deliberate 2x speed tradeoff over the sequential path.
func (m *Manager) measureParallel(ctx context.Context, sandbox *SandboxService, branches []string) ([]types.DistanceEntry, error) {
	pairs := SchedulePairs(branches)
	partitions := Partition(pairs, m.sysconf.NumberThreads)
	m.log.Appendf("Scheduled %d pairs into %d partitions", len(pairs), len(partitions))

	executor := NewParallelExecutor(types.ParallelOptions{MaxWorkers: m.sysconf.NumberThreads},
		m.gitClient, m.fs, m.ui, m.log)

	measure := func(ctx context.Context, sandboxPath string, partition []types.BranchPair, workerLog *RunLog) ([]types.DistanceEntry, error) {
		worker := NewSandboxService("", SandboxOptions{TempRoot: m.tempRoot}, m.gitClient, m.fs, workerLog)
		worker.Adopt(sandboxPath)

		var entries []types.DistanceEntry
		for _, pair := range partition {
			if err := worker.CreateWorking(ctx); err != nil {
				return nil, err
			}
			distance, err := worker.MergeAndCount(ctx, pair.Base, pair.Incoming)
			worker.ClearWorking()
			if err != nil {
				return nil, err
			}
			k := float64(distance)
			entries = append(entries,
				types.DistanceEntry{Base: pair.Base, Incoming: pair.Incoming, ConflictingLines: k},
				types.DistanceEntry{Base: pair.Incoming, Incoming: pair.Base, ConflictingLines: k},
			)
		}
		return entries, nil
	}

	return executor.ExecuteMergeMeasurements(ctx, sandbox.ReferencePath(), partitions, measure)
}

// ConstructEnvironment builds the measured environment from a symmetric
// distance relation: matrix aggregation, 3D embedding and the drift scalar.
func ConstructEnvironment(entries []types.DistanceEntry, branches []string) (types.MeasuredEnvironment, error) {
	matrix, err := BuildDistanceMatrix(entries, branches)
	if err != nil {
		return types.MeasuredEnvironment{}, err
	}
	embedding, err := Embed(matrix, EmbeddingDimensions)
	if err != nil {
		return types.MeasuredEnvironment{}, err
	}
	return types.MeasuredEnvironment{
		Branches:       branches,
		LineMatrix:     MatrixToSlices(matrix),
		EmbeddingLines: MatrixToSlices(embedding),
		SD:             MedianDistanceAvg(embedding),
	}, nil
}

// DegradedEnvironment returns the zero-filled environment emitted when a
// worker failure aborted aggregation.
func DegradedEnvironment(branches []string) types.MeasuredEnvironment {
	n := len(branches)
	return types.MeasuredEnvironment{
		Branches:       branches,
		LineMatrix:     ZeroMatrix(n, n),
		EmbeddingLines: ZeroMatrix(n, EmbeddingDimensions),
		SD:             -1,
	}
}

// WriteArtifacts persists the run's artifacts and log into the configured
// output directory.
func (m *Manager) WriteArtifacts(env types.MeasuredEnvironment) error {
	identifier := ResultIdentifier(m.config.Anonymous, m.now())
	return m.report.WriteArtifacts(m.config, env, identifier)
}

// WriteLogOnFailure force-writes the log after a fatal error so the
// transcript survives for post-mortem diagnosis.
func (m *Manager) WriteLogOnFailure(cause error) {
	m.log.Append(fmt.Sprintf("-------- Force writing log due to unexpected termination: %v", cause))
	if err := m.report.WriteLog(m.config.OutputDirectory); err != nil {
		m.ui.ShowWarning("Log Write Failed", err.Error())
	}
}
