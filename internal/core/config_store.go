package core

import (
	"github.com/driftool/driftool/internal/types"
)

// DefaultSysConfPath is the system configuration used when no explicit path
// is given. It is relative, so it resolves against the working directory.
const DefaultSysConfPath = "driftool.sysconf.yaml"

// LoadAnalysisConfig reads and validates the run configuration.
func LoadAnalysisConfig(path string) (types.AnalysisConfig, error) {
	store := NewYAMLStore[types.AnalysisConfig](path, false)
	cfg, err := store.Load()
	if err != nil {
		return cfg, NewConfigError("", err.Error())
	}

	if cfg.CSVFile == "" && cfg.InputRepository == "" {
		return cfg, NewConfigError("input_repository", "an input repository is required unless csv_file is set")
	}
	if cfg.CSVFile != "" && cfg.HasRepositoryOptions() {
		return cfg, NewConfigError("csv_file", "CSV ingress forbids repository operations (branch_ignore, blacklist, whitelist, fetch_updates)")
	}
	if cfg.Timeout < 0 {
		return cfg, NewConfigError("timeout", "timeout must be a non-negative number of days")
	}

	return cfg, nil
}

// SaveAnalysisConfig writes a run configuration, used by the init wizard.
func SaveAnalysisConfig(path string, cfg types.AnalysisConfig) error {
	return NewYAMLStore[types.AnalysisConfig](path, false).Save(cfg)
}

// LoadSysConf reads the system configuration. A missing file, a missing
// number_threads key or an explicit 0 yields the single-threaded default;
// a negative thread count is rejected.
func LoadSysConf(path string) (types.SysConf, error) {
	store := NewYAMLStore[types.SysConf](path, true)
	sys, err := store.Load()
	if err != nil {
		return sys, NewConfigError("", err.Error())
	}
	if sys.NumberThreads == 0 {
		sys.NumberThreads = 1
	}
	if sys.NumberThreads < 1 {
		return sys, NewConfigError("number_threads", "number_threads must be at least 1")
	}
	return sys, nil
}
