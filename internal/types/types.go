// Package types holds the configuration and result types shared across the
// driftool services.
package types

import "encoding/json"

// AnalysisConfig mirrors the run configuration YAML passed on the command
// line. The blacklist accepts both the `blacklist` and `file_ignore` keys,
// and the whitelist both `whitelist` and `file_whitelist`.
type AnalysisConfig struct {
	InputRepository string
	OutputDirectory string
	ReportTitle     string
	FetchUpdates    bool
	PrintPlot       bool
	HTML            bool
	ShowHTML        bool
	BranchIgnore    []string
	FileIgnore      []string
	FileWhitelist   []string
	Timeout         int
	CSVFile         string
	SimpleExport    bool
	Anonymous       bool
}

// rawAnalysisConfig carries the YAML keys, including the legacy aliases for
// the file selectors.
type rawAnalysisConfig struct {
	InputRepository string   `yaml:"input_repository"`
	OutputDirectory string   `yaml:"output_directory"`
	ReportTitle     string   `yaml:"report_title"`
	FetchUpdates    bool     `yaml:"fetch_updates"`
	PrintPlot       bool     `yaml:"print_plot"`
	HTML            bool     `yaml:"html"`
	ShowHTML        bool     `yaml:"show_html"`
	BranchIgnore    []string `yaml:"branch_ignore"`
	Blacklist       []string `yaml:"blacklist"`
	FileIgnore      []string `yaml:"file_ignore"`
	Whitelist       []string `yaml:"whitelist"`
	FileWhitelist   []string `yaml:"file_whitelist"`
	Timeout         int      `yaml:"timeout"`
	CSVFile         string   `yaml:"csv_file"`
	SimpleExport    bool     `yaml:"simple_export"`
	Anonymous       bool     `yaml:"anonymous"`
}

// UnmarshalYAML decodes the configuration, merging the alias keys.
func (c *AnalysisConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawAnalysisConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}
	c.InputRepository = raw.InputRepository
	c.OutputDirectory = raw.OutputDirectory
	c.ReportTitle = raw.ReportTitle
	c.FetchUpdates = raw.FetchUpdates
	c.PrintPlot = raw.PrintPlot
	c.HTML = raw.HTML
	c.ShowHTML = raw.ShowHTML
	c.BranchIgnore = raw.BranchIgnore
	c.FileIgnore = append(append([]string{}, raw.Blacklist...), raw.FileIgnore...)
	c.FileWhitelist = append(append([]string{}, raw.Whitelist...), raw.FileWhitelist...)
	c.Timeout = raw.Timeout
	c.CSVFile = raw.CSVFile
	c.SimpleExport = raw.SimpleExport
	c.Anonymous = raw.Anonymous
	return nil
}

// MarshalYAML encodes the configuration using the canonical key names.
func (c AnalysisConfig) MarshalYAML() (interface{}, error) {
	return rawAnalysisConfig{
		InputRepository: c.InputRepository,
		OutputDirectory: c.OutputDirectory,
		ReportTitle:     c.ReportTitle,
		FetchUpdates:    c.FetchUpdates,
		PrintPlot:       c.PrintPlot,
		HTML:            c.HTML,
		ShowHTML:        c.ShowHTML,
		BranchIgnore:    c.BranchIgnore,
		Blacklist:       c.FileIgnore,
		Whitelist:       c.FileWhitelist,
		Timeout:         c.Timeout,
		CSVFile:         c.CSVFile,
		SimpleExport:    c.SimpleExport,
		Anonymous:       c.Anonymous,
	}, nil
}

// HasRepositoryOptions reports whether any git-analysis option is set that
// conflicts with CSV ingress mode.
func (c AnalysisConfig) HasRepositoryOptions() bool {
	return len(c.BranchIgnore) > 0 || len(c.FileIgnore) > 0 ||
		len(c.FileWhitelist) > 0 || c.FetchUpdates
}

// SysConf is the system configuration, kept separate from the run
// configuration so deployment images can pin it independently.
type SysConf struct {
	NumberThreads int `yaml:"number_threads"`
}

// BranchPair is an unordered pair of branches scheduled for one speculative
// merge measurement. Base is lexicographically smaller than Incoming.
type BranchPair struct {
	Base     string
	Incoming string
}

// DistanceEntry is one directed measurement: merging Incoming into Base
// produced ConflictingLines lines inside conflict regions.
type DistanceEntry struct {
	Base             string
	Incoming         string
	ConflictingLines float64
}

// ParallelOptions configures the merge worker pool.
type ParallelOptions struct {
	MaxWorkers int
}

// MeasuredEnvironment is the result of one drift analysis run.
// SD is -1 when the run degraded because of a worker failure; the matrices
// are zero-filled in that case so downstream consumers can filter.
type MeasuredEnvironment struct {
	Branches       []string    `json:"branches"`
	LineMatrix     [][]float64 `json:"line_matrix"`
	EmbeddingLines [][]float64 `json:"3d_embedding_lines"`
	SD             float64     `json:"sd"`
}

// Serialize renders the environment as the pretty-printed JSON artifact.
func (m MeasuredEnvironment) Serialize() (string, error) {
	// Field order of the artifact is fixed: sd first, then branches and
	// the matrices.
	obj := struct {
		SD             float64     `json:"sd"`
		Branches       []string    `json:"branches"`
		LineMatrix     [][]float64 `json:"line_matrix"`
		EmbeddingLines [][]float64 `json:"3d_embedding_lines"`
	}{
		SD:             m.SD,
		Branches:       m.Branches,
		LineMatrix:     m.LineMatrix,
		EmbeddingLines: m.EmbeddingLines,
	}
	data, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Degraded reports whether the run failed and carries placeholder matrices.
func (m MeasuredEnvironment) Degraded() bool {
	return m.SD < 0
}
