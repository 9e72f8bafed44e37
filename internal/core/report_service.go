package core

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/driftool/driftool/internal/types"
)

// ReportService persists the artifacts of a run: the JSON environment, the
// matrix CSV, the analysis log and the optional single-value export.
// Artifacts are written even for degraded runs so downstream consumers can
// detect and filter them.
type ReportService struct {
	csv *CSVService
	log *RunLog
}

// NewReportService creates a ReportService.
func NewReportService(csv *CSVService, log *RunLog) *ReportService {
	return &ReportService{csv: csv, log: log}
}

// ResultIdentifier returns the artifact basename: a timestamped identifier,
// or the fixed name "report" in anonymous mode.
func ResultIdentifier(anonymous bool, now time.Time) string {
	if anonymous {
		return "report"
	}
	stamp := now.Format("2006-01-02 15:04:05.000000")
	replacer := strings.NewReplacer(":", "_", ".", "_", " ", "_")
	return "driftool_results_" + replacer.Replace(stamp)
}

// WriteArtifacts writes every configured artifact into the output
// directory. The log file is written last so it records artifact I/O too.
func (r *ReportService) WriteArtifacts(cfg types.AnalysisConfig, env types.MeasuredEnvironment, identifier string) error {
	if cfg.OutputDirectory == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDirectory, 0o755); err != nil {
		return err
	}

	serialized, err := env.Serialize()
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(cfg.OutputDirectory, identifier+".json")
	if err := os.WriteFile(jsonPath, []byte(serialized), 0o644); err != nil {
		return err
	}
	r.log.Append("Wrote environment artifact " + jsonPath)

	csvPath := filepath.Join(cfg.OutputDirectory, identifier+".csv")
	if err := r.csv.Export(csvPath, env); err != nil {
		return err
	}
	r.log.Append("Wrote distance matrix " + csvPath)

	if cfg.SimpleExport {
		simplePath := filepath.Join(cfg.OutputDirectory, "d_"+cfg.ReportTitle+".txt")
		if err := os.WriteFile(simplePath, []byte(strconv.FormatFloat(env.SD, 'f', -1, 64)), 0o644); err != nil {
			return err
		}
		r.log.Append("Wrote simple export " + simplePath)
	}

	// Rendering options handled by external reporters are recorded only.
	if cfg.PrintPlot || cfg.HTML || cfg.ShowHTML {
		r.log.Append("Rendering options (print_plot/html/show_html) are delegated to the external reporter")
	}

	return r.WriteLog(cfg.OutputDirectory)
}

// WriteLog flushes the analysis log to log.txt in the output directory.
// Called on failure paths too, so a crashed run still leaves a transcript.
func (r *ReportService) WriteLog(outputDirectory string) error {
	if outputDirectory == "" {
		return nil
	}
	if err := os.MkdirAll(outputDirectory, 0o755); err != nil {
		return err
	}
	return r.log.WriteFile(filepath.Join(outputDirectory, "log.txt"))
}
