package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/driftool/driftool/internal/types"
)

// csvDelimiter separates both the branch header and the matrix cells.
const csvDelimiter = ';'

// CSVService reads and writes the distance-matrix CSV format: one header
// line with the branch names, followed by the n×n matrix row by row. It is
// the bypass entry for offline re-analysis and the export half of the
// round-trip property.
type CSVService struct{}

// NewCSVService creates a CSVService.
func NewCSVService() *CSVService {
	return &CSVService{}
}

// Read parses a distance CSV into the branch list and the symmetric
// distance relation. The matrix must be square, symmetric and zero on the
// diagonal; violations yield a CSVFormatError.
func (s *CSVService) Read(path string) ([]string, []types.DistanceEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, NewCSVFormatError(path, err.Error())
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.Comma = csvDelimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, NewCSVFormatError(path, err.Error())
	}
	if len(records) < 2 {
		return nil, nil, NewCSVFormatError(path, "expected a branch header and at least one matrix row")
	}

	branches := records[0]
	n := len(branches)
	rows := records[1:]
	if len(rows) != n {
		return nil, nil, NewCSVFormatError(path, fmt.Sprintf("expected %d matrix rows for %d branches, got %d", n, n, len(rows)))
	}

	values := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, nil, NewCSVFormatError(path, fmt.Sprintf("row %d has %d columns, want %d", i+1, len(row), n))
		}
		values[i] = make([]float64, n)
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, nil, NewCSVFormatError(path, fmt.Sprintf("row %d column %d: %v", i+1, j+1, err))
			}
			if v < 0 {
				return nil, nil, NewCSVFormatError(path, fmt.Sprintf("row %d column %d: negative distance", i+1, j+1))
			}
			values[i][j] = v
		}
	}

	for i := 0; i < n; i++ {
		if values[i][i] != 0 {
			return nil, nil, NewCSVFormatError(path, fmt.Sprintf("non-zero self-distance for branch %s", branches[i]))
		}
		for j := i + 1; j < n; j++ {
			if values[i][j] != values[j][i] {
				return nil, nil, NewCSVFormatError(path, fmt.Sprintf("matrix is not symmetric at (%s, %s)", branches[i], branches[j]))
			}
		}
	}

	var entries []types.DistanceEntry
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			entries = append(entries, types.DistanceEntry{
				Base:             branches[i],
				Incoming:         branches[j],
				ConflictingLines: values[i][j],
			})
		}
	}
	return branches, entries, nil
}

// Export writes the environment's distance matrix in the same format Read
// consumes, so exported matrices can be re-analyzed offline.
func (s *CSVService) Export(path string, env types.MeasuredEnvironment) error {
	var b strings.Builder
	b.WriteString(strings.Join(env.Branches, string(csvDelimiter)))
	b.WriteString("\n")
	for _, row := range env.LineMatrix {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		b.WriteString(strings.Join(cells, string(csvDelimiter)))
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
