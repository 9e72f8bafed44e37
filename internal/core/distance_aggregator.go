package core

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/driftool/driftool/internal/types"
)

// BuildDistanceMatrix assembles the symmetric distance matrix over the
// sorted branch list from a list of directed measurements. Multiple entries
// for the same unordered pair are averaged (single-thread mode measures
// both directions; they can disagree because git's recursive merge is not
// commutative). The diagonal is zero by construction.
func BuildDistanceMatrix(entries []types.DistanceEntry, branches []string) (*mat.SymDense, error) {
	n := len(branches)
	index := make(map[string]int, n)
	for i, branch := range branches {
		index[branch] = i
	}

	sums := make([]float64, n*n)
	counts := make([]int, n*n)

	for _, entry := range entries {
		xi, ok := index[entry.Base]
		if !ok {
			return nil, fmt.Errorf("distance entry references unknown branch %q", entry.Base)
		}
		yi, ok := index[entry.Incoming]
		if !ok {
			return nil, fmt.Errorf("distance entry references unknown branch %q", entry.Incoming)
		}
		if entry.ConflictingLines < 0 {
			return nil, fmt.Errorf("negative distance for %s%s%s", entry.Base, PairSeparator, entry.Incoming)
		}
		if xi == yi {
			continue // self-distance is zero per definition
		}
		// Fold the directed measurement onto the unordered pair.
		lo, hi := xi, yi
		if lo > hi {
			lo, hi = hi, lo
		}
		sums[lo*n+hi] += entry.ConflictingLines
		counts[lo*n+hi]++
	}

	matrix := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if c := counts[i*n+j]; c > 0 {
				matrix.SetSym(i, j, sums[i*n+j]/float64(c))
			}
		}
	}
	return matrix, nil
}

// MatrixToSlices converts a matrix into row slices for serialization.
func MatrixToSlices(m mat.Matrix) [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j] = m.At(i, j)
		}
		out[i] = row
	}
	return out
}

// ZeroMatrix returns an n×m zero slice matrix, used for degraded
// environments.
func ZeroMatrix(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}
