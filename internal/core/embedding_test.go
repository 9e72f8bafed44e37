package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func symFromRows(rows [][]float64) *mat.SymDense {
	n := len(rows)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.SetSym(i, j, rows[i][j])
		}
	}
	return m
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func embeddedDistances(points *mat.Dense) [][]float64 {
	n, _ := points.Dims()
	out := ZeroMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = euclidean(mat.Row(nil, i, points), mat.Row(nil, j, points))
		}
	}
	return out
}

func TestEmbedTwoPoints(t *testing.T) {
	// Two points at distance 1 embed exactly; classical MDS places them
	// symmetrically around the origin.
	dist := symFromRows([][]float64{
		{0, 1},
		{1, 0},
	})
	points, err := Embed(dist, EmbeddingDimensions)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	rows, cols := points.Dims()
	if rows != 2 || cols != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", rows, cols)
	}
	d := euclidean(mat.Row(nil, 0, points), mat.Row(nil, 1, points))
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("embedded distance = %v, want 1", d)
	}
}

func TestEmbedReproducesEuclideanMatrix(t *testing.T) {
	// An equilateral configuration is exactly embeddable, so classical MDS
	// must reproduce all pairwise distances.
	dist := symFromRows([][]float64{
		{0, 2, 2},
		{2, 0, 2},
		{2, 2, 0},
	})
	points, err := Embed(dist, EmbeddingDimensions)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	got := embeddedDistances(points)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(got[i][j]-dist.At(i, j)) > 1e-9 {
				t.Errorf("distance (%d,%d) = %v, want %v", i, j, got[i][j], dist.At(i, j))
			}
		}
	}
}

func TestEmbedZeroMatrix(t *testing.T) {
	dist := symFromRows([][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	points, err := Embed(dist, EmbeddingDimensions)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	n, _ := points.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			if points.At(i, j) != 0 {
				t.Errorf("point[%d][%d] = %v, want 0", i, j, points.At(i, j))
			}
		}
	}
}

func TestEmbedSingleBranch(t *testing.T) {
	dist := mat.NewSymDense(1, nil)
	points, err := Embed(dist, EmbeddingDimensions)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	rows, cols := points.Dims()
	if rows != 1 || cols != 3 {
		t.Fatalf("shape = %dx%d, want 1x3", rows, cols)
	}
}

func TestEmbedDeterministic(t *testing.T) {
	dist := symFromRows([][]float64{
		{0, 3, 7, 1},
		{3, 0, 4, 2},
		{7, 4, 0, 5},
		{1, 2, 5, 0},
	})
	first, err := Embed(dist, EmbeddingDimensions)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	second, err := Embed(dist, EmbeddingDimensions)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !mat.Equal(first, second) {
		t.Error("repeated embeddings differ")
	}
}
