package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// MedianDistanceAvg computes the drift scalar: the mean Euclidean distance
// of every embedded point to the coordinate-wise median of the point cloud.
// The median (not the centroid) keeps a single far-outlier branch from
// dominating the metric.
func MedianDistanceAvg(points *mat.Dense) float64 {
	if points == nil {
		return 0
	}
	n, dims := points.Dims()
	if n == 0 {
		return 0
	}

	median := make([]float64, dims)
	col := make([]float64, n)
	for j := 0; j < dims; j++ {
		mat.Col(col, j, points)
		median[j] = medianOf(col)
	}

	total := 0.0
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < dims; j++ {
			d := points.At(i, j) - median[j]
			sum += d * d
		}
		total += math.Sqrt(sum)
	}
	return total / float64(n)
}

// medianOf returns the median of values, averaging the two middle elements
// for even-length input. A sorted copy is used; the input slice is left
// unchanged.
func medianOf(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
