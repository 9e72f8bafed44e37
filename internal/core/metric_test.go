package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMedianDistanceAvg(t *testing.T) {
	tests := []struct {
		name   string
		points []float64 // row-major n×3
		rows   int
		want   float64
	}{
		{
			"single point",
			[]float64{1, 2, 3},
			1,
			0,
		},
		{
			// Median is the midpoint; both points sit 0.5 away.
			"two points distance one",
			[]float64{-0.5, 0, 0, 0.5, 0, 0},
			2,
			0.5,
		},
		{
			// Median = (0,0,0) (middle point); distances 5, 0, 5.
			"three collinear points",
			[]float64{-3, -4, 0, 0, 0, 0, 3, 4, 0},
			3,
			10.0 / 3.0,
		},
		{
			"identical points",
			[]float64{2, 2, 2, 2, 2, 2, 2, 2, 2},
			3,
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := mat.NewDense(tt.rows, 3, tt.points)
			got := MedianDistanceAvg(points)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MedianDistanceAvg = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedianDistanceAvgOutlierRobustness(t *testing.T) {
	// Three clustered points and one far outlier: the median stays inside
	// the cluster, so only the outlier contributes a large distance.
	points := mat.NewDense(4, 3, []float64{
		0, 0, 0,
		0.1, 0, 0,
		0.2, 0, 0,
		1000, 0, 0,
	})
	got := MedianDistanceAvg(points)
	// Median x = (0.1+0.2)/2 = 0.15; distances 0.15, 0.05, 0.05, 999.85.
	want := (0.15 + 0.05 + 0.05 + 999.85) / 4
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MedianDistanceAvg = %v, want %v", got, want)
	}
}

func TestMedianOf(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd length", []float64{3, 1, 2}, 2},
		{"even length averages middles", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := medianOf(tt.values); got != tt.want {
				t.Errorf("medianOf(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedianDistanceAvgNilPoints(t *testing.T) {
	if got := MedianDistanceAvg(nil); got != 0 {
		t.Errorf("MedianDistanceAvg(nil) = %v, want 0", got)
	}
}
