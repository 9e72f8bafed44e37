package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// EmbeddingDimensions is the target dimensionality of the drift embedding.
const EmbeddingDimensions = 3

// Embed projects a symmetric distance matrix into dim dimensions using
// classical (Torgerson) multidimensional scaling: the squared distances are
// double-centred and the top eigenpairs of the resulting Gram matrix yield
// the coordinates. The computation is deterministic; eigenvector signs are
// pinned by a fixed convention so repeated runs produce identical output.
//
// For matrices that embed exactly in dim dimensions the pairwise distances
// are reproduced exactly; otherwise the embedding is the best rank-dim
// approximation of the centred Gram matrix.
func Embed(dist *mat.SymDense, dim int) (*mat.Dense, error) {
	n, _ := dist.Dims()
	if n == 0 {
		return nil, fmt.Errorf("cannot embed an empty distance matrix")
	}
	coords := mat.NewDense(n, dim, nil)
	if n == 1 {
		return coords, nil
	}

	// B = -1/2 * J * D² * J with J = I - 11ᵀ/n (double centring).
	b := mat.NewSymDense(n, nil)
	rowMeans := make([]float64, n)
	var totalMean float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := dist.At(i, j)
			rowMeans[i] += d * d
		}
		rowMeans[i] /= float64(n)
		totalMean += rowMeans[i]
	}
	totalMean /= float64(n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := dist.At(i, j)
			b.SetSym(i, j, -0.5*(d*d-rowMeans[i]-rowMeans[j]+totalMean))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(b, true); !ok {
		return nil, fmt.Errorf("eigendecomposition of the centred distance matrix failed")
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Eigenvalues come in ascending order; the embedding uses the largest
	// dim of them. Negative eigenvalues (non-Euclidean residue of the
	// conflict metric) contribute nothing.
	for k := 0; k < dim; k++ {
		src := n - 1 - k
		if src < 0 {
			break
		}
		lambda := values[src]
		if lambda <= 0 {
			continue
		}
		scale := math.Sqrt(lambda)
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = vectors.At(i, src) * scale
		}
		orientColumn(col)
		for i := 0; i < n; i++ {
			coords.Set(i, k, col[i])
		}
	}
	return coords, nil
}

// orientColumn fixes the sign ambiguity of an eigenvector: the component of
// largest magnitude is made positive.
func orientColumn(col []float64) {
	maxAbs := 0.0
	sign := 1.0
	for _, v := range col {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
			if v < 0 {
				sign = -1.0
			} else {
				sign = 1.0
			}
		}
	}
	if sign < 0 {
		for i := range col {
			col[i] = -col[i]
		}
	}
}
