package coranking

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures the dissimilarity between two points of equal
// dimensionality. Neighbor ranks are derived from these values, so any
// metric that orders neighbors consistently can drive the co-ranking matrix.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance. It is the default
// metric for both point sets. Squares are summed in coordinate order before
// a single square root.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, 1) }

// CosineMetric computes the cosine distance 1 - a·b/(|a||b|).
// Zero vectors give NaN, which ranks after every finite distance.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	return 1 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 { return floats.Distance(a, b, math.Inf(1)) }

// MinkowskiMetric computes the Minkowski distance of order P through
// gonum's floats.Distance. P must be >= 1; Distance panics otherwise, and
// Build rejects such a Config up front.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	if m.P < 1 {
		panic("coranking: MinkowskiMetric.P must be >= 1")
	}
	return floats.Distance(a, b, m.P)
}

// MetricByName returns the built-in metric registered under name.
// Recognized names: "euclidean", "manhattan", "cosine", "chebyshev".
func MetricByName(name string) (DistanceMetric, bool) {
	switch name {
	case "", "euclidean":
		return EuclideanMetric{}, true
	case "manhattan":
		return ManhattanMetric{}, true
	case "cosine":
		return CosineMetric{}, true
	case "chebyshev":
		return ChebyshevMetric{}, true
	}
	return nil, false
}

// ComputePairwiseDistances computes the full n*n distance matrix.
// data is flat row-major with n rows and dims columns.
// Returns flat []float64 of length n*n.
func ComputePairwiseDistances(data []float64, n, dims int, metric DistanceMetric) []float64 {
	result := make([]float64, n*n)
	distanceRows(result, data, n, dims, metric, 0, n)
	return result
}

// distanceRows fills dist(i,j) and dist(j,i) for source rows in [start, end)
// and every j > i.
func distanceRows(result, data []float64, n, dims int, metric DistanceMetric, start, end int) {
	for i := start; i < end; i++ {
		for j := i + 1; j < n; j++ {
			d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}
}
