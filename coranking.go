package coranking

import (
	"fmt"
	"runtime"
)

// Config controls co-ranking matrix construction and metric evaluation.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Metric is the distance function used in both spaces.
	// Built-in: EuclideanMetric, ManhattanMetric, CosineMetric, ChebyshevMetric,
	// MinkowskiMetric. Use DistanceFunc to wrap a custom function.
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Workers controls the number of goroutines for the row-parallel stages
	// (pairwise distances, ranks) and for range evaluation across K.
	// 0 means use runtime.NumCPU(). 1 forces sequential execution.
	// Default: 0 (auto).
	Workers int

	// Backend selects the numeric backend for metric block sums.
	// "portable" loops over the integer data directly; "gonum" evaluates
	// blocks through gonum/mat. Both return identical values.
	// Default: "portable".
	Backend BackendName
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Metric:  EuclideanMetric{},
		Backend: BackendPortable,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("coranking: Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	if _, err := backendFor(cfg.Backend); err != nil {
		return err
	}
	switch m := cfg.Metric.(type) {
	case MinkowskiMetric:
		if m.P < 1 {
			return fmt.Errorf("coranking: MinkowskiMetric.P must be >= 1, got %f", m.P)
		}
	case *MinkowskiMetric:
		if m == nil {
			return fmt.Errorf("coranking: Metric is a nil *MinkowskiMetric")
		}
		if m.P < 1 {
			return fmt.Errorf("coranking: MinkowskiMetric.P must be >= 1, got %f", m.P)
		}
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendPortable
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// Build computes the co-ranking matrix of a high-dimensional point set and
// its low-dimensional embedding. Each element of high and low is a point;
// points within one set must share a dimensionality, but the two sets may
// differ. Both sets must contain the same number n of points.
//
// The result is (n-1)×(n-1): entry (k, l) counts the (point, neighbor) pairs
// whose neighbor rank is k+1 in the high space and l+1 in the low space.
func Build(high, low [][]float64, cfg Config) (*Matrix, error) {
	if len(high) != len(low) {
		return nil, fmt.Errorf("coranking: high data has %d rows, low data has %d: %w",
			len(high), len(low), ErrShapeMismatch)
	}
	if len(high) == 0 {
		return nil, ErrEmptyData
	}

	flatHigh, highDims, err := flatten(high)
	if err != nil {
		return nil, fmt.Errorf("coranking: high data: %w", err)
	}
	flatLow, lowDims, err := flatten(low)
	if err != nil {
		return nil, fmt.Errorf("coranking: low data: %w", err)
	}

	return BuildFlat(flatHigh, highDims, flatLow, lowDims, len(high), cfg)
}

// BuildFlat is Build for flat row-major data: high holds n rows of highDims
// values and low holds n rows of lowDims values.
func BuildFlat(high []float64, highDims int, low []float64, lowDims int, n int, cfg Config) (*Matrix, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, ErrEmptyData
	}
	if len(high) != n*highDims {
		return nil, fmt.Errorf("coranking: high data length %d does not match n*dims = %d (n=%d, dims=%d): %w",
			len(high), n*highDims, n, highDims, ErrShapeMismatch)
	}
	if len(low) != n*lowDims {
		return nil, fmt.Errorf("coranking: low data length %d does not match n*dims = %d (n=%d, dims=%d): %w",
			len(low), n*lowDims, n, lowDims, ErrShapeMismatch)
	}

	highDist := ComputePairwiseDistancesParallel(high, n, highDims, cfg.Metric, cfg.Workers)
	lowDist := ComputePairwiseDistancesParallel(low, n, lowDims, cfg.Metric, cfg.Workers)
	return fromDistances(highDist, lowDist, n, cfg.Workers), nil
}

// BuildPrecomputed computes the co-ranking matrix from two precomputed
// distance matrices. Each is a flat []float64 of length n*n in row-major
// order, where dist[i*n+j] is the distance between points i and j. The
// Config.Metric field is ignored since distances are already computed.
func BuildPrecomputed(highDist, lowDist []float64, n int, cfg Config) (*Matrix, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, ErrEmptyData
	}
	if len(highDist) != n*n || len(lowDist) != n*n {
		return nil, fmt.Errorf("coranking: distance matrix lengths %d and %d do not match n*n = %d (n=%d): %w",
			len(highDist), len(lowDist), n*n, n, ErrShapeMismatch)
	}
	return fromDistances(highDist, lowDist, n, cfg.Workers), nil
}

// fromDistances ranks both distance matrices and bins the joint ranks.
func fromDistances(highDist, lowDist []float64, n, workers int) *Matrix {
	highRanks := RankMatrixParallel(highDist, n, workers)
	lowRanks := RankMatrixParallel(lowDist, n, workers)
	return fromRanks(highRanks, lowRanks, n)
}

// fromRanks builds the n×n joint rank histogram of the flattened rank
// matrices and drops rank 0 on both axes, which is where a point is paired
// with itself.
func fromRanks(highRanks, lowRanks []int, n int) *Matrix {
	hist := rankHistogram2D(highRanks, lowRanks, n)

	size := n - 1
	q := &Matrix{Rows: size, Cols: size, Data: make([]int64, size*size)}
	for k := 0; k < size; k++ {
		copy(q.Data[k*size:(k+1)*size], hist[(k+1)*n+1:(k+2)*n])
	}
	return q
}

// flatten copies a slice of points into flat row-major storage and returns
// the shared dimensionality.
func flatten(points [][]float64) ([]float64, int, error) {
	dims := len(points[0])
	flat := make([]float64, 0, len(points)*dims)
	for i, p := range points {
		if len(p) != dims {
			return nil, 0, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(p), dims, ErrRaggedData)
		}
		flat = append(flat, p...)
	}
	return flat, dims, nil
}
