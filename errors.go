package coranking

import "errors"

// Sentinel errors. Functions wrap them with context, so match with errors.Is.
var (
	// ErrShapeMismatch reports high- and low-dimensional point sets (or
	// distance matrices) with different numbers of points.
	ErrShapeMismatch = errors.New("coranking: point sets have different numbers of rows")

	// ErrNotSquare reports a matrix passed to a metric that is not square.
	ErrNotSquare = errors.New("coranking: matrix is not square")

	// ErrInvalidK reports a neighborhood size outside [1, n-1].
	ErrInvalidK = errors.New("coranking: invalid neighborhood size")

	// ErrEmptyData reports a point set with no rows.
	ErrEmptyData = errors.New("coranking: no data points")

	// ErrRaggedData reports rows of differing length within one point set.
	ErrRaggedData = errors.New("coranking: rows have different lengths")

	// ErrUnknownBackend reports a Config.Backend that names no backend.
	ErrUnknownBackend = errors.New("coranking: unknown backend")
)
