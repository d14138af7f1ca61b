package coranking

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Evaluator computes quality metrics for one co-ranking matrix. The matrix is
// validated and handed to the backend once, so evaluating many K values (or
// all three metrics) does not repeat that work.
//
// An Evaluator is safe for concurrent use. It does not copy the matrix;
// callers must not modify it while the Evaluator is in use.
type Evaluator struct {
	q       *Matrix
	n       int
	backend Backend
	sums    BlockSums
	workers int
}

// NewEvaluator validates that q is square and prepares it with the backend
// named in cfg. Config.Metric is ignored.
func NewEvaluator(q *Matrix, cfg Config) (*Evaluator, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := checkSquare(q); err != nil {
		return nil, err
	}
	backend, err := backendFor(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		q:       q,
		n:       q.Points(),
		backend: backend,
		sums:    backend.Prepare(q),
		workers: cfg.Workers,
	}, nil
}

// Points returns n, the number of points behind the matrix.
func (e *Evaluator) Points() int { return e.n }

// Backend returns the backend in use.
func (e *Evaluator) Backend() BackendName { return e.backend.Name() }

// Trustworthiness is the evaluator form of the package-level Trustworthiness.
func (e *Evaluator) Trustworthiness(k int) (float64, error) {
	if err := validateK(k, e.n); err != nil {
		return 0, err
	}
	return e.trustworthiness(k), nil
}

// Continuity is the evaluator form of the package-level Continuity.
func (e *Evaluator) Continuity(k int) (float64, error) {
	if err := validateK(k, e.n); err != nil {
		return 0, err
	}
	return e.continuity(k), nil
}

// LCMC is the evaluator form of the package-level LCMC.
func (e *Evaluator) LCMC(k int) (float64, error) {
	if err := validateK(k, e.n); err != nil {
		return 0, err
	}
	return e.lcmc(k), nil
}

func (e *Evaluator) trustworthiness(k int) float64 {
	return rankErrorScore(e.sums.HardIntrusions(k), k, e.n)
}

func (e *Evaluator) continuity(k int) float64 {
	return rankErrorScore(e.sums.HardExtrusions(k), k, e.n)
}

func (e *Evaluator) lcmc(k int) float64 {
	return lcmcScore(e.sums.TruePositives(k), k, e.n)
}

// TrustworthinessRange evaluates trustworthiness for K in [minK, maxK).
func (e *Evaluator) TrustworthinessRange(minK, maxK int) ([]float64, error) {
	return e.evalRange(minK, maxK, e.trustworthiness)
}

// ContinuityRange evaluates continuity for K in [minK, maxK).
func (e *Evaluator) ContinuityRange(minK, maxK int) ([]float64, error) {
	return e.evalRange(minK, maxK, e.continuity)
}

// LCMCRange evaluates LCMC for K in [minK, maxK).
func (e *Evaluator) LCMCRange(minK, maxK int) ([]float64, error) {
	return e.evalRange(minK, maxK, e.lcmc)
}

// ResolveRange applies the range defaults (zero minK means 1, zero maxK
// means n-1) and validates the result. Negative bounds are errors. Every K
// in the range is checked before any work starts; the error names the first
// invalid K.
func (e *Evaluator) ResolveRange(minK, maxK int) (int, int, error) {
	if minK < 0 || maxK < 0 {
		return 0, 0, fmt.Errorf("coranking: range [%d, %d) has a negative bound: %w", minK, maxK, ErrInvalidK)
	}
	if minK == 0 {
		minK = 1
	}
	if maxK == 0 {
		maxK = e.n - 1
	}
	if minK >= maxK {
		return minK, maxK, nil
	}
	if err := validateK(minK, e.n); err != nil {
		return 0, 0, fmt.Errorf("coranking: range [%d, %d): %w", minK, maxK, err)
	}
	// minK is valid, so the first K past n-1 is n.
	if maxK > e.n {
		return 0, 0, fmt.Errorf("coranking: range [%d, %d): %w", minK, maxK, validateK(e.n, e.n))
	}
	return minK, maxK, nil
}

// evalRange applies metric to every K in the resolved range. With more than
// one worker, K values are spread across goroutines; each writes its own
// slot, so output order is always K-ascending.
func (e *Evaluator) evalRange(minK, maxK int, metric func(k int) float64) ([]float64, error) {
	minK, maxK, err := e.ResolveRange(minK, maxK)
	if err != nil {
		return nil, err
	}
	if minK >= maxK {
		return []float64{}, nil
	}

	out := make([]float64, maxK-minK)
	if e.workers <= 1 || len(out) == 1 {
		for i := range out {
			out[i] = metric(minK + i)
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range out {
		i := i
		g.Go(func() error {
			out[i] = metric(minK + i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
