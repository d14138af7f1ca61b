package coranking

import "fmt"

// Quality metrics from Lee & Verleysen, "Rank-based quality assessment of
// nonlinear dimensionality reduction" (ESANN 2008). For a co-ranking matrix
// of n points and a neighborhood size K, the matrix splits into:
//
//   - the top-left K×K block: neighbors in both spaces (LCMC),
//   - the lower-left block: hard intrusions, close only in the embedding
//     (trustworthiness),
//   - the upper-right block: hard extrusions, close only in the original
//     space (continuity).
//
// K must lie in [1, n-1]. Out-of-range K is an error, never clamped.

// Trustworthiness measures hard intrusions: points that are neighbors in the
// embedding but not in the original space (false positives). 1 means none.
func Trustworthiness(q *Matrix, k int) (float64, error) {
	e, err := newPortableEvaluator(q)
	if err != nil {
		return 0, err
	}
	return e.Trustworthiness(k)
}

// Continuity measures hard extrusions: original neighbors that the embedding
// pushes away (false negatives). 1 means none.
func Continuity(q *Matrix, k int) (float64, error) {
	e, err := newPortableEvaluator(q)
	if err != nil {
		return 0, err
	}
	return e.Continuity(k)
}

// LCMC computes the local continuity meta-criterion: the fraction of
// K-neighbors shared by both spaces, minus the fraction expected by chance.
func LCMC(q *Matrix, k int) (float64, error) {
	e, err := newPortableEvaluator(q)
	if err != nil {
		return 0, err
	}
	return e.LCMC(k)
}

// TrustworthinessRange evaluates Trustworthiness for every K in
// [minK, maxK), in ascending order. A zero minK means 1 and a zero maxK
// means n-1.
func TrustworthinessRange(q *Matrix, minK, maxK int) ([]float64, error) {
	e, err := newPortableEvaluator(q)
	if err != nil {
		return nil, err
	}
	return e.TrustworthinessRange(minK, maxK)
}

// ContinuityRange evaluates Continuity for every K in [minK, maxK).
// Defaults match TrustworthinessRange.
func ContinuityRange(q *Matrix, minK, maxK int) ([]float64, error) {
	e, err := newPortableEvaluator(q)
	if err != nil {
		return nil, err
	}
	return e.ContinuityRange(minK, maxK)
}

// LCMCRange evaluates LCMC for every K in [minK, maxK).
// Defaults match TrustworthinessRange.
func LCMCRange(q *Matrix, minK, maxK int) ([]float64, error) {
	e, err := newPortableEvaluator(q)
	if err != nil {
		return nil, err
	}
	return e.LCMCRange(minK, maxK)
}

func newPortableEvaluator(q *Matrix) (*Evaluator, error) {
	return NewEvaluator(q, Config{Backend: BackendPortable, Workers: 1})
}

// normalizationWeight is twice the largest possible weighted intrusion (or
// extrusion) sum for neighborhood size k among n points. It scales
// trustworthiness and continuity into [0, 1].
func normalizationWeight(k, n int) float64 {
	if 2*k < n {
		return float64(n) * float64(k) * float64(2*n-3*k-1)
	}
	return float64(n) * float64(n-k) * float64(n-k-1)
}

// rankErrorScore turns a weighted block sum into 1 - 2/g·sum. A zero sum
// scores exactly 1, which also covers K = n-1 where g is 0.
func rankErrorScore(sum float64, k, n int) float64 {
	if sum == 0 {
		return 1
	}
	return 1 - (2/normalizationWeight(k, n))*sum
}

// lcmcScore is K/(1-n) + S/(n·K) for the top-left block sum S.
func lcmcScore(sum float64, k, n int) float64 {
	return float64(k)/(1-float64(n)) + sum/(float64(n)*float64(k))
}

// validateK reports ErrInvalidK unless 1 <= k <= n-1.
func validateK(k, n int) error {
	if k < 1 || k > n-1 {
		return fmt.Errorf("coranking: K must be in [1, %d], got %d: %w", n-1, k, ErrInvalidK)
	}
	return nil
}
