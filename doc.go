// Package coranking builds co-ranking matrices and derives rank-based quality
// metrics for dimensionality reduction.
//
// A co-ranking matrix compares the neighbor ranks of every point in a
// high-dimensional dataset with the ranks of the same neighbors in a
// low-dimensional embedding (produced by Isomap, t-SNE, UMAP, PCA, ...).
// Trustworthiness, continuity and the local continuity meta-criterion (LCMC)
// summarize how well the embedding keeps each point's K nearest neighbors.
//
// Basic usage:
//
//	q, err := coranking.Build(high, low, coranking.DefaultConfig())
//	t, err := coranking.Trustworthiness(q, 5)   // 1 = no false neighbors
//	c, err := coranking.Continuity(q, 5)        // 1 = no lost neighbors
//	l, err := coranking.LCMC(q, 5)
//	ts, err := coranking.TrustworthinessRange(q, 1, 0) // K = 1 .. n-2
//
// For precomputed distance matrices:
//
//	q, err := coranking.BuildPrecomputed(highDist, lowDist, n, cfg)
//
// # Evaluators and backends
//
// The package-level metric functions validate the matrix on every call. To
// evaluate many K values or all three metrics, build an [Evaluator] once:
//
//	cfg := coranking.DefaultConfig()
//	cfg.Backend = coranking.BackendGonum
//	e, err := coranking.NewEvaluator(q, cfg)
//	curves, err := e.Curves(1, 0)
//
// Config.Backend selects how block sums are computed: "portable" (default)
// loops over the integer matrix, "gonum" evaluates each block through
// gonum/mat. Both return the same values.
//
// # Cost
//
// Building the matrix needs two n×n distance matrices and two n×n rank
// matrices: O(n²·m) time and O(n²) memory. Config.Workers spreads distance
// and rank rows across goroutines. Metric evaluation is O(n²) per K.
package coranking
