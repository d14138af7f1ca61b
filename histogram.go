package coranking

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// rankHistogram2D counts the pairs (xs[i], ys[i]) into a bins×bins grid of
// equal-width bins spanning [0, bins-1] on both axes. The result is flat
// row-major: rows follow xs, columns follow ys.
//
// Both axes share one set of edges, so for integer ranks in [0, bins-1] the
// bin index equals the rank.
func rankHistogram2D(xs, ys []int, bins int) []int64 {
	lookup := rankBins(bins)
	hist := make([]int64, bins*bins)
	for i, x := range xs {
		hist[lookup[x]*bins+lookup[ys[i]]]++
	}
	return hist
}

// rankBins maps every integer rank in [0, bins-1] to the bin that contains it.
func rankBins(bins int) []int {
	edges := floats.Span(make([]float64, bins+1), 0, float64(bins-1))
	lookup := make([]int, bins)
	for r := range lookup {
		lookup[r] = binIndex(edges, float64(r))
	}
	return lookup
}

// binIndex returns i such that edges[i] <= v < edges[i+1]. The last bin is
// closed on the right and values outside the edges clamp to the nearest bin.
func binIndex(edges []float64, v float64) int {
	last := len(edges) - 2
	if v >= edges[len(edges)-1] {
		return last
	}
	i := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	return min(max(i, 0), last)
}
