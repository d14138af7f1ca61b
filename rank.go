package coranking

import (
	"math"
	"slices"
)

// Ranks are computed with the double-argsort idiom, split into two explicit
// steps because the composition is easy to get backwards:
//
//  1. ArgsortStable: order[p] is the index of the p-th smallest value.
//  2. InvertPermutation: rank[order[p]] = p, so rank[j] is the position of
//     value j in sorted order.
//
// Sorting is stable, so equal values keep their original index order. This
// makes the tie policy part of the contract: ties rank by ascending index.

// ArgsortStable fills order with the permutation that sorts values ascending.
// Equal values keep their original relative order. NaN sorts after every
// number. order must have len(values) elements; it is returned for chaining.
func ArgsortStable(values []float64, order []int) []int {
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareNaNLast(values[a], values[b])
	})
	return order
}

// InvertPermutation writes the inverse of order into rank, so that
// rank[order[p]] == p for every position p.
func InvertPermutation(order, rank []int) []int {
	for p, idx := range order {
		rank[idx] = p
	}
	return rank
}

// Ranks returns the rank of each value among values under the stable
// ascending order: 0 for the smallest, ties broken by index.
func Ranks(values []float64) []int {
	order := ArgsortStable(values, make([]int, len(values)))
	return InvertPermutation(order, make([]int, len(values)))
}

// RankMatrix converts a flat n×n distance matrix into a flat n×n rank matrix.
// Row i, column j holds the rank of dist(i,j) within row i. The point itself
// has distance 0 and normally receives rank 0; an earlier duplicate of it
// takes rank 0 instead.
func RankMatrix(distMatrix []float64, n int) []int {
	ranks := make([]int, n*n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		rankRow(ranks[i*n:(i+1)*n], order, distMatrix[i*n:(i+1)*n])
	}
	return ranks
}

// rankRow ranks a single distance row into dst, reusing order as scratch.
func rankRow(dst, order []int, row []float64) {
	InvertPermutation(ArgsortStable(row, order), dst)
}

func compareNaNLast(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
