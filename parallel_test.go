package coranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputePairwiseDistancesParallel_BitwiseIdentical(t *testing.T) {
	data := []float64{
		0, 0,
		3, 0,
		0, 4,
		1, 1,
		5, 5,
	}
	n, dims := 5, 2
	metric := EuclideanMetric{}

	sequential := ComputePairwiseDistances(data, n, dims, metric)
	for _, workers := range []int{1, 2, 4, 16} {
		parallel := ComputePairwiseDistancesParallel(data, n, dims, metric, workers)
		require.Equal(t, sequential, parallel, "workers=%d", workers)
	}
}

func TestComputePairwiseDistancesParallel_SinglePoint(t *testing.T) {
	result := ComputePairwiseDistancesParallel([]float64{1, 2}, 1, 2, EuclideanMetric{}, 4)
	require.Equal(t, []float64{0}, result)
}

func TestRankMatrixParallel_MatchesSequential(t *testing.T) {
	n, dims := 37, 3
	dist := ComputePairwiseDistances(generateFlatData(n, dims), n, dims, EuclideanMetric{})

	sequential := RankMatrix(dist, n)
	for _, workers := range []int{1, 2, 5, 64} {
		require.Equal(t, sequential, RankMatrixParallel(dist, n, workers), "workers=%d", workers)
	}
}

func TestForEachRowRange_CoversEveryRowOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{1, 4}, {7, 3}, {10, 10}, {10, 3}, {3, 8},
	} {
		seen := make([]int, tc.n)
		forEachRowRange(tc.n, tc.workers, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, c := range seen {
			require.Equal(t, 1, c, "n=%d workers=%d: row %d", tc.n, tc.workers, i)
		}
	}
}
