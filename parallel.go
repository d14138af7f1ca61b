package coranking

import "sync"

// forEachRowRange splits [0, n) into contiguous row ranges, one per worker,
// and runs fn on each range in its own goroutine. Ranges never overlap, so fn
// may write to row-owned output without synchronization.
func forEachRowRange(n, numWorkers int, fn func(start, end int)) {
	var wg sync.WaitGroup

	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(startRow, endRow)
	}

	wg.Wait()
}

// ComputePairwiseDistancesParallel computes the full n×n distance matrix using
// multiple goroutines. data is flat row-major with n rows and dims columns.
// numWorkers controls the degree of parallelism; if <= 1, it falls back to
// single-threaded ComputePairwiseDistances.
//
// The result is bitwise identical to ComputePairwiseDistances: a flat []float64
// of length n×n in row-major order.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	result := make([]float64, n*n)

	// Each worker handles a contiguous range of "source" rows and computes
	// dist(i,j) for all j > i. Every cell is written by exactly one worker.
	forEachRowRange(n, numWorkers, func(start, end int) {
		distanceRows(result, data, n, dims, metric, start, end)
	})

	return result
}

// RankMatrixParallel computes the rank matrix of a flat n×n distance matrix
// using multiple goroutines, one contiguous block of rows per worker.
// Falls back to sequential RankMatrix if numWorkers <= 1.
func RankMatrixParallel(distMatrix []float64, n, numWorkers int) []int {
	if numWorkers <= 1 || n <= 1 {
		return RankMatrix(distMatrix, n)
	}

	ranks := make([]int, n*n)
	forEachRowRange(n, numWorkers, func(start, end int) {
		order := make([]int, n)
		for i := start; i < end; i++ {
			rankRow(ranks[i*n:(i+1)*n], order, distMatrix[i*n:(i+1)*n])
		}
	})

	return ranks
}
