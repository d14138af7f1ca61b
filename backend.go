package coranking

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BackendName selects a numeric backend for the metric evaluator.
type BackendName string

const (
	BackendPortable BackendName = "portable"
	BackendGonum    BackendName = "gonum"
)

// Backend prepares a co-ranking matrix for repeated block queries. The
// metric formulas only need three block sums per K, so a backend is free to
// precompute whatever makes those cheap.
type Backend interface {
	Name() BackendName
	Prepare(q *Matrix) BlockSums
}

// BlockSums answers the per-K block sums the quality metrics are built on.
// q is the prepared (n-1)×(n-1) matrix and every method assumes
// 1 <= k <= n-1. Implementations must be safe for concurrent use.
type BlockSums interface {
	// HardIntrusions is Σ (row-k)·q[row][col] over rows [k, n-2], cols [0, k-1].
	HardIntrusions(k int) float64
	// HardExtrusions is Σ (col-k)·q[row][col] over rows [0, k-1], cols [k, n-2].
	HardExtrusions(k int) float64
	// TruePositives is Σ q[row][col] over the top-left k×k block.
	TruePositives(k int) float64
}

// BackendByName returns the backend registered under name. An empty name
// selects the portable backend.
func BackendByName(name string) (Backend, error) {
	return backendFor(BackendName(name))
}

func backendFor(name BackendName) (Backend, error) {
	switch name {
	case "", BackendPortable:
		return PortableBackend{}, nil
	case BackendGonum:
		return GonumBackend{}, nil
	}
	return nil, fmt.Errorf("coranking: Backend must be %q or %q, got %q: %w",
		BackendPortable, BackendGonum, name, ErrUnknownBackend)
}

// PortableBackend sums blocks with plain integer loops over the matrix data.
// Sums are accumulated in int64, so results are exact.
type PortableBackend struct{}

func (PortableBackend) Name() BackendName { return BackendPortable }

func (PortableBackend) Prepare(q *Matrix) BlockSums { return portableSums{q: q} }

type portableSums struct {
	q *Matrix
}

func (p portableSums) HardIntrusions(k int) float64 {
	size := p.q.Rows
	var sum int64
	for row := k; row < size; row++ {
		w := int64(row - k)
		if w == 0 {
			continue
		}
		for _, v := range p.q.Data[row*size : row*size+k] {
			sum += w * v
		}
	}
	return float64(sum)
}

func (p portableSums) HardExtrusions(k int) float64 {
	size := p.q.Rows
	var sum int64
	for row := 0; row < k; row++ {
		line := p.q.Data[row*size : (row+1)*size]
		for col := k + 1; col < size; col++ {
			sum += int64(col-k) * line[col]
		}
	}
	return float64(sum)
}

func (p portableSums) TruePositives(k int) float64 {
	size := p.q.Rows
	var sum int64
	for row := 0; row < k; row++ {
		for _, v := range p.q.Data[row*size : row*size+k] {
			sum += v
		}
	}
	return float64(sum)
}

// GonumBackend copies the matrix into a gonum mat.Dense once and evaluates
// each block as a weighted inner product x^T·B·y over a sliced view, so the
// work runs through gonum's BLAS-backed kernels.
type GonumBackend struct{}

func (GonumBackend) Name() BackendName { return BackendGonum }

func (GonumBackend) Prepare(q *Matrix) BlockSums {
	size := q.Rows
	if size == 0 {
		return emptySums{}
	}
	data := make([]float64, len(q.Data))
	for i, v := range q.Data {
		data[i] = float64(v)
	}
	// offsets[i] = i is shared by every K: the weight (i-K) over an index
	// range starting at K is offsets[0 : size-K].
	offsets := make([]float64, size)
	ones := make([]float64, size)
	for i := range offsets {
		offsets[i] = float64(i)
		ones[i] = 1
	}
	return gonumSums{
		dense:   mat.NewDense(size, size, data),
		offsets: offsets,
		ones:    ones,
	}
}

type gonumSums struct {
	dense   *mat.Dense
	offsets []float64
	ones    []float64
}

func (g gonumSums) size() int {
	r, _ := g.dense.Dims()
	return r
}

func (g gonumSums) HardIntrusions(k int) float64 {
	size := g.size()
	if k >= size {
		return 0
	}
	block := g.dense.Slice(k, size, 0, k)
	return mat.Inner(mat.NewVecDense(size-k, g.offsets[:size-k]), block, mat.NewVecDense(k, g.ones[:k]))
}

func (g gonumSums) HardExtrusions(k int) float64 {
	size := g.size()
	if k >= size {
		return 0
	}
	block := g.dense.Slice(0, k, k, size)
	return mat.Inner(mat.NewVecDense(k, g.ones[:k]), block, mat.NewVecDense(size-k, g.offsets[:size-k]))
}

func (g gonumSums) TruePositives(k int) float64 {
	return mat.Sum(g.dense.Slice(0, k, 0, k))
}

// emptySums serves the 0×0 matrix of a single point, where no K is valid.
type emptySums struct{}

func (emptySums) HardIntrusions(int) float64 { return 0 }
func (emptySums) HardExtrusions(int) float64 { return 0 }
func (emptySums) TruePositives(int) float64  { return 0 }
