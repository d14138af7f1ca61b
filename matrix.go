package coranking

import "fmt"

// Matrix is a dense row-major integer matrix. Co-ranking matrices are always
// square, but Matrix can hold any shape so that callers passing data from
// elsewhere get a validation error rather than a panic.
type Matrix struct {
	Rows, Cols int
	// Data holds Rows*Cols entries; element (i, j) is Data[i*Cols+j].
	Data []int64
}

// NewMatrix wraps data as a rows×cols matrix without copying.
func NewMatrix(rows, cols int, data []int64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("coranking: negative matrix dimensions (%d, %d)", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("coranking: data length %d does not match rows*cols = %d (%d, %d)",
			len(data), rows*cols, rows, cols)
	}
	return &Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// MatrixFromRows copies a slice of equal-length rows into a Matrix.
func MatrixFromRows(rows [][]int64) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}
	cols := len(rows[0])
	data := make([]int64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("coranking: row %d has %d columns, expected %d: %w", i, len(row), cols, ErrRaggedData)
		}
		data = append(data, row...)
	}
	return &Matrix{Rows: len(rows), Cols: cols, Data: data}, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) { return m.Rows, m.Cols }

// At returns element (i, j).
func (m *Matrix) At(i, j int) int64 { return m.Data[i*m.Cols+j] }

// Points returns the number of points n the co-ranking matrix was built
// from, which is one more than its side length.
func (m *Matrix) Points() int { return m.Rows + 1 }

// Sum returns the total of all entries. For a co-ranking matrix built from n
// distinct points this is n*(n-1).
func (m *Matrix) Sum() int64 {
	var s int64
	for _, v := range m.Data {
		s += v
	}
	return s
}

// Diagonal returns a copy of the main diagonal.
func (m *Matrix) Diagonal() []int64 {
	d := make([]int64, min(m.Rows, m.Cols))
	for i := range d {
		d[i] = m.At(i, i)
	}
	return d
}

// ToRows returns the matrix as a slice of row copies.
func (m *Matrix) ToRows() [][]int64 {
	out := make([][]int64, m.Rows)
	for i := range out {
		out[i] = append([]int64(nil), m.Data[i*m.Cols:(i+1)*m.Cols]...)
	}
	return out
}

// checkSquare reports ErrNotSquare, naming the actual dimensions, unless m
// is square.
func checkSquare(m *Matrix) error {
	if m == nil {
		return fmt.Errorf("coranking: nil matrix: %w", ErrNotSquare)
	}
	if m.Rows != m.Cols {
		return fmt.Errorf("coranking: expected square matrix, but matrix had dimensions (%d, %d): %w",
			m.Rows, m.Cols, ErrNotSquare)
	}
	return nil
}
