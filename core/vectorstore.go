package core

import (
	"fmt"
	"io"
)

// VectorStore holds the raw row-major vector data backing an index. It owns
// no index state itself — Add/AddBulk only grow the backing slice. Dimension
// is inferred from the first vector ever added and is fixed thereafter.
type VectorStore struct {
	dim  int
	rows [][]float32
}

// NewVectorStore returns an empty store with no dimension fixed yet.
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// Dimension returns the fixed vector width, or 0 if no vector has been
// added yet.
func (vs *VectorStore) Dimension() int {
	return vs.dim
}

// Size returns the number of rows currently stored.
func (vs *VectorStore) Size() int {
	return len(vs.rows)
}

// Add appends a single vector, fixing the store's dimension if this is the
// first vector added. Returns ErrDimensionMismatch if vec's length disagrees
// with an already-fixed dimension.
func (vs *VectorStore) Add(vec []float32) error {
	if vs.dim == 0 {
		if len(vec) == 0 {
			return fmt.Errorf("%w: cannot infer dimension from an empty vector", ErrDimensionMismatch)
		}
		vs.dim = len(vec)
	} else if len(vec) != vs.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), vs.dim)
	}
	row := make([]float32, vs.dim)
	copy(row, vec)
	vs.rows = append(vs.rows, row)
	return nil
}

// AddBulk slices a flat row-major buffer of n*dim floats into n rows and
// appends them. If the store's dimension is not yet fixed, dim fixes it.
func (vs *VectorStore) AddBulk(flat []float32, n, dim int) error {
	if len(flat) != n*dim {
		return fmt.Errorf("%w: flat buffer has %d floats, want %d*%d", ErrDimensionMismatch, len(flat), n, dim)
	}
	if vs.dim == 0 {
		vs.dim = dim
	} else if dim != vs.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, dim, vs.dim)
	}
	for i := 0; i < n; i++ {
		row := make([]float32, dim)
		copy(row, flat[i*dim:(i+1)*dim])
		vs.rows = append(vs.rows, row)
	}
	return nil
}

// At returns the row at i without copying. Callers must not mutate it.
func (vs *VectorStore) At(i int) []float32 {
	return vs.rows[i]
}

// Data returns all rows without copying. Callers must not mutate them.
func (vs *VectorStore) Data() [][]float32 {
	return vs.rows
}

// Save writes rows (int32), cols (int32), then rows*cols float32s in
// row-major order. An empty store writes a well-formed rows=0, cols=0
// header followed by no data, so Load always succeeds on a file this wrote
// regardless of whether any vectors were ever added.
func (vs *VectorStore) Save(w io.Writer) error {
	if err := WriteInt32(w, int32(len(vs.rows))); err != nil {
		return err
	}
	if err := WriteInt32(w, int32(vs.dim)); err != nil {
		return err
	}
	for _, row := range vs.rows {
		if err := WriteFloat32Slice(w, row); err != nil {
			return err
		}
	}
	return nil
}

// Load replaces the store's contents with rows read in the format written
// by Save.
func (vs *VectorStore) Load(r io.Reader) error {
	n, err := ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading row count: %v", ErrIOFailure, err)
	}
	dim, err := ReadInt32(r)
	if err != nil {
		return fmt.Errorf("%w: reading dimension: %v", ErrIOFailure, err)
	}
	rows := make([][]float32, n)
	for i := int32(0); i < n; i++ {
		row, err := ReadFloat32Slice(r, int(dim))
		if err != nil {
			return fmt.Errorf("%w: reading row %d: %v", ErrIOFailure, i, err)
		}
		rows[i] = row
	}
	vs.dim = int(dim)
	vs.rows = rows
	return nil
}
