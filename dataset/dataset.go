// Package dataset holds the fixed point cloud a map is trained against.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/kohonen/vector"
)

var (
	// ErrEmptyDataset is returned when a dataset has no rows.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrNonFinite is returned when a row holds NaN or Inf.
	ErrNonFinite = errors.New("dataset contains non-finite value")
)

// Dataset is an ordered, read-only sequence of data-space vectors of equal
// dimension.
type Dataset struct {
	rows []vector.Vector
	dim  int
}

// New copies rows into a Dataset.
func New(rows [][]float64) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional rows", ErrEmptyDataset)
	}

	ds := &Dataset{
		rows: make([]vector.Vector, len(rows)),
		dim:  dim,
	}
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("row %d: %w", i, &vector.ErrDimensionMismatch{Expected: dim, Actual: len(r)})
		}
		v := vector.Of(r...)
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: row %d", ErrNonFinite, i)
		}
		ds.rows[i] = v
	}

	return ds, nil
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return len(ds.rows)
}

// Dim returns the row dimension.
func (ds *Dataset) Dim() int {
	return ds.dim
}

// At returns a copy of row i.
func (ds *Dataset) At(i int) vector.Vector {
	return ds.rows[i].Clone()
}

// Row returns row i without copying. Callers must not modify it.
func (ds *Dataset) Row(i int) vector.Vector {
	return ds.rows[i]
}

// Rows returns a copy of every row.
func (ds *Dataset) Rows() [][]float64 {
	out := make([][]float64, len(ds.rows))
	for i, r := range ds.rows {
		out[i] = r.ToArray()
	}
	return out
}

// Sample returns up to k rows drawn without replacement. With k <= 0 or
// k >= Len every row is returned in order.
func (ds *Dataset) Sample(k int, rng *rand.Rand) [][]float64 {
	if k <= 0 || k >= len(ds.rows) {
		return ds.Rows()
	}
	perm := rng.Perm(len(ds.rows))
	out := make([][]float64, k)
	for i := range k {
		out[i] = ds.rows[perm[i]].ToArray()
	}
	return out
}

// Bounds returns the per-dimension minimum and maximum over all rows.
func (ds *Dataset) Bounds() (lo, hi []float64) {
	lo = make([]float64, ds.dim)
	hi = make([]float64, ds.dim)
	for d := range ds.dim {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for _, r := range ds.rows {
		for d, x := range r {
			lo[d] = math.Min(lo[d], x)
			hi[d] = math.Max(hi[d], x)
		}
	}
	return lo, hi
}
