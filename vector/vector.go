// Package vector provides the fixed-dimension numeric vector used for both
// lattice positions and data-space weights.
package vector

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/kohonen/distance"
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Vector is an ordered tuple of real components. Its length is its dimension
// and never changes after construction.
type Vector []float64

// New returns a zero vector of the given dimension.
func New(dim int) Vector {
	return make(Vector, dim)
}

// Of returns a vector holding a copy of values.
func Of(values ...float64) Vector {
	return slices.Clone(Vector(values))
}

// Dim returns the dimension of v.
func (v Vector) Dim() int {
	return len(v)
}

// Clone returns a new vector equal to v.
func (v Vector) Clone() Vector {
	return slices.Clone(v)
}

// Zero sets all components to 0 and returns v.
func (v Vector) Zero() Vector {
	clear(v)
	return v
}

// Scale multiplies every component by s in place and returns v.
func (v Vector) Scale(s float64) Vector {
	for i := range v {
		v[i] *= s
	}
	return v
}

// Add accumulates other*scalar into v in place and returns v.
func (v Vector) Add(other Vector, scalar float64) (Vector, error) {
	if err := v.check(other); err != nil {
		return v, err
	}
	for i := range v {
		v[i] += other[i] * scalar
	}
	return v, nil
}

// Distance returns the euclidean distance between v and other.
func (v Vector) Distance(other Vector) (float64, error) {
	if err := v.check(other); err != nil {
		return 0, err
	}
	return distance.L2(v, other), nil
}

// Manhattan returns the L1 distance between v and other. It is meant for
// lattice positions, where a distance of 1 marks direct grid neighbors.
func (v Vector) Manhattan(other Vector) (float64, error) {
	if err := v.check(other); err != nil {
		return 0, err
	}
	return distance.Manhattan(v, other), nil
}

// ToArray returns the components as a new slice of length Dim.
func (v Vector) ToArray() []float64 {
	return slices.Clone([]float64(v))
}

// Equal reports whether v and other have the same dimension and components.
func (v Vector) Equal(other Vector) bool {
	return slices.Equal(v, other)
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) check(other Vector) error {
	if len(v) != len(other) {
		return &ErrDimensionMismatch{Expected: len(v), Actual: len(other)}
	}
	return nil
}
