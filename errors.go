package kohonen

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
	"github.com/hupe1980/kohonen/pca"
	"github.com/hupe1980/kohonen/trainer"
	"github.com/hupe1980/kohonen/vector"
)

var (
	// ErrEmptyDataset is returned when training data has no rows.
	ErrEmptyDataset = dataset.ErrEmptyDataset

	// ErrEmptyLattice is returned when a lattice has no neurons.
	ErrEmptyLattice = lattice.ErrEmptyLattice

	// ErrInvalidOptions is returned when trainer options fail validation.
	ErrInvalidOptions = trainer.ErrInvalidOptions

	// ErrInvalidSteps is returned for a negative step count.
	ErrInvalidSteps = errors.New("steps must not be negative")

	// ErrNoSeeds is returned when BestOf receives no seeds.
	ErrNoSeeds = errors.New("at least one seed is required")
)

// ErrDimensionMismatch indicates a vector/dataset/lattice dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrDegenerateStatistics indicates a constant data dimension rejected
// during PCA seeding.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDegenerateStatistics struct {
	Dimension int
	cause     error
}

func (e *ErrDegenerateStatistics) Error() string {
	return fmt.Sprintf("degenerate statistics in dimension %d", e.Dimension)
}

func (e *ErrDegenerateStatistics) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *vector.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var ds *pca.ErrDegenerateStatistics
	if errors.As(err, &ds) {
		return &ErrDegenerateStatistics{Dimension: ds.Dimension, cause: err}
	}

	return err
}
