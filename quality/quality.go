// Package quality computes read-only fit diagnostics of a trained lattice.
package quality

import (
	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
)

// QuantizationError returns the mean euclidean distance between every
// dataset row and its best matching unit.
func QuantizationError(lat *lattice.Lattice, ds *dataset.Dataset) (float64, error) {
	if ds == nil || ds.Len() == 0 {
		return 0, dataset.ErrEmptyDataset
	}

	var sum float64
	for i := range ds.Len() {
		_, d, err := lat.BestMatch(ds.Row(i))
		if err != nil {
			return 0, err
		}
		sum += d
	}
	return sum / float64(ds.Len()), nil
}

// TopographicError returns the fraction of dataset rows whose best and
// second best matching units are not direct lattice neighbors. A single
// neuron lattice has no topology and reports 0.
func TopographicError(lat *lattice.Lattice, ds *dataset.Dataset) (float64, error) {
	if ds == nil || ds.Len() == 0 {
		return 0, dataset.ErrEmptyDataset
	}

	errs := 0
	for i := range ds.Len() {
		first, second, err := lat.BestTwo(ds.Row(i))
		if err != nil {
			return 0, err
		}
		if first == second {
			continue
		}
		adjacent, err := lat.Adjacent(first, second)
		if err != nil {
			return 0, err
		}
		if !adjacent {
			errs++
		}
	}
	return float64(errs) / float64(ds.Len()), nil
}

// Report bundles both measures.
type Report struct {
	QuantizationError float64
	TopographicError  float64
}

// Evaluate computes a Report.
func Evaluate(lat *lattice.Lattice, ds *dataset.Dataset) (Report, error) {
	qe, err := QuantizationError(lat, ds)
	if err != nil {
		return Report{}, err
	}
	te, err := TopographicError(lat, ds)
	if err != nil {
		return Report{}, err
	}
	return Report{QuantizationError: qe, TopographicError: te}, nil
}
