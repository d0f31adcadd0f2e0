package trainer

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
	"github.com/hupe1980/kohonen/pca"
	"github.com/hupe1980/kohonen/vector"
)

// Initializer assigns a starting weight to every neuron of a lattice.
type Initializer interface {
	Initialize(lat *lattice.Lattice, ds *dataset.Dataset, rng *rand.Rand) error
}

// InitializerFunc adapts a function to the Initializer interface.
type InitializerFunc func(lat *lattice.Lattice, ds *dataset.Dataset, rng *rand.Rand) error

// Initialize calls f.
func (f InitializerFunc) Initialize(lat *lattice.Lattice, ds *dataset.Dataset, rng *rand.Rand) error {
	return f(lat, ds, rng)
}

// RandomInitializer draws every weight uniformly from a box. Nil bounds
// select the dataset's bounding box.
type RandomInitializer struct {
	Lo, Hi []float64
}

// Initialize implements Initializer.
func (ri RandomInitializer) Initialize(lat *lattice.Lattice, ds *dataset.Dataset, rng *rand.Rand) error {
	lo, hi := ri.Lo, ri.Hi
	if lo == nil || hi == nil {
		lo, hi = ds.Bounds()
	}
	if len(lo) != lat.DataDim() || len(hi) != lat.DataDim() {
		return &vector.ErrDimensionMismatch{Expected: lat.DataDim(), Actual: min(len(lo), len(hi))}
	}

	w := vector.New(lat.DataDim())
	for _, n := range lat.Neurons() {
		for d := range w {
			w[d] = lo[d] + rng.Float64()*(hi[d]-lo[d])
		}
		if err := n.SetWeight(w); err != nil {
			return err
		}
	}
	return nil
}

// PCAInitializer fits a PCA basis of rank min(lattice dim, data dim) and
// places every neuron at the recovery of its normalized lattice coordinate,
// so the lattice starts spread along the data's dominant directions.
type PCAInitializer struct {
	// SampleSize bounds the rows used for the fit. Zero uses every row.
	SampleSize int
	// Options configure the fit.
	Options []func(o *pca.Options)
}

// Initialize implements Initializer.
func (pi PCAInitializer) Initialize(lat *lattice.Lattice, ds *dataset.Dataset, rng *rand.Rand) error {
	k := min(lat.PositionDim(), ds.Dim())

	basis, err := pca.Fit(ds.Sample(pi.SampleSize, rng), k, pi.Options...)
	if err != nil {
		return fmt.Errorf("pca fit: %w", err)
	}

	for i, n := range lat.Neurons() {
		p, err := lat.Normalized(i)
		if err != nil {
			return err
		}
		w, err := basis.Recover(p[:k])
		if err != nil {
			return err
		}
		if err := n.SetWeight(w); err != nil {
			return err
		}
	}
	return nil
}
