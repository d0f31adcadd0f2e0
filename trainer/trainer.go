// Package trainer runs the competitive-learning loop of a self-organizing map.
package trainer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
	"github.com/hupe1980/kohonen/vector"
)

// ErrInvalidOptions is returned when Options fail validation.
var ErrInvalidOptions = errors.New("invalid trainer options")

// Options contains configuration options for the trainer.
type Options struct {
	// LearningFactor is the starting learning factor, in (0, 1].
	LearningFactor float64

	// NeighborSize is the starting gaussian neighborhood radius in lattice
	// units. Zero selects half of the largest lattice side.
	NeighborSize float64

	// LearningDecay multiplies LearningFactor after every step, in (0, 1].
	LearningDecay float64

	// NeighborDecay multiplies NeighborSize after every step, in (0, 1].
	NeighborDecay float64

	// RandomSeed seeds the sample stream and the initializer. Ignored when
	// Rand is set. When both are nil the current time is used.
	RandomSeed *int64

	// Rand is the random source for the sample stream and the initializer.
	Rand *rand.Rand

	// Initializer seeds the neuron weights on creation and on Reset.
	Initializer Initializer
}

// DefaultOptions contains the default options for the trainer.
var DefaultOptions = Options{
	LearningFactor: 0.1,
	NeighborSize:   0,
	LearningDecay:  0.998,
	NeighborDecay:  0.998,
	Initializer:    PCAInitializer{},
}

// State is the trainer's scalar state.
type State struct {
	LearningFactor float64
	NeighborSize   float64
	Iterations     uint64
}

// Result describes a single step.
type Result struct {
	// Sample is the index of the drawn dataset row.
	Sample int
	// BMU is the lattice index of the best matching unit.
	BMU int
	// Distance is the euclidean distance between the sample and the BMU
	// weight before the update.
	Distance float64
}

// Trainer owns a lattice and mutates its weights toward a dataset.
//
// A Trainer is not safe for concurrent use. Step, Run and Reset need
// exclusive access; independent runs use independent trainers.
type Trainer struct {
	lattice *lattice.Lattice
	data    *dataset.Dataset
	opts    Options
	rng     *rand.Rand

	learningFactor float64
	neighborSize   float64
	iterations     uint64

	hits *roaring.Bitmap
}

// New creates a trainer over lat and ds and seeds the weights with the
// configured initializer.
func New(lat *lattice.Lattice, ds *dataset.Dataset, optFns ...func(o *Options)) (*Trainer, error) {
	if lat == nil || lat.Len() == 0 {
		return nil, lattice.ErrEmptyLattice
	}
	if ds == nil || ds.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if lat.DataDim() != ds.Dim() {
		return nil, &vector.ErrDimensionMismatch{Expected: lat.DataDim(), Actual: ds.Dim()}
	}
	if uint64(lat.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: lattice of %d neurons is too large", ErrInvalidOptions, lat.Len())
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.NeighborSize == 0 {
		opts.NeighborSize = defaultNeighborSize(lat)
	}
	if err := validate(opts); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		if opts.RandomSeed != nil {
			rng = rand.New(rand.NewSource(*opts.RandomSeed)) // nolint gosec
		} else {
			rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
		}
	}

	t := &Trainer{
		lattice: lat,
		data:    ds,
		opts:    opts,
		rng:     rng,
		hits:    roaring.New(),
	}

	if err := t.Reset(); err != nil {
		return nil, err
	}

	return t, nil
}

// defaultNeighborSize is half the largest side length of the lattice.
func defaultNeighborSize(lat *lattice.Lattice) float64 {
	side := 0.0
	for _, e := range lat.Extent() {
		side = math.Max(side, e+1)
	}
	return side / 2
}

func validate(o Options) error {
	switch {
	case !(o.LearningFactor > 0 && o.LearningFactor <= 1):
		return fmt.Errorf("%w: learning factor %g not in (0, 1]", ErrInvalidOptions, o.LearningFactor)
	case !(o.NeighborSize > 0) || math.IsInf(o.NeighborSize, 0):
		return fmt.Errorf("%w: neighbor size %g must be positive", ErrInvalidOptions, o.NeighborSize)
	case !(o.LearningDecay > 0 && o.LearningDecay <= 1):
		return fmt.Errorf("%w: learning decay %g not in (0, 1]", ErrInvalidOptions, o.LearningDecay)
	case !(o.NeighborDecay > 0 && o.NeighborDecay <= 1):
		return fmt.Errorf("%w: neighbor decay %g not in (0, 1]", ErrInvalidOptions, o.NeighborDecay)
	case o.Initializer == nil:
		return fmt.Errorf("%w: nil initializer", ErrInvalidOptions)
	}
	return nil
}

// Step draws one sample, finds its best matching unit and pulls every
// neuron toward the sample with a gaussian falloff over lattice distance.
// Afterwards learning factor and neighbor size decay.
func (t *Trainer) Step() (Result, error) {
	idx := t.rng.Intn(t.data.Len())
	input := t.data.Row(idx)

	bmu, dist, err := t.lattice.BestMatch(input)
	if err != nil {
		return Result{}, err
	}

	twoSigmaSq := 2 * t.neighborSize * t.neighborSize
	for i := range t.lattice.Len() {
		n, err := t.lattice.Neuron(i)
		if err != nil {
			return Result{}, err
		}

		d, err := t.lattice.PositionDistance(bmu, i)
		if err != nil {
			return Result{}, err
		}

		df := 1.0
		if d != 0 {
			df = math.Exp(-d * d / twoSigmaSq)
		}

		lf := 1.0 - t.learningFactor*df
		if err := n.Adapt(input, lf); err != nil {
			return Result{}, err
		}
	}

	t.learningFactor *= t.opts.LearningDecay
	t.neighborSize *= t.opts.NeighborDecay
	t.iterations++
	t.hits.Add(uint32(bmu))

	return Result{Sample: idx, BMU: bmu, Distance: dist}, nil
}

// Run applies Step n times and returns the resulting state. It is not
// preemptible; callers that need cancellation call Step in their own loop.
func (t *Trainer) Run(n int) (State, error) {
	for range n {
		if _, err := t.Step(); err != nil {
			return t.State(), err
		}
	}
	return t.State(), nil
}

// Reset restores the starting learning factor and neighbor size, clears the
// BMU statistics and re-seeds every weight. Positions are untouched.
func (t *Trainer) Reset() error {
	t.learningFactor = t.opts.LearningFactor
	t.neighborSize = t.opts.NeighborSize
	t.iterations = 0
	t.hits.Clear()

	if err := t.opts.Initializer.Initialize(t.lattice, t.data, t.rng); err != nil {
		return fmt.Errorf("initialize weights: %w", err)
	}
	return nil
}

// State returns the current learning factor, neighbor size and step count.
func (t *Trainer) State() State {
	return State{
		LearningFactor: t.learningFactor,
		NeighborSize:   t.neighborSize,
		Iterations:     t.iterations,
	}
}

// Options returns the effective options (defaults resolved).
func (t *Trainer) Options() Options {
	return t.opts
}

// Lattice returns the trained lattice. Callers must treat it as read-only.
func (t *Trainer) Lattice() *lattice.Lattice {
	return t.lattice
}

// Dataset returns the training data.
func (t *Trainer) Dataset() *dataset.Dataset {
	return t.data
}

// Hits returns how many distinct neurons won at least once since the last
// reset.
func (t *Trainer) Hits() uint64 {
	return t.hits.GetCardinality()
}

// DeadUnits returns the lattice indices of neurons that never won since the
// last reset.
func (t *Trainer) DeadUnits() []int {
	var dead []int
	for i := range t.lattice.Len() {
		if !t.hits.Contains(uint32(i)) {
			dead = append(dead, i)
		}
	}
	return dead
}
