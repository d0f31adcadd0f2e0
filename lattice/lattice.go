// Package lattice holds the neurons of a self-organizing map: a fixed grid of
// positions in lattice space, each paired with a mutable weight in data space.
package lattice

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/kohonen/distance"
	"github.com/hupe1980/kohonen/vector"
)

var (
	// ErrEmptyLattice is returned when a lattice has no neurons.
	ErrEmptyLattice = errors.New("lattice has no neurons")

	// ErrIndexOutOfRange is returned for a neuron index outside the lattice.
	ErrIndexOutOfRange = errors.New("neuron index out of range")

	// ErrInvalidShape is returned for non-positive grid sizes or dimensions.
	ErrInvalidShape = errors.New("invalid lattice shape")
)

// Neuron pairs an immutable lattice position with a mutable weight.
type Neuron struct {
	position vector.Vector
	weight   vector.Vector
}

// Position returns a copy of the neuron's lattice coordinate.
func (n *Neuron) Position() vector.Vector {
	return n.position.Clone()
}

// Weight returns a copy of the neuron's current weight.
func (n *Neuron) Weight() vector.Vector {
	return n.weight.Clone()
}

// SetWeight replaces the weight with a copy of w.
func (n *Neuron) SetWeight(w vector.Vector) error {
	if w.Dim() != n.weight.Dim() {
		return &vector.ErrDimensionMismatch{Expected: n.weight.Dim(), Actual: w.Dim()}
	}
	copy(n.weight, w)
	return nil
}

// Adapt pulls the weight toward input: weight = weight*lf + input*(1-lf).
// The scale and the accumulation are two separate in-place passes.
func (n *Neuron) Adapt(input vector.Vector, lf float64) error {
	if input.Dim() != n.weight.Dim() {
		return &vector.ErrDimensionMismatch{Expected: n.weight.Dim(), Actual: input.Dim()}
	}
	_, err := n.weight.Scale(lf).Add(input, 1-lf)
	return err
}

// Lattice is an ordered collection of neurons. Order is insertion order and
// decides BMU ties.
type Lattice struct {
	neurons     []*Neuron
	positionDim int
	dataDim     int
	lo, hi      []float64
}

// New creates a lattice with one neuron per position and zero weights of
// dimension dataDim. All positions must share one dimension.
func New(positions []vector.Vector, dataDim int) (*Lattice, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyLattice
	}
	if dataDim <= 0 {
		return nil, fmt.Errorf("%w: data dimension %d", ErrInvalidShape, dataDim)
	}

	posDim := positions[0].Dim()
	if posDim == 0 {
		return nil, fmt.Errorf("%w: position dimension 0", ErrInvalidShape)
	}

	l := &Lattice{
		neurons:     make([]*Neuron, len(positions)),
		positionDim: posDim,
		dataDim:     dataDim,
		lo:          positions[0].ToArray(),
		hi:          positions[0].ToArray(),
	}

	for i, p := range positions {
		if p.Dim() != posDim {
			return nil, &vector.ErrDimensionMismatch{Expected: posDim, Actual: p.Dim()}
		}
		for d, x := range p {
			l.lo[d] = math.Min(l.lo[d], x)
			l.hi[d] = math.Max(l.hi[d], x)
		}
		l.neurons[i] = &Neuron{
			position: p.Clone(),
			weight:   vector.New(dataDim),
		}
	}

	return l, nil
}

// NewChain creates a 1D lattice with positions 0..n-1.
func NewChain(n, dataDim int) (*Lattice, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: chain length %d", ErrInvalidShape, n)
	}
	positions := make([]vector.Vector, n)
	for x := range n {
		positions[x] = vector.Of(float64(x))
	}
	return New(positions, dataDim)
}

// NewGrid creates a 2D lattice of width*height neurons in row-major order.
func NewGrid(width, height, dataDim int) (*Lattice, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidShape, width, height)
	}
	positions := make([]vector.Vector, 0, width*height)
	for y := range height {
		for x := range width {
			positions = append(positions, vector.Of(float64(x), float64(y)))
		}
	}
	return New(positions, dataDim)
}

// Len returns the number of neurons.
func (l *Lattice) Len() int {
	return len(l.neurons)
}

// PositionDim returns the dimension of lattice space.
func (l *Lattice) PositionDim() int {
	return l.positionDim
}

// DataDim returns the dimension of the weights.
func (l *Lattice) DataDim() int {
	return l.dataDim
}

// Neuron returns the i-th neuron.
func (l *Lattice) Neuron(i int) (*Neuron, error) {
	if i < 0 || i >= len(l.neurons) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return l.neurons[i], nil
}

// Neurons returns the neurons in lattice order. The slice is a copy; the
// neurons are not.
func (l *Lattice) Neurons() []*Neuron {
	out := make([]*Neuron, len(l.neurons))
	copy(out, l.neurons)
	return out
}

// Extent returns max-min of the positions along each lattice axis.
func (l *Lattice) Extent() []float64 {
	ext := make([]float64, l.positionDim)
	for d := range ext {
		ext[d] = l.hi[d] - l.lo[d]
	}
	return ext
}

// Normalized maps the i-th position into [0,1] per axis. An axis with zero
// extent maps to 0.5.
func (l *Lattice) Normalized(i int) (vector.Vector, error) {
	n, err := l.Neuron(i)
	if err != nil {
		return nil, err
	}
	out := vector.New(l.positionDim)
	for d, x := range n.position {
		span := l.hi[d] - l.lo[d]
		if span == 0 {
			out[d] = 0.5
			continue
		}
		out[d] = (x - l.lo[d]) / span
	}
	return out, nil
}

// BestMatch returns the index of the neuron whose weight is closest to input
// and that distance. Neurons are scanned in lattice order and a later neuron
// only wins on a strictly smaller distance.
func (l *Lattice) BestMatch(input vector.Vector) (int, float64, error) {
	if len(l.neurons) == 0 {
		return -1, 0, ErrEmptyLattice
	}
	if input.Dim() != l.dataDim {
		return -1, 0, &vector.ErrDimensionMismatch{Expected: l.dataDim, Actual: input.Dim()}
	}

	best := 0
	minDist := distance.L2(l.neurons[0].weight, input)
	for i := 1; i < len(l.neurons); i++ {
		d := distance.L2(l.neurons[i].weight, input)
		if d < minDist {
			minDist = d
			best = i
		}
	}

	return best, minDist, nil
}

// BestTwo returns the best and second best matching units for input under
// the same earliest-wins ordering as BestMatch. With a single neuron both
// indices are 0.
func (l *Lattice) BestTwo(input vector.Vector) (int, int, error) {
	if len(l.neurons) == 0 {
		return -1, -1, ErrEmptyLattice
	}
	if input.Dim() != l.dataDim {
		return -1, -1, &vector.ErrDimensionMismatch{Expected: l.dataDim, Actual: input.Dim()}
	}
	if len(l.neurons) == 1 {
		return 0, 0, nil
	}

	first, second := -1, -1
	d1, d2 := math.Inf(1), math.Inf(1)
	for i, n := range l.neurons {
		d := distance.L2(n.weight, input)
		switch {
		case first < 0 || d < d1:
			second, d2 = first, d1
			first, d1 = i, d
		case second < 0 || d < d2:
			second, d2 = i, d
		}
	}

	return first, second, nil
}

// PositionDistance returns the euclidean distance between two lattice
// positions.
func (l *Lattice) PositionDistance(i, j int) (float64, error) {
	a, err := l.Neuron(i)
	if err != nil {
		return 0, err
	}
	b, err := l.Neuron(j)
	if err != nil {
		return 0, err
	}
	return distance.L2(a.position, b.position), nil
}

// Adjacent reports whether neurons i and j are direct grid neighbors
// (Manhattan distance of exactly 1).
func (l *Lattice) Adjacent(i, j int) (bool, error) {
	a, err := l.Neuron(i)
	if err != nil {
		return false, err
	}
	b, err := l.Neuron(j)
	if err != nil {
		return false, err
	}
	return distance.Manhattan(a.position, b.position) == 1, nil
}

// Neighbors returns the indices of the direct grid neighbors of neuron i in
// lattice order.
func (l *Lattice) Neighbors(i int) ([]int, error) {
	n, err := l.Neuron(i)
	if err != nil {
		return nil, err
	}
	var out []int
	for j, m := range l.neurons {
		if distance.Manhattan(n.position, m.position) == 1 {
			out = append(out, j)
		}
	}
	return out, nil
}

// NeuronState is a detached copy of one neuron.
type NeuronState struct {
	Position []float64
	Weight   []float64
}

// Snapshot copies every neuron's position and weight in lattice order.
func (l *Lattice) Snapshot() []NeuronState {
	out := make([]NeuronState, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = NeuronState{
			Position: n.position.ToArray(),
			Weight:   n.weight.ToArray(),
		}
	}
	return out
}
