package trainer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kohonen/dataset"
	"github.com/hupe1980/kohonen/lattice"
	"github.com/hupe1980/kohonen/testutil"
	"github.com/hupe1980/kohonen/vector"
)

func fixedWeights(weights ...vector.Vector) Initializer {
	return InitializerFunc(func(lat *lattice.Lattice, _ *dataset.Dataset, _ *rand.Rand) error {
		for i, n := range lat.Neurons() {
			if err := n.SetWeight(weights[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func nearest(ds *dataset.Dataset, w vector.Vector) float64 {
	best := math.Inf(1)
	for i := range ds.Len() {
		d, _ := w.Distance(ds.Row(i))
		best = math.Min(best, d)
	}
	return best
}

func TestTriangleScenario(t *testing.T) {
	ds, err := dataset.New([][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	require.NoError(t, err)
	lat, err := lattice.NewChain(2, 3)
	require.NoError(t, err)

	initial := []vector.Vector{vector.Of(1, 1, 1), vector.Of(0.9, 1, 0.8)}

	tr, err := New(lat, ds, func(o *Options) {
		o.LearningFactor = 0.5
		o.NeighborSize = 1.0
		o.LearningDecay = 0.999
		o.NeighborDecay = 0.999
		o.Rand = testutil.NewRNG(4711).Rand()
		o.Initializer = fixedWeights(initial...)
	})
	require.NoError(t, err)

	_, err = tr.Run(10_000)
	require.NoError(t, err)

	for i, n := range lat.Neurons() {
		w := n.Weight()
		for _, x := range w {
			assert.GreaterOrEqual(t, x, -1e-12)
			assert.LessOrEqual(t, x, 1+1e-12)
		}
		assert.Less(t, nearest(ds, w), nearest(ds, initial[i]))
	}
	assert.Equal(t, uint64(10_000), tr.State().Iterations)
}

func TestSingleNeuronConverges(t *testing.T) {
	target := []float64{0.3, -2, 5}
	ds, err := dataset.New(testutil.Repeat(target, 10))
	require.NoError(t, err)
	lat, err := lattice.NewChain(1, 3)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) {
		o.Rand = testutil.NewRNG(1).Rand()
		o.Initializer = fixedWeights(vector.Of(10, 10, 10))
	})
	require.NoError(t, err)

	_, err = tr.Run(2000)
	require.NoError(t, err)

	n, err := lat.Neuron(0)
	require.NoError(t, err)
	for d, x := range n.Weight() {
		assert.InDelta(t, target[d], x, 1e-6)
	}
}

func TestDecayMonotonic(t *testing.T) {
	rng := testutil.NewRNG(7)
	ds, err := dataset.New(rng.UniformVectors(30, 3))
	require.NoError(t, err)
	lat, err := lattice.NewGrid(4, 4, 3)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) { o.Rand = rng.Rand() })
	require.NoError(t, err)

	prev := tr.State()
	assert.Equal(t, 0.1, prev.LearningFactor)
	assert.Equal(t, 2.0, prev.NeighborSize)

	for range 100 {
		_, err := tr.Step()
		require.NoError(t, err)
		cur := tr.State()
		assert.Less(t, cur.LearningFactor, prev.LearningFactor)
		assert.Less(t, cur.NeighborSize, prev.NeighborSize)
		assert.Equal(t, prev.Iterations+1, cur.Iterations)
		prev = cur
	}
}

func TestNoDecay(t *testing.T) {
	ds, err := dataset.New([][]float64{{0}, {1}})
	require.NoError(t, err)
	lat, err := lattice.NewChain(3, 1)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) {
		o.LearningDecay = 1
		o.NeighborDecay = 1
		o.Rand = testutil.NewRNG(1).Rand()
	})
	require.NoError(t, err)

	st, err := tr.Run(10)
	require.NoError(t, err)
	assert.Equal(t, 0.1, st.LearningFactor)
	assert.Equal(t, 1.5, st.NeighborSize)
}

func TestStep_TieKeepsEarliest(t *testing.T) {
	ds, err := dataset.New([][]float64{{0.2, 0.4, 0.6}})
	require.NoError(t, err)
	lat, err := lattice.NewChain(3, 3)
	require.NoError(t, err)

	same := vector.Of(0.5, 0.5, 0.5)
	tr, err := New(lat, ds, func(o *Options) {
		o.Rand = testutil.NewRNG(1).Rand()
		o.Initializer = fixedWeights(same, same, same)
	})
	require.NoError(t, err)

	res, err := tr.Step()
	require.NoError(t, err)
	assert.Equal(t, 0, res.BMU)
	assert.Equal(t, 0, res.Sample)
}

func TestStep_UpdateRule(t *testing.T) {
	ds, err := dataset.New([][]float64{{1, 1}})
	require.NoError(t, err)
	lat, err := lattice.NewChain(2, 2)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) {
		o.LearningFactor = 0.5
		o.NeighborSize = 1
		o.Rand = testutil.NewRNG(1).Rand()
		o.Initializer = fixedWeights(vector.Of(0, 0), vector.Of(-1, -1))
	})
	require.NoError(t, err)

	res, err := tr.Step()
	require.NoError(t, err)
	assert.Equal(t, 0, res.BMU)
	assert.InDelta(t, math.Sqrt2, res.Distance, 1e-12)

	// BMU: lf = 1 - 0.5 = 0.5.
	n0, _ := lat.Neuron(0)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, n0.Weight().ToArray(), 1e-12)

	// Neighbor at lattice distance 1: lf = 1 - 0.5*exp(-1/2).
	lf := 1 - 0.5*math.Exp(-0.5)
	want := -1*lf + (1 - lf)
	n1, _ := lat.Neuron(1)
	assert.InDeltaSlice(t, []float64{want, want}, n1.Weight().ToArray(), 1e-12)
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []lattice.NeuronState {
		ds, err := dataset.Spiral(200, testutil.NewRNG(11).Rand())
		require.NoError(t, err)
		lat, err := lattice.NewChain(10, 3)
		require.NoError(t, err)

		seed := int64(42)
		tr, err := New(lat, ds, func(o *Options) {
			o.RandomSeed = &seed
			o.Initializer = RandomInitializer{}
		})
		require.NoError(t, err)
		_, err = tr.Run(500)
		require.NoError(t, err)
		return lat.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestReset(t *testing.T) {
	rng := testutil.NewRNG(3)
	ds, err := dataset.New(rng.UniformVectors(20, 3))
	require.NoError(t, err)
	lat, err := lattice.NewGrid(3, 2, 3)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) { o.Rand = rng.Rand() })
	require.NoError(t, err)

	start := tr.State()
	initial := lat.Snapshot()

	_, err = tr.Run(50)
	require.NoError(t, err)
	assert.NotEqual(t, initial, lat.Snapshot())

	require.NoError(t, tr.Reset())
	assert.Equal(t, start, tr.State())
	assert.Equal(t, uint64(0), tr.Hits())

	// The PCA seed is deterministic for the full dataset.
	after := lat.Snapshot()
	for i := range initial {
		assert.Equal(t, initial[i].Position, after[i].Position)
		assert.InDeltaSlice(t, initial[i].Weight, after[i].Weight, 1e-9)
	}
}

func TestDeadUnits(t *testing.T) {
	ds, err := dataset.New(testutil.Repeat([]float64{0, 0, 0}, 5))
	require.NoError(t, err)
	lat, err := lattice.NewChain(5, 3)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) { o.Rand = testutil.NewRNG(1).Rand() })
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, tr.DeadUnits())

	_, err = tr.Run(20)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tr.Hits())
	assert.Equal(t, []int{1, 2, 3, 4}, tr.DeadUnits())
}

func TestPCAInitializer(t *testing.T) {
	ds, err := dataset.Spiral(500, testutil.NewRNG(1).Rand())
	require.NoError(t, err)
	lat, err := lattice.NewChain(40, 3)
	require.NoError(t, err)

	tr, err := New(lat, ds, func(o *Options) {
		o.Rand = testutil.NewRNG(2).Rand()
		o.Initializer = PCAInitializer{SampleSize: 200}
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, tr.State().NeighborSize)

	snap := lat.Snapshot()
	for _, s := range snap {
		assert.True(t, vector.Vector(s.Weight).IsFinite())
	}

	// Neighboring neurons start evenly spaced along a line.
	first, _ := vector.Vector(snap[0].Weight).Distance(snap[1].Weight)
	last, _ := vector.Vector(snap[38].Weight).Distance(snap[39].Weight)
	assert.Greater(t, first, 0.0)
	assert.InDelta(t, first, last, 1e-9)
}

func TestRandomInitializer_Bounds(t *testing.T) {
	ds, err := dataset.New([][]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)
	lat, err := lattice.NewChain(10, 2)
	require.NoError(t, err)

	_, err = New(lat, ds, func(o *Options) {
		o.Rand = testutil.NewRNG(5).Rand()
		o.Initializer = RandomInitializer{Lo: []float64{10, 20}, Hi: []float64{11, 21}}
	})
	require.NoError(t, err)

	for _, s := range lat.Snapshot() {
		assert.GreaterOrEqual(t, s.Weight[0], 10.0)
		assert.Less(t, s.Weight[0], 11.0)
		assert.GreaterOrEqual(t, s.Weight[1], 20.0)
		assert.Less(t, s.Weight[1], 21.0)
	}

	_, err = New(lat, ds, func(o *Options) {
		o.Initializer = RandomInitializer{Lo: []float64{0}, Hi: []float64{1}}
	})
	var dm *vector.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestNew_Errors(t *testing.T) {
	ds, err := dataset.New([][]float64{{0, 0, 0}})
	require.NoError(t, err)
	lat, err := lattice.NewChain(2, 3)
	require.NoError(t, err)

	_, err = New(nil, ds)
	assert.ErrorIs(t, err, lattice.ErrEmptyLattice)

	_, err = New(lat, nil)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	other, err := lattice.NewChain(2, 2)
	require.NoError(t, err)
	_, err = New(other, ds)
	var dm *vector.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)

	tests := []struct {
		name string
		fn   func(o *Options)
	}{
		{"ZeroLearningFactor", func(o *Options) { o.LearningFactor = 0 }},
		{"LargeLearningFactor", func(o *Options) { o.LearningFactor = 1.5 }},
		{"NegativeNeighborSize", func(o *Options) { o.NeighborSize = -1 }},
		{"ZeroLearningDecay", func(o *Options) { o.LearningDecay = 0 }},
		{"LargeNeighborDecay", func(o *Options) { o.NeighborDecay = 1.01 }},
		{"NilInitializer", func(o *Options) { o.Initializer = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(lat, ds, tt.fn)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}
