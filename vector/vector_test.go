package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kohonen/testutil"
)

func TestDistance(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for range 50 {
		a := Vector(rng.UniformVector(3))
		b := Vector(rng.UniformVector(3))

		ab, err := a.Distance(b)
		require.NoError(t, err)
		ba, err := b.Distance(a)
		require.NoError(t, err)
		assert.Equal(t, ab, ba)

		aa, err := a.Distance(a)
		require.NoError(t, err)
		assert.Equal(t, 0.0, aa)
	}

	d, err := Of(0, 0, 0).Distance(Of(1, 2, 2))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, d, 1e-12)
}

func TestDimensionMismatch(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(1, 2)

	_, err := a.Distance(b)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 3, dm.Expected)
	assert.Equal(t, 2, dm.Actual)

	_, err = a.Manhattan(b)
	assert.ErrorAs(t, err, &dm)

	_, err = a.Add(b, 1)
	assert.ErrorAs(t, err, &dm)
	assert.Equal(t, []float64{1, 2, 3}, a.ToArray(), "rejected add must not touch the receiver")
}

func TestScale(t *testing.T) {
	v := Of(1, -2, 3.5)
	scaled := v.Clone().Scale(2).ToArray()

	for i, x := range v.ToArray() {
		assert.Equal(t, 2*x, scaled[i])
	}
	assert.Equal(t, []float64{1, -2, 3.5}, v.ToArray())
}

func TestAdd(t *testing.T) {
	v := Of(1, 1, 1)
	out, err := v.Add(Of(1, 2, 3), 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 2.5}, v.ToArray())
	assert.Equal(t, v, out)

	// Chaining: scale, then accumulate.
	w := Of(2, 4)
	_, err = w.Scale(0.5).Add(Of(1, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, w.ToArray())
}

func TestZeroAndClone(t *testing.T) {
	v := Of(1, 2, 3)
	c := v.Clone()
	v.Zero()

	assert.Equal(t, []float64{0, 0, 0}, v.ToArray())
	assert.Equal(t, []float64{1, 2, 3}, c.ToArray())
	assert.Equal(t, 3, New(3).Dim())
}

func TestToArrayIsCopy(t *testing.T) {
	v := Of(1, 2)
	arr := v.ToArray()
	arr[0] = 42
	assert.Equal(t, 1.0, v[0])
	assert.Len(t, arr, v.Dim())
}

func TestManhattan(t *testing.T) {
	d, err := Of(0, 0).Manhattan(Of(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	d, err = Of(0, 0).Manhattan(Of(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, Of(1, 2).IsFinite())
	assert.False(t, Vector{1, math.NaN()}.IsFinite())
	assert.True(t, Of(1, 2).Equal(Of(1, 2)))
	assert.False(t, Of(1, 2).Equal(Of(1, 2, 3)))
}
