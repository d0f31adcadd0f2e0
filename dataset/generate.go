package dataset

import (
	"math"
	"math/rand"
)

// Spiral generates n points on a noisy conical spiral in 3D:
//
//	t ~ U[0,1)
//	(sin(24t)*t, cos(24t)*t, 1-t) + 0.1*U[0,1) per axis
func Spiral(n int, rng *rand.Rand) (*Dataset, error) {
	rows := make([][]float64, n)
	for i := range rows {
		t := rng.Float64()
		rows[i] = []float64{
			math.Sin(t*24)*t + 0.1*rng.Float64(),
			math.Cos(t*24)*t + 0.1*rng.Float64(),
			1.0 - t + 0.1*rng.Float64(),
		}
	}
	return New(rows)
}

// Uniform generates n points uniformly in [0,1)^dim.
func Uniform(n, dim int, rng *rand.Rand) (*Dataset, error) {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, dim)
		for d := range rows[i] {
			rows[i][d] = rng.Float64()
		}
	}
	return New(rows)
}
