// Package pca computes a low-rank linear approximation of a point cloud and
// maps normalized latent coordinates back into data space. It is used to seed
// lattice weights along the data's dominant directions.
package pca

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/kohonen/vector"
)

var (
	// ErrEmptyInput is returned when Fit receives no rows.
	ErrEmptyInput = errors.New("pca: no rows")

	// ErrInvalidRank is returned when k is outside [1, D].
	ErrInvalidRank = errors.New("pca: invalid rank")

	// ErrFactorization is returned when the SVD does not converge.
	ErrFactorization = errors.New("pca: svd factorization failed")
)

// ErrDegenerateStatistics is returned under DegenerateReject when a dimension
// has (near) zero standard deviation.
type ErrDegenerateStatistics struct {
	Dimension int
	StdDev    float64
}

func (e *ErrDegenerateStatistics) Error() string {
	return fmt.Sprintf("pca: dimension %d has degenerate standard deviation %g", e.Dimension, e.StdDev)
}

// DegeneratePolicy decides what happens to a dimension whose standard
// deviation is at or below Options.Epsilon.
type DegeneratePolicy int

const (
	// DegenerateUnit standardizes such a dimension with a stddev of 1, so it
	// is only centered.
	DegenerateUnit DegeneratePolicy = iota
	// DegenerateReject fails the fit with *ErrDegenerateStatistics.
	DegenerateReject
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateUnit:
		return "Unit"
	case DegenerateReject:
		return "Reject"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Options configures Fit.
type Options struct {
	// Epsilon is the stddev at or below which a dimension counts as constant.
	Epsilon float64
	// Degenerate selects the handling of constant dimensions.
	Degenerate DegeneratePolicy
}

// DefaultOptions contains the default options for Fit.
var DefaultOptions = Options{
	Epsilon:    1e-12,
	Degenerate: DegenerateUnit,
}

// Basis is an immutable PCA model: per-dimension mean and stddev, a D x k
// orthonormal projection and the observed bounds of the projected sample.
type Basis struct {
	mean       []float64
	stddev     []float64
	components *mat.Dense // D x k
	lo, hi     []float64
}

// Fit derives a Basis of rank k from rows.
func Fit(rows [][]float64, k int, optFns ...func(o *Options)) (*Basis, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	m := len(rows)
	if m == 0 {
		return nil, ErrEmptyInput
	}
	dim := len(rows[0])
	if k < 1 || k > dim {
		return nil, fmt.Errorf("%w: k=%d for dimension %d", ErrInvalidRank, k, dim)
	}

	x := mat.NewDense(m, dim, nil)
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("row %d: %w", i, &vector.ErrDimensionMismatch{Expected: dim, Actual: len(r)})
		}
		x.SetRow(i, r)
	}

	b := &Basis{
		mean:   make([]float64, dim),
		stddev: make([]float64, dim),
	}

	col := make([]float64, m)
	for j := range dim {
		mat.Col(col, j, x)
		mu, variance := stat.PopMeanVariance(col, nil)
		sd := math.Sqrt(variance)
		if sd <= opts.Epsilon || math.IsNaN(sd) {
			if opts.Degenerate == DegenerateReject {
				return nil, &ErrDegenerateStatistics{Dimension: j, StdDev: sd}
			}
			sd = 1
		}
		b.mean[j] = mu
		b.stddev[j] = sd
	}

	x.Apply(func(_, j int, v float64) float64 {
		return (v - b.mean[j]) / b.stddev[j]
	}, x)

	var cov mat.Dense
	cov.Mul(x.T(), x)
	cov.Scale(1/float64(m), &cov)

	var svd mat.SVD
	if ok := svd.Factorize(&cov, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	var u mat.Dense
	svd.UTo(&u)
	b.components = mat.DenseCopyOf(u.Slice(0, dim, 0, k))

	var proj mat.Dense
	proj.Mul(x, b.components)

	b.lo = make([]float64, k)
	b.hi = make([]float64, k)
	for a := range k {
		b.lo[a] = math.Inf(1)
		b.hi[a] = math.Inf(-1)
		for i := range m {
			v := proj.At(i, a)
			b.lo[a] = math.Min(b.lo[a], v)
			b.hi[a] = math.Max(b.hi[a], v)
		}
	}

	return b, nil
}

// Dim returns the data-space dimension D.
func (b *Basis) Dim() int {
	return len(b.mean)
}

// Rank returns the latent dimension k.
func (b *Basis) Rank() int {
	return len(b.lo)
}

// Mean returns a copy of the per-dimension mean.
func (b *Basis) Mean() []float64 {
	return append([]float64(nil), b.mean...)
}

// StdDev returns a copy of the per-dimension standard deviation used for
// standardization (after the degenerate policy was applied).
func (b *Basis) StdDev() []float64 {
	return append([]float64(nil), b.stddev...)
}

// Components returns a copy of the D x k projection matrix.
func (b *Basis) Components() *mat.Dense {
	return mat.DenseCopyOf(b.components)
}

// Bounds returns copies of the per-axis min and max of the projected sample.
func (b *Basis) Bounds() (lo, hi []float64) {
	return append([]float64(nil), b.lo...), append([]float64(nil), b.hi...)
}

// Project maps a data-space point to its normalized latent coordinate. It is
// the inverse of Recover. Axes with zero observed range map to 0.
func (b *Basis) Project(x vector.Vector) (vector.Vector, error) {
	if x.Dim() != b.Dim() {
		return nil, &vector.ErrDimensionMismatch{Expected: b.Dim(), Actual: x.Dim()}
	}

	z := mat.NewVecDense(b.Dim(), nil)
	for j, v := range x {
		z.SetVec(j, (v-b.mean[j])/b.stddev[j])
	}

	var v mat.VecDense
	v.MulVec(b.components.T(), z)

	out := vector.New(b.Rank())
	for a := range out {
		span := b.hi[a] - b.lo[a]
		if span == 0 {
			continue
		}
		out[a] = (v.AtVec(a) - b.lo[a]) / span
	}
	return out, nil
}

// Denormalize rescales a latent coordinate from [0,1]^k into the observed
// projected range, v_i = latent_i*(max_i-min_i) + min_i.
func (b *Basis) Denormalize(latent vector.Vector) (vector.Vector, error) {
	if latent.Dim() != b.Rank() {
		return nil, &vector.ErrDimensionMismatch{Expected: b.Rank(), Actual: latent.Dim()}
	}
	out := vector.New(b.Rank())
	for a, l := range latent {
		out[a] = l*(b.hi[a]-b.lo[a]) + b.lo[a]
	}
	return out, nil
}

// Recover maps a normalized latent coordinate in [0,1]^k back into data
// space.
func (b *Basis) Recover(latent vector.Vector) (vector.Vector, error) {
	scaled, err := b.Denormalize(latent)
	if err != nil {
		return nil, err
	}

	var raw mat.VecDense
	raw.MulVec(b.components, mat.NewVecDense(b.Rank(), scaled))

	out := vector.New(b.Dim())
	for j := range out {
		out[j] = raw.AtVec(j)*b.stddev[j] + b.mean[j]
	}
	return out, nil
}
