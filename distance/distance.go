// Package distance provides public API for vector distance calculations.
// The kernels are generic over float32 and float64 element types.
package distance

import (
	"fmt"
	"math"
)

// Float is the set of element types the kernels accept.
type Float interface {
	~float32 | ~float64
}

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot[T Float](a, b []T) T {
	var sum T
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2[T Float](a, b []T) T {
	var sum T
	for i := range a {
		d := b[i] - a[i]
		sum += d * d
	}
	return sum
}

// L2 calculates the Euclidean distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func L2[T Float](a, b []T) T {
	return T(math.Sqrt(float64(SquaredL2(a, b))))
}

// Manhattan calculates the L1 distance between two vectors.
// On integer lattice coordinates a distance of 1 means direct grid neighbors.
func Manhattan[T Float](a, b []T) T {
	var sum T
	for i := range a {
		d := b[i] - a[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricL2 Metric = iota
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricManhattan:
		return "Manhattan"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return L2[float64], nil
	case MetricManhattan:
		return Manhattan[float64], nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
