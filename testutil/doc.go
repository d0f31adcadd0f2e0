// Package testutil provides testing utilities for kohonen.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, mutex guarded RNG and helpers for generating
// point clouds.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := rng.UniformVector(3)         // uniform [0, 1)
//	rows := rng.GaussianVectors(100, 3) // standard normal
//	rows = rng.ClusteredVectors(100, 3, 4, 0.05)
package testutil
