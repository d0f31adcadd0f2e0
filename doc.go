// Package kohonen provides a self-organizing map (Kohonen network) engine
// that learns to approximate a point cloud.
//
// A Map owns a lattice of neurons. Each neuron has a fixed position on a 1D
// or 2D grid and a weight in data space. Training repeatedly draws a random
// sample, finds the best matching unit (BMU) and pulls every weight toward
// the sample with a gaussian falloff over lattice distance from the BMU.
// Learning factor and neighborhood radius decay geometrically per step.
//
// # Quick Start
//
//	rng := rand.New(rand.NewSource(1))
//	ds, _ := dataset.Spiral(500, rng)
//	lat, _ := lattice.NewChain(40, ds.Dim())
//
//	m, _ := kohonen.New(ds, lat, kohonen.WithSeed(42))
//	st, _ := m.Run(1000)
//	fmt.Println(st.LearningFactor, st.NeighborSize)
//
//	for _, n := range m.Snapshot() {
//	    fmt.Println(n.Position, n.Weight)
//	}
//
// # Initialization
//
// By default weights are seeded by PCA: the lattice's normalized coordinates
// are mapped onto the data's dominant directions, so training starts from an
// untangled sheet instead of random noise. Use WithInitializer with a
// trainer.RandomInitializer for uniform seeding.
//
// # Concurrency
//
// The numerical core (package trainer) is single-threaded and not safe for
// concurrent use. Map serializes access with a mutex. RunContext checks for
// cancellation between steps. BestOf trains independent maps in parallel
// and keeps the one with the lowest quantization error.
//
// # Diagnostics
//
//   - State: learning factor, neighbor size, step count
//   - Quality: quantization error and topographic error
//   - DeadUnits: neurons that have not won a sample since the last reset
package kohonen
