// Package distance provides vector distance kernels.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance (data space and neighborhood falloff)
//   - MetricManhattan: L1 distance (grid adjacency on lattice coordinates)
//
// # Usage
//
//	d := distance.L2(a, b)
//	sq := distance.SquaredL2(a, b)
//	steps := distance.Manhattan(p, q)
package distance
