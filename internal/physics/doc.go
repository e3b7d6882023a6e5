// Package physics provides the gravitational three-body system.
//
// A [System] owns exactly three [Body] values sharing the fixed
// gravitational constant [G]. Raw input masses are multiplied by
// [MassScale] when the system is built; nothing else rescales them.
//
// The pairwise law is
//
//	F_ij = G * m_j * (p_j - p_i) / (|p_j - p_i| + DistanceGuard)^3
//
// where [DistanceGuard] is added to the raw distance before cubing so that
// coincident bodies produce a finite (zero) contribution instead of a
// division by zero. It is not a softening length.
//
// # Energy
//
// [System.Energy] is not conserved by explicit Euler; use it to observe
// drift:
//
//	e0 := sys.Energy()
//	// ... run ...
//	drift := math.Abs(sys.Energy()-e0) / math.Abs(e0)
package physics
