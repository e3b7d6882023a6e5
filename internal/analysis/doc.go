// Package analysis measures how sensitive a three-body run is to its
// initial conditions.
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	d, err := analysis.LyapunovExponent(sys, integrators.NewEuler(), dt, duration, 1e-6)
//	if err == nil && d.Exponent > 0 {
//	    // nearby trajectories separate exponentially
//	}
package analysis
