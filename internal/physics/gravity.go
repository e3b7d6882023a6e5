package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// G is the gravitational constant. Part of the contract, never tuned.
	G = 6.67430e-11

	// MassScale converts raw input masses (megatons) to kilograms.
	MassScale = 1e9

	// DistanceGuard is added to the distance before cubing.
	DistanceGuard = 1e-10
)

// PairForce is the pull of a body of mass mj at pj on a body at pi.
// The result is per unit mass of the body at pi.
func PairForce(mj float64, pi, pj r2.Vec) r2.Vec {
	r := r2.Sub(pj, pi)
	d3 := math.Pow(guardedDistance(pi, pj), 3)
	s := G * mj
	return r2.Vec{X: s * r.X / d3, Y: s * r.Y / d3}
}

// guardedDistance is the distance as seen by the force law.
func guardedDistance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a)) + DistanceGuard
}
