package render

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// ClampForce limits the displayed force vector to magnitude limit, keeping
// its direction. Vectors at or below the limit are returned unchanged.
func ClampForce(f r2.Vec, limit float64) r2.Vec {
	mag := r2.Norm(f)
	if mag > limit {
		return r2.Vec{X: f.X / mag * limit, Y: f.Y / mag * limit}
	}
	return f
}
