package integrators

import (
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Integrator advances a system by one fixed step and reports the force
// applied to each body during that step.
type Integrator interface {
	Step(s *physics.System, dt float64) [dynamo.NumBodies]r2.Vec
}

// Euler is the explicit Euler scheme.
//
// Forces are taken from the start-of-step positions and each velocity is
// updated as soon as its force is known. Positions move only after every
// velocity has been updated, using the new velocities. Reordering these
// passes changes the numbers.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(s *physics.System, dt float64) [dynamo.NumBodies]r2.Vec {
	var forces [dynamo.NumBodies]r2.Vec
	for i := range s.Bodies {
		f := s.NetForce(i)
		forces[i] = f
		b := &s.Bodies[i]
		b.Vel = r2.Vec{X: b.Vel.X + f.X*dt, Y: b.Vel.Y + f.Y*dt}
	}
	for i := range s.Bodies {
		b := &s.Bodies[i]
		b.Pos = r2.Vec{X: b.Pos.X + b.Vel.X*dt, Y: b.Pos.Y + b.Vel.Y*dt}
	}
	return forces
}
