package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/threebody/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Body is one simulated point mass. Mass is already scaled.
type Body struct {
	Index int
	Mass  float64
	Pos   r2.Vec
	Vel   r2.Vec
}

// System is the mutable state of a run.
// Bodies are only moved by an integrator step.
type System struct {
	Bodies [dynamo.NumBodies]Body
}

// NewSystem scales the raw masses and copies the initial conditions.
func NewSystem(masses [dynamo.NumBodies]float64, pos, vel [dynamo.NumBodies]r2.Vec) (*System, error) {
	s := &System{}
	for i := range masses {
		if math.IsNaN(masses[i]) || math.IsInf(masses[i], 0) {
			return nil, dynamo.InvalidParameter(fmt.Sprintf("mass%d", i+1), masses[i], "must be finite")
		}
		if masses[i] <= 0 {
			return nil, dynamo.InvalidParameter(fmt.Sprintf("mass%d", i+1), masses[i], "must be positive")
		}
		s.Bodies[i] = Body{
			Index: i,
			Mass:  masses[i] * MassScale,
			Pos:   pos[i],
			Vel:   vel[i],
		}
	}
	return s, nil
}

func (s *System) Clone() *System {
	c := *s
	return &c
}

// NetForce sums the pull of every other body on body i, in index order.
func (s *System) NetForce(i int) r2.Vec {
	var f r2.Vec
	for j := range s.Bodies {
		if i == j {
			continue
		}
		f = r2.Add(f, PairForce(s.Bodies[j].Mass, s.Bodies[i].Pos, s.Bodies[j].Pos))
	}
	return f
}

func (s *System) Positions() [dynamo.NumBodies]r2.Vec {
	var out [dynamo.NumBodies]r2.Vec
	for i, b := range s.Bodies {
		out[i] = b.Pos
	}
	return out
}

func (s *System) Velocities() [dynamo.NumBodies]r2.Vec {
	var out [dynamo.NumBodies]r2.Vec
	for i, b := range s.Bodies {
		out[i] = b.Vel
	}
	return out
}

func (s *System) Momentum() r2.Vec {
	var p r2.Vec
	for _, b := range s.Bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

func (s *System) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range s.Bodies {
		ke += 0.5 * b.Mass * r2.Norm2(b.Vel)
	}
	return ke
}

// PotentialEnergy uses the guarded distance so it stays finite when
// bodies coincide.
func (s *System) PotentialEnergy() float64 {
	pe := 0.0
	for i := 0; i < len(s.Bodies); i++ {
		for j := i + 1; j < len(s.Bodies); j++ {
			d := guardedDistance(s.Bodies[i].Pos, s.Bodies[j].Pos)
			pe -= G * s.Bodies[i].Mass * s.Bodies[j].Mass / d
		}
	}
	return pe
}

func (s *System) Energy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// MinSeparation is the smallest raw pairwise distance.
func (s *System) MinSeparation() float64 {
	minD := math.Inf(1)
	for i := 0; i < len(s.Bodies); i++ {
		for j := i + 1; j < len(s.Bodies); j++ {
			minD = math.Min(minD, r2.Norm(r2.Sub(s.Bodies[j].Pos, s.Bodies[i].Pos)))
		}
	}
	return minD
}

// IsValid reports whether every position and velocity is finite.
func (s *System) IsValid() bool {
	for _, b := range s.Bodies {
		for _, v := range []float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// GetParams reports the raw masses and G.
func (s *System) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": s.Bodies[0].Mass / MassScale,
		"m2": s.Bodies[1].Mass / MassScale,
		"m3": s.Bodies[2].Mass / MassScale,
		"g":  G,
	}
}
