package sim

import (
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Metric interface {
	Name() string
	Observe(s *physics.System, t float64)
	Value() float64
	Reset()
}

// Observer sees the state after each step together with the forces that
// produced it.
type Observer interface {
	OnStep(step int, s *physics.System, forces [dynamo.NumBodies]r2.Vec)
}

type Config struct {
	dynamo.Params
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Params:        dynamo.Params{Duration: 500, Dt: 1},
		ValidateState: true,
	}
}

// Scenario is a full set of initial conditions. Masses are raw, unscaled.
type Scenario struct {
	Name       string
	Masses     [dynamo.NumBodies]float64
	Positions  [dynamo.NumBodies]r2.Vec
	Velocities [dynamo.NumBodies]r2.Vec
}

func (sc Scenario) System() (*physics.System, error) {
	return physics.NewSystem(sc.Masses, sc.Positions, sc.Velocities)
}

type Result struct {
	History    *dynamo.History
	Metrics    map[string]float64
	StepsTaken int
}
