package sim

import (
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Run simulates three bodies with explicit Euler and returns the position
// history (steps+1 entries per body) and force history (steps entries per
// body). Masses are raw and scaled by physics.MassScale. It performs no I/O.
func Run(masses [dynamo.NumBodies]float64, pos, vel [dynamo.NumBodies]r2.Vec, totalTime, dt float64) (*dynamo.History, error) {
	p := dynamo.Params{Duration: totalTime, Dt: dt}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sys, err := physics.NewSystem(masses, pos, vel)
	if err != nil {
		return nil, err
	}
	res, err := New(integrators.NewEuler()).Run(sys, Config{Params: p})
	if err != nil {
		return nil, err
	}
	return res.History, nil
}

type Simulator struct {
	integrator integrators.Integrator
	metrics    []Metric
	observers  []Observer
}

func New(integrator integrators.Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps a private copy of sys; the caller's system is left untouched.
// If ValidateState is set and the state turns non-finite, the history up
// to the last finite step is returned along with a *dynamo.SimError.
func (s *Simulator) Run(sys *physics.System, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.NumSteps()
	state := sys.Clone()
	result := &Result{
		History: dynamo.NewHistory(state.Positions(), steps, cfg.Dt),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(state, 0)
	}

	for i := 0; i < steps; i++ {
		forces := s.integrator.Step(state, cfg.Dt)
		t := float64(i+1) * cfg.Dt

		if cfg.ValidateState && !state.IsValid() {
			s.collect(result)
			return result, &dynamo.SimError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		result.History.Record(state.Positions(), forces)
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(state, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(i, state, forces)
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
