// Package dynamo provides the shared primitives of the three-body simulator.
//
// The package defines the types that flow between the integrator and its
// consumers:
//
//   - [Params]: run duration and fixed time step
//   - [History]: recorded positions and forces for every body
//   - [ParameterError], [RenderError]: typed errors wrapping the sentinels
//
// # Example
//
//	p := dynamo.Params{Duration: 500, Dt: 1}
//	if err := p.Validate(); err != nil {
//		return err
//	}
//	h := dynamo.NewHistory(initial, p.NumSteps(), p.Dt)
//
// # Thread Safety
//
// A History is written by exactly one run and is read-only afterwards;
// concurrent readers are safe once the run has returned.
package dynamo
