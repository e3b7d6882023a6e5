package metrics

import "github.com/san-kum/threebody/internal/sim"

// Default returns the metrics attached to every CLI run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewMinSeparation(),
	}
}
