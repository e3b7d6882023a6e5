package metrics

import (
	"math"

	"github.com/san-kum/threebody/internal/physics"
)

// MinSeparation records the closest approach of any pair.
type MinSeparation struct {
	name    string
	minDist float64
	when    float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", minDist: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(s *physics.System, t float64) {
	if d := s.MinSeparation(); d < m.minDist {
		m.minDist = d
		m.when = t
	}
}

// Value is +Inf before the first observation.
func (m *MinSeparation) Value() float64 { return m.minDist }

// When is the time of closest approach.
func (m *MinSeparation) When() float64 { return m.when }

func (m *MinSeparation) Reset() {
	m.minDist = math.Inf(1)
	m.when = 0
}
