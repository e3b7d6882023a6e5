package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NumBodies is fixed for the lifetime of a run.
const NumBodies = 3

// preallocCap bounds the up-front history allocation; longer runs grow.
const preallocCap = 1 << 16

// Params are the fixed run parameters.
type Params struct {
	Duration float64
	Dt       float64
}

func (p Params) Validate() error {
	if math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) {
		return InvalidParameter("dt", p.Dt, "must be finite")
	}
	if p.Dt <= 0 {
		return InvalidParameter("dt", p.Dt, "must be positive")
	}
	if math.IsNaN(p.Duration) || math.IsInf(p.Duration, 0) {
		return InvalidParameter("duration", p.Duration, "must be finite")
	}
	if p.Duration < 0 {
		return InvalidParameter("duration", p.Duration, "must not be negative")
	}
	if p.Duration/p.Dt >= float64(math.MaxInt) {
		return InvalidParameter("duration", p.Duration, fmt.Sprintf("step count overflows at dt=%g", p.Dt))
	}
	return nil
}

// NumSteps truncates Duration/Dt toward zero. Call Validate first.
func (p Params) NumSteps() int {
	return int(p.Duration / p.Dt)
}

// History holds one position per step plus the initial one, and one force
// per step, for every body.
type History struct {
	Positions [NumBodies][]r2.Vec
	Forces    [NumBodies][]r2.Vec
	Dt        float64
}

func NewHistory(initial [NumBodies]r2.Vec, steps int, dt float64) *History {
	n := steps
	if n > preallocCap {
		n = preallocCap
	}
	h := &History{Dt: dt}
	for i := range initial {
		h.Positions[i] = make([]r2.Vec, 1, n+1)
		h.Positions[i][0] = initial[i]
		h.Forces[i] = make([]r2.Vec, 0, n)
	}
	return h
}

// Record appends the post-step positions and the forces applied in the step.
func (h *History) Record(pos, forces [NumBodies]r2.Vec) {
	for i := 0; i < NumBodies; i++ {
		h.Positions[i] = append(h.Positions[i], pos[i])
		h.Forces[i] = append(h.Forces[i], forces[i])
	}
}

// Steps is the number of completed steps.
func (h *History) Steps() int {
	return len(h.Forces[0])
}

func (h *History) Time(k int) float64 {
	return float64(k) * h.Dt
}

// Frame returns positions at step k and the force applied during step k.
// At k == Steps() the forces are zero: no step starts there.
func (h *History) Frame(k int) (pos, forces [NumBodies]r2.Vec) {
	for i := 0; i < NumBodies; i++ {
		pos[i] = h.Positions[i][k]
		if k < len(h.Forces[i]) {
			forces[i] = h.Forces[i][k]
		}
	}
	return pos, forces
}

func (h *History) Initial() [NumBodies]r2.Vec {
	pos, _ := h.Frame(0)
	return pos
}

func (h *History) Final() [NumBodies]r2.Vec {
	pos, _ := h.Frame(len(h.Positions[0]) - 1)
	return pos
}

// Validate checks the length invariants.
func (h *History) Validate() error {
	steps := len(h.Forces[0])
	for i := 0; i < NumBodies; i++ {
		if len(h.Positions[i]) == 0 {
			return ErrEmptyHistory
		}
		if len(h.Forces[i]) != steps || len(h.Positions[i]) != steps+1 {
			return fmt.Errorf("dynamo: body %d has %d positions and %d forces, want %d and %d",
				i, len(h.Positions[i]), len(h.Forces[i]), steps+1, steps)
		}
	}
	return nil
}

// Bounds returns the corners of the box enclosing every recorded position.
func (h *History) Bounds() (lo, hi r2.Vec) {
	lo = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := 0; i < NumBodies; i++ {
		for _, p := range h.Positions[i] {
			lo.X = math.Min(lo.X, p.X)
			lo.Y = math.Min(lo.Y, p.Y)
			hi.X = math.Max(hi.X, p.X)
			hi.Y = math.Max(hi.Y, p.Y)
		}
	}
	return lo, hi
}

// Displacement is the largest distance body i reaches from its start.
func (h *History) Displacement(i int) float64 {
	start := h.Positions[i][0]
	maxD := 0.0
	for _, p := range h.Positions[i] {
		maxD = math.Max(maxD, r2.Norm(r2.Sub(p, start)))
	}
	return maxD
}

// PathLength sums the distance travelled by body i between snapshots.
func (h *History) PathLength(i int) float64 {
	total := 0.0
	for k := 1; k < len(h.Positions[i]); k++ {
		total += r2.Norm(r2.Sub(h.Positions[i][k], h.Positions[i][k-1]))
	}
	return total
}

// ForceMagnitudes returns |F| per step for body i.
func (h *History) ForceMagnitudes(i int) []float64 {
	out := make([]float64, len(h.Forces[i]))
	for k, f := range h.Forces[i] {
		out[k] = r2.Norm(f)
	}
	return out
}
