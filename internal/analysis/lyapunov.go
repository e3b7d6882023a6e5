package analysis

import (
	"math"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Divergence is the outcome of a twin-trajectory run.
type Divergence struct {
	// Exponent is the largest Lyapunov exponent estimate, per unit time.
	Exponent float64
	// LogGrowth[k] is the accumulated ln(separation growth) after step k+1.
	LogGrowth []float64
}

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method.
//
// Algorithm:
// 1. Run sys and a copy with body 0 shifted by perturbation along x
// 2. After every step measure their phase-space separation d
// 3. Accumulate ln(d/d0) and pull the copy back to distance d0
// 4. λ ≈ Σ ln(d/d0) / t
//
// sys itself is not modified.
func LyapunovExponent(sys *physics.System, integ integrators.Integrator, dt, duration, perturbation float64) (*Divergence, error) {
	p := dynamo.Params{Duration: duration, Dt: dt}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !(perturbation > 0) || math.IsInf(perturbation, 0) {
		return nil, dynamo.InvalidParameter("perturbation", perturbation, "must be positive and finite")
	}

	steps := p.NumSteps()
	x := sys.Clone()
	xp := sys.Clone()
	xp.Bodies[0].Pos.X += perturbation
	d0 := separation(x, xp)
	if d0 == 0 {
		// The shift vanished in rounding against a large coordinate.
		return nil, dynamo.InvalidParameter("perturbation", perturbation, "too small for the initial positions")
	}

	out := &Divergence{LogGrowth: make([]float64, 0, steps)}
	sumLog := 0.0

	for k := 0; k < steps; k++ {
		integ.Step(x, dt)
		integ.Step(xp, dt)

		if !x.IsValid() || !xp.IsValid() {
			return out, &dynamo.SimError{Step: k, Time: float64(k+1) * dt, Wrapped: dynamo.ErrInvalidState}
		}

		sep := separation(x, xp)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			renormalize(x, xp, d0/sep)
		}
		out.LogGrowth = append(out.LogGrowth, sumLog)
	}

	if steps > 0 {
		out.Exponent = sumLog / (float64(steps) * dt)
	}
	return out, nil
}

// separation is the Euclidean distance between two states over every
// position and velocity component.
func separation(a, b *physics.System) float64 {
	sum := 0.0
	for i := range a.Bodies {
		dp := r2.Sub(b.Bodies[i].Pos, a.Bodies[i].Pos)
		dv := r2.Sub(b.Bodies[i].Vel, a.Bodies[i].Vel)
		sum += dp.X*dp.X + dp.Y*dp.Y + dv.X*dv.X + dv.Y*dv.Y
	}
	return math.Sqrt(sum)
}

func renormalize(ref, p *physics.System, scale float64) {
	for i := range p.Bodies {
		r := ref.Bodies[i]
		p.Bodies[i].Pos = r2.Add(r.Pos, r2.Scale(scale, r2.Sub(p.Bodies[i].Pos, r.Pos)))
		p.Bodies[i].Vel = r2.Add(r.Vel, r2.Scale(scale, r2.Sub(p.Bodies[i].Vel, r.Vel)))
	}
}
