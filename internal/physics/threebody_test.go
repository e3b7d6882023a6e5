package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/threebody/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func referenceSystem(t *testing.T) *System {
	t.Helper()
	s, err := NewSystem(
		[3]float64{10000, 300, 100},
		[3]r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: math.Sqrt(3) / 2 * 100}},
		[3]r2.Vec{{X: 0.1, Y: 0.1}, {X: 0, Y: math.Sqrt(3) / 2 * 2}, {X: -math.Sqrt(3) / 2 * 2, Y: 0}},
	)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	return s
}

func TestNewSystem_ScalesMasses(t *testing.T) {
	s := referenceSystem(t)
	expected := []float64{1e13, 3e11, 1e11}
	for i, b := range s.Bodies {
		if b.Mass != expected[i] {
			t.Errorf("body %d: mass %g, want %g", i, b.Mass, expected[i])
		}
		if b.Index != i {
			t.Errorf("body %d: index %d", i, b.Index)
		}
	}
}

func TestNewSystem_RejectsBadMass(t *testing.T) {
	tests := []struct {
		name   string
		masses [3]float64
	}{
		{"zero", [3]float64{1, 0, 1}},
		{"negative", [3]float64{1, 1, -5}},
		{"NaN", [3]float64{math.NaN(), 1, 1}},
		{"Inf", [3]float64{1, math.Inf(1), 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem(tt.masses, [3]r2.Vec{}, [3]r2.Vec{})
			if !errors.Is(err, dynamo.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestPairForce_KnownValue(t *testing.T) {
	f := PairForce(1e9, r2.Vec{}, r2.Vec{X: 1})
	expected := G * 1e9 / math.Pow(1+DistanceGuard, 3)
	if math.Abs(f.X-expected) > 1e-15 {
		t.Errorf("force x = %.17g, want %.17g", f.X, expected)
	}
	if f.Y != 0 {
		t.Errorf("force y = %g, want 0", f.Y)
	}
}

func TestPairForce_Symmetry(t *testing.T) {
	s := referenceSystem(t)
	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}

	for _, p := range pairs {
		bi, bj := s.Bodies[p[0]], s.Bodies[p[1]]
		fij := PairForce(bj.Mass, bi.Pos, bj.Pos)
		fji := PairForce(bi.Mass, bj.Pos, bi.Pos)

		// Antiparallel: the cross product vanishes and the dot product is negative.
		cross := fij.X*fji.Y - fij.Y*fji.X
		if math.Abs(cross) > 1e-12*r2.Norm(fij)*r2.Norm(fji) {
			t.Errorf("pair %v not parallel: cross=%g", p, cross)
		}
		if r2.Dot(fij, fji) >= 0 {
			t.Errorf("pair %v not opposed", p)
		}

		// Scaled by the mass ratio: m_i*F_ij == -m_j*F_ji.
		a := r2.Scale(bi.Mass, fij)
		b := r2.Scale(-bj.Mass, fji)
		if r2.Norm(r2.Sub(a, b)) > 1e-12*r2.Norm(a) {
			t.Errorf("pair %v: m_i*F_ij=%v, -m_j*F_ji=%v", p, a, b)
		}

		ratio := r2.Norm(fij) / r2.Norm(fji)
		if math.Abs(ratio-bj.Mass/bi.Mass) > 1e-12*ratio {
			t.Errorf("pair %v: magnitude ratio %g, want %g", p, ratio, bj.Mass/bi.Mass)
		}
	}
}

func TestPairForce_CoincidentIsFinite(t *testing.T) {
	p := r2.Vec{X: 3, Y: -7}
	f := PairForce(1e13, p, p)
	if math.IsNaN(f.X) || math.IsNaN(f.Y) || math.IsInf(f.X, 0) || math.IsInf(f.Y, 0) {
		t.Fatalf("coincident pair force not finite: %v", f)
	}
}

func TestNetForce_CoincidentBodies(t *testing.T) {
	s, err := NewSystem(
		[3]float64{100, 100, 100},
		[3]r2.Vec{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 0, Y: 0}},
		[3]r2.Vec{},
	)
	if err != nil {
		t.Fatal(err)
	}

	for i := range s.Bodies {
		f := s.NetForce(i)
		if math.IsNaN(f.X) || math.IsNaN(f.Y) || math.IsInf(f.X, 0) || math.IsInf(f.Y, 0) {
			t.Errorf("body %d: net force not finite: %v", i, f)
		}
	}
	if !s.IsValid() {
		t.Error("system should be valid")
	}
	if math.IsInf(s.PotentialEnergy(), 0) {
		t.Error("potential energy should stay finite")
	}
}

func TestNetForce_SumsPairs(t *testing.T) {
	s := referenceSystem(t)
	for i := range s.Bodies {
		var expected r2.Vec
		for j := range s.Bodies {
			if i != j {
				expected = r2.Add(expected, PairForce(s.Bodies[j].Mass, s.Bodies[i].Pos, s.Bodies[j].Pos))
			}
		}
		if got := s.NetForce(i); got != expected {
			t.Errorf("body %d: NetForce = %v, want %v", i, got, expected)
		}
	}
}

func TestSystem_Conserved(t *testing.T) {
	s, err := NewSystem(
		[3]float64{1, 2, 3},
		[3]r2.Vec{{X: 0}, {X: 1}, {X: 2}},
		[3]r2.Vec{{X: 1}, {Y: 1}, {X: -1}},
	)
	if err != nil {
		t.Fatal(err)
	}

	p := s.Momentum()
	if math.Abs(p.X-(1e9-3e9)) > 1e-3 || math.Abs(p.Y-2e9) > 1e-3 {
		t.Errorf("Momentum() = %v", p)
	}

	ke := s.KineticEnergy()
	if math.Abs(ke-0.5*(1e9+2e9+3e9)) > 1e-3 {
		t.Errorf("KineticEnergy() = %g", ke)
	}

	if s.PotentialEnergy() >= 0 {
		t.Error("potential energy should be negative")
	}

	if d := s.MinSeparation(); d != 1 {
		t.Errorf("MinSeparation() = %g, want 1", d)
	}
}

func TestSystem_CloneIsIndependent(t *testing.T) {
	s := referenceSystem(t)
	c := s.Clone()
	c.Bodies[0].Pos = r2.Vec{X: 99}
	if s.Bodies[0].Pos.X == 99 {
		t.Error("Clone shares body storage")
	}
}

func TestSystem_IsValid(t *testing.T) {
	s := referenceSystem(t)
	if !s.IsValid() {
		t.Error("reference system should be valid")
	}
	s.Bodies[1].Vel.Y = math.Inf(-1)
	if s.IsValid() {
		t.Error("expected invalid system")
	}
}

func TestSystem_GetParams(t *testing.T) {
	s := referenceSystem(t)
	params := s.GetParams()
	if params["m1"] != 10000 || params["m3"] != 100 {
		t.Errorf("GetParams() = %v", params)
	}
}
