package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

var _ = Describe("Euler", func() {
	var (
		sys   *physics.System
		euler *integrators.Euler
	)

	BeforeEach(func() {
		var err error
		sys, err = physics.NewSystem(
			[3]float64{10000, 300, 100},
			[3]r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 86.6}},
			[3]r2.Vec{{X: 0.1, Y: 0.1}, {X: 0, Y: 1.732}, {X: -1.732, Y: 0}},
		)
		Expect(err).NotTo(HaveOccurred())
		euler = integrators.NewEuler()
	})

	It("reports forces computed from the start-of-step positions", func() {
		before := sys.Clone()
		forces := euler.Step(sys, 0.5)
		for i := range forces {
			Expect(forces[i]).To(Equal(before.NetForce(i)))
		}
	})

	It("moves positions with the updated velocities", func() {
		before := sys.Clone()
		const dt = 0.5
		forces := euler.Step(sys, dt)
		for i, b := range sys.Bodies {
			v := before.Bodies[i].Vel
			Expect(b.Vel).To(Equal(r2.Vec{X: v.X + forces[i].X*dt, Y: v.Y + forces[i].Y*dt}))
			p := before.Bodies[i].Pos
			Expect(b.Pos).To(Equal(r2.Vec{X: p.X + b.Vel.X*dt, Y: p.Y + b.Vel.Y*dt}))
		}
	})

	It("differs from updating each position right after its velocity", func() {
		interleaved := sys.Clone()
		const dt = 1.0
		for i := range interleaved.Bodies {
			f := interleaved.NetForce(i)
			b := &interleaved.Bodies[i]
			b.Vel = r2.Vec{X: b.Vel.X + f.X*dt, Y: b.Vel.Y + f.Y*dt}
			b.Pos = r2.Vec{X: b.Pos.X + b.Vel.X*dt, Y: b.Pos.Y + b.Vel.Y*dt}
		}
		euler.Step(sys, dt)
		Expect(sys.Bodies[0].Pos).To(Equal(interleaved.Bodies[0].Pos))
		Expect(sys.Bodies[2].Vel).NotTo(Equal(interleaved.Bodies[2].Vel))
	})

	It("keeps masses fixed", func() {
		for k := 0; k < 10; k++ {
			euler.Step(sys, 1)
		}
		Expect(sys.Bodies[0].Mass).To(Equal(1e13))
		Expect(sys.Bodies[1].Mass).To(Equal(3e11))
		Expect(sys.Bodies[2].Mass).To(Equal(1e11))
	})

	It("conserves momentum up to rounding", func() {
		p0 := sys.Momentum()
		for k := 0; k < 200; k++ {
			euler.Step(sys, 1)
		}
		Expect(r2.Norm(r2.Sub(sys.Momentum(), p0))).To(BeNumerically("<", 1e-9*r2.Norm(p0)*200))
	})

	Context("with coincident bodies", func() {
		BeforeEach(func() {
			sys.Bodies[1].Pos = sys.Bodies[0].Pos
		})

		It("produces finite forces", func() {
			forces := euler.Step(sys, 1)
			for _, f := range forces {
				Expect(finite(f)).To(BeTrue())
			}
			Expect(sys.IsValid()).To(BeTrue())
		})
	})

	DescribeTable("is deterministic",
		func(dt float64, steps int) {
			a, b := sys.Clone(), sys.Clone()
			for k := 0; k < steps; k++ {
				Expect(euler.Step(a, dt)).To(Equal(integrators.NewEuler().Step(b, dt)))
			}
			Expect(a.Bodies).To(Equal(b.Bodies))
		},
		Entry("coarse", 1.0, 50),
		Entry("fine", 0.1, 200),
	)
})
