package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/integrators"
)

func newEulerSim() *Simulator { return New(integrators.NewEuler()) }

func TestBatchRun(t *testing.T) {
	sc := Scenario{Name: "ref", Masses: refMasses, Positions: refPos, Velocities: refVel}
	dts := []float64{1.0, 0.5, 0.25, 1.0}

	jobs := make([]Job, len(dts))
	for i, dt := range dts {
		jobs[i] = Job{Scenario: sc, Config: Config{Params: dynamo.Params{Duration: 20, Dt: dt}}}
	}

	results, err := NewBatch(newEulerSim, 3).Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}

	for i, dt := range dts {
		want := int(20 / dt)
		if results[i].StepsTaken != want {
			t.Errorf("job %d: expected %d steps, got %d", i, want, results[i].StepsTaken)
		}
	}

	// Independent runs of the same job are deterministic.
	if results[0].History.Final() != results[3].History.Final() {
		t.Error("identical jobs produced different results")
	}
}

func TestBatchRunError(t *testing.T) {
	good := Scenario{Name: "good", Masses: refMasses, Positions: refPos, Velocities: refVel}
	bad := Scenario{Name: "bad", Masses: [3]float64{1, -1, 1}}

	jobs := []Job{
		{Scenario: good, Config: Config{Params: dynamo.Params{Duration: 5, Dt: 1}}},
		{Scenario: bad, Config: Config{Params: dynamo.Params{Duration: 5, Dt: 1}}},
	}

	_, err := NewBatch(newEulerSim, 2).Run(context.Background(), jobs)
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBatchRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := Scenario{Name: "ref", Masses: refMasses, Positions: refPos, Velocities: refVel}
	jobs := []Job{{Scenario: sc, Config: DefaultConfig()}}

	_, err := NewBatch(newEulerSim, 1).Run(ctx, jobs)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
