package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job pairs a scenario with its run configuration.
type Job struct {
	Scenario Scenario
	Config   Config
}

// Batch runs independent jobs concurrently. Every job gets its own
// Simulator and System, so nothing is shared between runs.
type Batch struct {
	newSim  func() *Simulator
	workers int
}

func NewBatch(newSim func() *Simulator, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{newSim: newSim, workers: workers}
}

// Run returns results in job order. The first failing job cancels the jobs
// that have not started yet.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sys, err := job.Scenario.System()
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Scenario.Name, err)
			}
			res, err := b.newSim().Run(sys, job.Config)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Scenario.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
