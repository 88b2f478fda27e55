package report

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"regimpact/internal"
	"regimpact/internal/chart"
)

// Result is the outcome of one job.
type Result struct {
	Job     Job
	Path    string
	Skipped bool
	Elapsed time.Duration
}

// Runner renders jobs into OutDir with at most Workers jobs in flight.
type Runner struct {
	Env     *Env
	OutDir  string
	Workers int
}

// Run renders every job. A job with nothing to draw is skipped with a
// warning; any other failure stops the run and is returned. Results keep
// the order of jobs.
func (r Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.render(job)
			if err != nil {
				return fmt.Errorf("graph %s: %w", job.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r Runner) render(job Job) (Result, error) {
	start := time.Now()
	th := job.Theme(r.Env.Theme)

	d, err := job.Render(r.Env, th)
	if errors.Is(err, chart.ErrNoData) {
		internal.Warning(fmt.Sprintf("graph %s (%s): no data, skipped", job.ID, job.Name))
		return Result{Job: job, Skipped: true}, nil
	}
	if err != nil {
		return Result{}, err
	}

	path := filepath.Join(r.OutDir, job.FileName())
	if err := chart.Save(d, th, path); err != nil {
		return Result{}, err
	}
	internal.Saved("Graph "+job.ID, path)
	return Result{Job: job, Path: path, Elapsed: time.Since(start)}, nil
}

// Rendered counts the results that wrote a file.
func Rendered(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Skipped {
			n++
		}
	}
	return n
}
