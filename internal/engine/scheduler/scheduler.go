// Package scheduler runs script self-description queries with bounded
// parallelism.
package scheduler

import (
	"context"

	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// QueryStatus represents how a query ended.
type QueryStatus string

const (
	// StatusCompleted indicates the script answered.
	StatusCompleted QueryStatus = "Completed"
	// StatusFailed indicates the query failed.
	StatusFailed QueryStatus = "Failed"
	// StatusCanceled indicates the query never ran because the build was canceled.
	StatusCanceled QueryStatus = "Canceled"
)

// Result is the outcome of querying one script. Results are returned in the
// order the invocations were given.
type Result struct {
	Script   string
	Response string
	Status   QueryStatus
	Err      error
}

// Pool queries scripts in parallel.
type Pool struct {
	runner  ports.ScriptRunner
	workers int
}

// NewPool creates a Pool running at most workers queries at once.
func NewPool(runner ports.ScriptRunner, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		runner:  runner,
		workers: workers,
	}
}

// QueryAll queries every invocation and waits for all of them. A failed
// query does not stop the others; its error is kept in its result.
func (p *Pool) QueryAll(ctx context.Context, invs []domain.Invocation) []Result {
	results := make([]Result, len(invs))

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, inv := range invs {
		g.Go(func() error {
			results[i] = p.query(ctx, inv)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *Pool) query(ctx context.Context, inv domain.Invocation) Result {
	res := Result{Script: inv.Script}
	if err := ctx.Err(); err != nil {
		res.Status, res.Err = StatusCanceled, err
		return res
	}

	res.Response, res.Err = p.runner.Query(ctx, inv)
	if res.Err != nil {
		res.Status = StatusFailed
	} else {
		res.Status = StatusCompleted
	}
	return res
}
