// Package batch runs independent planning requests concurrently. Each
// request gets its own *planner.Planner and therefore its own planning
// graph, so requests share no mutable state and are safe to fan out;
// this package does that fan-out with golang.org/x/sync/errgroup the
// way the rest of the pack uses it for independent units of work.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mguryev/graph-plan/internal/domain"
	"github.com/mguryev/graph-plan/internal/planner"
)

// Request is one independent planning problem.
type Request struct {
	State   domain.PropositionSet
	Goal    domain.PropositionSet
	Actions []domain.Action
}

// Result is the outcome of one Request, at the same index in the slice
// RunMany returns.
type Result struct {
	Plan []domain.Action
	Err  error
}

// RunMany plans every request concurrently, each on its own Planner, and
// returns one Result per request in the same order. A per-request error
// (including ErrPlanNotPossible from domain) is captured in that
// request's Result rather than aborting the batch; RunMany's own error
// return is non-nil only if ctx is canceled before every request
// finishes.
func RunMany(ctx context.Context, requests []Request, concurrency int) ([]Result, error) {
	results := make([]Result, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plan, err := planner.New().Plan(req.State, req.Goal, req.Actions)
			results[i] = Result{Plan: plan, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
