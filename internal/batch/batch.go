// Package batch runs a per-item worker over a list with a concurrency
// ceiling.
//
// The scheduler is a throughput cap, not a correctness mechanism: it
// never fails on its own and knows nothing about errors. Workers that
// can fail encode the failure in their result type, so one item's
// failure never aborts the batch. Results are collected in completion
// order, not input order; callers that need results correlated to
// inputs capture the item identity in the result.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Run executes worker over items with at most limit in-flight calls.
//
// Workers are launched until the window is full, then each completion
// immediately admits the next queued item, until every item has been
// dispatched and all in-flight work has settled. There is no fairness or
// priority: the first limit items simply start first.
//
// ctx is passed through to every worker; Run itself performs no
// cancellation, so a hung worker blocks only its own slot.
func Run[I, R any](ctx context.Context, items []I, limit int, worker func(context.Context, I) R) []R {
	if limit < 1 {
		limit = 1
	}

	var (
		mu      sync.Mutex
		results = make([]R, 0, len(items))
	)

	var g errgroup.Group
	g.SetLimit(limit)
	for _, item := range items {
		g.Go(func() error {
			r := worker(ctx, item)
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	// Workers always return nil; Wait only synchronizes.
	_ = g.Wait()

	return results
}
