package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_CollectsAllResults(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	results := Run(context.Background(), items, 2, func(_ context.Context, n int) int {
		return n * 10
	})

	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	sort.Ints(results)
	for i, want := range []int{10, 20, 30, 40, 50} {
		if results[i] != want {
			t.Errorf("results[%d] = %d, want %d", i, results[i], want)
		}
	}
}

func TestRun_ConcurrencyCeiling(t *testing.T) {
	var inFlight, peak atomic.Int32

	items := make([]int, 20)
	Run(context.Background(), items, 3, func(_ context.Context, _ int) struct{} {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}
	})

	if got := peak.Load(); got > 3 {
		t.Errorf("observed %d concurrent workers, ceiling is 3", got)
	}
}

type itemResult struct {
	item int
	err  error
}

func TestRun_FailureIsolation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	results := Run(context.Background(), items, 2, func(_ context.Context, n int) itemResult {
		if n == 3 {
			return itemResult{item: n, err: errors.New("boom")}
		}
		return itemResult{item: n}
	})

	if len(results) != 5 {
		t.Fatalf("one failure must not cost other results: got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			if r.item != 3 {
				t.Errorf("unexpected failure for item %d", r.item)
			}
		}
	}
	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}
}

func TestRun_ZeroLimit(t *testing.T) {
	// A nonsensical limit degrades to serial execution instead of
	// deadlocking.
	results := Run(context.Background(), []int{1, 2}, 0, func(_ context.Context, n int) string {
		return fmt.Sprintf("r%d", n)
	})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestRun_EmptyInput(t *testing.T) {
	results := Run(context.Background(), nil, 4, func(_ context.Context, n int) int { return n })
	if len(results) != 0 {
		t.Fatalf("got %d results for empty input", len(results))
	}
}
