package reconcile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	flightAudit   = "audit"
	flightCleanup = "cleanup"
)

// flights coalesces concurrent calls of the same operation into one execution.
// Nothing outlives the call: a request arriving after it returns starts fresh.
type flights struct {
	group singleflight.Group
	limit time.Duration
}

// do runs fn once for all concurrent callers of key.
//
// The execution keeps the values of the caller that started it but not its
// cancellation, so one caller going away does not fail the others. It is
// bounded by f.limit instead. Every caller stops waiting when its own ctx is done.
func do[T any](ctx context.Context, f *flights, key string, fn func(ctx context.Context) (*T, error)) (*T, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", key, err)
	}

	ch := f.group.DoChan(key, func() (any, error) {
		runCtx := context.WithoutCancel(ctx)
		if f.limit > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, f.limit)
			defer cancel()
		}
		return fn(runCtx)
	})

	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%s: %w", key, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Shared, r.Err
		}
		return r.Val.(*T), r.Shared, nil
	}
}
