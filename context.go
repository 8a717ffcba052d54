package fleetloader

import (
	"context"
	"time"
)

type contextKey string

const (
	startedTimeKey contextKey = "startedTime"
	concurrencyKey contextKey = "concurrency"
)

func withStartedTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, startedTimeKey, time.Now())
}

func startedTimeFrom(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(startedTimeKey).(time.Time)
	return t, ok
}

func withConcurrency(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, concurrencyKey, n)
}

// ConcurrencyFrom returns the per-workbook concurrency configured on the
// Loader, or 1.
func ConcurrencyFrom(ctx context.Context) int {
	if n, ok := ctx.Value(concurrencyKey).(int); ok && n > 0 {
		return n
	}
	return 1
}
