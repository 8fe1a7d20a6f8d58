// Package deadline bounds calls to external collaborators (stores, notifiers)
// with a per-call timeout and reports expiry as ErrTimeout.
package deadline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when the per-call timeout fires before the callee returns.
var ErrTimeout = errors.New("deadline: operation timed out")

// Run calls fn with a context bounded by d. A zero or negative d disables the bound.
// Cancellation of the parent context is passed through unchanged.
func Run(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	_, err := Call(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Call is Run for functions that return a value.
func Call[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	res, err := fn(callCtx)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		var zero T
		return zero, fmt.Errorf("%w after %s: %v", ErrTimeout, d, err)
	}
	return res, err
}
