package service

import (
	"context"
	"errors"
	"time"

	"cpi-resender/internal/core/domain"
	"cpi-resender/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

// runBatches calls fn for every index in [0, n), at most size at a time.
// Batch k+1 starts only after batch k settled, and pause is waited in
// between. fn reports soft failures in its own results; a returned error
// lets the rest of the current batch settle and then stops scheduling.
// Siblings keep ctx, so one failed call never cancels requests in flight.
func runBatches(ctx context.Context, n, size int, pause time.Duration, fn func(ctx context.Context, i int) error) error {
	if size < 1 {
		size = 1
	}
	for start := 0; start < n; start += size {
		if start > 0 && pause > 0 {
			timer := time.NewTimer(pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+size, n)
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error { return fn(ctx, i) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// emitProgress sends ev unless progress is nil. It gives up when ctx ends.
func emitProgress(ctx context.Context, progress chan<- domain.ProgressEvent, ev domain.ProgressEvent) error {
	if progress == nil {
		return nil
	}
	select {
	case progress <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// isHardFailure reports errors that must abort a whole operation instead of
// being recorded against one item.
func isHardFailure(err error) bool {
	return apperror.IsContextInvalidated(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// errorText is the operator-facing text of err.
func errorText(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
