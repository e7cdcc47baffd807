// Package retry runs a single remote call under a bounded, fixed-delay retry policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Classifier reports whether a failed attempt may be retried.
type Classifier func(err error) bool

// Executor applies a Policy to arbitrary operations. It holds no per-call state and
// can be shared by every call site of a run.
type Executor struct {
	policy    Policy
	retryable Classifier
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewExecutor(policy Policy, retryable Classifier, logger *zap.Logger) (*Executor, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry policy: %w", err)
	}
	if retryable == nil {
		retryable = RetryAll
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Executor{
		policy:    policy,
		retryable: retryable,
		logger:    logger,
		sleep:     sleepContext,
	}, nil
}

func (e *Executor) Policy() Policy {
	return e.policy
}

// WithLogger returns a copy of the executor that writes diagnostics to logger.
func (e *Executor) WithLogger(logger *zap.Logger) *Executor {
	if logger == nil {
		return e
	}
	clone := *e
	clone.logger = logger
	return &clone
}

// RetryAll treats every failure as transient except caller cancellation.
func RetryAll(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// Do invokes op until it succeeds, fails with a non-retryable error, or the policy's
// retry budget is spent. Non-retryable errors are returned unchanged; exhaustion is
// reported as *ExhaustedError wrapping the last failure.
func Do[T any](ctx context.Context, e *Executor, operation string, op func(ctx context.Context) (T, error)) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var zero T
	retries := 0
	for {
		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		if !e.retryable(err) {
			return zero, err
		}
		if retries >= e.policy.MaxRetries {
			return zero, &ExhaustedError{
				Operation: operation,
				Attempts:  retries + 1,
				Err:       err,
			}
		}

		retries++
		e.logger.Warn("remote call failed, retrying",
			zap.String("operation", operation),
			zap.Int("retry", retries),
			zap.Int("maxRetries", e.policy.MaxRetries),
			zap.Duration("delay", e.policy.Delay),
			zap.Error(err),
		)

		if err := e.sleep(ctx, e.policy.Delay); err != nil {
			return zero, fmt.Errorf("%s: retry wait interrupted: %w", operation, err)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
