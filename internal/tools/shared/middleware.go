package shared

import (
	"context"
	"time"

	"google.golang.org/adk/tool"

	"atlas/internal/metrics"
	"atlas/pkg/errors"
)

// wrapWithRetry retries the tool function on backend errors with fixed
// backoff. Validation and not-found errors are returned immediately;
// retrying those would just repeat the same answer slower.
func wrapWithRetry(cfg RetryConfig, fn ToolFunc) ToolFunc {
	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		var result map[string]interface{}
		var err error

		attempts := cfg.Attempts
		if attempts <= 0 {
			attempts = 1
		}

		for i := 0; i < attempts; i++ {
			result, err = fn(ctx, args)
			if err == nil {
				return result, nil
			}
			if ClassifyError(err) != StatusBackendUnavailable {
				return result, err
			}

			if cfg.Backoff > 0 && i < attempts-1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(cfg.Backoff):
				}
			}
		}

		return result, err
	}
}

// deadlineContext overlays a deadline-bearing context onto a tool.Context
// so the ADK-specific surface stays intact while cancellation works.
type deadlineContext struct {
	tool.Context
	std context.Context
}

func (c deadlineContext) Deadline() (time.Time, bool) { return c.std.Deadline() }
func (c deadlineContext) Done() <-chan struct{}       { return c.std.Done() }
func (c deadlineContext) Err() error                  { return c.std.Err() }

func wrapWithTimeout(cfg TimeoutConfig, fn ToolFunc) ToolFunc {
	if cfg.Timeout <= 0 {
		return fn
	}

	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		std, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		result, err := fn(deadlineContext{Context: ctx, std: std}, args)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrapf(errors.ErrTimeout, "tool timed out after %v", cfg.Timeout)
		}
		return result, err
	}
}

// wrapWithMetrics records execution counts and latency to Prometheus.
func wrapWithMetrics(name string, fn ToolFunc) ToolFunc {
	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		start := time.Now()
		result, err := fn(ctx, args)
		metrics.RecordToolExecution(name, time.Since(start), err)

		return result, err
	}
}

// wrapWithResult converts an escaped error into a structured failure
// result. The model reacts to result statuses; a raw Go error would
// abort the whole agent turn instead.
func wrapWithResult(fn ToolFunc) ToolFunc {
	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		result, err := fn(ctx, args)
		if err != nil {
			return Failure(err), nil
		}
		return result, nil
	}
}
