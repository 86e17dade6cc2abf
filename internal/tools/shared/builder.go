package shared

import (
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// ToolBuilder provides a fluent API for creating tools with middleware
type ToolBuilder struct {
	name        string
	description string
	fn          ToolFunc
	deps        Deps

	withRetry   bool
	retryConfig RetryConfig

	withTimeout   bool
	timeoutConfig TimeoutConfig

	withMetrics bool
}

// RetryConfig controls retry middleware behavior
type RetryConfig struct {
	Attempts int
	Backoff  time.Duration
}

// TimeoutConfig controls per-call deadline enforcement
type TimeoutConfig struct {
	Timeout time.Duration
}

// NewToolBuilder creates a new builder for a tool
func NewToolBuilder(name, description string, fn ToolFunc, deps Deps) *ToolBuilder {
	return &ToolBuilder{
		name:        name,
		description: description,
		fn:          fn,
		deps:        deps,
		// Default configs
		retryConfig:   RetryConfig{Attempts: 3, Backoff: 500 * time.Millisecond},
		timeoutConfig: TimeoutConfig{Timeout: 30 * time.Second},
	}
}

// WithRetry enables retry middleware
func (b *ToolBuilder) WithRetry(attempts int, backoff time.Duration) *ToolBuilder {
	b.withRetry = true
	b.retryConfig = RetryConfig{Attempts: attempts, Backoff: backoff}
	return b
}

// WithTimeout enables timeout middleware
func (b *ToolBuilder) WithTimeout(timeout time.Duration) *ToolBuilder {
	b.withTimeout = true
	b.timeoutConfig = TimeoutConfig{Timeout: timeout}
	return b
}

// WithMetrics enables Prometheus execution tracking
func (b *ToolBuilder) WithMetrics() *ToolBuilder {
	b.withMetrics = true
	return b
}

// Build creates the tool with configured middleware applied.
// Inner layers are applied first: retry -> timeout -> metrics.
func (b *ToolBuilder) Build() (tool.Tool, error) {
	fn := b.fn

	if b.withRetry {
		fn = wrapWithRetry(b.retryConfig, fn)
	}

	if b.withTimeout {
		fn = wrapWithTimeout(b.timeoutConfig, fn)
	}

	if b.withMetrics {
		fn = wrapWithMetrics(b.name, fn)
	}

	// Outermost: domain failures reach the model as structured results
	fn = wrapWithResult(fn)

	return functiontool.New(
		functiontool.Config{
			Name:        b.name,
			Description: b.description,
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			return fn(ctx, args)
		})
}
