package shared

import (
	"context"
)

type contextKey struct{}

// InvocationMetadata captures request-scoped identifiers injected by the
// agent runner so tools can resolve the active session without requiring
// the model to pass it explicitly.
type InvocationMetadata struct {
	UserID    string
	AgentID   string
	SessionID string
}

// WithInvocationMetadata injects tool invocation metadata into a context.
func WithInvocationMetadata(ctx context.Context, meta InvocationMetadata) context.Context {
	return context.WithValue(ctx, contextKey{}, meta)
}

// MetadataFromContext extracts invocation metadata if present.
func MetadataFromContext(ctx context.Context) (InvocationMetadata, bool) {
	meta, ok := ctx.Value(contextKey{}).(InvocationMetadata)
	return meta, ok
}
