package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvocationMetadataRoundTrip(t *testing.T) {
	meta := InvocationMetadata{
		UserID:    "user-1",
		AgentID:   "ops_assistant",
		SessionID: "session-42",
	}

	ctx := WithInvocationMetadata(context.Background(), meta)

	got, ok := MetadataFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, meta, got)
}

func TestMetadataFromContext_Missing(t *testing.T) {
	_, ok := MetadataFromContext(context.Background())
	assert.False(t, ok)
}
