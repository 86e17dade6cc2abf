package embeddings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_OpenAI(t *testing.T) {
	provider, err := NewProvider(Config{
		Provider: ProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "text-embedding-3-small",
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-3-small", provider.Name())
	assert.Equal(t, 1536, provider.Dimensions())
}

func TestNewProvider_ModelDimensions(t *testing.T) {
	tests := []struct {
		model      string
		dimensions int
	}{
		{"text-embedding-3-small", 1536},
		{"text-embedding-3-large", 3072},
		{"text-embedding-ada-002", 1536},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			provider, err := NewProvider(Config{
				Provider: ProviderOpenAI,
				APIKey:   "sk-test",
				Model:    tt.model,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.dimensions, provider.Dimensions())
		})
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: ProviderOpenAI})
	assert.Error(t, err)
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(Config{Provider: "cohere", APIKey: "x"})
	assert.Error(t, err)
}
