package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderRegistry_Register(t *testing.T) {
	registry := NewProviderRegistry()

	require.NoError(t, registry.Register(NewGeminiProvider("key", time.Second)))
	assert.Error(t, registry.Register(NewGeminiProvider("key", time.Second)), "duplicate provider must fail")
	assert.Error(t, registry.Register(nil))

	provider, err := registry.Get(ProviderNameGoogle)
	require.NoError(t, err)
	assert.Equal(t, ProviderNameGoogle, provider.Name())
}

func TestProviderRegistry_ResolveModel(t *testing.T) {
	registry := NewProviderRegistry()
	require.NoError(t, registry.Register(NewGeminiProvider("key", time.Second)))

	info, err := registry.ResolveModel(context.Background(), ProviderNameGoogle, "gemini-2.5-pro")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", info.Name)
	assert.True(t, info.SupportsTools)

	_, err = registry.ResolveModel(context.Background(), "anthropic", "claude")
	assert.Error(t, err)

	_, err = registry.ResolveModel(context.Background(), ProviderNameGoogle, "gemini-unknown")
	assert.Error(t, err)
}

func TestGeminiProvider_DefaultModel(t *testing.T) {
	provider := NewGeminiProvider("key", time.Second)

	info, err := provider.GetModel(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", info.Name)
}

func TestGeminiProvider_ListModels(t *testing.T) {
	provider := NewGeminiProvider("key", time.Second)

	models, err := provider.ListModels(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, models)

	for _, m := range models {
		assert.Equal(t, ProviderNameGoogle, m.Provider)
		assert.Positive(t, m.MaxTokens)
	}
}
