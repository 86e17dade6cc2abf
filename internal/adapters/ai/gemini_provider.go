package ai

import (
	"context"
	"strings"
	"time"

	"atlas/pkg/errors"
)

// GeminiProvider implements Google Gemini metadata.
type GeminiProvider struct {
	apiKey  string
	timeout time.Duration
	models  []ModelInfo
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(apiKey string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, timeout: timeout, models: geminiModels()}
}

// Name returns provider name.
func (p *GeminiProvider) Name() string { return ProviderNameGoogle }

// GetModel returns model info by name. An empty name resolves to the
// default model.
func (p *GeminiProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	if model == "" {
		return p.models[0], nil
	}
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrNotFound, "gemini model %s not found", model)
}

// ListModels lists available models.
func (p *GeminiProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

// SupportsStreaming indicates streaming support.
func (p *GeminiProvider) SupportsStreaming() bool { return true }

// SupportsTools indicates tool calling support.
func (p *GeminiProvider) SupportsTools() bool { return true }

func geminiModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:          ProviderNameGoogle,
			Name:              "gemini-2.5-flash",
			Family:            "gemini-2.5",
			MaxTokens:         1048576,
			InputCostPer1K:    0.0003,
			OutputCostPer1K:   0.0025,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameGoogle,
			Name:              "gemini-2.5-pro",
			Family:            "gemini-2.5",
			MaxTokens:         1048576,
			InputCostPer1K:    0.00125,
			OutputCostPer1K:   0.01,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameGoogle,
			Name:              "gemini-2.0-flash",
			Family:            "gemini-2.0",
			MaxTokens:         1048576,
			InputCostPer1K:    0.0001,
			OutputCostPer1K:   0.0004,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
	}
}
