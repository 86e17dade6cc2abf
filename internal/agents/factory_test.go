package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/adapters/ai"
	"atlas/internal/tools"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

func newTestAIRegistry(t *testing.T) *ai.ProviderRegistry {
	t.Helper()

	registry := ai.NewProviderRegistry()
	require.NoError(t, registry.Register(ai.NewGeminiProvider("", 10*time.Second)))
	return registry
}

func newTestToolRegistry(t *testing.T) *tools.Registry {
	t.Helper()

	registry := tools.NewRegistry()
	require.NoError(t, tools.RegisterAll(registry, shared.Deps{Log: logger.Get()}))
	return registry
}

func testAgentConfig() AgentConfig {
	cfg := DefaultAgentConfigs[AgentOpsAssistant]
	cfg.AIProvider = ai.ProviderNameGoogle
	cfg.Model = "gemini-2.5-flash"
	return cfg
}

func TestNewFactory_RequiresRegistries(t *testing.T) {
	_, err := NewFactory(FactoryDeps{AIRegistry: newTestAIRegistry(t)})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	_, err = NewFactory(FactoryDeps{ToolRegistry: tools.NewRegistry()})
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestCreateAgent(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{
		AIRegistry:   newTestAIRegistry(t),
		ToolRegistry: newTestToolRegistry(t),
	})
	require.NoError(t, err)

	ag, modelInfo, err := factory.CreateAgent(testAgentConfig())
	require.NoError(t, err)

	assert.Equal(t, "OpsAssistant", ag.Name())
	require.NotNil(t, modelInfo)
	assert.Equal(t, "gemini-2.5-flash", modelInfo.Name)
	assert.True(t, modelInfo.SupportsTools)
}

func TestCreateAgent_EmptyToolRegistry(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{
		AIRegistry:   newTestAIRegistry(t),
		ToolRegistry: tools.NewRegistry(),
	})
	require.NoError(t, err)

	_, _, err = factory.CreateAgent(testAgentConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyRegistry))
}

func TestCreateAgent_MissingMemoryTools(t *testing.T) {
	// A registry with record tools only: assembly must refuse
	full := newTestToolRegistry(t)
	partial := tools.NewRegistry()

	dbAccess, ok := full.Get("db_access")
	require.True(t, ok)
	require.NoError(t, partial.Register("db_access", dbAccess))

	factory, err := NewFactory(FactoryDeps{
		AIRegistry:   newTestAIRegistry(t),
		ToolRegistry: partial,
	})
	require.NoError(t, err)

	_, _, err = factory.CreateAgent(testAgentConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrToolNotFound))
}

func TestCreateAgent_UnknownModel(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{
		AIRegistry:   newTestAIRegistry(t),
		ToolRegistry: newTestToolRegistry(t),
	})
	require.NoError(t, err)

	cfg := testAgentConfig()
	cfg.Model = "gemini-99-ultra"

	_, _, err = factory.CreateAgent(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDefaultAgentConfigs(t *testing.T) {
	cfg, ok := DefaultAgentConfigs[AgentOpsAssistant]
	require.True(t, ok)

	assert.Equal(t, "OpsAssistant", cfg.Name)
	assert.Contains(t, cfg.Tools, "preload_memory")
	assert.Contains(t, cfg.Tools, "load_memory")
	assert.Contains(t, cfg.Tools, "db_access")
	assert.Contains(t, cfg.Tools, "send_email")
	assert.Equal(t, "agents/ops_assistant", cfg.SystemPromptTemplate)
}
