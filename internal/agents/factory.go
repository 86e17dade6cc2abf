package agents

import (
	"context"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"
	adktool "google.golang.org/adk/tool"

	"atlas/internal/adapters/ai"
	"atlas/internal/tools"
	"atlas/pkg/errors"
	"atlas/pkg/templates"
)

// memoryTools must be registered before any agent is assembled; an agent
// without recall silently loses conversation continuity, which is much
// harder to notice at runtime than a failed startup.
var memoryTools = []string{"load_memory", "preload_memory"}

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	AIRegistry   *ai.ProviderRegistry
	ToolRegistry *tools.Registry
	Templates    *templates.Registry
}

// Factory creates configured agents.
type Factory struct {
	aiRegistry   *ai.ProviderRegistry
	toolRegistry *tools.Registry
	templates    *templates.Registry
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.ToolRegistry == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "tool registry is required")
	}
	if deps.AIRegistry == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "AI provider registry is required")
	}
	if deps.Templates == nil {
		deps.Templates = templates.Get()
	}

	return &Factory{
		aiRegistry:   deps.AIRegistry,
		toolRegistry: deps.ToolRegistry,
		templates:    deps.Templates,
	}, nil
}

// CreateAgent constructs a single ADK agent instance from a config.
func (f *Factory) CreateAgent(cfg AgentConfig) (agent.Agent, *ai.ModelInfo, error) {
	if f.toolRegistry.Len() == 0 {
		return nil, nil, errors.Wrapf(errors.ErrEmptyRegistry, "agent %s", cfg.Name)
	}

	for _, name := range memoryTools {
		if _, ok := f.toolRegistry.Get(name); !ok {
			return nil, nil, errors.Wrapf(errors.ErrToolNotFound, "%s (memory tools are mandatory)", name)
		}
	}

	modelInfo, err := f.aiRegistry.ResolveModel(context.Background(), cfg.AIProvider, cfg.Model)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "resolve model %s/%s", cfg.AIProvider, cfg.Model)
	}

	llmModel := adkmodel.BasicModel{ID: modelInfo.Name, ProviderID: cfg.AIProvider, Tokens: modelInfo.MaxTokens}

	agentTools := make([]adktool.Tool, 0, len(cfg.Tools))
	toolInfo := make([]tools.Definition, 0, len(cfg.Tools))

	for _, toolName := range cfg.Tools {
		t, ok := f.toolRegistry.Get(toolName)
		if !ok {
			return nil, nil, errors.Wrapf(errors.ErrToolNotFound, "%s", toolName)
		}
		agentTools = append(agentTools, t)

		if def, ok := tools.DefinitionByName(toolName); ok {
			toolInfo = append(toolInfo, def)
		} else {
			toolInfo = append(toolInfo, tools.Definition{Name: toolName})
		}
	}

	instruction := ""
	if cfg.SystemPromptTemplate != "" {
		data := map[string]interface{}{
			"Tools":        toolInfo,
			"MaxToolCalls": cfg.MaxToolCalls,
			"AgentName":    cfg.Name,
			"AgentType":    cfg.Type,
		}
		instruction, err = f.templates.Render(cfg.SystemPromptTemplate, data)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "render prompt for %s", cfg.Name)
		}
	}

	ag, err := llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       llmModel,
		Tools:       agentTools,
		Instruction: instruction,
		OutputKey:   cfg.OutputKey,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create agent %s", cfg.Name)
	}

	return ag, &modelInfo, nil
}
