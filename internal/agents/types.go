package agents

// AgentType identifies a configured agent role.
type AgentType string

const (
	// AgentOpsAssistant answers natural-language questions about the
	// product database and performs record operations through tools.
	AgentOpsAssistant AgentType = "ops_assistant"
)

// AgentConfig declares how an agent is assembled.
type AgentConfig struct {
	Type        AgentType
	Name        string
	Description string

	AIProvider string
	Model      string

	// Tools lists registry names this agent may call.
	Tools []string

	// SystemPromptTemplate is a template ID rendered into the agent
	// instruction, e.g. "agents/ops_assistant".
	SystemPromptTemplate string

	OutputKey    string
	MaxToolCalls int
}

// DefaultAgentConfigs holds the stock agent definitions.
var DefaultAgentConfigs = map[AgentType]AgentConfig{
	AgentOpsAssistant: {
		Type:        AgentOpsAssistant,
		Name:        "OpsAssistant",
		Description: "Enterprise database assistant for products, suppliers and orders",
		Tools: []string{
			"preload_memory",
			"load_memory",
			"db_access",
			"db_insert",
			"db_update",
			"db_delete",
			"send_email",
		},
		SystemPromptTemplate: "agents/ops_assistant",
		MaxToolCalls:         15,
	},
}
