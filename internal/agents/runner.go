package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	"google.golang.org/genai"

	"atlas/internal/adapters/ai"
	"atlas/internal/domain/memory"
	"atlas/internal/metrics"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

// RunnerConfig holds runtime limits for agent executions.
type RunnerConfig struct {
	AppName          string
	ExecutionTimeout time.Duration
	RequestsPerMin   int
	EnableMemory     bool
}

// ToolCall records a single tool invocation observed during a run.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// Response is the outcome of a single agent turn.
type Response struct {
	Text      string
	SessionID string
	ToolCalls []ToolCall

	InputTokens  int
	OutputTokens int
	Duration     time.Duration
}

// AgentRunner executes an agent with rate limiting, metrics and
// post-turn memory capture.
type AgentRunner struct {
	agent          agent.Agent
	runner         *runner.Runner
	agentType      AgentType
	modelInfo      *ai.ModelInfo
	cfg            RunnerConfig
	sessionService adksession.Service
	memoryService  *memory.Service
	limiter        *rate.Limiter

	log *logger.Logger
}

// NewAgentRunner creates a runner for an assembled agent. memoryService
// may be nil; turns are then not persisted to memory.
func NewAgentRunner(
	ag agent.Agent,
	agentType AgentType,
	modelInfo *ai.ModelInfo,
	cfg RunnerConfig,
	sessionService adksession.Service,
	memoryService *memory.Service,
) (*AgentRunner, error) {
	if sessionService == nil {
		sessionService = adksession.InMemoryService()
	}
	if cfg.AppName == "" {
		cfg.AppName = fmt.Sprintf("atlas_%s", agentType)
	}

	runnerInstance, err := runner.New(runner.Config{
		AppName:        cfg.AppName,
		Agent:          ag,
		SessionService: sessionService,
		// Memory persistence runs through our own service, not ADK's
	})
	if err != nil {
		return nil, errors.Wrap(err, "create ADK runner")
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerMin)/60, 1)
	}

	return &AgentRunner{
		agent:          ag,
		runner:         runnerInstance,
		agentType:      agentType,
		modelInfo:      modelInfo,
		cfg:            cfg,
		sessionService: sessionService,
		memoryService:  memoryService,
		limiter:        limiter,
		log:            logger.Get().With("component", "agent_runner", "agent", string(agentType)),
	}, nil
}

// Ask runs one agent turn for the given user text. An empty sessionID
// starts a fresh session; reuse the returned SessionID to continue one.
func (e *AgentRunner) Ask(ctx context.Context, userID, sessionID, text string) (*Response, error) {
	if text == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty request")
	}
	if userID == "" {
		userID = "default"
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			metrics.AgentCalls.WithLabelValues(string(e.agentType), e.modelName(), "rate_limited").Inc()
			return nil, errors.Wrap(err, "rate limit wait")
		}
	}

	startTime := time.Now()
	e.log.Infof("Starting agent turn: session=%s user=%s", sessionID, userID)

	execCtx := ctx
	if e.cfg.ExecutionTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.cfg.ExecutionTimeout)
		defer cancel()
	}

	// Tools resolve the active session from this metadata
	execCtx = shared.WithInvocationMetadata(execCtx, shared.InvocationMetadata{
		UserID:    userID,
		AgentID:   string(e.agentType),
		SessionID: sessionID,
	})

	response, err := e.runTurn(execCtx, userID, sessionID, text)

	duration := time.Since(startTime)
	metrics.RecordAgentCall(string(e.agentType), e.modelName(), duration, tokensOf(response), outputTokensOf(response), err)

	if err != nil {
		return nil, err
	}

	response.SessionID = sessionID
	response.Duration = duration

	if e.cfg.EnableMemory && e.memoryService != nil {
		go e.captureTurn(sessionID, text, response.Text)
	}

	e.log.Infof("Agent turn complete: session=%s duration=%v tools=%d tokens=%d/%d",
		sessionID, duration, len(response.ToolCalls), response.InputTokens, response.OutputTokens)

	return response, nil
}

func (e *AgentRunner) runTurn(ctx context.Context, userID, sessionID, text string) (*Response, error) {
	userContent := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: text},
		},
	}

	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeSSE,
	}

	response := &Response{}
	finalText := ""

	for event, err := range e.runner.Run(ctx, userID, sessionID, userContent, runConfig) {
		if err != nil {
			return nil, errors.Wrap(err, "agent execution failed")
		}
		if event == nil {
			continue
		}

		// Skip streaming chunks; complete events carry the same content
		if event.LLMResponse.Partial {
			continue
		}

		if event.UsageMetadata != nil {
			response.InputTokens += int(event.UsageMetadata.PromptTokenCount)
			response.OutputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}

		if event.LLMResponse.Content != nil {
			eventText := ""
			for _, part := range event.LLMResponse.Content.Parts {
				if part.Text != "" {
					eventText += part.Text
				}

				if part.FunctionCall != nil {
					response.ToolCalls = append(response.ToolCalls, ToolCall{
						Name: part.FunctionCall.Name,
						Args: part.FunctionCall.Args,
					})
					e.log.Debugf("Tool call: %s(%v)", part.FunctionCall.Name, part.FunctionCall.Args)
				}

				if part.FunctionResponse != nil {
					e.log.Debugf("Tool result: %s", part.FunctionResponse.Name)
				}
			}

			if event.Author == e.agent.Name() && eventText != "" {
				finalText = eventText
			}
		}

		if event.TurnComplete && event.IsFinalResponse() {
			break
		}
	}

	response.Text = finalText
	return response, nil
}

// captureTurn persists the question and answer so later sessions can recall them.
// Runs detached from the request; a failed write only logs.
func (e *AgentRunner) captureTurn(sessionID, userText, answer string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := e.memoryService.Store(ctx, sessionID, "User asked: "+truncate(userText, 500), memory.MemoryQuery, 0.4)
	metrics.RecordMemoryOperation("store", err)
	if err != nil {
		e.log.Warnf("Failed to store query memory: %v", err)
	}

	if answer != "" {
		_, err := e.memoryService.Store(ctx, sessionID, truncate(answer, 1000), memory.MemoryFact, 0.5)
		metrics.RecordMemoryOperation("store", err)
		if err != nil {
			e.log.Warnf("Failed to store answer memory: %v", err)
		}
	}
}

func (e *AgentRunner) modelName() string {
	if e.modelInfo == nil {
		return "unknown"
	}
	return e.modelInfo.Name
}

func tokensOf(r *Response) int {
	if r == nil {
		return 0
	}
	return r.InputTokens
}

func outputTokensOf(r *Response) int {
	if r == nil {
		return 0
	}
	return r.OutputTokens
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
