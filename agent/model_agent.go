package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/logging"
	"github.com/hupe1980/agentweave/model"
)

// ModelAgentOptions configure a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	// ID overrides the generated uuid identity. Useful for deterministic
	// wiring in declarative definitions and tests.
	ID string

	// Description documents the agent's purpose.
	Description string

	// Instructions is the system prompt resolved on every invocation.
	Instructions string

	// MaxHistoryMessages bounds how much conversation history is forwarded
	// to the model. Zero means unbounded.
	MaxHistoryMessages int

	// Logger receives per-invocation debug records. Defaults to NoOpLogger.
	Logger logging.Logger
}

// ModelAgent is a named, instructable agent backed by a language model. It
// implements core.Agent: each invocation appends the incoming message to the
// thread, forwards the bounded history to the model, appends the response and
// returns its content.
type ModelAgent struct {
	id           string
	name         string
	description  string
	instructions string
	llm          model.Model
	maxHistory   int
	logger       logging.Logger
}

// NewModelAgent creates a model-backed agent with sensible defaults.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		ID:           uuid.NewString(),
		Description:  fmt.Sprintf("Agent %s", name),
		Instructions: fmt.Sprintf("You are %s, a helpful AI assistant.", name),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &ModelAgent{
		id:           opts.ID,
		name:         name,
		description:  opts.Description,
		instructions: opts.Instructions,
		llm:          llm,
		maxHistory:   opts.MaxHistoryMessages,
		logger:       opts.Logger,
	}
}

// ID returns the agent's unique identifier.
func (a *ModelAgent) ID() string { return a.id }

// Name returns the agent's display name.
func (a *ModelAgent) Name() string { return a.name }

// Description returns a description of the agent's purpose.
func (a *ModelAgent) Description() string { return a.description }

// Instructions returns the agent's system prompt.
func (a *ModelAgent) Instructions() string { return a.instructions }

// Invoke implements core.Agent.
func (a *ModelAgent) Invoke(ctx context.Context, thread *core.Thread, message string) (string, error) {
	if err := thread.AddMessage(core.RoleUser, message); err != nil {
		return "", fmt.Errorf("agent %s: %w", a.id, err)
	}

	history, err := thread.History()
	if err != nil {
		return "", fmt.Errorf("agent %s: %w", a.id, err)
	}
	if a.maxHistory > 0 && len(history) > a.maxHistory {
		history = history[len(history)-a.maxHistory:]
	}

	a.logger.Debug("agent.invoke", "agent", core.DisplayName(a), "thread", thread.ID(), "history_len", len(history))

	resp, err := a.llm.Generate(ctx, model.Request{
		Instructions: a.instructions,
		Messages:     history,
	})
	if err != nil {
		return "", fmt.Errorf("agent %s: model generation failed: %w", a.id, err)
	}

	if err := thread.AddMessage(core.RoleAssistant, resp.Content); err != nil {
		return "", fmt.Errorf("agent %s: %w", a.id, err)
	}
	return resp.Content, nil
}
