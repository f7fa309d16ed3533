package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/model"
)

// AgentStep bridges the two subsystems: a process step that invokes an agent.
// It reads its input text from one state key, runs the agent against a fresh
// thread, and writes the response under another state key.
type AgentStep struct {
	name        string
	description string
	agent       core.Agent
	inputKey    string
	outputKey   string
}

// NewAgentStep creates an agent-backed step.
func NewAgentStep(name string, agent core.Agent, inputKey, outputKey string) *AgentStep {
	return &AgentStep{
		name:        name,
		description: fmt.Sprintf("Invoke agent on state key %q", inputKey),
		agent:       agent,
		inputKey:    inputKey,
		outputKey:   outputKey,
	}
}

// Name implements Step.
func (s *AgentStep) Name() string { return s.name }

// Description implements Step.
func (s *AgentStep) Description() string { return s.description }

// Validate implements Step.
func (s *AgentStep) Validate() error {
	if s.name == "" {
		return errors.New("step name must not be empty")
	}
	if s.agent == nil {
		return errors.New("agent must not be nil")
	}
	if s.inputKey == "" || s.outputKey == "" {
		return errors.New("input and output state keys must not be empty")
	}
	return nil
}

// Execute implements Step. The kernel handle is unused; the agent carries its
// own model binding.
func (s *AgentStep) Execute(ctx context.Context, pc *Context, _ model.Model) (*StepResult, error) {
	var input string
	ok, err := pc.GetState(s.inputKey, &input)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewFailureResult(fmt.Sprintf("state key %q not set", s.inputKey)), nil
	}

	output, err := s.agent.Invoke(ctx, core.NewThread(), input)
	if err != nil {
		return nil, err
	}
	if err := pc.SetState(s.outputKey, output); err != nil {
		return nil, err
	}
	return NewSuccessResultWithOutput(output), nil
}
