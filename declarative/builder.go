package declarative

import (
	"errors"
	"fmt"

	"github.com/hupe1980/agentweave/agent"
	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/logging"
	"github.com/hupe1980/agentweave/model"
	"github.com/hupe1980/agentweave/orchestration"
	"github.com/hupe1980/agentweave/process"
)

var (
	// ErrUnknownModel is returned when an agent definition references a
	// model name that was not registered.
	ErrUnknownModel = errors.New("unknown model")

	// ErrUnknownStep is returned when a process definition references a
	// step name that was not registered.
	ErrUnknownStep = errors.New("unknown step")

	// ErrUnknownType is returned for an unrecognized orchestration type.
	ErrUnknownType = errors.New("unknown orchestration type")
)

// BuilderOptions configure a Builder.
type BuilderOptions struct {
	Logger logging.Logger
}

// Builder resolves definition references against registered models and steps
// and constructs runnable agents, strategies and processes.
type Builder struct {
	models map[string]model.Model
	steps  map[string]process.Step
	logger logging.Logger
}

// NewBuilder creates an empty builder.
func NewBuilder(optFns ...func(o *BuilderOptions)) *Builder {
	opts := BuilderOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{
		models: map[string]model.Model{},
		steps:  map[string]process.Step{},
		logger: opts.Logger,
	}
}

// RegisterModel makes a model available to agent definitions under name.
func (b *Builder) RegisterModel(name string, m model.Model) {
	b.models[name] = m
}

// RegisterStep makes a step available to process definitions under its Name.
func (b *Builder) RegisterStep(s process.Step) {
	b.steps[s.Name()] = s
}

// BuildAgents constructs one agent per definition, in order.
func (b *Builder) BuildAgents(defs []AgentDefinition) ([]core.Agent, error) {
	agents := make([]core.Agent, 0, len(defs))
	for _, def := range defs {
		llm, ok := b.models[def.Model]
		if !ok {
			return nil, fmt.Errorf("agent %q: model %q: %w", def.Name, def.Model, ErrUnknownModel)
		}
		agents = append(agents, agent.NewModelAgent(def.Name, llm, func(o *agent.ModelAgentOptions) {
			if def.Description != "" {
				o.Description = def.Description
			}
			if def.Instructions != "" {
				o.Instructions = def.Instructions
			}
			o.Logger = b.logger
		}))
	}
	return agents, nil
}

// BuildOrchestration constructs the strategy declared by def, selecting the
// declared subset of agents by name.
func (b *Builder) BuildOrchestration(def OrchestrationDefinition, agents []core.Agent) (orchestration.Strategy, error) {
	selected, err := selectAgents(def.Agents, agents)
	if err != nil {
		return nil, fmt.Errorf("orchestration %q: %w", def.Name, err)
	}

	switch def.Type {
	case TypeSequential:
		return orchestration.NewSequential(selected, func(o *orchestration.SequentialOptions) {
			o.Logger = b.logger
		}), nil

	case TypeConcurrent:
		return orchestration.NewConcurrent(selected, func(o *orchestration.ConcurrentOptions) {
			o.Logger = b.logger
		}), nil

	case TypeHandoff:
		h, err := orchestration.NewHandoff(def.StartAgent, selected, def.Rules, func(o *orchestration.HandoffOptions) {
			if def.MaxHandoffs > 0 {
				o.MaxHandoffs = def.MaxHandoffs
			}
			o.ShowInstructions = def.ShowInstructions
			o.Logger = b.logger
		})
		if err != nil {
			return nil, fmt.Errorf("orchestration %q: %w", def.Name, err)
		}
		return h, nil

	default:
		return nil, fmt.Errorf("orchestration %q: %q: %w", def.Name, def.Type, ErrUnknownType)
	}
}

// BuildProcess constructs the process declared by def from registered steps.
func (b *Builder) BuildProcess(def ProcessDefinition) (*process.Process, error) {
	steps := make([]process.Step, 0, len(def.Steps))
	for _, name := range def.Steps {
		step, ok := b.steps[name]
		if !ok {
			return nil, fmt.Errorf("process %q: step %q: %w", def.Name, name, ErrUnknownStep)
		}
		steps = append(steps, step)
	}
	return process.NewProcess(def.Name, steps, func(o *process.ProcessOptions) {
		if def.Description != "" {
			o.Description = def.Description
		}
	}), nil
}

func selectAgents(names []string, agents []core.Agent) ([]core.Agent, error) {
	byName := make(map[string]core.Agent, len(agents))
	for _, a := range agents {
		byName[core.DisplayName(a)] = a
	}
	selected := make([]core.Agent, 0, len(names))
	for _, name := range names {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("agent %q: %w", name, orchestration.ErrUnknownAgent)
		}
		selected = append(selected, a)
	}
	return selected, nil
}
