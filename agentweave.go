// Package agentweave provides a high-level façade over the orchestration
// strategies and the process engine. Most applications interact with this
// package by:
//  1. Creating an AgentWeave via New() (optionally supplying a kernel, a
//     shared event log and a structured logger)
//  2. Composing agents into Sequential / Handoff / Concurrent strategies
//  3. Executing and resuming processes through the embedded engine
//
// The façade only wires shared infrastructure (logger, event log, kernel)
// into the underlying packages; all orchestration and process semantics live
// in the orchestration and process packages. Defaults are safe for local
// development and testing.
package agentweave

import (
	"context"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/logging"
	"github.com/hupe1980/agentweave/model"
	"github.com/hupe1980/agentweave/orchestration"
	"github.com/hupe1980/agentweave/process"
)

// Options configure the AgentWeave instance.
type Options struct {
	// Kernel is handed to process steps unmodified. May be nil when no step
	// invokes a model.
	Kernel model.Model

	// EventLog is the shared audit trail for process runs. Defaults to a
	// fresh bounded log.
	EventLog *process.EventLog

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentWeave is the high-level façade aggregating the process engine and
// shared infrastructure for orchestration strategies.
type AgentWeave struct {
	opts   Options
	engine *process.Engine
}

// New creates a new AgentWeave instance with optional overrides.
func New(optFns ...func(o *Options)) *AgentWeave {
	opts := Options{
		EventLog: process.NewEventLog(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	engine := process.NewEngine(func(o *process.EngineOptions) {
		o.EventLog = opts.EventLog
		o.Kernel = opts.Kernel
		o.Logger = opts.Logger
	})

	return &AgentWeave{opts: opts, engine: engine}
}

// Engine returns the underlying process engine.
func (w *AgentWeave) Engine() *process.Engine { return w.engine }

// Events returns the retained audit events across all process runs.
func (w *AgentWeave) Events() []process.Event { return w.opts.EventLog.Events() }

// ExecuteProcess runs a process from the start against a fresh context.
func (w *AgentWeave) ExecuteProcess(ctx context.Context, p *process.Process) (*process.Context, error) {
	return w.engine.Execute(ctx, p)
}

// ResumeProcess continues a paused process from its context's cursor.
func (w *AgentWeave) ResumeProcess(ctx context.Context, p *process.Process, pc *process.Context) (*process.Context, error) {
	return w.engine.Resume(ctx, p, pc)
}

// NewSequential composes agents into a pipeline sharing this instance's logger.
func (w *AgentWeave) NewSequential(agents ...core.Agent) *orchestration.Sequential {
	return orchestration.NewSequential(agents, func(o *orchestration.SequentialOptions) {
		o.Logger = w.opts.Logger
	})
}

// NewConcurrent composes agents into a fan-out strategy sharing this
// instance's logger.
func (w *AgentWeave) NewConcurrent(agents ...core.Agent) *orchestration.Concurrent {
	return orchestration.NewConcurrent(agents, func(o *orchestration.ConcurrentOptions) {
		o.Logger = w.opts.Logger
	})
}

// NewHandoff composes agents into a handoff conversation sharing this
// instance's logger.
func (w *AgentWeave) NewHandoff(start string, agents []core.Agent, rules []orchestration.Rule, optFns ...func(o *orchestration.HandoffOptions)) (*orchestration.Handoff, error) {
	fns := append([]func(o *orchestration.HandoffOptions){func(o *orchestration.HandoffOptions) {
		o.Logger = w.opts.Logger
	}}, optFns...)
	return orchestration.NewHandoff(start, agents, rules, fns...)
}
