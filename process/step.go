package process

import (
	"context"
	"errors"

	"github.com/hupe1980/agentweave/model"
)

// Step is a named unit of work operating on the shared process Context. The
// kernel handle is passed through unmodified; steps that invoke a model use
// it, others ignore it.
type Step interface {
	// Name identifies the step in events and errors.
	Name() string

	// Description documents the step's purpose.
	Description() string

	// Validate is called by the engine before any step runs. A step
	// constructed with an invalid configuration (e.g. an empty required
	// field) must reject here so the process fails before side effects.
	Validate() error

	// Execute performs the step's work. Returning a non-nil error, or a
	// StepResult with Success=false, fails the process at this step.
	Execute(ctx context.Context, pc *Context, kernel model.Model) (*StepResult, error)
}

// StepResult is the outcome of one step execution.
//
// Invariants maintained by the constructors: a pause request implies success
// (a step cannot simultaneously fail and pause), and a failure always carries
// a non-empty error message.
type StepResult struct {
	Success      bool   `json:"success"`
	Output       any    `json:"output,omitempty"`
	Error        string `json:"error,omitempty"`
	PauseProcess bool   `json:"pause_process"`
}

// NewSuccessResult reports a completed step; the process continues.
func NewSuccessResult() *StepResult {
	return &StepResult{Success: true}
}

// NewSuccessResultWithOutput reports a completed step with an output payload.
func NewSuccessResultWithOutput(output any) *StepResult {
	return &StepResult{Success: true, Output: output}
}

// NewFailureResult reports a failed step; the process stops at this step.
func NewFailureResult(msg string) *StepResult {
	if msg == "" {
		msg = "step failed"
	}
	return &StepResult{Success: false, Error: msg}
}

// NewPauseResult reports a completed step that suspends the process. The
// engine hands the context back to the caller with CurrentStep still at this
// step; advancing past it before Resume is the caller's decision.
func NewPauseResult() *StepResult {
	return &StepResult{Success: true, PauseProcess: true}
}

// FuncStep adapts a function to the Step interface. Handy for small inline
// steps in tests and wiring code.
type FuncStep struct {
	name        string
	description string
	fn          func(ctx context.Context, pc *Context, kernel model.Model) (*StepResult, error)
}

// NewFuncStep wraps fn as a Step.
func NewFuncStep(name string, fn func(ctx context.Context, pc *Context, kernel model.Model) (*StepResult, error)) *FuncStep {
	return &FuncStep{name: name, description: "Step " + name, fn: fn}
}

// WithDescription sets the step description and returns the step.
func (s *FuncStep) WithDescription(desc string) *FuncStep {
	s.description = desc
	return s
}

// Name implements Step.
func (s *FuncStep) Name() string { return s.name }

// Description implements Step.
func (s *FuncStep) Description() string { return s.description }

// Validate implements Step.
func (s *FuncStep) Validate() error {
	if s.name == "" {
		return errors.New("step name must not be empty")
	}
	if s.fn == nil {
		return errors.New("step function must not be nil")
	}
	return nil
}

// Execute implements Step.
func (s *FuncStep) Execute(ctx context.Context, pc *Context, kernel model.Model) (*StepResult, error) {
	return s.fn(ctx, pc, kernel)
}
