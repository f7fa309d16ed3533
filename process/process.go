package process

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a process or step is rejected before
// execution begins. No step runs and no event is logged.
var ErrValidation = errors.New("process validation failed")

// ProcessOptions configure a Process.
type ProcessOptions struct {
	Description string
}

// Process is an ordered, immutable list of steps plus identity. One Process
// may be executed many times; each run owns its own Context.
type Process struct {
	name        string
	description string
	steps       []Step
}

// NewProcess creates a process over the given steps. The step slice is copied
// so later mutation by the caller cannot affect the process.
func NewProcess(name string, steps []Step, optFns ...func(o *ProcessOptions)) *Process {
	opts := ProcessOptions{Description: fmt.Sprintf("Process %s", name)}
	for _, fn := range optFns {
		fn(&opts)
	}
	owned := make([]Step, len(steps))
	copy(owned, steps)
	return &Process{name: name, description: opts.Description, steps: owned}
}

// Name returns the process name.
func (p *Process) Name() string { return p.name }

// Description returns the process description.
func (p *Process) Description() string { return p.description }

// Steps returns a copy of the ordered step list.
func (p *Process) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Len returns the number of steps.
func (p *Process) Len() int { return len(p.steps) }

// Validate checks the process configuration and every step's own Validate.
// The engine calls this before any step runs.
func (p *Process) Validate() error {
	if p.name == "" {
		return fmt.Errorf("%w: process name must not be empty", ErrValidation)
	}
	for i, step := range p.steps {
		if step == nil {
			return fmt.Errorf("%w: step at index %d is nil", ErrValidation, i)
		}
		if err := step.Validate(); err != nil {
			return fmt.Errorf("%w: step %q at index %d: %v", ErrValidation, step.Name(), i, err)
		}
	}
	return nil
}
