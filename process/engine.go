package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/agentweave/logging"
	"github.com/hupe1980/agentweave/model"
)

// ErrStepFailed wraps step execution failures surfaced by the engine. The
// returned error names the failing step and carries its error message.
var ErrStepFailed = errors.New("process step failed")

// EngineOptions configure an Engine.
type EngineOptions struct {
	// EventLog receives the audit trail. Shared across runs; defaults to a
	// fresh log with DefaultEventLogCapacity.
	EventLog *EventLog

	// Kernel is handed to every step unmodified. May be nil when no step
	// invokes a model.
	Kernel model.Model

	Logger logging.Logger
}

// Engine drives a Process's steps in order against a Context. Runs are
// single-threaded: no two steps of one run ever execute concurrently. The
// engine may be shared by concurrent callers; each run owns its Context
// exclusively and only the EventLog is touched by multiple runs.
type Engine struct {
	eventLog *EventLog
	kernel   model.Model
	logger   logging.Logger
}

// NewEngine creates an engine.
func NewEngine(optFns ...func(o *EngineOptions)) *Engine {
	opts := EngineOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.EventLog == nil {
		opts.EventLog = NewEventLog()
	}
	return &Engine{eventLog: opts.EventLog, kernel: opts.Kernel, logger: opts.Logger}
}

// EventLog returns the audit trail shared by this engine's runs.
func (e *Engine) EventLog() *EventLog { return e.eventLog }

// Execute runs the process from the beginning against a fresh Context.
//
// Validation happens before any side effect: an invalid process returns an
// error with zero steps executed and zero events logged. On pause the Context
// is returned with CurrentStep at the paused step and a nil error; on failure
// the Context is returned alongside the error with CurrentStep at the failing
// step.
func (e *Engine) Execute(ctx context.Context, p *Process) (*Context, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pc := NewContext()
	e.emit(NewEvent(EventProcessStarted, pc.ID))
	e.logger.Info("process.started", "process", p.Name(), "process_id", pc.ID, "steps", p.Len())

	return e.run(ctx, p, pc)
}

// Resume continues a previously paused run from pc.CurrentStep. The engine
// does not advance the cursor past the paused step on its own: callers who
// want to skip the step that requested the pause must increment CurrentStep
// before resuming, otherwise that step is re-entered.
func (e *Engine) Resume(ctx context.Context, p *Process, pc *Context) (*Context, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, fmt.Errorf("%w: resume requires a context", ErrValidation)
	}
	if pc.CurrentStep < 0 || pc.CurrentStep >= p.Len() {
		return nil, fmt.Errorf("%w: resume position %d out of range [0,%d)", ErrValidation, pc.CurrentStep, p.Len())
	}

	e.emit(NewEvent(EventProcessResumed, pc.ID))
	e.logger.Info("process.resumed", "process", p.Name(), "process_id", pc.ID, "step", pc.CurrentStep)

	return e.run(ctx, p, pc)
}

// run drives steps from pc.CurrentStep to the end, pausing or failing as the
// step results dictate. The cursor tracks the last-started step and is never
// decremented.
func (e *Engine) run(ctx context.Context, p *Process, pc *Context) (*Context, error) {
	for i := pc.CurrentStep; i < len(p.steps); i++ {
		pc.CurrentStep = i
		step := p.steps[i]

		started := NewEvent(EventStepStarted, pc.ID)
		started.StepName = step.Name()
		started.StepIndex = i
		e.emit(started)

		result, err := step.Execute(ctx, pc, e.kernel)
		if err == nil && result == nil {
			err = errors.New("step returned no result")
		}
		if err == nil && !result.Success {
			msg := result.Error
			if msg == "" {
				msg = "step failed"
			}
			err = errors.New(msg)
		}

		completed := NewEvent(EventStepCompleted, pc.ID)
		completed.StepName = step.Name()
		completed.StepIndex = i

		if err != nil {
			completed.Success = boolPtr(false)
			completed.Error = err.Error()
			e.emit(completed)

			failed := NewEvent(EventProcessFailed, pc.ID)
			failed.StepName = step.Name()
			failed.StepIndex = i
			failed.Error = err.Error()
			e.emit(failed)

			e.logger.Error("process.step_failed", "process", p.Name(), "process_id", pc.ID, "step", step.Name(), "error", err)
			return pc, fmt.Errorf("%w: step %q: %w", ErrStepFailed, step.Name(), err)
		}

		completed.Success = boolPtr(true)
		e.emit(completed)
		e.logger.Debug("process.step_completed", "process", p.Name(), "process_id", pc.ID, "step", step.Name(), "index", i)

		if result.PauseProcess {
			e.emit(NewEvent(EventProcessPaused, pc.ID))
			e.logger.Info("process.paused", "process", p.Name(), "process_id", pc.ID, "step", step.Name(), "index", i)
			return pc, nil
		}
	}

	e.emit(NewEvent(EventProcessCompleted, pc.ID))
	e.logger.Info("process.completed", "process", p.Name(), "process_id", pc.ID)
	return pc, nil
}

// IsPaused reports whether the most recent audit event for the context's
// process instance is a pause. Callers use it after Execute or Resume to
// decide whether the returned context should be kept for a later Resume.
func (e *Engine) IsPaused(pc *Context) bool {
	events := e.eventLog.EventsForProcess(pc.ID)
	if len(events) == 0 {
		return false
	}
	return events[len(events)-1].Type == EventProcessPaused
}

func (e *Engine) emit(ev Event) {
	e.eventLog.Append(ev)
}
