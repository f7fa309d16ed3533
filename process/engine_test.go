package process

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/model"
)

func succeedStep(name string) Step {
	return NewFuncStep(name, func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
		return NewSuccessResult(), nil
	})
}

func countEvents(events []Event, t EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func TestEngine_Execute_RunsAllStepsInOrder(t *testing.T) {
	var order []string
	steps := make([]Step, 0, 3)
	for _, name := range []string{"fetch", "transform", "store"} {
		name := name
		steps = append(steps, NewFuncStep(name, func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			order = append(order, name)
			return NewSuccessResult(), nil
		}))
	}

	engine := NewEngine()
	pc, err := engine.Execute(context.Background(), NewProcess("pipeline", steps))

	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "transform", "store"}, order)
	assert.Equal(t, 2, pc.CurrentStep)
	assert.False(t, engine.IsPaused(pc))

	events := engine.EventLog().EventsForProcess(pc.ID)
	require.Len(t, events, 8)
	assert.Equal(t, EventProcessStarted, events[0].Type)
	assert.Equal(t, EventProcessCompleted, events[7].Type)
	assert.Equal(t, 3, countEvents(events, EventStepStarted))
	assert.Equal(t, 3, countEvents(events, EventStepCompleted))
}

func TestEngine_Execute_StepEventsCarryNameAndIndex(t *testing.T) {
	engine := NewEngine()
	pc, err := engine.Execute(context.Background(), NewProcess("p", []Step{succeedStep("only")}))
	require.NoError(t, err)

	events := engine.EventLog().EventsForProcess(pc.ID)
	require.Len(t, events, 4)

	started := events[1]
	assert.Equal(t, EventStepStarted, started.Type)
	assert.Equal(t, "only", started.StepName)
	assert.Equal(t, 0, started.StepIndex)

	completed := events[2]
	assert.Equal(t, EventStepCompleted, completed.Type)
	require.NotNil(t, completed.Success)
	assert.True(t, *completed.Success)
}

func TestEngine_Execute_PauseAndResume(t *testing.T) {
	executions := map[string]int{}
	step := func(name string, result *StepResult) Step {
		return NewFuncStep(name, func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			executions[name]++
			return result, nil
		})
	}
	p := NewProcess("onboarding", []Step{
		step("collect", NewSuccessResult()),
		step("await-approval", NewPauseResult()),
		step("provision", NewSuccessResult()),
		step("notify", NewSuccessResult()),
	})

	engine := NewEngine()
	pc, err := engine.Execute(context.Background(), p)
	require.NoError(t, err)
	require.True(t, engine.IsPaused(pc))

	assert.Equal(t, 1, pc.CurrentStep)
	events := engine.EventLog().EventsForProcess(pc.ID)
	assert.Equal(t, 2, countEvents(events, EventStepCompleted))
	assert.Equal(t, EventProcessPaused, events[len(events)-1].Type)
	assert.Equal(t, 0, executions["provision"])

	// Skip past the step that requested the pause, then resume.
	pc.CurrentStep = 2
	pc, err = engine.Resume(context.Background(), p, pc)
	require.NoError(t, err)
	assert.False(t, engine.IsPaused(pc))

	assert.Equal(t, 3, pc.CurrentStep)
	events = engine.EventLog().EventsForProcess(pc.ID)
	assert.Equal(t, 4, countEvents(events, EventStepCompleted))
	assert.Equal(t, 1, countEvents(events, EventProcessResumed))
	assert.Equal(t, EventProcessCompleted, events[len(events)-1].Type)
	assert.Equal(t, 1, executions["await-approval"])
	assert.Equal(t, 1, executions["provision"])
	assert.Equal(t, 1, executions["notify"])
}

func TestEngine_Resume_ReentersPausedStepByDefault(t *testing.T) {
	pauses := 0
	p := NewProcess("p", []Step{
		NewFuncStep("gate", func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			pauses++
			if pauses == 1 {
				return NewPauseResult(), nil
			}
			return NewSuccessResult(), nil
		}),
	})

	engine := NewEngine()
	pc, err := engine.Execute(context.Background(), p)
	require.NoError(t, err)
	require.True(t, engine.IsPaused(pc))
	assert.Equal(t, 0, pc.CurrentStep)

	pc, err = engine.Resume(context.Background(), p, pc)
	require.NoError(t, err)
	assert.False(t, engine.IsPaused(pc))
	assert.Equal(t, 2, pauses)
}

func TestEngine_Execute_StepFailureStopsProcess(t *testing.T) {
	ran := false
	p := NewProcess("p", []Step{
		succeedStep("first"),
		NewFuncStep("broken", func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			return NewFailureResult("upstream unavailable"), nil
		}),
		NewFuncStep("never", func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			ran = true
			return NewSuccessResult(), nil
		}),
	})

	engine := NewEngine()
	pc, err := engine.Execute(context.Background(), p)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.Contains(t, err.Error(), "upstream unavailable")
	assert.False(t, ran)

	require.NotNil(t, pc)
	assert.Equal(t, 1, pc.CurrentStep)

	events := engine.EventLog().EventsForProcess(pc.ID)
	assert.Equal(t, 2, countEvents(events, EventStepCompleted))
	last := events[len(events)-1]
	assert.Equal(t, EventProcessFailed, last.Type)
	assert.Equal(t, "broken", last.StepName)

	failedStep := events[len(events)-2]
	assert.Equal(t, EventStepCompleted, failedStep.Type)
	require.NotNil(t, failedStep.Success)
	assert.False(t, *failedStep.Success)
	assert.Contains(t, failedStep.Error, "upstream unavailable")
}

func TestEngine_Execute_StepErrorStopsProcess(t *testing.T) {
	p := NewProcess("p", []Step{
		NewFuncStep("boom", func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			return nil, fmt.Errorf("dial tcp: connection refused")
		}),
	})

	engine := NewEngine()
	_, err := engine.Execute(context.Background(), p)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEngine_Execute_NilResultIsFailure(t *testing.T) {
	p := NewProcess("p", []Step{
		NewFuncStep("silent", func(_ context.Context, _ *Context, _ model.Model) (*StepResult, error) {
			return nil, nil
		}),
	})

	engine := NewEngine()
	_, err := engine.Execute(context.Background(), p)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Contains(t, err.Error(), "no result")
}

func TestEngine_Execute_ValidationFailsBeforeAnyEvent(t *testing.T) {
	engine := NewEngine()

	pc, err := engine.Execute(context.Background(), NewProcess("", []Step{succeedStep("a")}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, pc)
	assert.Zero(t, engine.EventLog().Len())

	_, err = engine.Execute(context.Background(), NewProcess("p", []Step{NewFuncStep("", nil)}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, engine.EventLog().Len())
}

func TestEngine_Execute_EmptyProcessCompletesImmediately(t *testing.T) {
	engine := NewEngine()
	pc, err := engine.Execute(context.Background(), NewProcess("empty", nil))

	require.NoError(t, err)
	events := engine.EventLog().EventsForProcess(pc.ID)
	require.Len(t, events, 2)
	assert.Equal(t, EventProcessStarted, events[0].Type)
	assert.Equal(t, EventProcessCompleted, events[1].Type)
}

func TestEngine_Resume_Validation(t *testing.T) {
	engine := NewEngine()
	p := NewProcess("p", []Step{succeedStep("a")})

	_, err := engine.Resume(context.Background(), p, nil)
	assert.ErrorIs(t, err, ErrValidation)

	pc := NewContext()
	pc.CurrentStep = 5
	_, err = engine.Resume(context.Background(), p, pc)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEngine_Execute_StateFlowsBetweenSteps(t *testing.T) {
	p := NewProcess("p", []Step{
		NewFuncStep("produce", func(_ context.Context, pc *Context, _ model.Model) (*StepResult, error) {
			return NewSuccessResult(), pc.SetState("total", 42)
		}),
		NewFuncStep("consume", func(_ context.Context, pc *Context, _ model.Model) (*StepResult, error) {
			var total int
			ok, err := pc.GetState("total", &total)
			if err != nil {
				return nil, err
			}
			if !ok || total != 42 {
				return nil, errors.New("expected total from previous step")
			}
			return NewSuccessResult(), nil
		}),
	})

	_, err := NewEngine().Execute(context.Background(), p)
	assert.NoError(t, err)
}

func TestEngine_Execute_KernelIsPassedToSteps(t *testing.T) {
	mock := model.NewMockModel("kernel")
	var seen model.Model
	p := NewProcess("p", []Step{
		NewFuncStep("observe", func(_ context.Context, _ *Context, kernel model.Model) (*StepResult, error) {
			seen = kernel
			return NewSuccessResult(), nil
		}),
	})

	engine := NewEngine(func(o *EngineOptions) { o.Kernel = mock })
	_, err := engine.Execute(context.Background(), p)

	require.NoError(t, err)
	assert.Same(t, mock, seen)
}

func TestEngine_SharedEventLogSeparatesProcessInstances(t *testing.T) {
	log := NewEventLog()
	engine := NewEngine(func(o *EngineOptions) { o.EventLog = log })
	p := NewProcess("p", []Step{succeedStep("a")})

	pc1, err := engine.Execute(context.Background(), p)
	require.NoError(t, err)
	pc2, err := engine.Execute(context.Background(), p)
	require.NoError(t, err)

	assert.Len(t, log.EventsForProcess(pc1.ID), 4)
	assert.Len(t, log.EventsForProcess(pc2.ID), 4)
	assert.Equal(t, 8, log.Len())
}
