package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/logging"
)

// SequentialOptions configure a Sequential strategy.
type SequentialOptions struct {
	Logger logging.Logger
}

// Sequential runs agents as a strict pipeline: agent 0 receives the initial
// input, and each subsequent agent receives the textual output of its
// predecessor. The final agent's output is the orchestration's output.
//
// All agents share one conversation thread; execution is single-threaded and
// aborts on the first agent error.
type Sequential struct {
	agents []core.Agent
	logger logging.Logger
}

// NewSequential creates a sequential pipeline over the given agents.
func NewSequential(agents []core.Agent, optFns ...func(o *SequentialOptions)) *Sequential {
	opts := SequentialOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Sequential{agents: agents, logger: opts.Logger}
}

// Run implements Strategy.
func (s *Sequential) Run(ctx context.Context, octx *Context, input string) (*Result, error) {
	if len(s.agents) == 0 {
		return nil, ErrNoAgents
	}
	if octx == nil {
		octx = NewContext()
	}

	state := newState(input, octx.EnableTrace)
	start := time.Now()
	lastAgent := s.agents[0]

	for _, ag := range s.agents {
		if octx.Timeout > 0 && time.Since(start) > octx.Timeout {
			state.finalize(false)
			return nil, fmt.Errorf("execution %s: %w after %s", octx.ExecutionID, ErrTimeout, time.Since(start).Round(time.Millisecond))
		}

		stepStart := time.Now()
		output, err := ag.Invoke(ctx, state.Thread, state.Input)
		elapsed := time.Since(stepStart)
		state.record(ag, state.Input, output, elapsed, err)

		if err != nil {
			state.finalize(false)
			s.logger.Error("orchestration.sequential.step_failed",
				"execution_id", octx.ExecutionID, "agent", core.DisplayName(ag), "error", err)
			return nil, fmt.Errorf("agent %s failed: %w", ag.ID(), err)
		}

		s.logger.Debug("orchestration.sequential.step",
			"execution_id", octx.ExecutionID, "agent", core.DisplayName(ag), "duration", elapsed)

		state.Input = output
		lastAgent = ag
	}

	state.finalize(true)
	return &Result{
		Output:   state.Input,
		AgentID:  lastAgent.ID(),
		Trace:    state.Trace,
		Metadata: copyMetadata(octx.Metadata),
	}, nil
}
