package orchestration

import (
	"time"

	"github.com/hupe1980/agentweave/core"
)

// State is the mutable run state threaded through one orchestration
// execution: the current input, the conversation thread, the optional trace
// and a step counter. It is owned exclusively by the executing strategy and
// discarded when the run ends.
type State struct {
	Input  string
	Thread *core.Thread
	Trace  *Trace
	Steps  int
}

func newState(input string, tracing bool) *State {
	s := &State{Input: input, Thread: core.NewThread()}
	if tracing {
		s.Trace = NewTrace()
	}
	return s
}

// record appends a step to the trace (if tracing is enabled) and bumps the
// step counter. Failed attempts are recorded as well.
func (s *State) record(a core.Agent, input, output string, d time.Duration, err error) {
	s.Steps++
	if s.Trace == nil {
		return
	}
	step := TraceStep{
		AgentID:    a.ID(),
		AgentName:  core.DisplayName(a),
		Input:      input,
		Output:     output,
		DurationMS: d.Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		step.Error = err.Error()
	}
	s.Trace.AddStep(step)
}

// finalize seals the trace with the overall outcome, if tracing is enabled.
func (s *State) finalize(success bool) {
	if s.Trace != nil {
		s.Trace.Finalize(success)
	}
}
