package orchestration

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/logging"
)

// ConcurrentOptions configure a Concurrent strategy.
type ConcurrentOptions struct {
	Logger logging.Logger
}

// Concurrent invokes every agent with the same input, independently and in
// parallel, then collects all outputs keyed by agent. Each agent gets its own
// Thread so no conversation state is shared across the parallel tasks.
//
// Failure policy is fail-fast: the first agent error cancels result
// collection, already-computed sibling outputs are discarded, and the whole
// call fails. Cancellation of in-flight model calls is best-effort via the
// run context.
type Concurrent struct {
	agents []core.Agent
	logger logging.Logger
}

// NewConcurrent creates a fan-out strategy over the given agents.
func NewConcurrent(agents []core.Agent, optFns ...func(o *ConcurrentOptions)) *Concurrent {
	opts := ConcurrentOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Concurrent{agents: agents, logger: opts.Logger}
}

type concurrentOutcome struct {
	agent   core.Agent
	input   string
	output  string
	elapsed time.Duration
	err     error
}

// Run implements Strategy.
func (c *Concurrent) Run(ctx context.Context, octx *Context, input string) (*Result, error) {
	if len(c.agents) == 0 {
		return nil, ErrNoAgents
	}
	if octx == nil {
		octx = NewContext()
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if octx.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, octx.Timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	state := newState(input, octx.EnableTrace)
	outcomes := make(chan concurrentOutcome, len(c.agents))

	for _, ag := range c.agents {
		go func(a core.Agent) {
			// Each task gets its own thread; agents never share
			// conversation history across the fan-out.
			thread := core.NewThread()
			start := time.Now()
			out, err := a.Invoke(runCtx, thread, input)
			outcomes <- concurrentOutcome{agent: a, input: input, output: out, elapsed: time.Since(start), err: err}
		}(ag)
	}

	outputs := make(map[string]string, len(c.agents))
	for i := 0; i < len(c.agents); i++ {
		oc := <-outcomes
		state.record(oc.agent, oc.input, oc.output, oc.elapsed, oc.err)
		if oc.err != nil {
			cancel()
			state.finalize(false)
			c.logger.Error("orchestration.concurrent.agent_failed",
				"execution_id", octx.ExecutionID, "agent", core.DisplayName(oc.agent), "error", oc.err)
			return nil, fmt.Errorf("agent %s failed: %w", oc.agent.ID(), oc.err)
		}
		outputs[core.DisplayName(oc.agent)] = oc.output
	}

	state.finalize(true)
	return &Result{
		Output:   renderOutputs(outputs),
		Outputs:  outputs,
		Trace:    state.Trace,
		Metadata: copyMetadata(octx.Metadata),
	}, nil
}

// renderOutputs joins the per-agent outputs deterministically (sorted by
// agent name). The joined form is informational only; callers combining the
// results should read Outputs.
func renderOutputs(outputs map[string]string) string {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", name, outputs[name])
	}
	return b.String()
}
