package orchestration

import "context"

// Result is the uniform envelope returned by every strategy. It is immutable
// once constructed.
type Result struct {
	// Output is the final output message. For Concurrent orchestration it is
	// a rendering of all agent outputs and is not authoritative; consult
	// Outputs instead.
	Output string `json:"output"`

	// AgentID identifies the agent that produced Output. Empty for
	// Concurrent orchestration, where no single agent is authoritative.
	AgentID string `json:"agent_id,omitempty"`

	// Outputs maps agent display name to output. Populated by Concurrent
	// orchestration only.
	Outputs map[string]string `json:"outputs,omitempty"`

	// Trace is the execution trace, present when tracing was enabled.
	Trace *Trace `json:"-"`

	// Metadata is copied from the orchestration Context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Strategy is the closed capability interface implemented by Sequential,
// Handoff and Concurrent. A strategy may be reused across many calls; each
// call owns its private run state.
type Strategy interface {
	Run(ctx context.Context, octx *Context, input string) (*Result, error)
}

func copyMetadata(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
