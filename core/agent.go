package core

import "context"

// Agent is the unit of orchestration. An agent turns an input message plus
// the conversational history carried by a Thread into a single response.
//
// Implementations must be safe to invoke repeatedly and with a Thread they
// were not created with; orchestration strategies reuse one agent across many
// runs and, for concurrent fan-out, hand each invocation its own Thread.
type Agent interface {
	// ID returns the stable unique identifier of the agent.
	ID() string

	// Name returns the human-readable display name. May be empty; callers
	// that need a label should fall back to ID (see DisplayName).
	Name() string

	// Invoke runs one turn: the message is appended to the thread, the model
	// (or other backing logic) produces a response, and the response is
	// appended to the thread before being returned.
	Invoke(ctx context.Context, thread *Thread, message string) (string, error)
}

// DisplayName returns the agent's name, falling back to its ID when no name
// was configured.
func DisplayName(a Agent) string {
	if n := a.Name(); n != "" {
		return n
	}
	return a.ID()
}
