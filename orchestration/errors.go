package orchestration

import "errors"

var (
	// ErrNoAgents is returned when a strategy is run with zero agents
	// configured. No agent is invoked.
	ErrNoAgents = errors.New("no agents configured")

	// ErrTimeout is returned when the elapsed wall-clock time since run
	// start exceeds the configured timeout. The check happens between agent
	// turns; in-flight invocations are not forcibly aborted.
	ErrTimeout = errors.New("orchestration timeout exceeded")

	// ErrUnknownAgent is returned when a handoff configuration references an
	// agent name that is not part of the strategy.
	ErrUnknownAgent = errors.New("unknown agent")
)
