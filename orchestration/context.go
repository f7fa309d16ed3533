package orchestration

import (
	"time"

	"github.com/google/uuid"
)

// Context carries execution-scoped configuration for one orchestration run.
// It is created per call and treated as immutable during execution.
type Context struct {
	// ExecutionID uniquely identifies this run.
	ExecutionID string

	// Metadata is free-form caller data copied onto the Result.
	Metadata map[string]string

	// Timeout bounds the elapsed wall-clock time of the whole run. Zero
	// disables the check. The limit is evaluated before each agent turn,
	// not during one.
	Timeout time.Duration

	// EnableTrace turns on per-step execution tracing.
	EnableTrace bool
}

// NewContext creates a Context with a generated execution id.
func NewContext(optFns ...func(c *Context)) *Context {
	c := &Context{
		ExecutionID: uuid.NewString(),
		Metadata:    map[string]string{},
	}
	for _, fn := range optFns {
		fn(c)
	}
	return c
}
