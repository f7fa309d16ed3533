package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrStateEncode is returned when a value cannot be serialized into
	// context state.
	ErrStateEncode = errors.New("state value encode failed")

	// ErrStateDecode is returned when a stored state value cannot be
	// deserialized into the requested type.
	ErrStateDecode = errors.New("state value decode failed")
)

// Context is the workflow's unit of state: a process instance id assigned
// once at creation, a zero-based step cursor, a string-keyed map of
// JSON-encoded values, and caller metadata.
//
// The engine creates a fresh Context at process start and each Step mutates
// it in place. When a step pauses the run, the Context is handed back to the
// caller; serializing it to JSON and back reproduces the same state map and
// cursor, so persistence across the pause is entirely the caller's choice.
//
// CurrentStep always indexes the last-started step or, after a pause, the
// step to resume from. The engine never decrements it.
type Context struct {
	ID          string                     `json:"id"`
	CurrentStep int                        `json:"current_step"`
	State       map[string]json.RawMessage `json:"state"`
	Metadata    map[string]string          `json:"metadata"`
	Created     time.Time                  `json:"created"`
}

// NewContext creates an empty context with a generated process instance id.
func NewContext() *Context {
	return &Context{
		ID:       uuid.NewString(),
		State:    map[string]json.RawMessage{},
		Metadata: map[string]string{},
		Created:  time.Now().UTC(),
	}
}

// SetState encodes v and stores it under key, overwriting unconditionally.
func (c *Context) SetState(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrStateEncode, key, err)
	}
	if c.State == nil {
		c.State = map[string]json.RawMessage{}
	}
	c.State[key] = raw
	return nil
}

// GetState decodes the value stored under key into out. A missing key is not
// an error: it yields (false, nil) so steps can default-initialize on first
// run. A present value that cannot decode into out yields ErrStateDecode.
func (c *Context) GetState(key string, out any) (bool, error) {
	raw, ok := c.State[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrStateDecode, key, err)
	}
	return true, nil
}

// HasState reports whether a value is stored under key.
func (c *Context) HasState(key string) bool {
	_, ok := c.State[key]
	return ok
}

// DeleteState removes the value stored under key, if any.
func (c *Context) DeleteState(key string) {
	delete(c.State, key)
}
