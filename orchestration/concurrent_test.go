package orchestration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/core"
)

func TestConcurrent_Run_AllAgentsSameInput(t *testing.T) {
	var mu sync.Mutex
	inputs := map[string]string{}
	threadIDs := map[string]string{}

	mkAgent := func(id, name, output string, delay time.Duration) *scriptedAgent {
		return &scriptedAgent{id: id, name: name, invoke: func(_ context.Context, th *core.Thread, msg string) (string, error) {
			time.Sleep(delay)
			mu.Lock()
			inputs[name] = msg
			threadIDs[name] = th.ID()
			mu.Unlock()
			return output, nil
		}}
	}

	// Deliberately uneven delays so completion order differs from
	// declaration order.
	a1 := mkAgent("id-1", "Optimist", "great idea", 20*time.Millisecond)
	a2 := mkAgent("id-2", "Pessimist", "terrible idea", 0)
	a3 := mkAgent("id-3", "Realist", "depends", 10*time.Millisecond)

	c := NewConcurrent([]core.Agent{a1, a2, a3})
	octx := NewContext(func(ctx *Context) { ctx.EnableTrace = true })

	result, err := c.Run(context.Background(), octx, "should we rewrite it?")

	require.NoError(t, err)
	require.Len(t, result.Outputs, 3)
	assert.Equal(t, "great idea", result.Outputs["Optimist"])
	assert.Equal(t, "terrible idea", result.Outputs["Pessimist"])
	assert.Equal(t, "depends", result.Outputs["Realist"])
	assert.Empty(t, result.AgentID)

	// Every agent saw the identical input on its own private thread.
	for name, in := range inputs {
		assert.Equal(t, "should we rewrite it?", in, "agent %s", name)
	}
	seen := map[string]bool{}
	for _, id := range threadIDs {
		assert.False(t, seen[id], "thread shared across parallel tasks")
		seen[id] = true
	}

	assert.Equal(t, 3, result.Trace.Len())
	assert.True(t, result.Trace.Success())
}

func TestConcurrent_Run_OutputRenderingIsDeterministic(t *testing.T) {
	a1 := &scriptedAgent{id: "id-1", name: "B", invoke: func(_ context.Context, _ *core.Thread, _ string) (string, error) {
		return "from b", nil
	}}
	a2 := &scriptedAgent{id: "id-2", name: "A", invoke: func(_ context.Context, _ *core.Thread, _ string) (string, error) {
		return "from a", nil
	}}

	c := NewConcurrent([]core.Agent{a1, a2})

	result, err := c.Run(context.Background(), NewContext(), "in")

	require.NoError(t, err)
	assert.Equal(t, "[A]\nfrom a\n\n[B]\nfrom b", result.Output)
}

func TestConcurrent_Run_NoAgents(t *testing.T) {
	c := NewConcurrent(nil)

	result, err := c.Run(context.Background(), NewContext(), "input")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoAgents)
}

func TestConcurrent_Run_FailFast(t *testing.T) {
	ok := &scriptedAgent{id: "id-1", name: "Fine", invoke: func(_ context.Context, _ *core.Thread, _ string) (string, error) {
		return "fine", nil
	}}
	bad := &scriptedAgent{id: "id-2", name: "Broken", invoke: func(_ context.Context, _ *core.Thread, _ string) (string, error) {
		return "", assert.AnError
	}}

	c := NewConcurrent([]core.Agent{ok, bad})

	result, err := c.Run(context.Background(), NewContext(), "input")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "id-2")
}

func TestConcurrent_Run_SiblingFailureCancelsRunContext(t *testing.T) {
	cancelled := make(chan struct{})

	slow := &scriptedAgent{id: "id-1", name: "Slow", invoke: func(ctx context.Context, _ *core.Thread, _ string) (string, error) {
		select {
		case <-ctx.Done():
			close(cancelled)
			return "", ctx.Err()
		case <-time.After(2 * time.Second):
			return "too late", nil
		}
	}}
	bad := &scriptedAgent{id: "id-2", name: "Broken", invoke: func(_ context.Context, _ *core.Thread, _ string) (string, error) {
		return "", assert.AnError
	}}

	c := NewConcurrent([]core.Agent{slow, bad})

	_, err := c.Run(context.Background(), NewContext(), "input")
	require.Error(t, err)

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("sibling failure did not cancel the run context")
	}
}
