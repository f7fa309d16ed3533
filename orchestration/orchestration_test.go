package orchestration

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hupe1980/agentweave/core"
)

// mockAgent is a testify-backed core.Agent for expectation-style tests.
type mockAgent struct {
	mock.Mock
	id   string
	name string
}

func newMockAgent(id, name string) *mockAgent {
	return &mockAgent{id: id, name: name}
}

func (m *mockAgent) ID() string { return m.id }

func (m *mockAgent) Name() string { return m.name }

func (m *mockAgent) Invoke(ctx context.Context, thread *core.Thread, message string) (string, error) {
	args := m.Called(ctx, thread, message)
	return args.String(0), args.Error(1)
}

// scriptedAgent is a closure-backed core.Agent for tests that need to observe
// threads or inject timing.
type scriptedAgent struct {
	id     string
	name   string
	invoke func(ctx context.Context, thread *core.Thread, message string) (string, error)
}

func (s *scriptedAgent) ID() string { return s.id }

func (s *scriptedAgent) Name() string { return s.name }

func (s *scriptedAgent) Invoke(ctx context.Context, thread *core.Thread, message string) (string, error) {
	return s.invoke(ctx, thread, message)
}
