package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentweave/core"
	"github.com/hupe1980/agentweave/model"
)

// recordingModel captures the requests it receives.
type recordingModel struct {
	requests []model.Request
	reply    string
	err      error
}

func (m *recordingModel) Generate(_ context.Context, req model.Request) (*model.Response, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &model.Response{Content: m.reply, FinishReason: "stop"}, nil
}

func (m *recordingModel) Info() model.Info {
	return model.Info{Name: "recording", Provider: "mock"}
}

func TestModelAgent_Defaults(t *testing.T) {
	a := NewModelAgent("Writer", model.NewMockModel("m"))

	assert.NotEmpty(t, a.ID())
	assert.Equal(t, "Writer", a.Name())
	assert.Equal(t, "Agent Writer", a.Description())
	assert.Contains(t, a.Instructions(), "Writer")
}

func TestModelAgent_Options(t *testing.T) {
	a := NewModelAgent("Writer", model.NewMockModel("m"), func(o *ModelAgentOptions) {
		o.ID = "writer-1"
		o.Description = "Drafts articles"
		o.Instructions = "Write plainly."
	})

	assert.Equal(t, "writer-1", a.ID())
	assert.Equal(t, "Drafts articles", a.Description())
	assert.Equal(t, "Write plainly.", a.Instructions())
}

func TestModelAgent_InvokeAppendsToThread(t *testing.T) {
	llm := &recordingModel{reply: "four"}
	a := NewModelAgent("Calc", llm, func(o *ModelAgentOptions) {
		o.Instructions = "Answer with a single word."
	})

	thread := core.NewThread()
	out, err := a.Invoke(context.Background(), thread, "what is 2+2?")

	require.NoError(t, err)
	assert.Equal(t, "four", out)

	history, err := thread.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "what is 2+2?"}, history[0])
	assert.Equal(t, core.Message{Role: core.RoleAssistant, Content: "four"}, history[1])

	require.Len(t, llm.requests, 1)
	assert.Equal(t, "Answer with a single word.", llm.requests[0].Instructions)
	require.Len(t, llm.requests[0].Messages, 1)
	assert.Equal(t, "what is 2+2?", llm.requests[0].Messages[0].Content)
}

func TestModelAgent_MaxHistoryBoundsRequest(t *testing.T) {
	llm := &recordingModel{reply: "ok"}
	a := NewModelAgent("Chat", llm, func(o *ModelAgentOptions) {
		o.MaxHistoryMessages = 3
	})

	thread := core.NewThread()
	for _, msg := range []string{"one", "two", "three"} {
		_, err := a.Invoke(context.Background(), thread, msg)
		require.NoError(t, err)
	}

	// Thread keeps everything; the model only sees the bounded tail.
	assert.Equal(t, 6, thread.Len())
	last := llm.requests[len(llm.requests)-1]
	require.Len(t, last.Messages, 3)
	assert.Equal(t, "three", last.Messages[2].Content)
}

func TestModelAgent_GenerationErrorDoesNotRecordReply(t *testing.T) {
	llm := &recordingModel{err: assert.AnError}
	a := NewModelAgent("Flaky", llm, func(o *ModelAgentOptions) { o.ID = "flaky-1" })

	thread := core.NewThread()
	_, err := a.Invoke(context.Background(), thread, "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "flaky-1")

	// The user turn stays; no assistant turn was added.
	assert.Equal(t, 1, thread.Len())
}

func TestModelAgent_DeletedThreadFails(t *testing.T) {
	a := NewModelAgent("X", model.NewMockModel("m"))

	thread := core.NewThread()
	thread.Delete()

	_, err := a.Invoke(context.Background(), thread, "hello")
	assert.ErrorIs(t, err, core.ErrThreadDeleted)
}
