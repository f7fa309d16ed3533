package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/agentweave/core"
)

// Request captures the normalized model input produced by agents: optional
// system instructions plus the ordered conversation so far.
type Request struct {
	Instructions string         `json:"instructions,omitempty"`
	Messages     []core.Message `json:"messages"`
}

// TokenUsage captures token usage statistics for a response. The core passes
// it through unmodified; accounting is the caller's concern.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the single completed model turn for a Request.
type Response struct {
	Content      string      `json:"content"`
	FinishReason string      `json:"finish_reason,omitempty"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by agents to drive generation.
type Model interface {
	// Generate produces one response for the given conversation. Blocking;
	// implementations must respect context cancellation.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Canned responses are keyed by the content of the last message in the
// request; unmatched prompts get a deterministic echo.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	failures  map[string]error
	delay     time.Duration
	calls     int
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
		failures:  make(map[string]error),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailOn makes Generate return err whenever the last message equals prompt.
func (m *MockModel) FailOn(prompt string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[prompt] = err
}

// SetDelay makes every Generate call sleep before responding, simulating an
// I/O bound model call.
func (m *MockModel) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Calls reports how many times Generate has been invoked.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls++
	delay := m.delay
	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}
	failure := m.failures[prompt]
	canned, ok := m.responses[prompt]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failure != nil {
		return nil, failure
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	if !ok {
		canned = fmt.Sprintf("Mock response to: %s", prompt)
	}
	return &Response{Content: canned, FinishReason: "stop"}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
