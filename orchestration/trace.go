package orchestration

import (
	"sync"
	"time"
)

// TraceStep records one attempted agent invocation. Failed attempts are
// recorded too, so the step count of a finalized trace always equals the
// number of invocations attempted.
type TraceStep struct {
	AgentID    string `json:"agent_id"`
	AgentName  string `json:"agent_name"`
	Input      string `json:"input"`
	Output     string `json:"output,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Trace is an append-only ordered log of agent invocations for one
// orchestration run. A trace is either entirely absent (tracing disabled) or
// present and finalized exactly once when the run ends.
type Trace struct {
	mu        sync.Mutex
	steps     []TraceStep
	started   time.Time
	totalMS   int64
	success   bool
	finalized bool
}

// NewTrace starts an empty trace; total duration is measured from this call.
func NewTrace() *Trace {
	return &Trace{started: time.Now()}
}

// AddStep appends a step record. Calls after finalization are ignored.
func (t *Trace) AddStep(step TraceStep) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finalized {
		return
	}
	t.steps = append(t.steps, step)
}

// Finalize seals the trace with the overall outcome and total duration.
// Only the first call has any effect.
func (t *Trace) Finalize(success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finalized {
		return
	}
	t.finalized = true
	t.success = success
	t.totalMS = time.Since(t.started).Milliseconds()
}

// Finalized reports whether the trace has been sealed.
func (t *Trace) Finalized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finalized
}

// Success reports the overall outcome recorded at finalization.
func (t *Trace) Success() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.success
}

// TotalDurationMS returns the total run duration in milliseconds recorded at
// finalization.
func (t *Trace) TotalDurationMS() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalMS
}

// Steps returns a copy of the recorded steps in order.
func (t *Trace) Steps() []TraceStep {
	t.mu.Lock()
	defer t.mu.Unlock()
	steps := make([]TraceStep, len(t.steps))
	copy(steps, t.steps)
	return steps
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.steps)
}
