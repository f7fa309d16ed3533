package process

import (
	"time"

	"github.com/google/uuid"
)

// EventType categorizes process audit events.
type EventType string

// Process lifecycle and step event types.
const (
	EventProcessStarted   EventType = "process_started"
	EventProcessCompleted EventType = "process_completed"
	EventProcessFailed    EventType = "process_failed"
	EventProcessPaused    EventType = "process_paused"
	EventProcessResumed   EventType = "process_resumed"
	EventStepStarted      EventType = "step_started"
	EventStepCompleted    EventType = "step_completed"
)

// Event is one record of the per-process audit trail. After emission it is
// immutable. Step fields are populated for step events only; Success is set
// on step completion.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ProcessID string    `json:"process_id"`
	StepName  string    `json:"step_name,omitempty"`
	StepIndex int       `json:"step_index,omitempty"`
	Success   *bool     `json:"success,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event of the given type bound to a process instance,
// stamped with the current UTC time.
func NewEvent(t EventType, processID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		ProcessID: processID,
		Timestamp: time.Now().UTC(),
	}
}

func boolPtr(b bool) *bool { return &b }
