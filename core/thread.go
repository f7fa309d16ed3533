package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conversation roles used in thread messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrThreadDeleted is returned when a message is added to, or history is read
// from, a thread that has been deleted.
var ErrThreadDeleted = errors.New("thread has been deleted")

// Message is a single conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Thread owns the ordered message history of one conversation. It is mutated
// by agents during invocation and is safe for concurrent access, although
// orchestration strategies never share one thread across parallel tasks.
//
// Contract:
//   - AddMessage appends in FIFO order and updates the Updated timestamp
//   - History returns a defensive copy to avoid external mutation
//   - Operations on a deleted thread fail with ErrThreadDeleted
type Thread struct {
	id       string
	mu       sync.RWMutex
	messages []Message
	created  time.Time
	updated  time.Time
	deleted  bool
}

// NewThread creates an empty thread with a generated id.
func NewThread() *Thread {
	now := time.Now().UTC()
	return &Thread{id: uuid.NewString(), created: now, updated: now}
}

// ID returns the thread's unique identifier.
func (t *Thread) ID() string { return t.id }

// Created returns the creation timestamp (UTC).
func (t *Thread) Created() time.Time { return t.created }

// AddMessage appends a message with the given role and content.
func (t *Thread) AddMessage(role, content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deleted {
		return ErrThreadDeleted
	}
	t.messages = append(t.messages, Message{Role: role, Content: content})
	t.updated = time.Now().UTC()
	return nil
}

// History returns a copy of the full ordered message history.
func (t *Thread) History() ([]Message, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.deleted {
		return nil, ErrThreadDeleted
	}
	history := make([]Message, len(t.messages))
	copy(history, t.messages)
	return history, nil
}

// Len returns the number of messages in the thread. A deleted thread reports
// zero messages.
func (t *Thread) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.deleted {
		return 0
	}
	return len(t.messages)
}

// Delete marks the thread as deleted. Subsequent mutations and reads fail
// with ErrThreadDeleted. Delete is idempotent.
func (t *Thread) Delete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deleted = true
	t.messages = nil
}

// ThreadSnapshot is the serializable form of a thread. The schema is an
// implementation detail, not a compatibility contract; it round-trips through
// JSON reproducing the same id and message sequence.
type ThreadSnapshot struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
	Created  time.Time `json:"created"`
}

// Snapshot captures the thread's current state for persistence by the caller.
func (t *Thread) Snapshot() (*ThreadSnapshot, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.deleted {
		return nil, ErrThreadDeleted
	}
	messages := make([]Message, len(t.messages))
	copy(messages, t.messages)
	return &ThreadSnapshot{ID: t.id, Messages: messages, Created: t.created}, nil
}

// RestoreThread reconstructs a live thread from a snapshot.
func RestoreThread(s *ThreadSnapshot) *Thread {
	messages := make([]Message, len(s.Messages))
	copy(messages, s.Messages)
	return &Thread{id: s.ID, messages: messages, created: s.Created, updated: time.Now().UTC()}
}
