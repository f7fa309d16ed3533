package process

import "sync"

// DefaultEventLogCapacity is the ring buffer size used when none is configured.
const DefaultEventLogCapacity = 1024

// EventLogOptions configure an EventLog.
type EventLogOptions struct {
	// Capacity bounds the number of retained events; the oldest are evicted
	// first. Values below 1 fall back to DefaultEventLogCapacity.
	Capacity int
}

// EventLog is a bounded, append-only ring buffer of process events. It is the
// only structure in this package mutated by multiple concurrent runs: writes
// are serialized by a single mutex and FIFO order is preserved across
// concurrent writers. The lock is only held around the buffer mutation, never
// across a step invocation.
//
// Capacity eviction trades completeness for bounded memory; callers needing a
// durable audit trail should drain Events into their own store.
type EventLog struct {
	mu   sync.Mutex
	buf  []Event
	head int // index of the oldest event
	size int
}

// NewEventLog creates an event log.
func NewEventLog(optFns ...func(o *EventLogOptions)) *EventLog {
	opts := EventLogOptions{Capacity: DefaultEventLogCapacity}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Capacity < 1 {
		opts.Capacity = DefaultEventLogCapacity
	}
	return &EventLog{buf: make([]Event, opts.Capacity)}
}

// Append adds an event, evicting the oldest one when the log is full.
func (l *EventLog) Append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.size == len(l.buf) {
		l.buf[l.head] = e
		l.head = (l.head + 1) % len(l.buf)
		return
	}
	l.buf[(l.head+l.size)%len(l.buf)] = e
	l.size++
}

// Events returns a copy of the retained events, oldest first.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := make([]Event, l.size)
	for i := 0; i < l.size; i++ {
		events[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return events
}

// EventsForProcess returns the retained events for one process instance,
// oldest first.
func (l *EventLog) EventsForProcess(processID string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var events []Event
	for i := 0; i < l.size; i++ {
		e := l.buf[(l.head+i)%len(l.buf)]
		if e.ProcessID == processID {
			events = append(events, e)
		}
	}
	return events
}

// Len returns the number of retained events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Capacity returns the configured maximum number of retained events.
func (l *EventLog) Capacity() int {
	return len(l.buf)
}
