package agent

import (
	"sync"
	"time"
)

// EventType identifies the type of run event.
type EventType string

const (
	EventRunStart       EventType = "run_start"
	EventRunEnd         EventType = "run_end"
	EventStepStart      EventType = "step_start"
	EventAssistantText  EventType = "assistant_text"
	EventCallsExtracted EventType = "calls_extracted"
	EventCallSuppressed EventType = "call_suppressed"
	EventToolCallStart  EventType = "tool_call_start"
	EventToolCallEnd    EventType = "tool_call_end"
	EventNoProgress     EventType = "no_progress"
	EventStepLimit      EventType = "step_limit"
	EventError          EventType = "error"
)

// Event is a run lifecycle notification.
type Event struct {
	Type      EventType              `json:"type"`
	RunID     string                 `json:"run_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventEmitter delivers run events to a buffered channel. Emitting never
// blocks the loop: when the buffer is full the event is dropped.
type EventEmitter struct {
	mu     sync.Mutex
	ch     chan Event
	runID  string
	closed bool
}

// NewEventEmitter creates an emitter with the given buffer size.
func NewEventEmitter(runID string, buffer int) *EventEmitter {
	if buffer <= 0 {
		buffer = 64
	}
	return &EventEmitter{
		ch:    make(chan Event, buffer),
		runID: runID,
	}
}

// Events returns the receive side of the event channel. It is closed when
// the run finishes.
func (e *EventEmitter) Events() <-chan Event {
	return e.ch
}

// Emit sends an event if there is room, and drops it otherwise. Emitting
// after Close is a no-op.
func (e *EventEmitter) Emit(eventType EventType, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	event := Event{
		Type:      eventType,
		RunID:     e.runID,
		Timestamp: time.Now(),
		Data:      data,
	}
	select {
	case e.ch <- event:
	default:
	}
}

// Close closes the event channel. Safe to call more than once.
func (e *EventEmitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.ch)
}

// previewLimit caps tool output carried on events. Full output always
// enters the conversation history untruncated.
const previewLimit = 200

// preview shortens s for event payloads.
func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "..."
}
