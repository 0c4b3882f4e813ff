package agent

import (
	"github.com/martinemde/ralph/llm"
	"github.com/martinemde/ralph/toolparse"
)

// defaultHistoryCap bounds the executed-call record list. Ten records is
// enough to cover a few turns of lookback without letting a long run
// accumulate state.
const defaultHistoryCap = 10

// CallHistory is a bounded FIFO of executed (name, arguments) pairs, used
// as the reference window for duplicate suppression. The driver owns one
// per run and is its only writer.
type CallHistory struct {
	records  []toolparse.CallRecord
	capacity int
}

// NewCallHistory creates a history holding at most capacity records.
// capacity <= 0 falls back to the default of 10.
func NewCallHistory(capacity int) *CallHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &CallHistory{capacity: capacity}
}

// Push appends an executed call, evicting the oldest record once the
// history is full.
func (h *CallHistory) Push(name string, arguments llm.Value) {
	h.records = append(h.records, toolparse.CallRecord{Name: name, Arguments: arguments})
	if len(h.records) > h.capacity {
		h.records = h.records[1:]
	}
}

// Recent returns up to n of the most recent records, oldest first.
func (h *CallHistory) Recent(n int) []toolparse.CallRecord {
	if n <= 0 || len(h.records) == 0 {
		return nil
	}
	if n > len(h.records) {
		n = len(h.records)
	}
	out := make([]toolparse.CallRecord, n)
	copy(out, h.records[len(h.records)-n:])
	return out
}

// Len returns the number of records currently held.
func (h *CallHistory) Len() int {
	return len(h.records)
}
