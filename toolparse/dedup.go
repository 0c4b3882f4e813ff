package toolparse

import "github.com/martinemde/ralph/llm"

// CallRecord is an executed (name, arguments) pair kept for duplicate
// suppression.
type CallRecord struct {
	Name      string
	Arguments llm.Value
}

// Dedup returns the calls whose (name, arguments) pair does not deep-equal
// any recent record, preserving order. Models reissue an action they just
// ran when they fail to register its result; suppressing those repeats
// breaks the loop. Candidates are compared against the recent window only,
// never against each other, so a turn may still execute the same call
// twice, and a legitimate repeat becomes executable again once its record
// ages out of the window.
func Dedup(calls []llm.ToolCall, recent []CallRecord) []llm.ToolCall {
	unique := make([]llm.ToolCall, 0, len(calls))
	for _, call := range calls {
		duplicate := false
		for _, rec := range recent {
			if call.Name == rec.Name && call.Arguments.Equal(rec.Arguments) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, call)
		}
	}
	return unique
}
