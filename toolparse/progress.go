package toolparse

import (
	"strings"

	"github.com/martinemde/ralph/llm"
)

// ProgressMarkers are the substrings that count as evidence of forward
// progress in a tool result. They track the executor's success phrasing
// plus common test-runner output; matching is case-insensitive.
var ProgressMarkers = []string{
	"successfully wrote to",
	"committed:",
	"patch applied successfully",
	"created directory:",
	"✓",
	"✅",
	"success",
	`"passes": true`,
	"test passed",
	"all tests passed",
}

// HasProgressMarkers reports whether any of the last window messages is a
// tool result containing a progress marker. window <= 0 means 3.
//
// This is a purely lexical check. A model that stops requesting tools right
// after a string of failures has probably given up rather than finished,
// and the driver warns when that happens.
func HasProgressMarkers(messages []llm.Message, window int) bool {
	if window <= 0 {
		window = 3
	}
	start := len(messages) - window
	if start < 0 {
		start = 0
	}
	for _, msg := range messages[start:] {
		if msg.Role != llm.RoleTool {
			continue
		}
		content := strings.ToLower(msg.Content)
		for _, marker := range ProgressMarkers {
			if strings.Contains(content, marker) {
				return true
			}
		}
	}
	return false
}
