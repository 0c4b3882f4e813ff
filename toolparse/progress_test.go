package toolparse

import (
	"testing"

	"github.com/martinemde/ralph/llm"
)

func TestHasProgressMarkers(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{"write confirmation", "Successfully wrote to prd.json", true},
		{"commit", "Committed: add parser", true},
		{"patch", "Patch applied successfully", true},
		{"mkdir", "Created directory: internal/api", true},
		{"check mark", "✓ build passed", true},
		{"emoji check", "✅ 12/12", true},
		{"test runner json", `{"passes": true, "total": 4}`, true},
		{"uppercase", "ALL TESTS PASSED", true},
		{"failure output", "Error: File not found: main.go", false},
		{"plain output", "package main\n\nfunc main() {}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := []llm.Message{llm.ToolResultMessage("call_1", tt.content)}
			if got := HasProgressMarkers(messages, 3); got != tt.expected {
				t.Errorf("expected %v for %q, got %v", tt.expected, tt.content, got)
			}
		})
	}
}

func TestHasProgressMarkersWindow(t *testing.T) {
	messages := []llm.Message{
		llm.ToolResultMessage("call_1", "Successfully wrote to a.txt"),
		llm.ToolResultMessage("call_2", "Error: File not found: b.txt"),
		llm.ToolResultMessage("call_3", "Error: File not found: c.txt"),
		llm.ToolResultMessage("call_4", "Error: File not found: d.txt"),
	}

	// The success is four messages back; a window of 3 misses it.
	if HasProgressMarkers(messages, 3) {
		t.Error("expected no progress within window 3")
	}
	if !HasProgressMarkers(messages, 4) {
		t.Error("expected progress within window 4")
	}
}

func TestHasProgressMarkersDefaultWindow(t *testing.T) {
	messages := []llm.Message{
		llm.ToolResultMessage("call_1", "Committed: initial"),
		llm.ToolResultMessage("call_2", "no luck"),
		llm.ToolResultMessage("call_3", "no luck"),
		llm.ToolResultMessage("call_4", "no luck"),
	}

	// window <= 0 falls back to 3, which excludes the commit.
	if HasProgressMarkers(messages, 0) {
		t.Error("expected default window of 3")
	}
	if HasProgressMarkers(messages, -1) {
		t.Error("expected default window of 3")
	}
}

func TestHasProgressMarkersIgnoresNonToolRoles(t *testing.T) {
	messages := []llm.Message{
		llm.AssistantMessage("I successfully wrote to main.go"),
		llm.UserMessage("all tests passed, right?"),
	}

	if HasProgressMarkers(messages, 3) {
		t.Error("only tool results should count as progress")
	}
}

func TestHasProgressMarkersShortHistory(t *testing.T) {
	if HasProgressMarkers(nil, 3) {
		t.Error("expected false on empty history")
	}

	messages := []llm.Message{llm.ToolResultMessage("call_1", "Committed: fix")}
	if !HasProgressMarkers(messages, 10) {
		t.Error("window larger than history should still find the marker")
	}
}
