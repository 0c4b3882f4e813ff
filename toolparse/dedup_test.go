package toolparse

import (
	"testing"

	"github.com/martinemde/ralph/llm"
)

func call(t *testing.T, id, name, args string) llm.ToolCall {
	t.Helper()
	return llm.ToolCall{ID: id, Name: name, Arguments: mustValue(t, args)}
}

func record(t *testing.T, name, args string) CallRecord {
	t.Helper()
	return CallRecord{Name: name, Arguments: mustValue(t, args)}
}

func TestDedupDropsRecentRepeat(t *testing.T) {
	calls := []llm.ToolCall{
		call(t, "text_tool_0", "git_status", `{}`),
		call(t, "text_tool_1", "read_file", `{"path": "a"}`),
	}
	recent := []CallRecord{record(t, "git_status", `{}`)}

	unique := Dedup(calls, recent)
	if len(unique) != 1 {
		t.Fatalf("expected 1 surviving call, got %d", len(unique))
	}
	if unique[0].Name != "read_file" {
		t.Errorf("expected %q to survive, got %q", "read_file", unique[0].Name)
	}
}

func TestDedupKeepsDifferentArguments(t *testing.T) {
	calls := []llm.ToolCall{call(t, "text_tool_0", "read_file", `{"path": "b"}`)}
	recent := []CallRecord{record(t, "read_file", `{"path": "a"}`)}

	if unique := Dedup(calls, recent); len(unique) != 1 {
		t.Errorf("expected call with different arguments to survive, got %d", len(unique))
	}
}

func TestDedupIgnoresArgumentOrder(t *testing.T) {
	calls := []llm.ToolCall{call(t, "text_tool_0", "grep", `{"pattern": "x", "path": "."}`)}
	recent := []CallRecord{record(t, "grep", `{"path": ".", "pattern": "x"}`)}

	if unique := Dedup(calls, recent); len(unique) != 0 {
		t.Errorf("expected reordered duplicate to be dropped, got %d survivors", len(unique))
	}
}

func TestDedupEmptyWindow(t *testing.T) {
	calls := []llm.ToolCall{call(t, "text_tool_0", "git_status", `{}`)}

	if unique := Dedup(calls, nil); len(unique) != 1 {
		t.Errorf("expected all calls to survive an empty window, got %d", len(unique))
	}
}

func TestDedupDropsEveryWindowMatch(t *testing.T) {
	// Both copies of the recently executed call go; the call between them
	// stays put.
	calls := []llm.ToolCall{
		call(t, "text_tool_0", "git_status", `{}`),
		call(t, "text_tool_1", "read_file", `{"path": "a"}`),
		call(t, "text_tool_2", "git_status", `{}`),
	}
	recent := []CallRecord{record(t, "git_status", `{}`)}

	unique := Dedup(calls, recent)
	if len(unique) != 1 {
		t.Fatalf("expected 1 surviving call, got %d", len(unique))
	}
	if unique[0].Name != "read_file" {
		t.Errorf("expected %q to survive, got %q", "read_file", unique[0].Name)
	}
}

func TestDedupDoesNotCompareCandidatesToEachOther(t *testing.T) {
	// The same call twice in one turn executes twice; only the recent
	// window suppresses.
	calls := []llm.ToolCall{
		call(t, "text_tool_0", "git_status", `{}`),
		call(t, "text_tool_1", "git_status", `{}`),
	}

	if unique := Dedup(calls, nil); len(unique) != 2 {
		t.Errorf("expected both candidates to survive, got %d", len(unique))
	}
}

func TestDedupPreservesOrder(t *testing.T) {
	calls := []llm.ToolCall{
		call(t, "text_tool_0", "read_file", `{"path": "a"}`),
		call(t, "text_tool_1", "git_status", `{}`),
		call(t, "text_tool_2", "read_file", `{"path": "b"}`),
	}
	recent := []CallRecord{record(t, "git_status", `{}`)}

	unique := Dedup(calls, recent)
	if len(unique) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(unique))
	}
	if unique[0].ID != "text_tool_0" || unique[1].ID != "text_tool_2" {
		t.Errorf("unexpected order: %q, %q", unique[0].ID, unique[1].ID)
	}
}

func TestDedupNumberTextMatters(t *testing.T) {
	// 1 and 1.0 are different argument values, so this is not a repeat.
	calls := []llm.ToolCall{call(t, "text_tool_0", "run_cmd", `{"command": "x", "retries": 1}`)}
	recent := []CallRecord{record(t, "run_cmd", `{"command": "x", "retries": 1.0}`)}

	if unique := Dedup(calls, recent); len(unique) != 1 {
		t.Errorf("expected call to survive, got %d", len(unique))
	}
}
