package toolparse

import (
	"testing"

	"github.com/martinemde/ralph/llm"
)

func TestExtractNativePassthrough(t *testing.T) {
	m := NewMatcher(nil)
	native := []llm.ToolCall{{
		ID:        "call_ab12cd34",
		Name:      "git_status",
		Arguments: mustValue(t, `{}`),
		Origin:    llm.OriginNative,
	}}
	// Content also contains a text call; native records win and the text
	// is never scanned.
	resp := &llm.Response{
		Content:   `Checking. {"name": "read_file", "arguments": {"path": "a"}}`,
		ToolCalls: native,
	}

	ex := Extract(resp, m)
	if len(ex.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(ex.Calls))
	}
	if ex.Calls[0].ID != "call_ab12cd34" {
		t.Errorf("expected native id kept, got %q", ex.Calls[0].ID)
	}
	if ex.Reasoning != resp.Content {
		t.Errorf("expected reasoning to keep full content, got %q", ex.Reasoning)
	}
}

func TestExtractSynthesizesIDs(t *testing.T) {
	m := NewMatcher(nil)
	resp := &llm.Response{
		Content: `{"name": "git_status", "arguments": {}}
{"name": "read_file", "arguments": {"path": "go.mod"}}`,
	}

	ex := Extract(resp, m)
	if len(ex.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(ex.Calls))
	}
	if ex.Calls[0].ID != "text_tool_0" || ex.Calls[1].ID != "text_tool_1" {
		t.Errorf("unexpected ids: %q, %q", ex.Calls[0].ID, ex.Calls[1].ID)
	}
	for _, call := range ex.Calls {
		if call.Origin != llm.OriginSynthesized {
			t.Errorf("call %s: expected synthesized origin, got %q", call.ID, call.Origin)
		}
	}
}

func TestExtractRemovesCallJSONFromReasoning(t *testing.T) {
	m := NewMatcher(nil)
	resp := &llm.Response{
		Content: `Let me look at the module file.
{"name":"read_file","arguments":{"path":"go.mod"}}
Then I will decide.`,
	}

	ex := Extract(resp, m)
	if len(ex.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(ex.Calls))
	}
	expected := "Let me look at the module file.\n\nThen I will decide."
	if ex.Reasoning != expected {
		t.Errorf("expected reasoning %q, got %q", expected, ex.Reasoning)
	}
}

func TestExtractReformattedSpanStaysInReasoning(t *testing.T) {
	// The mined span has spaces after colons; its compact canonical
	// encoding differs, so removal misses and the span survives as noise.
	m := NewMatcher(nil)
	resp := &llm.Response{
		Content: `{"name": "git_status", "arguments": {}}`,
	}

	ex := Extract(resp, m)
	if len(ex.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(ex.Calls))
	}
	if ex.Reasoning != resp.Content {
		t.Errorf("expected span left behind, got %q", ex.Reasoning)
	}
}

func TestExtractCompactSpanRemoved(t *testing.T) {
	m := NewMatcher(nil)
	span := llm.EncodeCall("git_status", mustValue(t, `{}`))
	resp := &llm.Response{Content: "Status first. " + span}

	ex := Extract(resp, m)
	if len(ex.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(ex.Calls))
	}
	if ex.Reasoning != "Status first." {
		t.Errorf("expected %q, got %q", "Status first.", ex.Reasoning)
	}
}

func TestExtractNoCallsKeepsContentUntouched(t *testing.T) {
	m := NewMatcher(nil)
	content := "  All done.\n\nNothing left to change.  "
	resp := &llm.Response{Content: content}

	ex := Extract(resp, m)
	if len(ex.Calls) != 0 {
		t.Fatalf("expected no calls, got %d", len(ex.Calls))
	}
	// Not even whitespace is trimmed when nothing was mined.
	if ex.Reasoning != content {
		t.Errorf("expected content untouched, got %q", ex.Reasoning)
	}
}

func TestExtractRoundTrip(t *testing.T) {
	// A mined call re-encoded by EncodeCall is rediscovered identically.
	m := NewMatcher(nil)
	resp := &llm.Response{
		Content: `{"name": "write_file", "arguments": {"path": "a.txt", "content": "hi"}}`,
	}

	first := Extract(resp, m)
	if len(first.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(first.Calls))
	}

	reEncoded := llm.EncodeCall(first.Calls[0].Name, first.Calls[0].Arguments)
	second := Extract(&llm.Response{Content: reEncoded}, m)
	if len(second.Calls) != 1 {
		t.Fatalf("expected 1 call on second pass, got %d", len(second.Calls))
	}
	if second.Calls[0].Name != first.Calls[0].Name ||
		!second.Calls[0].Arguments.Equal(first.Calls[0].Arguments) {
		t.Errorf("round trip changed the call: %s vs %s",
			llm.EncodeCall(second.Calls[0].Name, second.Calls[0].Arguments), reEncoded)
	}
	if second.Reasoning != "" {
		t.Errorf("expected clean reasoning, got %q", second.Reasoning)
	}
}
