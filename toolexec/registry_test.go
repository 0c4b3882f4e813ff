package toolexec

import (
	"context"
	"testing"

	"github.com/martinemde/ralph/llm"
)

func stubTool(name, result string) RegisteredTool {
	return RegisteredTool{
		Definition: llm.ToolDefinition{Name: name},
		Handler: func(context.Context, llm.Value) (string, error) {
			return result, nil
		},
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubTool("alpha", ""))
	reg.Register(stubTool("beta", ""))
	reg.Register(stubTool("gamma", ""))

	expected := []string{"alpha", "beta", "gamma"}
	names := reg.Names()
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("names[%d]: expected %q, got %q", i, name, names[i])
		}
	}

	defs := reg.Definitions()
	if len(defs) != len(expected) {
		t.Fatalf("expected %d definitions, got %d", len(expected), len(defs))
	}
	for i, name := range expected {
		if defs[i].Name != name {
			t.Errorf("definitions[%d]: expected %q, got %q", i, name, defs[i].Name)
		}
	}
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubTool("alpha", "old"))
	reg.Register(stubTool("beta", ""))
	reg.Register(stubTool("alpha", "new"))

	if reg.Count() != 2 {
		t.Fatalf("expected 2 tools, got %d", reg.Count())
	}
	names := reg.Names()
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected [alpha beta], got %v", names)
	}

	out, err := reg.Get("alpha").Handler(context.Background(), llm.Null())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "new" {
		t.Errorf("expected replaced handler, got %q", out)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry()
	if tool := reg.Get("missing"); tool != nil {
		t.Errorf("expected nil for unknown tool, got %q", tool.Definition.Name)
	}
}
