// Package toolexec executes tool calls against a workspace: file
// operations, git commands, and guarded shell access. Every failure mode
// is folded into the result text so the agent loop can show it to the
// model and keep going.
package toolexec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/martinemde/ralph/llm"
)

// Executor dispatches named calls to registered handlers. It never returns
// a non-nil error: unknown tools, handler failures, and handler panics all
// come back as descriptive result text, because the model reacts to error
// text far better than the loop reacts to a crash.
type Executor struct {
	registry *Registry
	logger   *slog.Logger
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{registry: registry, logger: logger}
}

// Invoke runs the named tool. The returned error is always nil.
func (e *Executor) Invoke(ctx context.Context, name string, arguments llm.Value) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tool handler panicked", "tool", name, "panic", r)
			result = fmt.Sprintf("Error executing %s: %v", name, r)
			err = nil
		}
	}()

	tool := e.registry.Get(name)
	if tool == nil {
		e.logger.Warn("unknown tool requested", "tool", name)
		return fmt.Sprintf("Error: Unknown tool '%s'", name), nil
	}

	out, herr := tool.Handler(ctx, arguments)
	if herr != nil {
		e.logger.Warn("tool failed", "tool", name, "error", herr)
		return fmt.Sprintf("Error executing %s: %v", name, herr), nil
	}
	return out, nil
}
