package toolexec

import (
	"context"
	"sync"

	"github.com/martinemde/ralph/llm"
)

// Handler executes one tool call and returns its text result. Expected
// failures (missing files, dirty exits, blocked commands) are reported in
// the result text with a nil error; a non-nil error means the handler
// could not run at all and is rewritten by the executor into an error
// text.
type Handler func(ctx context.Context, args llm.Value) (string, error)

// RegisteredTool pairs a tool definition with its handler.
type RegisteredTool struct {
	Definition llm.ToolDefinition
	Handler    Handler
}

// Registry holds tools in registration order. Order matters: definitions
// are handed to the completion provider verbatim on every request.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*RegisteredTool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*RegisteredTool)}
}

// Register adds or replaces a tool. A replaced tool keeps its original
// position in the definition order.
func (r *Registry) Register(tool RegisteredTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := tool.Definition.Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = &tool
}

// Get returns the named tool, or nil.
func (r *Registry) Get(name string) *RegisteredTool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Names returns all tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
