package main

import (
	"fmt"
	"io"

	"github.com/martinemde/ralph/agent"
)

// renderEvent writes the console progress line for one run event.
// Intermediate assistant text stays off the console; the final reasoning
// is the run output and is printed by the caller.
func renderEvent(w io.Writer, event agent.Event) {
	switch event.Type {
	case agent.EventCallsExtracted:
		fmt.Fprintf(w, "\n[Step %v] Executing %v tool call(s)...\n", event.Data["step"], event.Data["count"])
	case agent.EventCallSuppressed:
		fmt.Fprintf(w, "  ⊘ %v (duplicate suppressed)\n", event.Data["tool_name"])
	case agent.EventToolCallStart:
		fmt.Fprintf(w, "  → %v(%v)\n", event.Data["tool_name"], event.Data["arguments"])
	case agent.EventToolCallEnd:
		fmt.Fprintf(w, "     Result: %v\n", event.Data["result"])
	case agent.EventNoProgress:
		fmt.Fprintf(w, "\n⚠ Warning: %v\n", event.Data["message"])
	case agent.EventStepLimit:
		fmt.Fprintf(w, "\n⚠ Warning: Reached maximum tool steps (%v)\n", event.Data["max_steps"])
	case agent.EventError:
		fmt.Fprintf(w, "\nError during execution: %v\n", event.Data["error"])
	}
}
