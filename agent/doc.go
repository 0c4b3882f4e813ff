// Package agent drives an autonomous, step-bounded tool loop against a
// completion provider.
//
// # Loop Shape
//
// Each turn the Driver sends the full conversation history plus the tool
// definitions, extracts tool calls from the response (native records first,
// text-mined otherwise), suppresses calls that deep-equal a recently
// executed one, runs the survivors sequentially through the ToolInvoker,
// and appends one tool result message per executed call. The loop ends when
// a turn requests no calls, when the step budget runs out, or when the
// provider or invocation boundary fails.
//
// A turn that requests no calls is the model's final answer: its text
// becomes RunResult.Output and is not appended to history. If the trailing
// tool results show no progress markers the driver flags the run as a
// likely stall before returning normally.
//
// # Quick Start
//
//	driver := agent.NewDriver(client, executor, registry.Definitions(), &agent.DriverConfig{
//	    Model:    "llama3.1",
//	    MaxSteps: 50,
//	})
//
//	go func() {
//	    for event := range driver.Events() {
//	        log.Println(event.Type, event.Data)
//	    }
//	}()
//
//	result, err := driver.Run(ctx, systemPrompt, "Begin. Follow the system instructions.")
//
// # Events
//
// The Driver emits lifecycle events on a buffered channel: run start/end,
// step starts, extracted and suppressed calls, tool call start/end with a
// truncated result preview, and stall or step-limit warnings. Emission
// never blocks the loop; a slow consumer loses events rather than stalling
// the run.
package agent
