// Package llm provides a provider-agnostic completion client built on the
// gollm library (github.com/teilomillet/gollm), tuned for local Ollama-class
// backends that return tool calls with varying fidelity.
//
// # Architecture
//
// The package has three layers:
//
//   - Provider interface and shared types (Message, ToolCall, Value)
//   - Provider utilities: retry logic and error classification
//   - Client with provider routing and a retry policy around each call
//
// # Quick Start
//
//	provider, _ := llm.NewGollmProvider("ollama",
//	    llm.WithModel("llama3.1"),
//	    llm.WithEndpoint("http://localhost:11434"))
//	client := llm.NewClient(llm.WithProvider("ollama", provider))
//
//	resp, _ := client.Complete(ctx, llm.Request{
//	    Model:    "llama3.1",
//	    Messages: []llm.Message{llm.UserMessage("Hello")},
//	})
//	fmt.Println(resp.Content)
//
// # Tool Calls
//
// Response.ToolCalls carries only calls the backend returned as structured
// records; the provider recognizes the JSON shapes gollm surfaces them in
// and strips the payload from Content. Local models frequently narrate
// calls in plain prose instead, which is out of scope here: the toolparse
// package mines those from Content.
//
// Call arguments are held as Value, a JSON tree that preserves object
// member order and number source text. That makes a mined call's canonical
// re-encoding match the span it was found in, which the extractor relies on
// to cut call JSON out of reasoning text.
//
// # Model Catalog
//
// A built-in catalog of local model families records which ones emit
// structured tool calls:
//
//	if !llm.SupportsToolCalling("gemma2") {
//	    // expect calls in prose only
//	}
package llm
