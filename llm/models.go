package llm

import "strings"

// ModelInfo describes a known local model family.
type ModelInfo struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	ContextWindow int    `json:"context_window"`
	SupportsTools bool   `json:"supports_tools"`
}

// Models is the built-in catalog of model families commonly served by
// Ollama. Longer family names come before their prefixes so that lookup
// resolves "qwen2.5-coder" ahead of "qwen2.5".
var Models = []ModelInfo{
	{ID: "llama3.3", DisplayName: "Llama 3.3", ContextWindow: 131072, SupportsTools: true},
	{ID: "llama3.2", DisplayName: "Llama 3.2", ContextWindow: 131072, SupportsTools: true},
	{ID: "llama3.1", DisplayName: "Llama 3.1", ContextWindow: 131072, SupportsTools: true},
	{ID: "llama3", DisplayName: "Llama 3", ContextWindow: 8192, SupportsTools: false},
	{ID: "qwen2.5-coder", DisplayName: "Qwen 2.5 Coder", ContextWindow: 131072, SupportsTools: true},
	{ID: "qwen2.5", DisplayName: "Qwen 2.5", ContextWindow: 131072, SupportsTools: true},
	{ID: "mistral-nemo", DisplayName: "Mistral Nemo", ContextWindow: 131072, SupportsTools: true},
	{ID: "mistral", DisplayName: "Mistral", ContextWindow: 32768, SupportsTools: true},
	{ID: "firefunction-v2", DisplayName: "FireFunction v2", ContextWindow: 32768, SupportsTools: true},
	{ID: "command-r", DisplayName: "Command R", ContextWindow: 131072, SupportsTools: true},
	{ID: "hermes3", DisplayName: "Hermes 3", ContextWindow: 131072, SupportsTools: true},
	{ID: "gemma2", DisplayName: "Gemma 2", ContextWindow: 8192, SupportsTools: false},
	{ID: "phi3", DisplayName: "Phi-3", ContextWindow: 131072, SupportsTools: false},
	{ID: "deepseek-r1", DisplayName: "DeepSeek R1", ContextWindow: 131072, SupportsTools: false},
	{ID: "llava", DisplayName: "LLaVA", ContextWindow: 4096, SupportsTools: false},
}

// GetModelInfo resolves a model name to its catalog entry. The Ollama tag
// suffix is ignored, so "llama3.1:8b-instruct-q4_K_M" resolves to the
// llama3.1 entry. Returns nil for unknown models.
func GetModelInfo(model string) *ModelInfo {
	name := model
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	for i := range Models {
		if Models[i].ID == name {
			return &Models[i]
		}
	}
	for i := range Models {
		if strings.HasPrefix(name, Models[i].ID) {
			return &Models[i]
		}
	}
	return nil
}

// SupportsToolCalling reports whether the model family is known to emit
// structured tool calls. Unknown models report false; the text matcher
// still recovers calls from their plain output.
func SupportsToolCalling(model string) bool {
	info := GetModelInfo(model)
	return info != nil && info.SupportsTools
}
