package llm

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// CallOrigin records where a tool call was recovered from.
type CallOrigin string

const (
	// OriginNative marks calls the provider returned as structured records.
	OriginNative CallOrigin = "native"
	// OriginSynthesized marks calls mined out of free text.
	OriginSynthesized CallOrigin = "synthesized"
)

// ToolCall is one requested tool invocation. Arguments is always a JSON
// object; ID correlates the call with its eventual tool result message.
type ToolCall struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Arguments Value      `json:"arguments"`
	Origin    CallOrigin `json:"origin,omitempty"`
}

// Message is one turn of a conversation.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// SystemMessage creates a system message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage creates an assistant message with text only.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// AssistantCallMessage creates an assistant message carrying tool call
// records alongside any reasoning text.
func AssistantCallMessage(text string, calls []ToolCall) Message {
	return Message{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// ToolResultMessage creates a tool result message answering the call with
// the given ID.
func ToolResultMessage(toolCallID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// ToolDefinition describes one tool to the model.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Request is a completion request.
type Request struct {
	Model       string           `json:"model"`
	Provider    string           `json:"provider,omitempty"`
	Messages    []Message        `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
	MaxTokens   *int             `json:"max_tokens,omitempty"`
}

// Response is a completion response. ToolCalls holds calls the provider
// returned as structured records; calls hidden in Content are recovered
// downstream by the text matcher.
type Response struct {
	ID        string     `json:"id"`
	Model     string     `json:"model"`
	Provider  string     `json:"provider"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
