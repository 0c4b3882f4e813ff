package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/teilomillet/gollm"
)

// GollmProvider adapts the gollm library to the Provider interface. One
// instance wraps one configured backend (ollama, openai, anthropic, ...).
type GollmProvider struct {
	name   string
	llm    gollm.LLM
	config gollmConfig
}

type gollmConfig struct {
	apiKey      string
	model       string
	endpoint    string
	maxTokens   int
	temperature float64
}

// GollmOption configures a GollmProvider.
type GollmOption func(*gollmConfig)

// WithAPIKey sets the provider API key. Local providers do not need one.
func WithAPIKey(key string) GollmOption {
	return func(c *gollmConfig) { c.apiKey = key }
}

// WithModel sets the default model.
func WithModel(model string) GollmOption {
	return func(c *gollmConfig) { c.model = model }
}

// WithEndpoint sets the endpoint URL for providers that serve locally,
// e.g. "http://localhost:11434" for Ollama.
func WithEndpoint(endpoint string) GollmOption {
	return func(c *gollmConfig) { c.endpoint = endpoint }
}

// WithMaxTokens sets the default completion token budget.
func WithMaxTokens(n int) GollmOption {
	return func(c *gollmConfig) { c.maxTokens = n }
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) GollmOption {
	return func(c *gollmConfig) { c.temperature = t }
}

// NewGollmProvider creates a provider backed by gollm.
func NewGollmProvider(provider string, opts ...GollmOption) (*GollmProvider, error) {
	cfg := gollmConfig{
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	gollmOpts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetMaxTokens(cfg.maxTokens),
		gollm.SetTemperature(cfg.temperature),
		// Retries are the client's job, not the transport's.
		gollm.SetMaxRetries(0),
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if cfg.model != "" {
		gollmOpts = append(gollmOpts, gollm.SetModel(cfg.model))
	}
	if cfg.apiKey != "" {
		gollmOpts = append(gollmOpts, gollm.SetAPIKey(cfg.apiKey))
	}
	if cfg.endpoint != "" {
		gollmOpts = append(gollmOpts, gollm.SetOllamaEndpoint(cfg.endpoint))
	}

	instance, err := gollm.NewLLM(gollmOpts...)
	if err != nil {
		return nil, &ConfigurationError{ClientError{
			Message: fmt.Sprintf("failed to initialize %s provider", provider),
			Cause:   err,
		}}
	}

	return &GollmProvider{name: provider, llm: instance, config: cfg}, nil
}

// Name returns the provider identifier.
func (p *GollmProvider) Name() string {
	return p.name
}

// Complete executes a completion request.
func (p *GollmProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	p.applyRequestOptions(req)
	prompt := p.translateRequest(req)

	text, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, p.translateError(err)
	}
	return p.buildResponse(req, text), nil
}

func (p *GollmProvider) applyRequestOptions(req Request) {
	if req.Model != "" && req.Model != p.config.model {
		p.llm.SetOption("model", req.Model)
	}
	if req.Temperature != nil {
		p.llm.SetOption("temperature", *req.Temperature)
	}
	if req.MaxTokens != nil {
		p.llm.SetOption("max_tokens", *req.MaxTokens)
	}
}

// translateRequest flattens the message history into a single prompt.
// gollm's Generate takes one prompt string, so prior assistant turns, tool
// calls, and tool results are rendered inline with role markers.
func (p *GollmProvider) translateRequest(req Request) *gollm.Prompt {
	var system strings.Builder
	var parts []string

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			if system.Len() > 0 {
				system.WriteString("\n")
			}
			system.WriteString(msg.Content)
		case RoleUser:
			parts = append(parts, msg.Content)
		case RoleAssistant:
			if msg.Content != "" {
				parts = append(parts, "[Assistant]: "+msg.Content)
			}
			for _, call := range msg.ToolCalls {
				parts = append(parts, "[Tool Call]: "+EncodeCall(call.Name, call.Arguments))
			}
		case RoleTool:
			parts = append(parts, "[Tool Result]: "+msg.Content)
		}
	}

	promptText := strings.Join(parts, "\n")
	if promptText == "" {
		promptText = "Hello"
	}

	var opts []gollm.PromptOption
	if system.Len() > 0 {
		opts = append(opts, gollm.WithSystemPrompt(system.String(), gollm.CacheTypeEphemeral))
	}
	if req.MaxTokens != nil {
		opts = append(opts, gollm.WithMaxLength(*req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		tools := make([]gollm.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			tools = append(tools, gollm.Tool{
				Type: "function",
				Function: gollm.Function{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				},
			})
		}
		opts = append(opts, gollm.WithTools(tools))
	}

	return gollm.NewPrompt(promptText, opts...)
}

func (p *GollmProvider) buildResponse(req Request, text string) *Response {
	model := req.Model
	if model == "" {
		model = p.config.model
	}

	calls := p.parseNativeCalls(text)
	content := text
	if len(calls) > 0 {
		content = stripCallPayload(text)
	}

	return &Response{
		ID:        "resp_" + uuid.New().String()[:8],
		Model:     model,
		Provider:  p.name,
		Content:   content,
		ToolCalls: calls,
	}
}

type rawToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// nativeCallMarkers are the shapes gollm-wrapped backends return structured
// tool calls in: an object with a "tool_calls" array, or a bare array of
// {"name", "arguments"} objects.
var nativeCallMarkers = []string{`{"tool_calls"`, `[{"name"`}

// parseNativeCalls extracts structured tool call records from a response
// body. The payload may be preceded by prose; decoding starts at the marker
// and ignores anything after the closing delimiter.
func (p *GollmProvider) parseNativeCalls(text string) []ToolCall {
	if idx := strings.Index(text, nativeCallMarkers[0]); idx >= 0 {
		var wrapper struct {
			ToolCalls []rawToolCall `json:"tool_calls"`
		}
		dec := json.NewDecoder(strings.NewReader(text[idx:]))
		if err := dec.Decode(&wrapper); err == nil {
			return buildNativeCalls(wrapper.ToolCalls)
		}
	}
	if idx := strings.Index(text, nativeCallMarkers[1]); idx >= 0 {
		var raw []rawToolCall
		dec := json.NewDecoder(strings.NewReader(text[idx:]))
		if err := dec.Decode(&raw); err == nil {
			return buildNativeCalls(raw)
		}
	}
	return nil
}

func buildNativeCalls(raw []rawToolCall) []ToolCall {
	var calls []ToolCall
	for _, rc := range raw {
		if rc.Name == "" {
			continue
		}
		calls = append(calls, ToolCall{
			ID:        "call_" + uuid.New().String()[:8],
			Name:      rc.Name,
			Arguments: decodeArguments(rc.Arguments),
			Origin:    OriginNative,
		})
	}
	return calls
}

// decodeArguments normalizes a raw arguments payload. Some backends
// double-encode arguments as a JSON string containing JSON; unwrap that
// before giving up.
func decodeArguments(raw json.RawMessage) Value {
	if len(raw) == 0 {
		return ObjectValue()
	}
	v, err := ParseValue(raw)
	if err != nil {
		return ObjectValue()
	}
	if s, ok := v.Str(); ok {
		if inner, err := ParseValue([]byte(s)); err == nil {
			return inner
		}
	}
	return v
}

// stripCallPayload removes the structured call payload from response text,
// keeping any prose before it.
func stripCallPayload(text string) string {
	result := text
	for _, marker := range nativeCallMarkers {
		if idx := strings.Index(result, marker); idx >= 0 {
			result = strings.TrimSpace(result[:idx])
		}
	}
	return result
}

// translateError classifies a gollm error by message content. gollm wraps
// transport errors as opaque strings, so this is the best available signal.
func (p *GollmProvider) translateError(err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") || strings.Contains(lower, "authentication"):
		return &AuthenticationError{ProviderError{
			ClientError: ClientError{Message: msg, Cause: err},
			Provider:    p.name,
			StatusCode:  401,
		}}
	case strings.Contains(lower, "404") || strings.Contains(lower, "not found"):
		return &NotFoundError{ProviderError{
			ClientError: ClientError{Message: msg, Cause: err},
			Provider:    p.name,
			StatusCode:  404,
		}}
	case strings.Contains(lower, "429") || strings.Contains(lower, "rate limit"):
		return &RateLimitError{ProviderError{
			ClientError: ClientError{Message: msg, Cause: err},
			Provider:    p.name,
			StatusCode:  429,
			Retryable:   true,
		}}
	case strings.Contains(lower, "400") || strings.Contains(lower, "invalid request") ||
		strings.Contains(lower, "bad request"):
		return &InvalidRequestError{ProviderError{
			ClientError: ClientError{Message: msg, Cause: err},
			Provider:    p.name,
			StatusCode:  400,
		}}
	case strings.Contains(lower, "context deadline exceeded") || strings.Contains(lower, "timeout"):
		return &RequestTimeoutError{ClientError{Message: msg, Cause: err}}
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "connection reset"):
		return &ConnectionError{ClientError{Message: msg, Cause: err}}
	case strings.Contains(lower, "500") || strings.Contains(lower, "internal server"):
		return &ServerError{ProviderError{
			ClientError: ClientError{Message: msg, Cause: err},
			Provider:    p.name,
			StatusCode:  500,
			Retryable:   true,
		}}
	default:
		return &ProviderError{
			ClientError: ClientError{Message: msg, Cause: err},
			Provider:    p.name,
			Retryable:   true,
		}
	}
}
