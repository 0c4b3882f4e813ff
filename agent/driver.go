package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/martinemde/ralph/llm"
	"github.com/martinemde/ralph/toolparse"
)

// CompletionClient is the provider surface the driver depends on.
type CompletionClient interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// ToolInvoker executes one named tool call and returns its text result.
// Implementations must fold expected failures (unknown tools, bad
// arguments, dirty exits) into the result text and return a nil error; a
// non-nil error is an invocation boundary failure and aborts the run.
type ToolInvoker interface {
	Invoke(ctx context.Context, name string, arguments llm.Value) (string, error)
}

// RunStatus describes how a run ended.
type RunStatus string

const (
	// StatusCompleted means the model stopped requesting tool calls.
	StatusCompleted RunStatus = "completed"
	// StatusStepLimit means the step budget ran out first.
	StatusStepLimit RunStatus = "step_limit"
	// StatusFailed means a completion or invocation boundary failure.
	StatusFailed RunStatus = "failed"
)

// RunResult is the outcome of one driver run.
type RunResult struct {
	Status RunStatus
	Output string // final reasoning text on normal completion
	Steps  int    // tool turns consumed
}

// DriverConfig configures a Driver. Zero values fall back to defaults.
type DriverConfig struct {
	Model          string
	Provider       string
	MaxSteps       int          // tool turns before a forced stop; default 50
	DedupWindow    int          // recent calls consulted for suppression; default 3
	HistoryCap     int          // executed-call records retained; default 10
	ProgressWindow int          // trailing messages scanned for progress; default 3
	KnownTools     []string     // names the call-syntax scan accepts; nil = toolparse defaults
	Logger         *slog.Logger // nil = slog.Default()
}

// DefaultDriverConfig returns the standard configuration.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		MaxSteps:       50,
		DedupWindow:    3,
		HistoryCap:     defaultHistoryCap,
		ProgressWindow: 3,
	}
}

// Driver orchestrates the turn loop: request a completion over the full
// history, extract tool calls from the response, suppress immediate
// repeats, execute the survivors in order, append the results, and go
// around again until the model stops requesting calls or the step budget
// runs out.
type Driver struct {
	id      string
	client  CompletionClient
	invoker ToolInvoker
	tools   []llm.ToolDefinition
	matcher *toolparse.Matcher
	config  DriverConfig
	emitter *EventEmitter
	logger  *slog.Logger
	history []llm.Message
	calls   *CallHistory
	steps   int
}

// NewDriver creates a driver. The tool definitions are handed to the
// provider verbatim on every request.
func NewDriver(client CompletionClient, invoker ToolInvoker, tools []llm.ToolDefinition, config *DriverConfig) *Driver {
	cfg := DefaultDriverConfig()
	if config != nil {
		cfg = *config
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 50
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = 3
	}
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = defaultHistoryCap
	}
	if cfg.ProgressWindow <= 0 {
		cfg.ProgressWindow = 3
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runID := uuid.New().String()
	return &Driver{
		id:      runID,
		client:  client,
		invoker: invoker,
		tools:   tools,
		matcher: toolparse.NewMatcher(cfg.KnownTools),
		config:  cfg,
		emitter: NewEventEmitter(runID, 256),
		logger:  logger,
		calls:   NewCallHistory(cfg.HistoryCap),
	}
}

// ID returns the run identifier.
func (d *Driver) ID() string {
	return d.id
}

// Events returns the run event stream. The channel is closed when Run
// returns.
func (d *Driver) Events() <-chan Event {
	return d.emitter.Events()
}

// Steps returns the number of tool turns consumed so far.
func (d *Driver) Steps() int {
	return d.steps
}

// History returns a copy of the conversation history.
func (d *Driver) History() []llm.Message {
	h := make([]llm.Message, len(d.history))
	copy(h, d.history)
	return h
}

// Run drives the loop to completion from the given system prompt and
// opening user input. Step exhaustion is not an error: the result carries
// StatusStepLimit and err is nil. A completion failure or an invocation
// boundary failure ends the run with StatusFailed and a non-nil error.
//
// Run is single-shot: a Driver tracks one run's history and call records.
func (d *Driver) Run(ctx context.Context, systemPrompt, userInput string) (*RunResult, error) {
	defer d.emitter.Close()

	d.history = []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(userInput),
	}
	d.emitter.Emit(EventRunStart, map[string]interface{}{
		"model":     d.config.Model,
		"max_steps": d.config.MaxSteps,
	})
	d.logger.Info("run started",
		"run_id", d.id, "model", d.config.Model, "max_steps", d.config.MaxSteps)

	for d.steps < d.config.MaxSteps {
		if err := ctx.Err(); err != nil {
			return d.fail(fmt.Errorf("run cancelled: %w", err))
		}
		d.emitter.Emit(EventStepStart, map[string]interface{}{"step": d.steps + 1})

		resp, err := d.client.Complete(ctx, llm.Request{
			Model:    d.config.Model,
			Provider: d.config.Provider,
			Messages: d.History(),
			Tools:    d.tools,
		})
		if err != nil {
			d.logger.Error("completion request failed",
				"run_id", d.id, "step", d.steps, "error", err)
			return d.fail(fmt.Errorf("completion request: %w", err))
		}

		extraction := toolparse.Extract(resp, d.matcher)

		if len(extraction.Calls) == 0 {
			// Terminal turn: the assistant text is the run output and is
			// not appended to history.
			if !toolparse.HasProgressMarkers(d.history, d.config.ProgressWindow) {
				d.logger.Warn("run ended without recent progress markers",
					"run_id", d.id, "steps", d.steps)
				d.emitter.Emit(EventNoProgress, map[string]interface{}{
					"message": "no progress markers found in recent tool results",
				})
			}
			d.emitter.Emit(EventRunEnd, map[string]interface{}{
				"status": string(StatusCompleted),
				"steps":  d.steps,
			})
			return &RunResult{Status: StatusCompleted, Output: extraction.Reasoning, Steps: d.steps}, nil
		}

		surviving := toolparse.Dedup(extraction.Calls, d.calls.Recent(d.config.DedupWindow))
		d.emitSuppressed(extraction.Calls, surviving)

		// One assistant message per call turn, suppressed calls included in
		// its records so the transcript shows what the model asked for.
		d.history = append(d.history, assistantTurn(extraction))
		if extraction.Reasoning != "" {
			d.emitter.Emit(EventAssistantText, map[string]interface{}{
				"text": extraction.Reasoning,
			})
		}
		d.emitter.Emit(EventCallsExtracted, map[string]interface{}{
			"step":  d.steps + 1,
			"count": len(surviving),
			"names": callNames(surviving),
		})

		for _, call := range surviving {
			d.emitter.Emit(EventToolCallStart, map[string]interface{}{
				"call_id":   call.ID,
				"tool_name": call.Name,
				"arguments": call.Arguments.String(),
			})
			result, err := d.invoker.Invoke(ctx, call.Name, call.Arguments)
			if err != nil {
				d.logger.Error("tool invocation boundary failed",
					"run_id", d.id, "tool", call.Name, "call_id", call.ID, "error", err)
				return d.fail(fmt.Errorf("invoking %s: %w", call.Name, err))
			}
			d.history = append(d.history, llm.ToolResultMessage(call.ID, result))
			d.calls.Push(call.Name, call.Arguments)
			d.emitter.Emit(EventToolCallEnd, map[string]interface{}{
				"call_id":   call.ID,
				"tool_name": call.Name,
				"result":    preview(result),
			})
		}

		d.steps++
		d.logger.Debug("step complete",
			"run_id", d.id, "step", d.steps, "calls", len(surviving))
	}

	d.logger.Warn("reached maximum tool steps",
		"run_id", d.id, "max_steps", d.config.MaxSteps)
	d.emitter.Emit(EventStepLimit, map[string]interface{}{
		"max_steps": d.config.MaxSteps,
	})
	d.emitter.Emit(EventRunEnd, map[string]interface{}{
		"status": string(StatusStepLimit),
		"steps":  d.steps,
	})
	return &RunResult{Status: StatusStepLimit, Steps: d.steps}, nil
}

// assistantTurn builds the assistant message recorded for a call turn.
// Native call records ride along so transcript consumers can pair results
// with requests; synthesized calls are represented only by the ids on
// their tool results, since the provider never issued structured records
// for them.
func assistantTurn(ex toolparse.Extraction) llm.Message {
	if ex.Calls[0].Origin == llm.OriginNative {
		return llm.AssistantCallMessage(ex.Reasoning, ex.Calls)
	}
	return llm.AssistantMessage(ex.Reasoning)
}

func (d *Driver) emitSuppressed(extracted, surviving []llm.ToolCall) {
	if len(extracted) == len(surviving) {
		return
	}
	kept := make(map[string]bool, len(surviving))
	for _, call := range surviving {
		kept[call.ID] = true
	}
	for _, call := range extracted {
		if kept[call.ID] {
			continue
		}
		d.logger.Debug("suppressed duplicate tool call",
			"run_id", d.id, "tool", call.Name, "call_id", call.ID)
		d.emitter.Emit(EventCallSuppressed, map[string]interface{}{
			"call_id":   call.ID,
			"tool_name": call.Name,
		})
	}
}

func (d *Driver) fail(err error) (*RunResult, error) {
	d.emitter.Emit(EventError, map[string]interface{}{"error": err.Error()})
	d.emitter.Emit(EventRunEnd, map[string]interface{}{
		"status": string(StatusFailed),
		"steps":  d.steps,
	})
	return &RunResult{Status: StatusFailed, Steps: d.steps}, err
}

func callNames(calls []llm.ToolCall) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}
