package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/martinemde/ralph/agent"
	"github.com/martinemde/ralph/llm"
	"github.com/martinemde/ralph/toolexec"
)

// openingInput is the fixed user turn that starts a run; the actual
// instructions live in the system prompt.
const openingInput = "Begin. Follow the system instructions."

func workspaceRoot(cfg config) string {
	if cfg.Workspace != "" {
		return cfg.Workspace
	}
	wd, _ := os.Getwd()
	return wd
}

func promptPath(cfg config) string {
	if cfg.Prompt != "" {
		return cfg.Prompt
	}
	return filepath.Join(workspaceRoot(cfg), "prompt.md")
}

func loadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("prompt file not found at %s", path)
		}
		return "", fmt.Errorf("read prompt: %w", err)
	}
	return string(data), nil
}

func buildClient(cfg config) (*llm.Client, error) {
	opts := []llm.GollmOption{llm.WithModel(cfg.Model)}
	if cfg.Provider == "ollama" {
		opts = append(opts, llm.WithEndpoint(cfg.Host))
	}
	if cfg.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(cfg.APIKey))
	}
	provider, err := llm.NewGollmProvider(cfg.Provider, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure provider: %w", err)
	}
	return llm.NewClient(llm.WithProvider(cfg.Provider, provider)), nil
}

func runAgent(ctx context.Context, cfg config) error {
	systemPrompt, err := loadPrompt(promptPath(cfg))
	if err != nil {
		return err
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	if !llm.SupportsToolCalling(cfg.Model) {
		fmt.Fprintf(os.Stderr, "Warning: model %q is not known to support tool calling; calls will be mined from text\n", cfg.Model)
	}

	registry := toolexec.NewRegistry()
	toolexec.RegisterStandardTools(registry, toolexec.NewWorkspace(workspaceRoot(cfg)))
	executor := toolexec.NewExecutor(registry, slog.Default())

	driverCfg := agent.DefaultDriverConfig()
	driverCfg.Model = cfg.Model
	driverCfg.Provider = cfg.Provider
	driverCfg.MaxSteps = cfg.MaxSteps
	driver := agent.NewDriver(client, executor, registry.Definitions(), &driverCfg)

	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		for event := range driver.Events() {
			renderEvent(os.Stderr, event)
		}
	}()

	result, err := driver.Run(ctx, systemPrompt, openingInput)
	<-rendered
	if err != nil {
		return err
	}
	if result.Output != "" {
		fmt.Println(result.Output)
	}
	return nil
}
