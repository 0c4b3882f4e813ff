package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/martinemde/ralph/llm"
)

const healthTimeout = 5 * time.Second

// completionProbe runs a trivial completion against the real provider.
type completionProbe func(ctx context.Context) error

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// fetchInstalledModels asks the Ollama tags endpoint for the installed
// model names.
func fetchInstalledModels(ctx context.Context, client *http.Client, host string) ([]string, error) {
	url := strings.TrimRight(host, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	names := make([]string, len(tags.Models))
	for i, m := range tags.Models {
		names[i] = m.Name
	}
	return names, nil
}

// modelPresent reports whether model matches an installed model exactly or
// as a name prefix (llama3.1 matches llama3.1:latest).
func modelPresent(installed []string, model string) bool {
	for _, name := range installed {
		if name == model || strings.HasPrefix(name, model) {
			return true
		}
	}
	return false
}

// runHealthCheck verifies the model setup in three stages: the host is
// reachable, the configured model is installed, and a trivial completion
// round-trips. It stops at the first failure.
func runHealthCheck(ctx context.Context, out io.Writer, cfg config, probe completionProbe) error {
	httpClient := &http.Client{Timeout: healthTimeout}

	fmt.Fprintf(out, "Checking Ollama connectivity (%s)... ", cfg.Host)
	installed, err := fetchInstalledModels(ctx, httpClient, cfg.Host)
	if err != nil {
		fmt.Fprintln(out, "failed")
		fmt.Fprintf(out, "  %v\n", err)
		fmt.Fprintln(out, "  Ensure Ollama is running: ollama serve")
		return fmt.Errorf("ollama unreachable at %s", cfg.Host)
	}
	fmt.Fprintln(out, "ok")

	fmt.Fprintf(out, "Checking model %q... ", cfg.Model)
	if !modelPresent(installed, cfg.Model) {
		fmt.Fprintln(out, "not found")
		if len(installed) > 0 {
			fmt.Fprintln(out, "  Installed models:")
			for _, name := range installed {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
		fmt.Fprintf(out, "  Pull it with: ollama pull %s\n", cfg.Model)
		return fmt.Errorf("model %s not installed", cfg.Model)
	}
	fmt.Fprintln(out, "ok")
	if !llm.SupportsToolCalling(cfg.Model) {
		fmt.Fprintf(out, "  note: %s is not known to support native tool calling; calls will be mined from text\n", cfg.Model)
	}

	fmt.Fprint(out, "Testing chat completion... ")
	if err := probe(ctx); err != nil {
		fmt.Fprintln(out, "failed")
		fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("completion probe failed")
	}
	fmt.Fprintln(out, "ok")

	fmt.Fprintln(out, "All checks passed.")
	return nil
}

// healthCompletion builds the third-stage probe: a one-token completion
// through the same client the run mode uses.
func healthCompletion(cfg config) completionProbe {
	return func(ctx context.Context) error {
		client, err := buildClient(cfg)
		if err != nil {
			return err
		}
		maxTokens := 10
		resp, err := client.Complete(ctx, llm.Request{
			Model:     cfg.Model,
			Provider:  cfg.Provider,
			Messages:  []llm.Message{llm.UserMessage("Say 'test' and nothing else")},
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return err
		}
		if resp.Content == "" && len(resp.ToolCalls) == 0 {
			return fmt.Errorf("no response from model")
		}
		return nil
	}
}
