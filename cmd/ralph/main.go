package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// config carries the runner settings. Environment variables provide the
// defaults; flags override.
type config struct {
	Model     string `env:"RALPH_MODEL" envDefault:"llama3.1"`
	Host      string `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`
	Provider  string `env:"RALPH_PROVIDER" envDefault:"ollama"`
	APIKey    string `env:"RALPH_API_KEY"`
	MaxSteps  int    `env:"RALPH_MAX_TOOL_STEPS" envDefault:"50"`
	Workspace string `env:"RALPH_WORKSPACE"`
	Prompt    string `env:"RALPH_PROMPT"`
	LogLevel  string `env:"RALPH_LOG_LEVEL" envDefault:"warn"`
	Health    bool
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func bindFlags(cmd *cobra.Command, cfg *config) {
	flags := cmd.Flags()
	flags.StringVar(&cfg.Model, "model", cfg.Model, "model to use")
	flags.StringVar(&cfg.Host, "host", cfg.Host, "Ollama host URL")
	flags.StringVar(&cfg.Provider, "provider", cfg.Provider, "completion provider")
	flags.IntVar(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "maximum tool steps per run")
	flags.StringVar(&cfg.Workspace, "workspace", cfg.Workspace, "workspace root for tool operations (default: current directory)")
	flags.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "system prompt file (default: prompt.md in the workspace)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.Health, "health", false, "verify the model setup and exit")
}

func newRootCommand() *cobra.Command {
	cfg, cfgErr := loadConfig()

	cmd := &cobra.Command{
		Use:   "ralph",
		Short: "Run a tool-using agent loop against a local model",
		Long: `ralph drives a language model through a tool-using agent loop: each
turn the model may request file, git, or shell operations; ralph executes
them and feeds the results back until the model finishes or the step
budget runs out.

The system prompt is read from prompt.md in the workspace (override with
--prompt). Flags fall back to RALPH_* / OLLAMA_HOST environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			setupLogging(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Health {
				return runHealthCheck(ctx, os.Stdout, cfg, healthCompletion(cfg))
			}
			return runAgent(ctx, cfg)
		},
	}
	bindFlags(cmd, &cfg)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
