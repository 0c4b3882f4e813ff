package toolexec

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/martinemde/ralph/llm"
)

// dangerousPatterns blocks the obviously destructive shell commands. This is
// a guardrail against model mistakes, not a sandbox.
var dangerousPatterns = []string{"rm -rf /", "dd if=", "mkfs", "> /dev/"}

// RegisterShellTools registers the shell command and search tools.
func RegisterShellTools(reg *Registry, ws *Workspace) {
	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "run_cmd",
			Description: "Run a shell command (use with caution)",
			Parameters: objectSchema([]string{"command"}, map[string]interface{}{
				"command": stringProp("The command to run"),
				"cwd":     stringProp("Working directory (relative to workspace root, default: '.')"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			command, ok := args.StringField("command")
			if !ok || command == "" {
				return "", fmt.Errorf("command is required")
			}
			lowered := strings.ToLower(command)
			for _, pattern := range dangerousPatterns {
				if strings.Contains(lowered, pattern) {
					return fmt.Sprintf("Error: Command blocked for safety: %s", pattern), nil
				}
			}

			cwd, ok := args.StringField("cwd")
			if !ok || cwd == "" {
				cwd = "."
			}
			workDir := ws.resolve(cwd)
			if _, err := os.Stat(workDir); err != nil {
				return fmt.Sprintf("Error: Directory not found: %s", cwd), nil
			}

			res, err := ws.run(ctx, shellTimeout, workDir, "", "sh", "-c", command)
			if err != nil {
				return "", err
			}
			if res.timedOut {
				return "Error: Command timed out after 60 seconds", nil
			}

			var output string
			if res.stdout != "" {
				output += res.stdout
			}
			if res.stderr != "" {
				output += fmt.Sprintf("\nSTDERR:\n%s", res.stderr)
			}
			if res.exitCode != 0 {
				output = fmt.Sprintf("Command exited with code %d\n%s", res.exitCode, output)
			}
			if output == "" {
				return fmt.Sprintf("Command completed (exit code: %d)", res.exitCode), nil
			}
			return output, nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "grep",
			Description: "Search for a pattern in files using grep",
			Parameters: objectSchema([]string{"pattern", "path"}, map[string]interface{}{
				"pattern": stringProp("The search pattern (supports regex)"),
				"path":    stringProp("The file or directory path to search in"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			pattern, ok := args.StringField("pattern")
			if !ok || pattern == "" {
				return "", fmt.Errorf("pattern is required")
			}
			path, ok := args.StringField("path")
			if !ok || path == "" {
				return "", fmt.Errorf("path is required")
			}
			searchPath := ws.resolve(path)
			if _, err := os.Stat(searchPath); err != nil {
				return fmt.Sprintf("Error: Path not found: %s", path), nil
			}

			res, err := ws.run(ctx, grepTimeout, "", "", "grep", "-r", "-n", pattern, searchPath)
			if err != nil {
				return "", err
			}
			if res.timedOut {
				return "Error: Search timed out", nil
			}
			switch res.exitCode {
			case 0:
				return res.stdout, nil
			case 1:
				return fmt.Sprintf("No matches found for pattern: %s", pattern), nil
			default:
				return fmt.Sprintf("Error: %s", res.stderr), nil
			}
		},
	})
}
