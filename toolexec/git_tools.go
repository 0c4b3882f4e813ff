package toolexec

import (
	"context"
	"fmt"
	"strings"

	"github.com/martinemde/ralph/llm"
)

// RegisterGitTools registers the version-control tools, operating on the
// repository at the workspace root.
func RegisterGitTools(reg *Registry, ws *Workspace) {
	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "git_status",
			Description: "Get the current git status",
			Parameters:  objectSchema(nil, map[string]interface{}{}),
		},
		Handler: func(ctx context.Context, _ llm.Value) (string, error) {
			res, err := ws.git(ctx, "status", "--porcelain")
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error: %s", res.stderr), nil
			}
			if strings.TrimSpace(res.stdout) == "" {
				return "Working tree clean", nil
			}
			return res.stdout, nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "git_diff",
			Description: "Get the git diff of current changes",
			Parameters: objectSchema(nil, map[string]interface{}{
				"cached": boolProp("Show staged changes (--cached)"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			cached, _ := args.BoolField("cached")
			gitArgs := []string{"diff"}
			if cached {
				gitArgs = append(gitArgs, "--cached")
			}
			res, err := ws.git(ctx, gitArgs...)
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error: %s", res.stderr), nil
			}
			if strings.TrimSpace(res.stdout) == "" {
				if cached {
					return "No staged changes", nil
				}
				return "No changes", nil
			}
			return res.stdout, nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "git_commit_all",
			Description: "Stage all changes and commit with a message",
			Parameters: objectSchema([]string{"message"}, map[string]interface{}{
				"message": stringProp("The commit message"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			message, ok := args.StringField("message")
			if !ok || message == "" {
				return "", fmt.Errorf("message is required")
			}
			res, err := ws.git(ctx, "add", "-A")
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error staging changes: %s", res.stderr), nil
			}
			res, err = ws.git(ctx, "commit", "-m", message)
			if err != nil {
				return "", err
			}
			if res.exitCode == 0 {
				return fmt.Sprintf("Committed: %s", message), nil
			}
			if strings.Contains(strings.ToLower(res.stdout), "nothing to commit") {
				return "No changes to commit", nil
			}
			return fmt.Sprintf("Error committing: %s", res.stderr), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "git_current_branch",
			Description: "Get the current git branch name",
			Parameters:  objectSchema(nil, map[string]interface{}{}),
		},
		Handler: func(ctx context.Context, _ llm.Value) (string, error) {
			res, err := ws.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error getting current branch: %s", res.stderr), nil
			}
			return strings.TrimSpace(res.stdout), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "git_checkout",
			Description: "Checkout a git branch",
			Parameters: objectSchema([]string{"branch"}, map[string]interface{}{
				"branch": stringProp("The branch name to checkout"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			branch, ok := args.StringField("branch")
			if !ok || branch == "" {
				return "", fmt.Errorf("branch is required")
			}
			res, err := ws.git(ctx, "checkout", branch)
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error checking out branch: %s", res.stderr), nil
			}
			return fmt.Sprintf("Checked out branch: %s", branch), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "git_create_branch",
			Description: "Create and checkout a new git branch",
			Parameters: objectSchema([]string{"branch"}, map[string]interface{}{
				"branch":   stringProp("The new branch name"),
				"from_ref": stringProp("The ref to branch from (default: main)"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			branch, ok := args.StringField("branch")
			if !ok || branch == "" {
				return "", fmt.Errorf("branch is required")
			}
			fromRef, ok := args.StringField("from_ref")
			if !ok || fromRef == "" {
				fromRef = "main"
			}
			res, err := ws.git(ctx, "checkout", fromRef)
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error checking out %s: %s", fromRef, res.stderr), nil
			}
			res, err = ws.git(ctx, "checkout", "-b", branch)
			if err != nil {
				return "", err
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error creating branch: %s", res.stderr), nil
			}
			return fmt.Sprintf("Created and checked out new branch: %s (from %s)", branch, fromRef), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "apply_patch",
			Description: "Apply a unified diff patch using git apply",
			Parameters: objectSchema([]string{"patch"}, map[string]interface{}{
				"patch": stringProp("The unified diff patch to apply"),
			}),
		},
		Handler: func(ctx context.Context, args llm.Value) (string, error) {
			patch, ok := args.StringField("patch")
			if !ok || patch == "" {
				return "", fmt.Errorf("patch is required")
			}
			res, err := ws.run(ctx, gitTimeout, "", patch, "git", "apply")
			if err != nil {
				return "", err
			}
			if res.timedOut {
				return "Error: Patch application timed out", nil
			}
			if res.exitCode != 0 {
				return fmt.Sprintf("Error applying patch: %s", res.stderr), nil
			}
			return "Patch applied successfully", nil
		},
	})
}
