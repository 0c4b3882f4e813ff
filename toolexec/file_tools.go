package toolexec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/martinemde/ralph/llm"
)

// objectSchema builds the JSON-schema parameters object for a tool.
func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

// RegisterFileTools registers the filesystem tools, rooted at ws.
func RegisterFileTools(reg *Registry, ws *Workspace) {
	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "read_file",
			Description: "Read the contents of a file at the specified path",
			Parameters: objectSchema([]string{"path"}, map[string]interface{}{
				"path": stringProp("The file path to read (relative to workspace root)"),
			}),
		},
		Handler: func(_ context.Context, args llm.Value) (string, error) {
			path, ok := args.StringField("path")
			if !ok || path == "" {
				return "", fmt.Errorf("path is required")
			}
			resolved := ws.resolve(path)
			info, err := os.Stat(resolved)
			if err != nil {
				return fmt.Sprintf("Error: File not found: %s", path), nil
			}
			if info.IsDir() {
				return fmt.Sprintf("Error: Not a file: %s", path), nil
			}
			data, err := os.ReadFile(resolved)
			if err != nil {
				return "", err
			}
			if !utf8.Valid(data) {
				return fmt.Sprintf("Error: Cannot read binary file: %s", path), nil
			}
			return string(data), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "write_file",
			Description: "Write content to a file (creates or overwrites)",
			Parameters: objectSchema([]string{"path", "content"}, map[string]interface{}{
				"path":    stringProp("The file path to write to (relative to workspace root)"),
				"content": stringProp("The content to write to the file"),
			}),
		},
		Handler: func(_ context.Context, args llm.Value) (string, error) {
			path, ok := args.StringField("path")
			if !ok || path == "" {
				return "", fmt.Errorf("path is required")
			}
			content, ok := args.StringField("content")
			if !ok {
				return "", fmt.Errorf("content is required")
			}
			resolved := ws.resolve(path)
			if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
				return fmt.Sprintf("Error writing file: %v", err), nil
			}
			if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
				return fmt.Sprintf("Error writing file: %v", err), nil
			}
			return fmt.Sprintf("Successfully wrote to %s", path), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "list_dir",
			Description: "List contents of a directory",
			Parameters: objectSchema([]string{"path"}, map[string]interface{}{
				"path": stringProp("The directory path to list (relative to workspace root, or '.' for current)"),
			}),
		},
		Handler: func(_ context.Context, args llm.Value) (string, error) {
			path, ok := args.StringField("path")
			if !ok || path == "" {
				return "", fmt.Errorf("path is required")
			}
			resolved := ws.resolve(path)
			info, err := os.Stat(resolved)
			if err != nil {
				return fmt.Sprintf("Error: Directory not found: %s", path), nil
			}
			if !info.IsDir() {
				return fmt.Sprintf("Error: Not a directory: %s", path), nil
			}
			entries, err := os.ReadDir(resolved)
			if err != nil {
				return "", err
			}
			if len(entries) == 0 {
				return "(empty directory)", nil
			}
			// ReadDir returns entries sorted by name.
			lines := make([]string, 0, len(entries))
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() {
					name += "/"
				}
				lines = append(lines, name)
			}
			return strings.Join(lines, "\n"), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "mkdir",
			Description: "Create a directory (including parent directories)",
			Parameters: objectSchema([]string{"path"}, map[string]interface{}{
				"path": stringProp("The directory path to create"),
			}),
		},
		Handler: func(_ context.Context, args llm.Value) (string, error) {
			path, ok := args.StringField("path")
			if !ok || path == "" {
				return "", fmt.Errorf("path is required")
			}
			if err := os.MkdirAll(ws.resolve(path), 0o755); err != nil {
				return fmt.Sprintf("Error creating directory: %v", err), nil
			}
			return fmt.Sprintf("Created directory: %s", path), nil
		},
	})

	reg.Register(RegisteredTool{
		Definition: llm.ToolDefinition{
			Name:        "remove",
			Description: "Remove a file or directory",
			Parameters: objectSchema([]string{"path"}, map[string]interface{}{
				"path": stringProp("The file or directory path to remove"),
			}),
		},
		Handler: func(_ context.Context, args llm.Value) (string, error) {
			path, ok := args.StringField("path")
			if !ok || path == "" {
				return "", fmt.Errorf("path is required")
			}
			resolved := ws.resolve(path)
			info, err := os.Stat(resolved)
			if err != nil {
				return fmt.Sprintf("Error: Path does not exist: %s", path), nil
			}
			if info.IsDir() {
				if err := os.RemoveAll(resolved); err != nil {
					return fmt.Sprintf("Error removing path: %v", err), nil
				}
				return fmt.Sprintf("Removed directory: %s", path), nil
			}
			if err := os.Remove(resolved); err != nil {
				return fmt.Sprintf("Error removing path: %v", err), nil
			}
			return fmt.Sprintf("Removed file: %s", path), nil
		},
	})
}
