package toolexec

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/martinemde/ralph/llm"
)

// newGitExecutor builds an executor over a fresh git repository with a
// deterministic default branch. Skips when git is not installed.
func newGitExecutor(t *testing.T) (*Executor, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	root := t.TempDir()
	gitRun := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	gitRun("init", "-q")
	gitRun("symbolic-ref", "HEAD", "refs/heads/main")
	gitRun("config", "user.email", "dev@example.com")
	gitRun("config", "user.name", "dev")

	reg := NewRegistry()
	RegisterStandardTools(reg, NewWorkspace(root))
	return NewExecutor(reg, discardLogger()), root
}

func TestGitStatus(t *testing.T) {
	executor, root := newGitExecutor(t)

	out := invokeTool(t, executor, "git_status", `{}`)
	if out != "Working tree clean" {
		t.Errorf("expected %q, got %q", "Working tree clean", out)
	}

	if err := os.WriteFile(filepath.Join(root, "new.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out = invokeTool(t, executor, "git_status", `{}`)
	if !strings.Contains(out, "?? new.txt") {
		t.Errorf("expected untracked file in status, got %q", out)
	}
}

func TestGitCommitAll(t *testing.T) {
	executor, root := newGitExecutor(t)

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := invokeTool(t, executor, "git_commit_all", `{"message":"add a"}`)
	if out != "Committed: add a" {
		t.Errorf("expected %q, got %q", "Committed: add a", out)
	}

	out = invokeTool(t, executor, "git_commit_all", `{"message":"nothing here"}`)
	if out != "No changes to commit" {
		t.Errorf("expected %q, got %q", "No changes to commit", out)
	}
}

func TestGitCurrentBranch(t *testing.T) {
	executor, root := newGitExecutor(t)

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	invokeTool(t, executor, "git_commit_all", `{"message":"init"}`)

	out := invokeTool(t, executor, "git_current_branch", `{}`)
	if out != "main" {
		t.Errorf("expected %q, got %q", "main", out)
	}
}

func TestGitBranching(t *testing.T) {
	executor, root := newGitExecutor(t)

	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	invokeTool(t, executor, "git_commit_all", `{"message":"init"}`)

	out := invokeTool(t, executor, "git_create_branch", `{"branch":"feature"}`)
	expected := "Created and checked out new branch: feature (from main)"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
	if got := invokeTool(t, executor, "git_current_branch", `{}`); got != "feature" {
		t.Errorf("expected to be on feature, got %q", got)
	}

	out = invokeTool(t, executor, "git_checkout", `{"branch":"main"}`)
	if out != "Checked out branch: main" {
		t.Errorf("expected %q, got %q", "Checked out branch: main", out)
	}

	out = invokeTool(t, executor, "git_checkout", `{"branch":"ghost"}`)
	if !strings.HasPrefix(out, "Error checking out branch:") {
		t.Errorf("expected checkout error, got %q", out)
	}

	out = invokeTool(t, executor, "git_create_branch", `{"branch":"x","from_ref":"ghost"}`)
	if !strings.HasPrefix(out, "Error checking out ghost:") {
		t.Errorf("expected from_ref error, got %q", out)
	}
}

func TestGitDiff(t *testing.T) {
	executor, root := newGitExecutor(t)

	path := filepath.Join(root, "a.txt")
	if err := os.WriteFile(path, []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	invokeTool(t, executor, "git_commit_all", `{"message":"init"}`)

	if got := invokeTool(t, executor, "git_diff", `{}`); got != "No changes" {
		t.Errorf("expected %q, got %q", "No changes", got)
	}
	if got := invokeTool(t, executor, "git_diff", `{"cached":true}`); got != "No staged changes" {
		t.Errorf("expected %q, got %q", "No staged changes", got)
	}

	if err := os.WriteFile(path, []byte("two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := invokeTool(t, executor, "git_diff", `{}`)
	if !strings.Contains(out, "-one") || !strings.Contains(out, "+two") {
		t.Errorf("expected working diff, got %q", out)
	}
}

func TestApplyPatch(t *testing.T) {
	executor, root := newGitExecutor(t)

	if err := os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	invokeTool(t, executor, "git_commit_all", `{"message":"init"}`)

	patch := "--- a/hello.txt\n+++ b/hello.txt\n@@ -1 +1 @@\n-hello\n+goodbye\n"
	args := llm.ObjectValue(llm.Member{Key: "patch", Value: llm.StringValue(patch)})
	out, err := executor.Invoke(context.Background(), "apply_patch", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Patch applied successfully" {
		t.Errorf("expected %q, got %q", "Patch applied successfully", out)
	}
	data, _ := os.ReadFile(filepath.Join(root, "hello.txt"))
	if string(data) != "goodbye\n" {
		t.Errorf("expected patched content, got %q", data)
	}

	out = invokeTool(t, executor, "apply_patch", `{"patch":"not a patch"}`)
	if !strings.HasPrefix(out, "Error applying patch:") {
		t.Errorf("expected apply error, got %q", out)
	}
}
