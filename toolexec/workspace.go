package toolexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// Subprocess deadlines per tool family.
const (
	grepTimeout  = 10 * time.Second
	gitTimeout   = 30 * time.Second
	shellTimeout = 60 * time.Second
)

// Workspace anchors tool operations to a root directory. Relative paths
// resolve against the root; absolute paths are used as given.
type Workspace struct {
	root string
}

// NewWorkspace creates a workspace rooted at root. An empty root means the
// current working directory.
func NewWorkspace(root string) *Workspace {
	if root == "" {
		root, _ = os.Getwd()
	}
	return &Workspace{root: root}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

func (w *Workspace) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.root, path)
}

// execResult holds the outcome of one subprocess run.
type execResult struct {
	stdout   string
	stderr   string
	exitCode int
	timedOut bool
}

// run executes a command with a hard deadline. The child gets its own
// process group so a timeout kills the whole tree, not just the leader.
// A non-zero exit is reported in the result, not as an error; the error
// return covers failures to run at all.
func (w *Workspace) run(ctx context.Context, timeout time.Duration, dir, stdin, name string, args ...string) (*execResult, error) {
	if dir == "" {
		dir = w.root
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &execResult{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.timedOut = true
			result.exitCode = -1
			if cmd.Process != nil {
				_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			}
			return result, nil
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.exitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("exec %s: %w", name, err)
	}
	return result, nil
}

// git runs a git subcommand in the workspace root.
func (w *Workspace) git(ctx context.Context, args ...string) (*execResult, error) {
	return w.run(ctx, gitTimeout, "", "", "git", args...)
}
