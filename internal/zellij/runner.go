package zellij

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// Runner abstracts execution of zellij CLI commands. The zellij binary is
// the only transport into the session: there is no acknowledgment channel
// beyond exit status and captured stderr text.
type Runner interface {
	// Run executes zellij with the given arguments, bounded by timeout.
	// It returns stdout, stderr, and any execution error.
	Run(timeout time.Duration, args ...string) (string, string, error)
}

// DefaultRunner implements Runner using exec.Command to run zellij.
type DefaultRunner struct {
	bin     string
	session string
}

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithBinary overrides the zellij binary path.
func WithBinary(bin string) RunnerOption {
	return func(r *DefaultRunner) { r.bin = bin }
}

// WithSession targets a specific session instead of the current one.
func WithSession(session string) RunnerOption {
	return func(r *DefaultRunner) { r.session = session }
}

// NewDefaultRunner creates a new DefaultRunner with the given options.
func NewDefaultRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{bin: "zellij"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a zellij command with the given arguments.
func (r *DefaultRunner) Run(timeout time.Duration, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmdArgs := []string{}
	if r.session != "" {
		cmdArgs = append(cmdArgs, "--session", r.session)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, r.bin, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}
