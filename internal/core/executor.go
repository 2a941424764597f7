package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultShell runs suggested commands.
const DefaultShell = "/bin/sh"

// ErrInterrupted is returned when the caller cancels a running command.
var ErrInterrupted = errors.New("interrupted")

// Executor handles command execution
type Executor struct {
	shell   string
	timeout time.Duration
}

// NewExecutor creates a new executor
func NewExecutor(shell string, timeout time.Duration) *Executor {
	if shell == "" {
		shell = DefaultShell
	}
	return &Executor{
		shell:   shell,
		timeout: timeout,
	}
}

// Result represents command execution result
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Execute runs a command line through the shell and returns the result.
// A non-zero exit status is not an error; it is reported in ExitCode.
// Failing to start the shell or being cancelled by the caller is.
func (e *Executor) Execute(ctx context.Context, command string) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	execCmd := exec.CommandContext(ctx, e.shell, "-c", command)
	// Background children may hold the pipes open after the shell is killed.
	execCmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return result, ErrInterrupted
	}

	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			result.ExitCode = exitError.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", e.shell, err)
	}

	return result, nil
}
