package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	maxOutputBytes = 64 << 10 // 64 KB
)

// Result is the outcome of one command invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	// Err is set when the command could not be started or did not finish
	// in time. A command that ran and exited nonzero has Err == nil.
	Err error
}

// OK reports whether the command ran and exited with status 0.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner runs shell command lines.
type Runner interface {
	Run(ctx context.Context, command string, stdoutLimit int) Result
}

// Executor runs commands through /bin/sh.
type Executor struct {
	shell   string
	timeout time.Duration
}

// New creates an Executor. A zero timeout selects the default.
func New(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Executor{shell: "sh", timeout: timeout}
}

// Run executes command via "sh -c" and keeps at most stdoutLimit bytes of
// its standard output (0 means the package maximum). Stderr is discarded.
func (e *Executor) Run(ctx context.Context, command string, stdoutLimit int) Result {
	if stdoutLimit <= 0 || stdoutLimit > maxOutputBytes {
		stdoutLimit = maxOutputBytes
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	// Grandchildren may keep stdout open after sh is killed.
	cmd.WaitDelay = time.Second

	var stdout bytes.Buffer
	cmd.Stdout = &limitedWriter{w: &stdout, limit: stdoutLimit}

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() == context.DeadlineExceeded:
			return Result{ExitCode: -1, Stdout: stdout.Bytes(), Err: fmt.Errorf("command timed out after %s", e.timeout)}
		case errors.As(err, &exitErr):
			return Result{ExitCode: exitErr.ExitCode(), Stdout: stdout.Bytes()}
		default:
			return Result{ExitCode: -1, Stdout: stdout.Bytes(), Err: fmt.Errorf("run %q: %w", command, err)}
		}
	}

	return Result{Stdout: stdout.Bytes()}
}

// limitedWriter wraps a buffer and stops writing after limit bytes.
type limitedWriter struct {
	w       *bytes.Buffer
	limit   int
	written int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	remaining := lw.limit - lw.written
	if remaining <= 0 {
		return n, nil // Discard silently
	}
	if len(p) > remaining {
		p = p[:remaining]
	}
	written, err := lw.w.Write(p)
	lw.written += written
	if err != nil {
		return written, err
	}
	return n, nil
}
