package subprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
)

// stderrTail is how much of a command's standard error is kept for error reporting.
const stderrTail = 4096

// Cmd describes a single command invocation.
type Cmd struct {
	Name string
	Args []string

	// Timeout bounds the command run time. Zero means no timeout beyond the context.
	Timeout time.Duration

	// Stdout and Stderr receive the command output. When nil, the output of the
	// calling process is inherited.
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the shell quoted command line.
func (c Cmd) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Runner runs commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) error
}

// ExecRunner is a Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner which spawns real processes.
func NewExecRunner() Runner {
	return &ExecRunner{}
}

// Run starts the command and waits for it to exit.
// Any failure is returned as a *RunError.
func (r *ExecRunner) Run(ctx context.Context, c Cmd) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	tail := &tailBuffer{limit: stderrTail}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, tail)
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = ErrTimeout
		if c.Timeout > 0 {
			err = fmt.Errorf("%w after %s", ErrTimeout, c.Timeout)
		}

		exitCode = -1
	} else if ctx.Err() != nil {
		err = ctx.Err()
		exitCode = -1
	}

	return NewRunError(c.Name, c.Args, err, exitCode, tail.String())
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if n >= t.limit {
		t.buf = append(t.buf[:0], p[n-t.limit:]...)
		return n, nil
	}

	t.buf = append(t.buf, p...)
	if len(t.buf) > t.limit {
		t.buf = t.buf[len(t.buf)-t.limit:]
	}

	return n, nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
