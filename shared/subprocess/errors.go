package subprocess

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrTimeout is returned (wrapped in a RunError) when a command exceeds its timeout.
var ErrTimeout = errors.New("Command timed out")

// RunError is the error returned by a Runner when a command fails.
type RunError struct {
	cmd      string
	args     []string
	err      error
	exitCode int
	stderr   string
}

// NewRunError returns a new RunError.
// exitCode is the process exit status, or -1 if the process did not exit on its own.
func NewRunError(cmd string, args []string, err error, exitCode int, stderr string) error {
	return &RunError{
		cmd:      cmd,
		args:     args,
		err:      err,
		exitCode: exitCode,
		stderr:   stderr,
	}
}

// Error returns the error string.
func (e *RunError) Error() string {
	cmdLine := shellquote.Join(append([]string{e.cmd}, e.args...)...)
	stderr := strings.TrimSpace(e.stderr)
	if stderr == "" {
		return fmt.Sprintf("Failed to run: %s: %v", cmdLine, e.err)
	}

	return fmt.Sprintf("Failed to run: %s: %v (%s)", cmdLine, e.err, stderr)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.err
}

// ExitCode returns the exit status of the command, -1 if it never exited normally.
func (e *RunError) ExitCode() int {
	return e.exitCode
}

// Stderr returns the tail of the command's standard error.
func (e *RunError) Stderr() string {
	return e.stderr
}

// IsExitError returns true if err comes from a command that ran and exited with a non-zero status.
// Timeouts, signals and failures to start the command are not exit errors.
func IsExitError(err error) bool {
	var runErr *RunError
	if !errors.As(err, &runErr) {
		return false
	}

	return runErr.exitCode > 0
}

// IsNotFound returns true if err means the command binary could not be found.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
