package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// MaxStderrBytes bounds the diagnostic text kept on a CommandError
const MaxStderrBytes = 4096

// Runner invokes the ffmpeg tools
type Runner interface {
	// Output runs the tool and returns its stdout. Stderr is kept for errors.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the tool with stdout/stderr passed through to the console.
	Run(ctx context.Context, name string, args ...string) error
}

// CommandError describes a failed tool invocation
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
	if e.ExitCode < 0 && e.Err != nil {
		msg = fmt.Sprintf("%s failed: %v", e.Name, e.Err)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs tools with os/exec
type ExecRunner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner that streams pass-through output to the given writers
func NewExecRunner(dir string, stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Dir: dir, Stdout: stdout, Stderr: stderr}
}

// Output runs the command and captures stdout
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), newCommandError(name, args, stderr.Bytes(), err)
	}
	return stdout.Bytes(), nil
}

// Run runs the command, streaming output and keeping a copy of stderr
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stderr bytes.Buffer
	cmd.Stdout = writerOrDiscard(r.Stdout)
	cmd.Stderr = io.MultiWriter(writerOrDiscard(r.Stderr), &stderr)

	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, stderr.Bytes(), err)
	}
	return nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func newCommandError(name string, args []string, stderr []byte, err error) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Name:     name,
		Args:     append([]string(nil), args...),
		ExitCode: code,
		Stderr:   tailText(stderr, MaxStderrBytes),
		Err:      err,
	}
}

// tailText trims output and keeps at most max trailing bytes
func tailText(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
