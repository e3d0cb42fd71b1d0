package mux

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Result is the outcome of one external invocation.
type Result struct {
	Success  bool
	ExitCode int
	Stdout   []byte // empty when stdout was streamed to a writer
	Stderr   []byte
}

// Runner starts one child process and waits for it.
// A non-zero exit is reported through Result, not as an error; the error
// return is reserved for failures to start or wait on the process.
type Runner interface {
	Run(ctx context.Context, stdout io.Writer, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args. When stdout is non-nil the child's output is
// connected to it directly instead of being buffered.
func (ExecRunner) Run(ctx context.Context, stdout io.Writer, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var outBuf, errBuf bytes.Buffer
	if stdout != nil {
		cmd.Stdout = stdout
	} else {
		cmd.Stdout = &outBuf
	}
	cmd.Stderr = &errBuf

	err := cmd.Run()
	res := Result{
		Stdout: outBuf.Bytes(),
		Stderr: errBuf.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	res.Success = true
	return res, nil
}
