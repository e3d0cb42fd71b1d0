// Package errors provides typed errors with exit codes for tmw.
//
// Every failure that reaches the CLI is a *TmwError carrying the exit code
// for its kind. Use errors.Is against the sentinel values to classify:
//
//	if errors.Is(err, errors.ErrUnknownWorkspace) { ... }
//
// and GetExitCode to map an error chain onto the process exit status.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for tmw
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitUnknownWorkspace = 2
	ExitInvalidDirectory = 3
	ExitToolFailed       = 4
	ExitEncoding         = 5
	ExitConfigError      = 6
)

// Sentinels for errors.Is. Matching compares exit codes only.
var (
	ErrUnknownWorkspace = New(ExitUnknownWorkspace, "unknown workspace")
	ErrInvalidDirectory = New(ExitInvalidDirectory, "invalid workspace directory")
	ErrToolFailed       = New(ExitToolFailed, "tmux failed")
	ErrEncoding         = New(ExitEncoding, "unexpected tmux output")
	ErrConfig           = New(ExitConfigError, "invalid configuration")
)

// TmwError is the base error type for tmw
type TmwError struct {
	Code    int
	Message string
	Cause   error

	// Stderr is the raw stderr text of a failed tmux invocation, if any.
	Stderr string
}

func (e *TmwError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TmwError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *TmwError) ExitCode() int {
	return e.Code
}

// Is reports whether target is a TmwError of the same kind.
func (e *TmwError) Is(target error) bool {
	t, ok := target.(*TmwError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new TmwError
func New(code int, message string) *TmwError {
	return &TmwError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a TmwError
func Wrap(code int, message string, cause error) *TmwError {
	return &TmwError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UnknownWorkspace returns an error for a name missing from the registry.
func UnknownWorkspace(name string) *TmwError {
	return New(ExitUnknownWorkspace, fmt.Sprintf("Project %s is unknown", name))
}

// InvalidDirectory returns an error for a directory tmux cannot be given.
func InvalidDirectory(workspace, dir string) *TmwError {
	return New(ExitInvalidDirectory, fmt.Sprintf("Invalid workspace directory for %s: %q", workspace, dir))
}

// ToolFailed returns an error for a tmux invocation that exited non-zero
// (or could not be started). step names the logical operation.
func ToolFailed(step, stderr string, cause error) *TmwError {
	msg := fmt.Sprintf("tmux %s failed", step)
	if stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, stderr)
	}
	return &TmwError{
		Code:    ExitToolFailed,
		Message: msg,
		Cause:   cause,
		Stderr:  stderr,
	}
}

// Encoding returns an error for tmux output that is not valid UTF-8.
func Encoding(step string) *TmwError {
	return New(ExitEncoding, fmt.Sprintf("Unexpected tmux output from %s: not valid UTF-8", step))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *TmwError {
	return Wrap(ExitConfigError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var tmwErr *TmwError
	if errors.As(err, &tmwErr) {
		return tmwErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
