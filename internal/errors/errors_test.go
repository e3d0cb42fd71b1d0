package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestTmwError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *TmwError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitConfigError, "could not load settings", fmt.Errorf("bad yaml")),
			wantMsg: "could not load settings: bad yaml",
		},
		{
			name:    "unknown workspace",
			err:     UnknownWorkspace("missing"),
			wantMsg: "Project missing is unknown",
		},
		{
			name:    "tool failed with stderr",
			err:     ToolFailed("new-session", "can't find directory", nil),
			wantMsg: "tmux new-session failed: can't find directory",
		},
		{
			name:    "tool failed without stderr",
			err:     ToolFailed("switch-client", "", nil),
			wantMsg: "tmux switch-client failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestTmwError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestTmwError_IsSentinel(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"unknown workspace", UnknownWorkspace("x"), ErrUnknownWorkspace, true},
		{"invalid directory", InvalidDirectory("x", ""), ErrInvalidDirectory, true},
		{"tool failed", ToolFailed("capture-pane", "boom", nil), ErrToolFailed, true},
		{"encoding", Encoding("list-sessions"), ErrEncoding, true},
		{"config", ConfigError("bad", nil), ErrConfig, true},
		{"different kind", UnknownWorkspace("x"), ErrToolFailed, false},
		{"wrapped by fmt", fmt.Errorf("select: %w", UnknownWorkspace("x")), ErrUnknownWorkspace, true},
		{"plain error", fmt.Errorf("plain"), ErrToolFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", fmt.Errorf("plain"), ExitGeneralError},
		{"unknown workspace", UnknownWorkspace("x"), ExitUnknownWorkspace},
		{"invalid directory", InvalidDirectory("x", ""), ExitInvalidDirectory},
		{"tool failed", ToolFailed("has-session", "", nil), ExitToolFailed},
		{"encoding", Encoding("display-message"), ExitEncoding},
		{"config", ConfigError("bad", nil), ExitConfigError},
		{"wrapped", fmt.Errorf("outer: %w", Encoding("list-sessions")), ExitEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToolFailed_KeepsStderr(t *testing.T) {
	err := ToolFailed("new-session", "no such file or directory", fmt.Errorf("exit status 1"))
	var tmwErr *TmwError
	if !As(err, &tmwErr) {
		t.Fatal("expected *TmwError")
	}
	if tmwErr.Stderr != "no such file or directory" {
		t.Errorf("Stderr = %q", tmwErr.Stderr)
	}
}
