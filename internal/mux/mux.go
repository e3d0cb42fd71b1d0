// Package mux is the transport to the terminal multiplexer.
//
// It builds and runs tmux invocations, always prefixed with the configured
// socket namespace, and turns their exit status and output into Go values
// or typed errors. It holds no session state: every call asks tmux again.
package mux

import (
	"context"
	"io"

	"github.com/timvw/tmw/internal/model"
)

// Multiplexer abstracts the session operations tmw needs.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// HasSession reports whether a session with exactly this name exists.
	// A negative answer is not an error.
	HasSession(ctx context.Context, name string) (bool, error)

	// ListSessions returns all live sessions in the order tmux reports them.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// NewSession creates a detached session rooted at dir.
	NewSession(ctx context.Context, name, dir string) error

	// SwitchClient points the current client at the named session.
	SwitchClient(ctx context.Context, name string) error

	// ActiveSessionName returns the name of the session the current client
	// is attached to.
	ActiveSessionName(ctx context.Context) (string, error)

	// CapturePane writes the rendered content of target (escape sequences
	// included) to w as tmux produces it.
	CapturePane(ctx context.Context, target string, w io.Writer) error
}
