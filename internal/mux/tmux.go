package mux

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	shellquote "github.com/kballard/go-shellquote"

	tmwerr "github.com/timvw/tmw/internal/errors"
	"github.com/timvw/tmw/internal/logging"
	"github.com/timvw/tmw/internal/model"
	telem "github.com/timvw/tmw/internal/otel"
)

// sessionFormat asks list-sessions for "id,name" per line. Session ids
// ("$N") never contain a comma, so the first comma is always the separator.
const sessionFormat = "#{session_id},#{session_name}"

// Options configures a Tmux client.
type Options struct {
	// Binary is the tmux executable. Empty means "tmux" from PATH.
	Binary string
	// Socket is passed as -L on every invocation. Empty uses the default server.
	Socket string
	// Runner executes the process. Nil means ExecRunner.
	Runner Runner
	// Metrics records invocation counters. May be nil.
	Metrics *telem.Metrics
}

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	binary  string
	socket  string
	runner  Runner
	metrics *telem.Metrics
}

// NewTmux creates a tmux client.
func NewTmux(opts Options) *Tmux {
	t := &Tmux{
		binary:  opts.Binary,
		socket:  opts.Socket,
		runner:  opts.Runner,
		metrics: opts.Metrics,
	}
	if t.binary == "" {
		t.binary = "tmux"
	}
	if t.runner == nil {
		t.runner = ExecRunner{}
	}
	return t
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// Socket returns the -L namespace, or "" for the default server.
func (t *Tmux) Socket() string {
	return t.socket
}

// Invoke runs one tmux subcommand and returns its raw result. A non-zero
// exit status is not an error here; only failing to run tmux at all is.
func (t *Tmux) Invoke(ctx context.Context, args ...string) (Result, error) {
	return t.invoke(ctx, nil, args)
}

// InvokeChecked runs one tmux subcommand and returns its stdout. A non-zero
// exit becomes an ExternalToolFailed error carrying tmux's stderr.
func (t *Tmux) InvokeChecked(ctx context.Context, args ...string) ([]byte, error) {
	res, err := t.invoke(ctx, nil, args)
	if err != nil {
		return nil, tmwerr.ToolFailed(stepOf(args), "", err)
	}
	if err := checkResult(stepOf(args), res); err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// HasSession probes for a session with exactly this name. The exit status is
// the answer; stderr ("can't find session", "no server running") is dropped.
func (t *Tmux) HasSession(ctx context.Context, name string) (bool, error) {
	res, err := t.Invoke(ctx, "has-session", "-t", exactTarget(name))
	if err != nil {
		return false, tmwerr.ToolFailed("has-session", "", err)
	}
	return res.Success, nil
}

// ListSessions returns all sessions on the server.
func (t *Tmux) ListSessions(ctx context.Context) ([]model.Session, error) {
	out, err := t.InvokeChecked(ctx, "list-sessions", "-F", sessionFormat)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(out) {
		return nil, tmwerr.Encoding("list-sessions")
	}
	return parseSessions(string(out)), nil
}

// NewSession creates a detached session named name with start directory dir.
func (t *Tmux) NewSession(ctx context.Context, name, dir string) error {
	_, err := t.InvokeChecked(ctx, "new-session", "-d", "-s", name, "-c", dir)
	return err
}

// SwitchClient moves the current client to the named session.
func (t *Tmux) SwitchClient(ctx context.Context, name string) error {
	_, err := t.InvokeChecked(ctx, "switch-client", "-t", exactTarget(name))
	return err
}

// ActiveSessionName returns the session name of the current client.
func (t *Tmux) ActiveSessionName(ctx context.Context) (string, error) {
	out, err := t.InvokeChecked(ctx, "display-message", "-p", "#S")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", tmwerr.Encoding("display-message")
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// CapturePane streams the visible content of target to w.
// Uses -e (keep escape sequences), -p (stdout) and -N (keep trailing spaces).
func (t *Tmux) CapturePane(ctx context.Context, target string, w io.Writer) error {
	args := []string{"capture-pane", "-e", "-p", "-N", "-t", target}
	res, err := t.invoke(ctx, w, args)
	if err != nil {
		return tmwerr.ToolFailed("capture-pane", "", err)
	}
	return checkResult("capture-pane", res)
}

// invoke prefixes the namespace, runs tmux and records the outcome.
func (t *Tmux) invoke(ctx context.Context, stdout io.Writer, args []string) (Result, error) {
	full := t.commandArgs(args)
	step := stepOf(args)

	res, err := t.runner.Run(ctx, stdout, t.binary, full...)
	if err != nil {
		logging.Debug("tmux invocation could not start",
			"step", step,
			"cmd", shellquote.Join(append([]string{t.binary}, full...)...),
			"error", err)
		t.metrics.RecordInvocation(ctx, step, false)
		return res, fmt.Errorf("run %s: %w", t.binary, err)
	}

	logging.Debug("tmux invocation",
		"step", step,
		"cmd", shellquote.Join(append([]string{t.binary}, full...)...),
		"success", res.Success,
		"exit_code", res.ExitCode)
	t.metrics.RecordInvocation(ctx, step, res.Success)
	return res, nil
}

// commandArgs returns args with the -L namespace selector in front.
func (t *Tmux) commandArgs(args []string) []string {
	if t.socket == "" {
		return args
	}
	full := make([]string, 0, len(args)+2)
	full = append(full, "-L", t.socket)
	return append(full, args...)
}

// checkResult maps a non-zero exit to ExternalToolFailed with tmux's stderr.
func checkResult(step string, res Result) error {
	if res.Success {
		return nil
	}
	if !utf8.Valid(res.Stderr) {
		return tmwerr.Encoding(step)
	}
	stderr := strings.TrimSpace(string(res.Stderr))
	if stderr == "" {
		stderr = fmt.Sprintf("exit status %d", res.ExitCode)
	}
	return tmwerr.ToolFailed(step, stderr, nil)
}

// parseSessions parses list-sessions output in sessionFormat. Each line is
// split once on the first comma; lines without one are skipped.
func parseSessions(out string) []model.Session {
	var sessions []model.Session
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		id, name, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		sessions = append(sessions, model.Session{
			ID:   strings.TrimSpace(id),
			Name: name,
		})
	}
	return sessions
}

// exactTarget builds a session target that only matches name exactly.
// A bare name would also match by prefix ("proj" finds "project1").
func exactTarget(name string) string {
	return "=" + name
}

func stepOf(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
