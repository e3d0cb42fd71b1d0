// Package workspace maps configured workspaces onto tmux sessions.
//
// The Orchestrator implements the three user operations (list, switch,
// preview). It keeps no session state between calls: every operation asks
// the multiplexer again, since other clients may create or kill sessions at
// any time.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	tmwerr "github.com/timvw/tmw/internal/errors"
	"github.com/timvw/tmw/internal/logging"
	"github.com/timvw/tmw/internal/model"
	"github.com/timvw/tmw/internal/mux"
	telem "github.com/timvw/tmw/internal/otel"
)

// Orchestrator runs workspace operations against a registry and a multiplexer.
type Orchestrator struct {
	Registry model.Registry
	Mux      mux.Multiplexer

	// Out receives user-facing output. Nil means os.Stdout.
	Out io.Writer

	// Tracer and Metrics are optional.
	Tracer  trace.Tracer
	Metrics *telem.Metrics
}

// New creates an Orchestrator writing to stdout.
func New(reg model.Registry, m mux.Multiplexer) *Orchestrator {
	return &Orchestrator{Registry: reg, Mux: m}
}

func (o *Orchestrator) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o *Orchestrator) tracer() trace.Tracer {
	if o.Tracer == nil {
		return otel.Tracer("tmw")
	}
	return o.Tracer
}

func (o *Orchestrator) resolver() *Resolver {
	return &Resolver{Mux: o.Mux}
}

// Names returns the registry's workspace names in declaration order. With
// excludeActive the name of the current client's session is left out; if
// that session cannot be determined the whole call fails.
func (o *Orchestrator) Names(ctx context.Context, excludeActive bool) ([]string, error) {
	var active string
	if excludeActive {
		name, err := o.Mux.ActiveSessionName(ctx)
		if err != nil {
			return nil, err
		}
		active = name
	}

	names := make([]string, 0, len(o.Registry.Workspaces))
	for _, ws := range o.Registry.Workspaces {
		if excludeActive && ws.Name == active {
			continue
		}
		names = append(names, ws.Name)
	}
	return names, nil
}

// List prints workspace names, one per line. An empty result prints a
// single empty line.
func (o *Orchestrator) List(ctx context.Context, excludeActive bool) (err error) {
	ctx, span := o.tracer().Start(ctx, "workspace.list",
		trace.WithAttributes(attribute.Bool("workspace.exclude_active", excludeActive)))
	defer func() { o.finish(ctx, span, "list", "ok", err) }()

	names, err := o.Names(ctx, excludeActive)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(o.out(), strings.Join(names, "\n"))
	return err
}

// Switch moves the current client to the workspace's session, creating the
// session first when it does not exist. Existing sessions are never
// re-rooted.
func (o *Orchestrator) Switch(ctx context.Context, name string) (err error) {
	ctx, span := o.tracer().Start(ctx, "workspace.switch",
		trace.WithAttributes(attribute.String("workspace.name", name)))
	defer func() { o.finish(ctx, span, "switch", "ok", err) }()

	// Unknown names fail before tmux is ever invoked.
	ws, ok := o.Registry.Lookup(name)
	if !ok {
		return tmwerr.UnknownWorkspace(name)
	}

	log := logging.With("workspace", name)

	exists, err := o.Mux.HasSession(ctx, name)
	if err != nil {
		return err
	}

	if !exists {
		if err := checkDirectory(ws); err != nil {
			return err
		}
		log.Debug("creating session", "directory", ws.Directory)
		if err := o.Mux.NewSession(ctx, name, ws.Directory); err != nil {
			return err
		}
		span.SetAttributes(attribute.Bool("workspace.created", true))
		o.Metrics.RecordSessionCreated(ctx)
	}

	log.Debug("switching client", "created", !exists)
	return o.Mux.SwitchClient(ctx, name)
}

// Preview writes the current pane content of the session called name to
// the output. The name is not checked against the registry, so sessions
// started outside tmw can be previewed too. A missing session is reported
// on the output and is not an error.
func (o *Orchestrator) Preview(ctx context.Context, name string) error {
	return o.PreviewTo(ctx, name, o.out())
}

// PreviewTo is Preview with an explicit destination.
func (o *Orchestrator) PreviewTo(ctx context.Context, name string, w io.Writer) (err error) {
	ctx, span := o.tracer().Start(ctx, "workspace.preview",
		trace.WithAttributes(attribute.String("workspace.name", name)))
	outcome := "ok"
	defer func() { o.finish(ctx, span, "preview", outcome, err) }()

	session, err := o.resolver().FindSession(ctx, name)
	if err != nil {
		return err
	}
	if session == nil {
		outcome = "not_running"
		_, err = fmt.Fprintf(w, "Workspace %s is not running\n", name)
		return err
	}

	span.SetAttributes(attribute.String("tmux.session_id", session.ID))
	return o.Mux.CapturePane(ctx, session.ID, w)
}

// PreviewString renders Preview into a string.
func (o *Orchestrator) PreviewString(ctx context.Context, name string) (string, error) {
	var buf bytes.Buffer
	if err := o.PreviewTo(ctx, name, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// finish ends span and records the operation outcome.
func (o *Orchestrator) finish(ctx context.Context, span trace.Span, op, outcome string, err error) {
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.Debug("workspace operation failed", "operation", op, "error", err)
	}
	o.Metrics.RecordOperation(ctx, op, outcome)
	span.End()
}

// checkDirectory rejects directories that cannot be passed to tmux -c.
func checkDirectory(ws model.Workspace) error {
	if ws.Directory == "" || !utf8.ValidString(ws.Directory) || strings.ContainsRune(ws.Directory, 0) {
		return tmwerr.InvalidDirectory(ws.Name, ws.Directory)
	}
	return nil
}
