package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tmw"

// Metrics holds all OTEL metric instruments for tmw.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// tmux invocations (partitioned by subcommand + success)
	Invocations metric.Int64Counter

	// Workspace operations (partitioned by operation + outcome)
	Operations metric.Int64Counter

	// Sessions created by switch
	SessionsCreated metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Invocations, err = meter.Int64Counter("tmux.invocations",
		metric.WithDescription("Number of tmux processes spawned, by subcommand and success"),
		metric.WithUnit("{invocation}"))
	if err != nil {
		return nil, err
	}

	m.Operations, err = meter.Int64Counter("workspace.operations",
		metric.WithDescription("Number of workspace operations (list, switch, preview) by outcome"))
	if err != nil {
		return nil, err
	}

	m.SessionsCreated, err = meter.Int64Counter("workspace.sessions_created",
		metric.WithDescription("Number of tmux sessions created for a workspace"),
		metric.WithUnit("{session}"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordInvocation records one tmux invocation.
func (m *Metrics) RecordInvocation(ctx context.Context, subcommand string, success bool) {
	if m == nil {
		return
	}
	m.Invocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tmux.subcommand", subcommand),
		attribute.Bool("tmux.success", success),
	))
}

// RecordOperation records a finished workspace operation. outcome is one of
// "ok", "not_running" or "error".
func (m *Metrics) RecordOperation(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("workspace.operation", operation),
		attribute.String("workspace.outcome", outcome),
	))
}

// RecordSessionCreated records a session created on the switch path.
func (m *Metrics) RecordSessionCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.SessionsCreated.Add(ctx, 1)
}
