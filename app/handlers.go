// Package app provides common decorators for use cases in the application layer.
//
// A use case is one of Request, Command or Query. The decorators log, trace or meter
// each call but never change the result or the error of the use case.
package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/catalog/alog"
)

// Request can produce side effects and return data.
type Request[Req any, Res any] interface {
	H(ctx context.Context, req Req) (Res, error)
}

// Command produces side effects, e.g. mutate state.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query does not produce side effects and returns data.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// NewInstrumentedRequest is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedRequest[Req any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	req Request[Req, Res],
) Request[Req, Res] {
	return NewTracedRequest(traceProvider, NewMeteredRequest(meterProvider, NewLoggedRequest(logger, req)))
}

// NewInstrumentedCommand is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedCommand[C any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	cmd Command[C],
) Command[C] {
	return NewTracedCommand(traceProvider, NewMeteredCommand(meterProvider, NewLoggedCommand(logger, cmd)))
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedQuery[Q any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	query Query[Q, Res],
) Query[Q, Res] {
	return NewTracedQuery(traceProvider, NewMeteredQuery(meterProvider, NewLoggedQuery(logger, query)))
}

// handler is the shape shared by Request and Query.
// All decorators are implemented once on it.
type handler[In any, Out any] interface {
	H(ctx context.Context, in In) (Out, error)
}

// commandHandler lets a Command be decorated as a handler without a result.
type commandHandler[C any] struct {
	base Command[C]
}

func (h commandHandler[C]) H(ctx context.Context, cmd C) (struct{}, error) {
	return struct{}{}, h.base.H(ctx, cmd) //nolint:wrapcheck // decorate but not change anything
}

// decoratedCommand turns a decorated handler back into a Command.
type decoratedCommand[C any] struct {
	base handler[C, struct{}]
}

func (d decoratedCommand[C]) H(ctx context.Context, cmd C) error {
	_, err := d.base.H(ctx, cmd)

	return err //nolint:wrapcheck // decorate but not change anything
}

// commandName extracts a printable name from cmd in the format of: packageName.structName.
// The use case function can not be used, as it is anonymous / a closure returned by the use case constructor.
func commandName(cmd any) string {
	return fmt.Sprintf("%T", cmd)
}
