package app

import (
	"context"
	"log/slog"

	"github.com/go-arrower/catalog/alog"
)

func NewLoggedRequest[Req any, Res any](logger alog.Logger, req Request[Req, Res]) Request[Req, Res] {
	return &loggingDecorator[Req, Res]{logger: logger, kind: "request", base: req}
}

func NewLoggedCommand[C any](logger alog.Logger, cmd Command[C]) Command[C] {
	return decoratedCommand[C]{
		base: &loggingDecorator[C, struct{}]{logger: logger, kind: "command", base: commandHandler[C]{base: cmd}},
	}
}

func NewLoggedQuery[Q any, Res any](logger alog.Logger, query Query[Q, Res]) Query[Q, Res] {
	return &loggingDecorator[Q, Res]{logger: logger, kind: "query", base: query}
}

type loggingDecorator[In any, Out any] struct {
	logger alog.Logger
	kind   string
	base   handler[In, Out]
}

func (d *loggingDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn // valid use of generics
	cmdName := commandName(in)

	d.logger.DebugContext(ctx, "executing "+d.kind,
		slog.String("command", cmdName),
	)

	res, err := d.base.H(ctx, in)

	if err != nil {
		d.logger.DebugContext(ctx, "failed to execute "+d.kind,
			slog.String("command", cmdName),
			slog.String("error", err.Error()),
		)
	} else {
		d.logger.DebugContext(ctx, d.kind+" executed successfully",
			slog.String("command", cmdName))
	}

	return res, err //nolint:wrapcheck // decorate but not change anything
}
