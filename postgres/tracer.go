package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ pgx.QueryTracer = (*queryTracer)(nil)

// queryTracer starts a span for every query pgx sends to the database.
type queryTracer struct {
	tracer trace.Tracer
}

func newQueryTracer(tracerProvider trace.TracerProvider) *queryTracer {
	return &queryTracer{tracer: tracerProvider.Tracer("catalog.postgres")}
}

func (t *queryTracer) TraceQueryStart(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", data.SQL),
		attribute.StringSlice("db.statement.args", argsToStrings(data.Args)),
	}

	if conn != nil {
		config := conn.Config()
		attrs = append(attrs,
			attribute.String("db.name", config.Database),
			attribute.String("db.user", config.User),
			attribute.String("server.address", config.Host),
			attribute.Int("server.port", int(config.Port)),
		)
	}

	ctx, _ = t.tracer.Start(ctx, "pgx.query", trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))

	return ctx
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))

	if data.Err != nil {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
	}
}

func argsToStrings(args []any) []string {
	s := make([]string, len(args))

	for i, arg := range args {
		s[i] = fmt.Sprintf("%v", arg)
	}

	return s
}
