package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func NewMeteredRequest[Req any, Res any](meterProvider metric.MeterProvider, req Request[Req, Res]) Request[Req, Res] {
	return newMeteringDecorator[Req, Res](meterProvider, req)
}

func NewMeteredCommand[C any](meterProvider metric.MeterProvider, cmd Command[C]) Command[C] {
	return decoratedCommand[C]{
		base: newMeteringDecorator[C, struct{}](meterProvider, commandHandler[C]{base: cmd}),
	}
}

func NewMeteredQuery[Q any, Res any](meterProvider metric.MeterProvider, query Query[Q, Res]) Query[Q, Res] {
	return newMeteringDecorator[Q, Res](meterProvider, query)
}

func newMeteringDecorator[In any, Out any](meterProvider metric.MeterProvider, base handler[In, Out]) *meteringDecorator[In, Out] {
	meter := meterProvider.Meter(instrumentationName)

	counter, _ := meter.Int64Counter("usecases", metric.WithDescription("number of executed use cases"))
	duration, _ := meter.Float64Histogram("usecases_duration_seconds", metric.WithDescription("duration of use cases"))

	return &meteringDecorator[In, Out]{
		counter:  counter,
		duration: duration,
		base:     base,
	}
}

type meteringDecorator[In any, Out any] struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
	base     handler[In, Out]
}

func (d *meteringDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn // valid use of generics
	start := time.Now()

	result, err := d.base.H(ctx, in)

	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("command", commandName(in)),
		attribute.String("status", status),
	)

	d.counter.Add(ctx, 1, opt)
	d.duration.Record(ctx, time.Since(start).Seconds(), opt)

	return result, err //nolint:wrapcheck // decorate but not change anything
}
