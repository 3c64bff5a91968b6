package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-arrower/catalog/app"
)

func newTraceRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()

	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func TestTracingDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		recorder, provider := newTraceRecorder()
		handler := app.NewTracedRequest[request, response](provider, okHandler{})

		res, err := handler.H(ctx, request{})
		assert.NoError(t, err)
		assert.Equal(t, response{Value: "ok"}, res)

		spans := recorder.Ended()
		assert.Len(t, spans, 1)
		assert.Equal(t, "usecase", spans[0].Name())
		assert.Equal(t, "catalog.application", spans[0].InstrumentationScope().Name)
		assert.Equal(t, "app_test.request", spans[0].Attributes()[0].Value.AsString())
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
	})

	t.Run("failed command", func(t *testing.T) {
		t.Parallel()

		recorder, provider := newTraceRecorder()
		handler := app.NewTracedCommand[request](provider, app.TestFailureCommandHandler[request]())

		err := handler.H(ctx, request{})
		assert.ErrorIs(t, err, app.ErrUseCaseFailed)

		spans := recorder.Ended()
		assert.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, app.ErrUseCaseFailed.Error(), spans[0].Status().Description)
	})

	t.Run("failed query", func(t *testing.T) {
		t.Parallel()

		recorder, provider := newTraceRecorder()
		handler := app.NewTracedQuery[request, response](provider, app.TestFailureQueryHandler[request, response]())

		_, err := handler.H(ctx, request{})
		assert.ErrorIs(t, err, app.ErrUseCaseFailed)
		assert.Equal(t, codes.Error, recorder.Ended()[0].Status().Code)
	})
}
