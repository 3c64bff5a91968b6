package alog_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
)

const (
	applicationMsg = "application message"
)

var (
	ctx          = context.Background()
	errSomething = errors.New("some error")
)

// fakeSpan is an implementation of Span that is minimal for asserting tests.
type fakeSpan struct {
	embedded.Span

	mu sync.Mutex

	eventName    string
	eventOptions []trace.EventOption

	statusErrorCode codes.Code
	statusErrorMsg  string

	tracer *fakeTracer
}

var _ trace.Span = (*fakeSpan)(nil)

func (*fakeSpan) SpanContext() trace.SpanContext {
	return trace.SpanContext{}.WithTraceID([16]byte{1}).WithSpanID([8]byte{1})
}

func (*fakeSpan) IsRecording() bool { return false }

func (s *fakeSpan) SetStatus(code codes.Code, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statusErrorCode = code
	s.statusErrorMsg = msg
}

func (*fakeSpan) SetAttributes(...attribute.KeyValue) {}

func (*fakeSpan) End(...trace.SpanEndOption) {}

func (*fakeSpan) RecordError(error, ...trace.EventOption) {}

func (s *fakeSpan) AddEvent(name string, opts ...trace.EventOption) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventName = name
	s.eventOptions = opts
}

func (*fakeSpan) AddLink(trace.Link) {}

func (*fakeSpan) SetName(string) {}

func (s *fakeSpan) TracerProvider() trace.TracerProvider { //nolint:ireturn // required by interface
	if s.tracer == nil {
		s.tracer = &fakeTracer{}
	}

	return &fakeTraceProvider{tracer: s.tracer}
}

type fakeTraceProvider struct {
	embedded.TracerProvider

	tracer *fakeTracer
}

func (f *fakeTraceProvider) Tracer(_ string, _ ...trace.TracerOption) trace.Tracer { //nolint:ireturn // required by interface
	return f.tracer
}

// fakeTracer records the names of all spans started with it.
type fakeTracer struct {
	embedded.Tracer

	mu    sync.Mutex
	spans []string
}

func (f *fakeTracer) Start(ctx context.Context, spanName string, _ ...trace.SpanStartOption) (context.Context, trace.Span) { //nolint:ireturn,lll // required by interface
	f.mu.Lock()
	defer f.mu.Unlock()

	f.spans = append(f.spans, spanName)

	return ctx, trace.SpanFromContext(ctx)
}

type failingHandler struct{}

var _ slog.Handler = (*failingHandler)(nil)

func (f failingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (f failingHandler) Handle(_ context.Context, _ slog.Record) error {
	return errSomething
}

func (f failingHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return f
}

func (f failingHandler) WithGroup(_ string) slog.Handler {
	return f
}
