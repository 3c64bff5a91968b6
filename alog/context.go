package alog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// AddAttr adds attr to ctx. All attributes in the ctx are logged
// by a logger of this package, when the ctx is passed to it.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds attrs to ctx, see AddAttr.
func AddAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing := FromContext(ctx)

	all := make([]slog.Attr, 0, len(existing)+len(attrs))
	all = append(all, existing...)
	all = append(all, attrs...)

	return context.WithValue(ctx, ctxKey{}, all)
}

// ClearAttrs removes all attributes from ctx.
func ClearAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, []slog.Attr{})
}

// FromContext returns the attributes in ctx. It never returns nil.
func FromContext(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		return attrs
	}

	return []slog.Attr{}
}
