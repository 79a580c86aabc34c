package world

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonwright/internal/telemetry"
)

// startSpan opens a span for one level edit.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) trace.Span {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return span
}

// endSpan records the outcome of an edit and closes its span.
func (l *Level) endSpan(span trace.Span, err error) {
	defer span.End()
	span.SetAttributes(
		attribute.Int("level.room_count", len(l.rooms)),
		attribute.Int("level.corridor_count", len(l.corridors)),
		attribute.String("level.current", l.Current()),
	)
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if kind, ok := KindOf(err); ok {
		span.SetAttributes(attribute.String("error.kind", kind.String()))
	}
	slog.Debug("level edit rejected", "err", err)
}
