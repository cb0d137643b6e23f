package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceFields возвращает zap-поля trace_id и span_id активного span, либо nil
func TraceFields(ctx context.Context) []zap.Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}

// L возвращает base с trace_id/span_id из ctx; без span возвращает base как есть
func L(ctx context.Context, base *zap.Logger) *zap.Logger {
	fields := TraceFields(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// Logger возвращает logger запроса, положенный HTTPMiddleware, иначе L(ctx, fallback)
func Logger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l := LoggerFromContext(ctx); l != nil {
		return l
	}
	return L(ctx, fallback)
}
