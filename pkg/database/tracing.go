package database

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/utafrali/storefront/pkg/database"

// QueryTracer wraps storage statements in client spans and logs statements
// slower than SlowThreshold. A zero SlowThreshold or nil Logger disables the
// slow statement log.
type QueryTracer struct {
	System        string
	SlowThreshold time.Duration
	Logger        *slog.Logger
}

// Start opens a span for operation. Call the returned function with the
// operation's error once it completes:
//
//	ctx, end := t.Start(ctx, "kv.get", stmt)
//	defer func() { end(err) }()
func (t QueryTracer) Start(ctx context.Context, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", t.System),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if t.SlowThreshold <= 0 || t.Logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= t.SlowThreshold {
			t.Logger.WarnContext(ctx, "slow query detected",
				slog.String("system", t.System),
				slog.String("operation", operation),
				slog.Duration("duration", elapsed),
			)
		}
	}
}
