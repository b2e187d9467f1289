package middleware

import (
	"fmt"

	"recshelf/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware opens a server span per request and propagates incoming
// W3C trace headers.
func TracingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		headers := propagation.MapCarrier{}
		c.Request().Header.VisitAll(func(k, v []byte) {
			headers[string(k)] = string(v)
		})
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), headers)

		ctx, span := observability.Tracer.Start(ctx, fmt.Sprintf("%s %s", c.Method(), c.Path()),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.path", c.Path()),
				attribute.String("http.ip", c.IP()),
			),
		)
		defer span.End()

		traceID := span.SpanContext().TraceID().String()
		c.Locals("traceID", traceID)
		c.Set("X-Trace-ID", traceID)
		if rid, ok := c.Locals("requestid").(string); ok {
			span.SetAttributes(attribute.String("request.id", rid))
		}

		c.SetUserContext(ctx)
		err := c.Next()

		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
		}
		if uid, ok := c.Locals("userID").(uint); ok {
			span.SetAttributes(attribute.Int64("user.id", int64(uid)))
		}

		return err
	}
}
