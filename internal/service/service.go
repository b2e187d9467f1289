// Package service holds the ownership rules and lookup order that sit
// between the HTTP handlers and the repositories.
package service

import (
	"context"
	"fmt"
	"time"

	"recshelf/internal/models"
	"recshelf/internal/observability"

	"go.opentelemetry.io/otel/trace"
)

// Clock returns the current time; services store timestamps in UTC.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func traced(ctx context.Context, component, method string) (context.Context, trace.Span) {
	return observability.StartServiceSpan(ctx, component, method)
}

func nullField(field string) error {
	return models.NewValidationError(fmt.Sprintf("%s may not be null", field))
}

func forbidden(action, resource string, id uint) error {
	return models.NewForbiddenError(fmt.Sprintf("User has no permission to %s %s with id %d", action, resource, id))
}

func endSpan(span trace.Span, err error) {
	observability.EndSpan(span, err)
}
