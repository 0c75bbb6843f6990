package providers

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("datalayer/providers")

// Fetch runs one collaborator call. It never panics: a panic inside fn is
// recovered and reported as an ErrorPanic CollaboratorError. On failure the
// zero value of T is returned alongside the error.
func Fetch[T any](ctx context.Context, source string, fn func(context.Context) (T, error)) (result T, cerr *CollaboratorError) {
	ctx, span := tracer.Start(ctx, "datalayer.fetch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("datalayer.source", source)),
	)
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			cerr = &CollaboratorError{
				Source:     source,
				Category:   ErrorPanic,
				Message:    fmt.Sprint(r),
				Underlying: ErrPanicked,
			}
		}
		if cerr != nil {
			span.SetStatus(codes.Error, string(cerr.Category))
		}
		span.End()
	}()

	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, NewCollaboratorError(source, err)
	}
	return v, nil
}
