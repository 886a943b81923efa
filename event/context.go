package event

import "context"

type contextKey struct{}

// NewContext returns a context carrying the parsed event. The bridge attaches
// it before calling the application so handlers can reach source-specific
// fields (authorizer claims, the ELB target group ARN) that have no place in
// the canonical request.
func NewContext(ctx context.Context, e *Event) context.Context {
	return context.WithValue(ctx, contextKey{}, e)
}

// FromContext returns the event attached by NewContext, if any.
func FromContext(ctx context.Context) (*Event, bool) {
	e, ok := ctx.Value(contextKey{}).(*Event)
	return e, ok
}
