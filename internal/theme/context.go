package theme

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying mode m.
func NewContext(ctx context.Context, m Mode) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the mode stored in ctx. ok is false until a mode has
// been resolved for the request or session.
func FromContext(ctx context.Context) (m Mode, ok bool) {
	m, ok = ctx.Value(contextKey{}).(Mode)
	return m, ok
}

// StylesFromContext resolves the styles for the mode in ctx, falling back to
// the light table when none is set.
func StylesFromContext(ctx context.Context) Styles {
	m, _ := FromContext(ctx)
	return Resolve(m)
}
