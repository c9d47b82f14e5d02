package user

import "context"

type callerKey struct{}

// WithCaller attaches the authenticated principal to ctx.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the principal set by WithCaller.
func CallerFromContext(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || c.EmployeeID == "" {
		return Caller{}, ErrCallerMissing
	}
	return c, nil
}
