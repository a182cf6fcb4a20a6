package session

import "context"

// Context is what the request carries into the file core: whether the
// caller logged in, and as whom.
type Context struct {
	Authenticated bool
	User          string
}

type ctxKey struct{}

func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func FromContext(ctx context.Context) Context {
	c, _ := ctx.Value(ctxKey{}).(Context)
	return c
}
