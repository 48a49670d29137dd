package auth

import "context"

// Identity is the caller as reported by the gateway. An empty UserID is an
// anonymous caller.
type Identity struct {
	UserID string
	Staff  bool
}

func (i Identity) Authenticated() bool { return i.UserID != "" }

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller identity, or an anonymous Identity when
// none was set.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}
