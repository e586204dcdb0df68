package api

import (
	"context"

	"github.com/raymondwu22/todo-api/store"
)

type (
	key byte
)

var (
	userKey  = key(1)
	tokenKey = key(2)
)

// WithIdentity attaches the resolved user and the raw token it
// presented to the request context.
func WithIdentity(ctx context.Context, user *store.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

// UserFrom returns the authenticated user attached by the gate.
func UserFrom(ctx context.Context) (*store.User, bool) {
	u, ok := ctx.Value(userKey).(*store.User)
	return u, ok
}

// TokenFrom returns the raw token the authenticated user presented.
func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok
}
