package ctxkeys

import (
	"context"

	"github.com/proofdesk/portal/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	IdentityKey contextKey = "identity"
	NameKey     contextKey = "name"
)

// Identity returns the customer identity attached by the auth middleware.
// The zero value means an unauthenticated request.
func Identity(ctx context.Context) model.CustomerIdentity {
	identity, _ := ctx.Value(IdentityKey).(model.CustomerIdentity)
	return identity
}

func WithIdentity(ctx context.Context, identity model.CustomerIdentity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// Name returns the display name claim, when the token carried one.
func Name(ctx context.Context) string {
	name, _ := ctx.Value(NameKey).(string)
	return name
}

func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, NameKey, name)
}
