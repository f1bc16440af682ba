package middleware

import (
	"context"

	"github.com/baharkarakas/bloglist-backend/internal/models"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, who models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, who)
}

// IdentityFrom returns the identity stored by Auth, if any.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	who, ok := ctx.Value(identityKey{}).(models.Identity)
	return who, ok
}
