package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// WithUserID stamps the authenticated user id onto the request context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the authenticated user id, or uuid.Nil when the request
// is anonymous.
func UserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(contextKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
