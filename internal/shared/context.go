package shared

import "context"

type userIDContextKey struct{}

// ContextWithUserID stores the authenticated user's ID in context.
func ContextWithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, id)
}

// UserIDFromContext extracts the authenticated user's ID, or 0 when absent.
func UserIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDContextKey{}).(int64)
	return id
}
