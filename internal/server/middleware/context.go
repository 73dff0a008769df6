package middleware

import "context"

type contextKey struct{ name string }

var (
	userIDKey = contextKey{"user_id"}
	emailKey  = contextKey{"email"}
)

// WithIdentity returns a context with the caller's user_id and email set.
// Handlers read these via GetUserID and GetEmail.
func WithIdentity(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	return ctx
}

// GetUserID returns the caller's user_id from context and true if set; otherwise "", false.
func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// GetEmail returns the caller's email from context and true if set; otherwise "", false.
func GetEmail(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(emailKey).(string)
	return v, ok
}
