package ctxutil

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	profileIDKey ctxKey = "profile_id"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithProfileID stores the active profile ID in the context.
func WithProfileID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, profileIDKey, id)
}

// ProfileIDFromCtx extracts the active profile ID from the context.
// Returns 0 and false when no active profile was selected.
func ProfileIDFromCtx(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(profileIDKey).(int64)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
