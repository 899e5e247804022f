package middleware

import (
	"context"
)

// ctxKey is used for storing values in request context.
type ctxKey string

const userKey ctxKey = "user"

// UserKey returns the context key used to store the user subject.
func UserKey() any { return userKey }

// UserFromContext returns the user subject stored in the context.
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userKey).(string); ok {
		return v
	}
	return ""
}
