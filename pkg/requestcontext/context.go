// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets values, services read them. Keeping this package free of
// net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	rut := requestcontext.UserRUT(ctx)
//	role := requestcontext.Role(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithUserRUT(ctx, rut)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	userRUTKey   struct{}
	roleKey      struct{}
	requestIDKey struct{}
	timeKey      struct{}
)

// UserRUT retrieves the active user's RUT from the context. Empty when the
// request is unauthenticated.
func UserRUT(ctx context.Context) string {
	if rut, ok := ctx.Value(userRUTKey{}).(string); ok {
		return rut
	}
	return ""
}

// WithUserRUT injects the active user's RUT into the context.
func WithUserRUT(ctx context.Context, rut string) context.Context {
	return context.WithValue(ctx, userRUTKey{}, rut)
}

// Role retrieves the active user's role ("guardian" or "driver").
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey{}).(string); ok {
		return role
	}
	return ""
}

// WithRole injects the active user's role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RequestID retrieves the correlation ID assigned by middleware.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Now returns the request time when set, falling back to time.Now. Tests
// inject a fixed time to make timestamp assertions deterministic.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed request time into the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey{}, t)
}
