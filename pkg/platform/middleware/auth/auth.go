package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"rutasegura/internal/jwtauth"
	"rutasegura/pkg/requestcontext"
)

// TokenValidator validates bearer tokens handed out at sign-in.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwtauth.Claims, error)
}

// writeJSONError writes a JSON error response without importing httputil,
// keeping middleware dependency-light.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + errCode + `","error_description":"` + errDesc + `"}`))
}

// RequireAuth resolves the active identity from the Authorization header and
// injects it into the request context. Authentication itself happens outside
// this service; here we only verify what sign-in issued and hand the identity
// to the core operations.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx := requestcontext.WithUserRUT(r.Context(), claims.RUT)
			ctx = requestcontext.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
