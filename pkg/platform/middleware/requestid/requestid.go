package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"rutasegura/pkg/requestcontext"
)

// Header carries the correlation ID back to clients.
const Header = "X-Request-Id"

// Middleware assigns a request ID to every request, honoring an inbound one
// so mobile clients can correlate retries.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
