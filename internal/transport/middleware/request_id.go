package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/dreamboard-backend/pkg/ctxutil"
)

// RequestIDHeader is the header carrying the request correlation ID.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that ensures every request carries a
// correlation ID. An incoming X-Request-Id header is reused; otherwise a
// new UUID is generated. The ID is stored in the context and echoed back
// in the response header.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
