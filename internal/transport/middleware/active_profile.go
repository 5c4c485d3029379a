package middleware

import (
	"net/http"
	"strconv"

	"github.com/heartmarshall/dreamboard-backend/pkg/ctxutil"
)

// ActiveProfileHeader names the profile the client is currently acting as.
const ActiveProfileHeader = "X-Active-Profile"

// ActiveProfile returns middleware that reads the X-Active-Profile header
// and stores the profile ID in the context. The header is optional: most
// operations work board-wide, but generation and the assistant use the
// active profile for personalization. A malformed header is ignored.
func ActiveProfile() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(ActiveProfileHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx := ctxutil.WithProfileID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
