// Package requestid assigns every request an identifier for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"datalayer/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxInboundLength bounds a caller-supplied ID.
const maxInboundLength = 128

// Middleware reuses a caller-supplied X-Request-ID when it is reasonable,
// otherwise generates a UUID. The ID is echoed in the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
