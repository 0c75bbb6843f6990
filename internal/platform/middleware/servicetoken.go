package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "datalayer/pkg/domain-errors"
	"datalayer/pkg/platform/httputil"
	"datalayer/pkg/requestcontext"
)

// ServiceTokenHeader carries the shared secret of the calling host.
const ServiceTokenHeader = "X-Service-Token"

// RequireServiceToken rejects requests whose X-Service-Token does not match
// expected. An empty expected token disables the check.
func RequireServiceToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(ServiceTokenHeader)
			// Use constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				ctx := r.Context()
				if logger != nil {
					logger.WarnContext(ctx, "service token mismatch",
						"request_id", requestcontext.RequestID(ctx),
						"token_present", token != "",
					)
				}
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "service token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
