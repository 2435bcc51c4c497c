package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"portfoliocms/internal/delivery/http/helpers"
	"portfoliocms/internal/domain"
)

// adminPasswordHeader carries the raw shared secret for callers that skip the
// capability-token flow. The boundary re-validates it on every request; the
// server never holds admin session state.
const adminPasswordHeader = "X-Admin-Password"

// RequireAdmin returns a wrapper that admits a request carrying either a valid
// Bearer capability token or the raw admin secret in X-Admin-Password.
// Anything else gets a 401 and next is not called.
func RequireAdmin(tokens domain.TokenVerifier, secret domain.CredentialVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); auth != "" {
				const prefix = "Bearer "
				if !strings.HasPrefix(auth, prefix) {
					helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
					return
				}
				token := strings.TrimSpace(auth[len(prefix):])
				if token == "" || tokens.Verify(token) != nil {
					helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
					return
				}
				next(w, r)
				return
			}
			if password := r.Header.Get(adminPasswordHeader); password != "" {
				if secret.Verify(password) != nil {
					helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credential")
					return
				}
				next(w, r)
				return
			}
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing credentials")
		}
	}
}
