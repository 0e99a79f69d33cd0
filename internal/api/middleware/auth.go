package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"cp_assistant/internal/common"
)

// BearerAuth guards routes with a single static token. When no token is
// configured the middleware is a no-op so local setups keep working.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			presented, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || presented == "" {
				unauthorized(w, "authorization token required")
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				unauthorized(w, "invalid authorization token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	common.RespondWithJSON(w, http.StatusUnauthorized, common.ErrorResponse{
		Error: msg,
		Kind:  "unauthorized",
	})
}
