package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RequireClientKey guards the web submission routes with a static bearer
// key so only the event's own frontend can call them.
func RequireClientKey(clientKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if clientKey == "" {
				WriteAPIError(w, http.StatusServiceUnavailable, "auth_unconfigured", "API client key is not configured")
				return
			}
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || subtle.ConstantTimeCompare([]byte(token), []byte(clientKey)) != 1 {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOperator guards the on-site data routes with the operator passcode.
// The passcode travels in a header and is checked against its bcrypt hash;
// the plaintext is never stored on the kiosk.
func RequireOperator(passcodeHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if passcodeHash == "" {
				WriteAPIError(w, http.StatusServiceUnavailable, "auth_unconfigured", "Operator passcode is not configured")
				return
			}
			passcode := r.Header.Get("X-Operator-Passcode")
			if passcode == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing operator passcode")
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(passcodeHash), []byte(passcode)); err != nil {
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Invalid operator passcode")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
