package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/templui/medtrack/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenLen   = 32
)

// CSRFProtection issues a double-submit token on safe requests and checks it on
// every state-changing one (add, toggle, dismiss).
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfToken(w, r)
		ctx := ctxkeys.WithCSRFToken(r.Context(), token)

		// Safe methods only need the token issued for later forms
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// Get submitted token, header first:
		// 1. Header (htmx sends it from hx-headers on <body>)
		// 2. Form field (plain form posts)
		submitted := r.Header.Get(csrfHeader)
		if submitted == "" {
			submitted = r.PostFormValue(csrfFormField)
		}

		// Validate token using constant-time comparison
		if !validCSRFToken(token, submitted) {
			slog.Warn("csrf validation failed",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", clientIP(r),
			)
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// csrfToken returns the token from the cookie, issuing a new one when missing or malformed
func csrfToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && len(cookie.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenLen) {
		return cookie.Value
	}

	token := generateCSRFToken()

	cfg := ctxkeys.Config(r.Context())

	// SameSite=Lax plus the double-submit check above
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(), // based on APP_ENV, r.TLS is unset behind a proxy
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7, // 7 days
	})

	return token
}

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() string {
	b := make([]byte, csrfTokenLen)
	_, err := rand.Read(b)
	if err != nil {
		panic("failed to generate csrf token: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// validCSRFToken performs constant-time comparison of tokens
func validCSRFToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
