package middleware

import (
	"net/http"

	"github.com/templui/medtrack/internal/config"
	"github.com/templui/medtrack/internal/ctxkeys"
)

// Config puts the sanitized configuration on the request context.
// API keys, S3 credentials and the DB connection string never reach templates.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
