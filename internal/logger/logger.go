package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Init installs the global logger.
// Development: text at Debug. Production: JSON at Info.
// With a Sentry DSN, error records (failed reminder deliveries included) are also sent to Sentry.
// The returned func flushes buffered Sentry events and should run before exit.
func Init(isDev bool, sentryDSN, environment string) func() {
	var handlers []slog.Handler

	if isDev {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	flush := func() {}
	var sentryErr error
	if sentryDSN != "" {
		sentryErr = sentry.Init(sentry.ClientOptions{
			Dsn:         sentryDSN,
			Environment: environment,
		})
		if sentryErr == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler).With("service", "medtrack")
	slog.SetDefault(Log)

	if sentryErr != nil {
		Log.Warn("sentry disabled", "error", sentryErr)
	}
	return flush
}
