// Package telemetry forwards errors and panics to Sentry.
//
// Every function is a no-op until [Init] is called with a DSN, so callers never
// need to check whether error tracking is enabled.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/desertthunder/statsweb/internal/shared"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// Init configures the global Sentry client from cfg.
//
// Returns false when no DSN is configured.
func Init(cfg shared.SentryConfig, release string) (bool, error) {
	if cfg.DSN == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          release,
		SampleRate:       cfg.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Middleware binds a cloned hub to each request so captured errors carry request data.
//
// Panics are re-raised for the server's own recovery middleware.
func Middleware(next http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}

// HubFromContext returns the request's hub, falling back to the current hub.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx != nil {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			return hub
		}
	}
	return sentry.CurrentHub()
}

// Report captures err on the hub in ctx.
func Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	HubFromContext(ctx).CaptureException(err)
}

// SetTag tags every later event captured on the hub in ctx.
func SetTag(ctx context.Context, key, value string) {
	HubFromContext(ctx).ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag(key, value)
	})
}

// Flush waits up to timeout for buffered events to be sent.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
