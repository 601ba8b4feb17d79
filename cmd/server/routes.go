package main

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/justinas/alice"
	"github.com/xdoubleu/essentia/v2/pkg/middleware"
)

func (app *Application) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", app.healthHandler)
	mux.HandleFunc("POST /webhook", app.webhookHandler)
	mux.HandleFunc("GET /calendars/{name}/events.ics", app.keyAccess(app.exportHandler))
	mux.HandleFunc("GET /interactions", app.keyAccess(app.interactionsHandler))

	var sentryClientOptions sentry.ClientOptions
	if len(app.config.SentryDsn) > 0 {
		//nolint:exhaustruct //other fields are optional
		sentryClientOptions = sentry.ClientOptions{
			Dsn:              app.config.SentryDsn,
			Environment:      app.config.Env,
			Release:          app.config.Release,
			EnableTracing:    true,
			TracesSampleRate: app.config.SampleRate,
			SampleRate:       app.config.SampleRate,
		}
	}

	allowedOrigins := []string{app.config.WebURL}
	handlers, err := middleware.DefaultWithSentry(
		app.logger,
		allowedOrigins,
		app.config.Env,
		sentryClientOptions,
	)

	if err != nil {
		panic(err)
	}

	standard := alice.New(handlers...)
	return standard.Then(mux)
}

// keyAccess guards read endpoints with the shared webhook key passed as
// ?key=.
func (app *Application) keyAccess(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.config.WebhookAPIKey != "" &&
			r.URL.Query().Get("key") != app.config.WebhookAPIKey {
			http.Error(w, "Invalid key", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
