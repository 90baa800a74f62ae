// Package web renders the genre and track pages.
//
// # Pages
//
// Each page has a loader that fetches its primary resource before anything is
// written, and a view model built from that resource:
//
//	GET /genre/{tag}  → [LoadGenre], [NewGenrePage]
//	GET /track/{id}   → [LoadTrack], [NewTrackPage]
//
// # Fragments
//
// The track page loads three sections after first render through hx-get. Each
// is an independent request:
//
//	GET /track/{id}/listeners      → top listeners (skeleton cards while pending)
//	GET /track/{id}/audio-features → radar chart keyed by the Spotify ID
//	GET /track/{id}/streams        → recent streams of the session user
//
// A failed fragment answers 502 with its placeholder so the section stays pending.
//
// # Authentication
//
// The identityToken cookie is moved into the request context by
// [server.IdentityToken]; nothing in this package stores it.
package web

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/server"
	"github.com/desertthunder/statsweb/internal/shared"
)

// Stats is the subset of the stats.fm client the pages need.
type Stats interface {
	GetGenre(ctx context.Context, tag string) (*models.Genre, error)
	GetTrack(ctx context.Context, id int) (*models.Track, error)
	TopListeners(ctx context.Context, id int) ([]models.TopUser, error)
	AudioFeatures(ctx context.Context, id int, spotifyID string) (*models.AudioFeatures, error)
	Me(ctx context.Context) (*models.UserPrivate, error)
	TrackStreams(ctx context.Context, customID string, id int) ([]models.Stream, error)
}

// App serves the pages and fragments. It implements [server.Handler].
type App struct {
	stats     Stats
	logger    *log.Logger
	report    server.Reporter
	now       func() time.Time
	pages     map[string]*template.Template
	fragments *template.Template
}

// Option configures an [App].
type Option func(*App)

// WithLogger sets the logger for loader and fragment failures.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithReporter forwards server errors and fragment failures to report.
func WithReporter(report server.Reporter) Option {
	return func(a *App) { a.report = report }
}

// WithClock overrides the time used for relative stream times.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates an [App] over stats and parses the embedded templates.
func New(stats Stats, opts ...Option) (*App, error) {
	app := &App{
		stats:  stats,
		logger: shared.NewLogger(nil),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.parseTemplates(); err != nil {
		return nil, err
	}
	return app, nil
}

// Routes implements [server.Handler].
func (a *App) Routes() []server.Route {
	return []server.Route{
		{Method: http.MethodGet, Path: "/genre/{tag...}", Handler: http.HandlerFunc(a.genre)},
		{Method: http.MethodGet, Path: "/track/{id...}", Handler: http.HandlerFunc(a.track)},
		{Method: http.MethodGet, Path: "/track/{id}/listeners", Handler: http.HandlerFunc(a.listeners)},
		{Method: http.MethodGet, Path: "/track/{id}/audio-features", Handler: http.HandlerFunc(a.audioFeatures)},
		{Method: http.MethodGet, Path: "/track/{id}/streams", Handler: http.HandlerFunc(a.streams)},
		{Method: http.MethodGet, Path: "/static/", Handler: staticHandler()},
		{Method: http.MethodGet, Path: "/healthz", Handler: http.HandlerFunc(healthz)},
		{Method: http.MethodGet, Path: "/", Handler: http.HandlerFunc(a.notFound)},
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, http.StatusNotFound)
}
