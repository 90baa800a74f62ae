package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/desertthunder/statsweb/internal/server"
	"github.com/desertthunder/statsweb/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page holds what the layout needs from every page.
type Page struct {
	Title string
	Meta  []MetaTag
}

// MetaTag is a social-preview meta element.
type MetaTag struct {
	Property string
	Content  string
}

// ErrorPage is the generic failure page.
type ErrorPage struct {
	Page
	Status  int
	Message string
}

func (a *App) parseTemplates() error {
	base, err := template.ParseFS(templateFS, "templates/layout.html", "templates/fragments.html")
	if err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}
	a.fragments = base

	a.pages = map[string]*template.Template{}
	for _, name := range []string{"genre", "track", "error"} {
		page, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		a.pages[name] = page
	}
	return nil
}

// render executes a page into a buffer first so a template failure never sends a partial page.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		a.fail(r, "render page", err, "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (a *App) renderFragment(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		a.fail(r, "render fragment", err, "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int) {
	a.render(w, r, status, "error", ErrorPage{
		Page:    Page{Title: http.StatusText(status)},
		Status:  status,
		Message: http.StatusText(status),
	})
}

// StatusFor maps a loader error to the response status of its page.
//
// A missing route parameter is a server error, like any failure that is not
// an invalid parameter or an upstream not found.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// loadFailed logs a loader error and renders the error page for it.
func (a *App) loadFailed(w http.ResponseWriter, r *http.Request, err error, kv ...any) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		a.fail(r, "page load failed", err, kv...)
	} else {
		a.logger.Warn("page load rejected", append(kv, "error", err, "status", status)...)
	}
	a.renderError(w, r, status)
}

// fail logs err and forwards it to the reporter.
func (a *App) fail(r *http.Request, msg string, err error, kv ...any) {
	kv = append(kv, "error", err, "request_id", server.RequestIDFromContext(r.Context()))
	a.logger.Error(msg, kv...)
	if a.report != nil {
		a.report(r.Context(), err)
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
