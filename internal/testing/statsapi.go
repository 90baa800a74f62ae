package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is a request seen by [StatsAPI].
type RecordedRequest struct {
	Path          string
	RawQuery      string
	Authorization string
}

// StatsAPI is an in-process stand-in for the stats.fm API.
//
// Routes are keyed by URL path; unknown paths answer 404 with an error body.
type StatsAPI struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewStatsAPI starts a fake API server that is closed when t finishes.
func NewStatsAPI(t *testing.T) *StatsAPI {
	t.Helper()

	api := &StatsAPI{routes: map[string]http.HandlerFunc{}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

// Item answers path with {"item": v}.
func (s *StatsAPI) Item(path string, v any) {
	s.Handle(path, JSONHandler(http.StatusOK, map[string]any{"item": v}))
}

// Items answers path with {"items": v}.
func (s *StatsAPI) Items(path string, v any) {
	s.Handle(path, JSONHandler(http.StatusOK, map[string]any{"items": v}))
}

// Status answers path with an empty error body and code.
func (s *StatsAPI) Status(path string, code int) {
	s.Handle(path, JSONHandler(code, map[string]string{"message": http.StatusText(code)}))
}

// Handle registers h for path.
func (s *StatsAPI) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = h
}

// Requests returns a copy of the requests served so far.
func (s *StatsAPI) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Count returns how many requests hit path.
func (s *StatsAPI) Count(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *StatsAPI) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
	})
	h, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		JSONHandler(http.StatusNotFound, map[string]string{"message": "Not Found"})(w, r)
		return
	}
	h(w, r)
}

// JSONHandler writes v as JSON with the given status.
func JSONHandler(code int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(v)
	}
}
