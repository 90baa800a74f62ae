package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/shared"
)

// Cacher stores raw response bodies of primary resources.
//
// Get returns [shared.ErrCacheMiss] when no entry younger than maxAge exists.
type Cacher interface {
	Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}

// StatsService is the typed stats.fm client used by the pages.
type StatsService struct {
	api    *APIService
	cache  Cacher
	ttl    time.Duration
	logger *log.Logger
}

// StatsOption configures a [StatsService].
type StatsOption func(*StatsService)

// WithCache serves genres and tracks from c while younger than ttl.
func WithCache(c Cacher, ttl time.Duration) StatsOption {
	return func(s *StatsService) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *log.Logger) StatsOption {
	return func(s *StatsService) { s.logger = l }
}

// NewStatsService creates a [StatsService] over api.
func NewStatsService(api *APIService, opts ...StatsOption) *StatsService {
	s := &StatsService{api: api, logger: shared.NewLogger(nil)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetGenre fetches a genre by tag.
func (s *StatsService) GetGenre(ctx context.Context, tag string) (*models.Genre, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: genre tag", shared.ErrMissingArgument)
	}

	path := "/genres/" + url.PathEscape(tag)
	genre, err := getCached[models.Genre](ctx, s, path, "genre:"+tag)
	if err != nil {
		return nil, fmt.Errorf("get genre %q: %w", tag, err)
	}
	return &genre, nil
}

// GetTrack fetches a track by id.
func (s *StatsService) GetTrack(ctx context.Context, id int) (*models.Track, error) {
	path := "/tracks/" + strconv.Itoa(id)
	track, err := getCached[models.Track](ctx, s, path, "track:"+strconv.Itoa(id))
	if err != nil {
		return nil, fmt.Errorf("get track %d: %w", id, err)
	}
	return &track, nil
}

// TopListeners fetches the top listeners of a track.
func (s *StatsService) TopListeners(ctx context.Context, id int) ([]models.TopUser, error) {
	var resp models.ItemsResponse[models.TopUser]
	path := "/tracks/" + strconv.Itoa(id) + "/top/listeners"
	if err := s.api.GetJSON(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("top listeners of track %d: %w", id, err)
	}
	return resp.Items, nil
}

// AudioFeatures fetches the audio features of a track keyed by its Spotify ID.
//
// An empty spotifyID is rejected without calling the API.
func (s *StatsService) AudioFeatures(ctx context.Context, id int, spotifyID string) (*models.AudioFeatures, error) {
	if spotifyID == "" {
		return nil, fmt.Errorf("%w: spotify id of track %d", shared.ErrMissingArgument, id)
	}

	var resp models.ItemResponse[models.AudioFeatures]
	path := "/tracks/" + strconv.Itoa(id) + "/audio-features"
	if err := s.api.GetJSON(ctx, path, url.Values{"trackIds": {spotifyID}}, &resp); err != nil {
		return nil, fmt.Errorf("audio features of track %d: %w", id, err)
	}
	return &resp.Item, nil
}

// Me fetches the user owning the token in ctx.
func (s *StatsService) Me(ctx context.Context) (*models.UserPrivate, error) {
	if TokenFromContext(ctx) == "" {
		return nil, shared.ErrNotAuthenticated
	}

	var resp models.ItemResponse[models.UserPrivate]
	if err := s.api.GetJSON(ctx, "/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &resp.Item, nil
}

// TrackStreams fetches the streams of a track by the user with customID.
func (s *StatsService) TrackStreams(ctx context.Context, customID string, id int) ([]models.Stream, error) {
	if customID == "" {
		return nil, fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	var resp models.ItemsResponse[models.Stream]
	path := "/users/" + url.PathEscape(customID) + "/streams"
	query := url.Values{"trackId": {strconv.Itoa(id)}}
	if err := s.api.GetJSON(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("streams of track %d: %w", id, err)
	}
	return resp.Items, nil
}

// getCached fetches the item at path, consulting the cache under key first.
//
// Cache failures are logged and never fail the request.
func getCached[T any](ctx context.Context, s *StatsService, path, key string) (T, error) {
	var resp models.ItemResponse[T]

	if s.cache != nil {
		body, err := s.cache.Get(ctx, key, s.ttl)
		switch {
		case err == nil:
			if err := json.Unmarshal(body, &resp); err == nil {
				s.logger.Debug("cache hit", "key", key)
				return resp.Item, nil
			}
			s.logger.Warn("discarding undecodable cache entry", "key", key)
		case !errors.Is(err, shared.ErrCacheMiss):
			s.logger.Warn("cache read failed", "key", key, "error", err)
		}
	}

	apiResp, err := s.api.Get(ctx, path, nil)
	if err != nil {
		return resp.Item, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := apiResp.Err(path); err != nil {
		return resp.Item, err
	}
	if err := json.Unmarshal(apiResp.Body, &resp); err != nil {
		return resp.Item, fmt.Errorf("%w: %s: %v", shared.ErrDecode, path, err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, apiResp.Body); err != nil {
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return resp.Item, nil
}
