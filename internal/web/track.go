package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/statsweb/internal/formatter"
	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/services"
	"github.com/desertthunder/statsweb/internal/shared"
)

// SkeletonCount is how many listener placeholders show while the listeners fragment is pending.
const SkeletonCount = 10

// TrackPage is the view model of /track/{id}.
type TrackPage struct {
	Page
	Track         *models.Track
	Cover         models.Album
	HasCover      bool
	SpotifyID     string
	FeaturesURL   string
	Authenticated bool
	Listeners     ListenersView
	Chart         RadarChart
	Streams       StreamsPanel
}

// ListenerCard is one top listener.
type ListenerCard struct {
	Position int
	Name     string
	Image    string
	Profile  string
	Streams  string
	Played   string
}

// ListenersView is the top listeners carousel. Skeletons render when Listeners is empty.
type ListenersView struct {
	Listeners []ListenerCard
	Skeletons []int
}

// StreamsPanel is the recent-streams section.
type StreamsPanel struct {
	Streams []StreamRow
}

// StreamRow is one recent play.
type StreamRow struct {
	EndTime time.Time
	Ago     string
	Played  string
}

// ParseTrackID validates the raw id route parameter.
//
// Non-numeric ids and 0 are rejected before any fetch; stats.fm ids start at 1.
func ParseTrackID(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: no param id received", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: track id %q is not a positive integer", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// LoadTrack fetches the track for the raw id parameter.
//
// A missing or non-numeric id fails before any request.
func LoadTrack(ctx context.Context, stats Stats, rawID string) (*models.Track, error) {
	id, err := ParseTrackID(rawID)
	if err != nil {
		return nil, err
	}
	return stats.GetTrack(ctx, id)
}

// TrackMeta returns the social-preview meta tags of track.
func TrackMeta(track *models.Track) []MetaTag {
	title := track.Name + " | Stats.fm"
	var meta []MetaTag

	if cover, ok := track.Cover(); ok {
		if cover.Image != "" {
			meta = append(meta, MetaTag{"og:image", cover.Image})
		}
		title = fmt.Sprintf("%s (%s) | Stats.fm", track.Name, cover.Name)
	}

	return append(meta,
		MetaTag{"og:image:alt", track.Name + "'s album cover"},
		MetaTag{"og:image:width", "240"},
		MetaTag{"og:image:height", "240"},
		MetaTag{"og:title", title},
		MetaTag{"og:description", "View " + track.Name + " on stats.fm"},
		MetaTag{"twitter:card", "summary"},
	)
}

// NewTrackPage builds the view of track. authenticated controls whether the
// recent-streams fragment is requested.
func NewTrackPage(track *models.Track, authenticated bool) TrackPage {
	cover, ok := track.Cover()
	return TrackPage{
		Page:          Page{Title: track.Name, Meta: TrackMeta(track)},
		Track:         track,
		Cover:         cover,
		HasCover:      ok && cover.Image != "",
		SpotifyID:     track.SpotifyID(),
		FeaturesURL:   featuresURL(track),
		Authenticated: authenticated,
		Listeners:     ListenersView{Skeletons: make([]int, SkeletonCount)},
		Chart:         NewRadarChart(nil),
		Streams:       StreamsPanel{},
	}
}

// featuresURL points the audio-features fragment at the track's Spotify ID.
func featuresURL(track *models.Track) string {
	u := url.URL{Path: "/track/" + strconv.Itoa(track.ID) + "/audio-features"}
	if id := track.SpotifyID(); id != "" {
		u.RawQuery = url.Values{"spotifyId": {id}}.Encode()
	}
	return u.String()
}

// NewListenerCards builds the top listener cards.
func NewListenerCards(users []models.TopUser) []ListenerCard {
	cards := make([]ListenerCard, 0, len(users))
	for _, u := range users {
		name := u.User.DisplayName
		if name == "" {
			name = u.User.CustomID
		}
		profile := u.User.CustomID
		if profile == "" {
			profile = u.User.ID
		}
		cards = append(cards, ListenerCard{
			Position: u.Position,
			Name:     name,
			Image:    u.User.Image,
			Profile:  profile,
			Streams:  formatter.Count(u.Streams),
			Played:   formatter.Minutes(u.PlayedMS),
		})
	}
	return cards
}

// NewStreamsPanel builds the recent-streams section relative to now.
func NewStreamsPanel(streams []models.Stream, now time.Time) StreamsPanel {
	panel := StreamsPanel{Streams: make([]StreamRow, 0, len(streams))}
	for _, s := range streams {
		panel.Streams = append(panel.Streams, StreamRow{
			EndTime: s.EndTime,
			Ago:     formatter.Since(s.EndTime, now),
			Played:  formatter.PlayTime(s.PlayedMS),
		})
	}
	return panel
}

func (a *App) track(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")

	track, err := LoadTrack(r.Context(), a.stats, raw)
	if err != nil {
		a.loadFailed(w, r, err, "id", raw)
		return
	}

	authenticated := services.TokenFromContext(r.Context()) != ""
	a.render(w, r, http.StatusOK, "track", NewTrackPage(track, authenticated))
}

func (a *App) listeners(w http.ResponseWriter, r *http.Request) {
	placeholder := ListenersView{Skeletons: make([]int, SkeletonCount)}

	id, err := ParseTrackID(r.PathValue("id"))
	if err != nil {
		a.renderFragment(w, r, StatusFor(err), "listeners", placeholder)
		return
	}

	users, err := a.stats.TopListeners(r.Context(), id)
	if err != nil {
		a.fragmentFailed(w, r, err, "listeners", placeholder, "id", id)
		return
	}

	if len(users) == 0 {
		a.renderFragment(w, r, http.StatusOK, "listeners", placeholder)
		return
	}
	a.renderFragment(w, r, http.StatusOK, "listeners", ListenersView{Listeners: NewListenerCards(users)})
}

// audioFeatures resolves the Spotify ID from the query, or from the track when absent.
func (a *App) audioFeatures(w http.ResponseWriter, r *http.Request) {
	placeholder := NewRadarChart(nil)

	id, err := ParseTrackID(r.PathValue("id"))
	if err != nil {
		a.renderFragment(w, r, StatusFor(err), "features", placeholder)
		return
	}

	spotifyID := r.URL.Query().Get("spotifyId")
	if spotifyID == "" {
		track, err := a.stats.GetTrack(r.Context(), id)
		if err != nil {
			a.fragmentFailed(w, r, err, "features", placeholder, "id", id)
			return
		}
		spotifyID = track.SpotifyID()
	}

	if spotifyID == "" {
		a.renderFragment(w, r, http.StatusOK, "features", placeholder)
		return
	}

	features, err := a.stats.AudioFeatures(r.Context(), id, spotifyID)
	if err != nil {
		a.fragmentFailed(w, r, err, "features", placeholder, "id", id, "spotify_id", spotifyID)
		return
	}
	a.renderFragment(w, r, http.StatusOK, "features", NewRadarChart(features))
}

// streams answers an empty panel when there is no session user.
func (a *App) streams(w http.ResponseWriter, r *http.Request) {
	placeholder := NewStreamsPanel(nil, a.now())

	id, err := ParseTrackID(r.PathValue("id"))
	if err != nil {
		a.renderFragment(w, r, StatusFor(err), "streams", placeholder)
		return
	}

	ctx := r.Context()
	if services.TokenFromContext(ctx) == "" {
		a.renderFragment(w, r, http.StatusOK, "streams", placeholder)
		return
	}

	user, err := a.stats.Me(ctx)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		a.logger.Debug("identity token rejected", "id", id)
		a.renderFragment(w, r, http.StatusOK, "streams", placeholder)
		return
	}
	if err != nil {
		a.fragmentFailed(w, r, err, "streams", placeholder, "id", id)
		return
	}

	streams, err := a.stats.TrackStreams(ctx, user.CustomID, id)
	if err != nil {
		a.fragmentFailed(w, r, err, "streams", placeholder, "id", id, "user", user.CustomID)
		return
	}

	a.renderFragment(w, r, http.StatusOK, "streams", NewStreamsPanel(streams, a.now()))
}

// fragmentFailed keeps the section pending: the placeholder is sent with 502.
func (a *App) fragmentFailed(w http.ResponseWriter, r *http.Request, err error, name string, placeholder any, kv ...any) {
	if r.Context().Err() != nil {
		a.logger.Debug("fragment cancelled", append(kv, "fragment", name)...)
		return
	}
	a.fail(r, "fragment fetch failed", err, append(kv, "fragment", name)...)
	a.renderFragment(w, r, http.StatusBadGateway, name, placeholder)
}
