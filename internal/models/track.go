package models

import "time"

// ExternalIDs maps other services to their identifiers for a track.
type ExternalIDs struct {
	Spotify    []string `json:"spotify"`
	AppleMusic []string `json:"appleMusic,omitempty"`
}

// Track is a single recording.
type Track struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Explicit    bool        `json:"explicit"`
	DurationMS  int         `json:"durationMs"`
	Albums      []Album     `json:"albums"`
	Artists     []ArtistRef `json:"artists"`
	ExternalIDs ExternalIDs `json:"externalIds"`
}

// SpotifyID returns the first Spotify ID of the track, or "" when it has none.
func (t Track) SpotifyID() string {
	if len(t.ExternalIDs.Spotify) == 0 {
		return ""
	}
	return t.ExternalIDs.Spotify[0]
}

// Cover returns the first album of the track, if any.
func (t Track) Cover() (Album, bool) {
	if len(t.Albums) == 0 {
		return Album{}, false
	}
	return t.Albums[0], true
}

// Album is an album a track appears on.
type Album struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ArtistRef is an artist credited on a track.
type ArtistRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AudioFeatures holds audio analysis values. The first seven are in [0,1].
type AudioFeatures struct {
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Valence          float64 `json:"valence"`

	Loudness      float64 `json:"loudness"`
	Tempo         float64 `json:"tempo"`
	Key           int     `json:"key"`
	Mode          int     `json:"mode"`
	TimeSignature int     `json:"time_signature"`
}

// Stream is one play of a track.
type Stream struct {
	ID        string    `json:"id"`
	EndTime   time.Time `json:"endTime"`
	PlayedMS  int       `json:"playedMs"`
	TrackID   int       `json:"trackId"`
	TrackName string    `json:"trackName"`
}
