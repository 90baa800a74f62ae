package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/ui"
	"github.com/desertthunder/statsweb/internal/web"
	"github.com/urfave/cli/v3"
)

// GenreOutput is the JSON shape of the genre command.
type GenreOutput struct {
	Tag     string            `json:"tag"`
	Sub     []models.GenreRef `json:"sub"`
	Related []models.GenreRef `json:"related"`
	Artists []models.Artist   `json:"artists"`
}

// TrackOutput is the JSON shape of the track command.
type TrackOutput struct {
	Track         *models.Track         `json:"track"`
	AudioFeatures *models.AudioFeatures `json:"audioFeatures,omitempty"`
}

// Genre loads a genre the way /genre/{tag} does and prints it.
func (r *Runner) Genre(ctx context.Context, cmd *cli.Command) error {
	if err := r.openCache(); err != nil {
		r.logger.Warn("continuing without cache", "error", err)
	}

	tag := cmd.StringArg("tag")

	var genre *models.Genre
	err := r.fetching(ctx, "Loading genre "+tag+"...", func(ctx context.Context) (err error) {
		genre, err = web.LoadGenre(ctx, r.stats, tag)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to load genre: %w", err)
	}
	r.logger.Debug("genre loaded", "tag", tag, "artists", len(genre.Artists))

	if cmd.Bool("json") {
		return r.writeJSON(GenreOutput{
			Tag:     tag,
			Sub:     genre.Sub,
			Related: web.RelatedGenres(genre.Sub, genre.Related),
			Artists: web.DedupeArtists(genre.Artists),
		}, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", ui.Genre(web.NewGenrePage(tag, genre)))
}

// Track loads a track the way /track/{id} does and prints it with its audio features.
//
// Missing audio features are logged and the track is printed without them.
func (r *Runner) Track(ctx context.Context, cmd *cli.Command) error {
	if err := r.openCache(); err != nil {
		r.logger.Warn("continuing without cache", "error", err)
	}

	var (
		track    *models.Track
		features *models.AudioFeatures
	)
	err := r.fetching(ctx, "Loading track...", func(ctx context.Context) (err error) {
		track, err = web.LoadTrack(ctx, r.stats, cmd.StringArg("id"))
		if err != nil {
			return err
		}

		spotifyID := track.SpotifyID()
		if spotifyID == "" {
			return nil
		}
		if features, err = r.stats.AudioFeatures(ctx, track.ID, spotifyID); err != nil {
			r.logger.Warn("audio features unavailable", "id", track.ID, "error", err)
			features = nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load track: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(TrackOutput{Track: track, AudioFeatures: features}, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", ui.Track(web.NewTrackPage(track, false), features))
}
