package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/statsweb/internal/formatter"
	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/shared"
)

// GenrePage is the view model of /genre/{tag}.
type GenrePage struct {
	Page
	Tag     string
	Sub     []models.GenreRef
	Related []models.GenreRef
	// ShowRelated follows the unfiltered related list, so the section can render with no chips.
	ShowRelated bool
	Artists     []ArtistCard
}

// ArtistCard is one entry of the top artists grid.
type ArtistCard struct {
	ID        int
	Name      string
	Image     string
	Followers string
	Genres    []string
}

// LoadGenre fetches the genre for tag. An empty tag fails before any request.
func LoadGenre(ctx context.Context, stats Stats, tag string) (*models.Genre, error) {
	if tag == "" {
		return nil, fmt.Errorf("%w: no param tag received", shared.ErrMissingArgument)
	}
	return stats.GetGenre(ctx, tag)
}

// NewGenrePage builds the view of genre as requested under tag.
func NewGenrePage(tag string, genre *models.Genre) GenrePage {
	artists := DedupeArtists(genre.Artists)
	cards := make([]ArtistCard, 0, len(artists))
	for _, artist := range artists {
		cards = append(cards, ArtistCard{
			ID:        artist.ID,
			Name:      artist.Name,
			Image:     artist.Image,
			Followers: formatter.CompactNumber(int64(artist.Followers)),
			Genres:    artist.Genres,
		})
	}

	return GenrePage{
		Page:        Page{Title: tag},
		Tag:         tag,
		Sub:         genre.Sub,
		Related:     RelatedGenres(genre.Sub, genre.Related),
		ShowRelated: len(genre.Related) > 0,
		Artists:     cards,
	}
}

// DedupeArtists drops every artist whose name was already seen, keeping first-seen order.
//
// Distinct artists sharing a display name collapse into the first of them.
func DedupeArtists(artists []models.Artist) []models.Artist {
	seen := make(map[string]struct{}, len(artists))
	out := make([]models.Artist, 0, len(artists))
	for _, artist := range artists {
		if _, ok := seen[artist.Name]; ok {
			continue
		}
		seen[artist.Name] = struct{}{}
		out = append(out, artist)
	}
	return out
}

// RelatedGenres returns related without the tags present in sub.
func RelatedGenres(sub, related []models.GenreRef) []models.GenreRef {
	tags := make(map[string]struct{}, len(sub))
	for _, g := range sub {
		tags[g.Tag] = struct{}{}
	}

	out := make([]models.GenreRef, 0, len(related))
	for _, g := range related {
		if _, ok := tags[g.Tag]; !ok {
			out = append(out, g)
		}
	}
	return out
}

func (a *App) genre(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")

	genre, err := LoadGenre(r.Context(), a.stats, tag)
	if err != nil {
		a.loadFailed(w, r, err, "tag", tag)
		return
	}

	a.render(w, r, http.StatusOK, "genre", NewGenrePage(tag, genre))
}
