package web

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/shared"
)

func names(artists []models.Artist) string {
	out := make([]string, len(artists))
	for i, a := range artists {
		out[i] = a.Name
	}
	return strings.Join(out, ",")
}

func tags(refs []models.GenreRef) string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Tag
	}
	return strings.Join(out, ",")
}

func TestDedupeArtists(t *testing.T) {
	tc := []struct {
		name  string
		input []models.Artist
		want  string
	}{
		{name: "empty", input: nil, want: ""},
		{name: "no duplicates", input: []models.Artist{{Name: "A"}, {Name: "B"}}, want: "A,B"},
		{name: "first seen order", input: []models.Artist{{Name: "A"}, {Name: "B"}, {Name: "A"}}, want: "A,B"},
		{name: "later duplicates", input: []models.Artist{{Name: "C"}, {Name: "B"}, {Name: "B"}, {Name: "A"}, {Name: "C"}}, want: "C,B,A"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := names(DedupeArtists(tt.input)); got != tt.want {
				t.Errorf("DedupeArtists() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("same name different ids collapse", func(t *testing.T) {
		got := DedupeArtists([]models.Artist{{ID: 1, Name: "Nirvana"}, {ID: 2, Name: "Nirvana"}})
		if len(got) != 1 || got[0].ID != 1 {
			t.Errorf("expected first artist only, got %+v", got)
		}
	})
}

func TestRelatedGenres(t *testing.T) {
	tc := []struct {
		name    string
		sub     []models.GenreRef
		related []models.GenreRef
		want    string
	}{
		{name: "shared tag removed", sub: []models.GenreRef{{Tag: "rock"}}, related: []models.GenreRef{{Tag: "rock"}, {Tag: "pop"}}, want: "pop"},
		{name: "no sub", related: []models.GenreRef{{Tag: "rock"}, {Tag: "pop"}}, want: "rock,pop"},
		{name: "all shared", sub: []models.GenreRef{{Tag: "pop"}, {Tag: "rock"}}, related: []models.GenreRef{{Tag: "rock"}, {Tag: "pop"}}, want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tags(RelatedGenres(tt.sub, tt.related)); got != tt.want {
				t.Errorf("RelatedGenres() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGenrePage(t *testing.T) {
	page := NewGenrePage("rock", &models.Genre{
		Sub:     []models.GenreRef{{Tag: "rock"}},
		Related: []models.GenreRef{{Tag: "rock"}},
		Artists: []models.Artist{{Name: "A", Followers: 2500000000}},
	})

	if !page.ShowRelated || len(page.Related) != 0 {
		t.Errorf("expected related section without chips, got %+v", page.Related)
	}
	if page.Artists[0].Followers != "2.5B" {
		t.Errorf("expected 2.5B, got %s", page.Artists[0].Followers)
	}
	if page.Title != "rock" {
		t.Errorf("expected title rock, got %s", page.Title)
	}
}

func TestParseTrackID(t *testing.T) {
	tc := []struct {
		raw  string
		want int
		err  error
	}{
		{raw: "42", want: 42},
		{raw: "", err: shared.ErrMissingArgument},
		{raw: "abc", err: shared.ErrInvalidArgument},
		{raw: "12abc", err: shared.ErrInvalidArgument},
		{raw: "0", err: shared.ErrInvalidArgument},
		{raw: "-3", err: shared.ErrInvalidArgument},
	}

	for _, tt := range tc {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			got, err := ParseTrackID(tt.raw)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseTrackID() = %d, %v; want %d", got, err, tt.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tc := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: fmt.Errorf("%w: tag", shared.ErrMissingArgument), want: http.StatusInternalServerError},
		{err: fmt.Errorf("%w: id", shared.ErrInvalidArgument), want: http.StatusBadRequest},
		{err: fmt.Errorf("get track 1: %w", shared.ErrNotFound), want: http.StatusNotFound},
		{err: shared.ErrAPIRequest, want: http.StatusInternalServerError},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tc {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestTrackMeta(t *testing.T) {
	track := &models.Track{Name: "Song", Albums: []models.Album{{Name: "Album"}}}

	meta := map[string]string{}
	for _, m := range TrackMeta(track) {
		meta[m.Property] = m.Content
	}

	if _, ok := meta["og:image"]; ok {
		t.Error("expected no og:image for an album without image")
	}
	if meta["og:title"] != "Song (Album) | Stats.fm" {
		t.Errorf("unexpected og:title %q", meta["og:title"])
	}
	if meta["twitter:card"] != "summary" {
		t.Errorf("unexpected twitter:card %q", meta["twitter:card"])
	}
}

func TestNewTrackPage(t *testing.T) {
	track := testTrack()
	track.ExternalIDs.Spotify = []string{"a b"}

	page := NewTrackPage(&track, false)
	if page.FeaturesURL != "/track/42/audio-features?spotifyId=a+b" {
		t.Errorf("unexpected features url %q", page.FeaturesURL)
	}
	if len(page.Listeners.Skeletons) != SkeletonCount || len(page.Listeners.Listeners) != 0 {
		t.Errorf("expected pending listeners, got %+v", page.Listeners)
	}
	if !page.Chart.Empty {
		t.Error("expected empty chart before features load")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.02
}

func TestNewRadarChart(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		chart := NewRadarChart(nil)

		if !chart.Empty || chart.Polygon != "" || len(chart.Points) != 0 {
			t.Errorf("expected no data, got %+v", chart)
		}
		if len(chart.Axes) != len(RadarLabels) {
			t.Errorf("expected %d axes, got %d", len(RadarLabels), len(chart.Axes))
		}
	})

	t.Run("grid", func(t *testing.T) {
		chart := NewRadarChart(nil)

		want := []float64{27.5, 55, 82.5, 110}
		if len(chart.Rings) != len(want) {
			t.Fatalf("expected %d rings, got %v", len(want), chart.Rings)
		}
		for i := range want {
			if !near(chart.Rings[i], want[i]) {
				t.Errorf("ring %d = %v, want %v", i, chart.Rings[i], want[i])
			}
		}
	})

	t.Run("styling", func(t *testing.T) {
		chart := NewRadarChart(nil)

		if chart.Fill != "rgb(30, 215, 96, 0.2)" || chart.Border != "rgb(30, 215, 96)" {
			t.Errorf("unexpected dataset colours %q %q", chart.Fill, chart.Border)
		}
		if chart.Grid != "rgb(23, 26, 32)" || chart.Label != "rgb(163, 163, 163)" {
			t.Errorf("unexpected scale colours %q %q", chart.Grid, chart.Label)
		}
		if chart.LabelSize != 12 || chart.LineWidth != 3 {
			t.Errorf("unexpected sizes %d %d", chart.LabelSize, chart.LineWidth)
		}
	})

	t.Run("geometry", func(t *testing.T) {
		chart := NewRadarChart(&models.AudioFeatures{Acousticness: 1, Danceability: 0.5})

		c := chart.Center
		top := chart.Points[0]
		if !near(top.X, c) || !near(top.Y, c-110) {
			t.Errorf("expected first point at the top, got %+v", top)
		}
		if chart.Axes[0].Anchor != "middle" || chart.Axes[1].Anchor != "start" || chart.Axes[6].Anchor != "end" {
			t.Errorf("unexpected anchors %s %s %s", chart.Axes[0].Anchor, chart.Axes[1].Anchor, chart.Axes[6].Anchor)
		}

		second := chart.Points[1]
		dist := math.Hypot(second.X-c, second.Y-c)
		if !near(dist, 55) {
			t.Errorf("expected half radius for 0.5, got %v", dist)
		}

		for i := 2; i < len(chart.Points); i++ {
			if !near(chart.Points[i].X, c) || !near(chart.Points[i].Y, c) {
				t.Errorf("expected zero value at center, got %+v", chart.Points[i])
			}
		}
		if n := len(strings.Fields(chart.Polygon)); n != len(RadarLabels) {
			t.Errorf("expected %d polygon vertices, got %d", len(RadarLabels), n)
		}
	})

	t.Run("clamps values", func(t *testing.T) {
		chart := NewRadarChart(&models.AudioFeatures{Acousticness: 1.7, Danceability: -0.2, Energy: math.NaN()})

		if chart.Axes[0].Value != 1 || chart.Axes[1].Value != 0 || chart.Axes[2].Value != 0 {
			t.Errorf("unexpected clamped values %v %v %v", chart.Axes[0].Value, chart.Axes[1].Value, chart.Axes[2].Value)
		}
	})
}
