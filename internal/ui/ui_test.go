package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/tasks"
	"github.com/desertthunder/statsweb/internal/web"
)

func TestGenre(t *testing.T) {
	page := web.NewGenrePage("rock", &models.Genre{
		Sub:     []models.GenreRef{{Tag: "indie rock"}},
		Related: []models.GenreRef{{Tag: "indie rock"}, {Tag: "pop"}},
		Artists: []models.Artist{
			{Name: "A", Followers: 1234567, Genres: []string{"rock"}},
			{Name: "A", Followers: 1},
			{Name: "B", Followers: 1500},
		},
	})

	out := Genre(page)
	for _, want := range []string{"rock", "indie rock", "pop", "A  1.2M followers", "B  1.5K followers"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Count(out, ". A ") != 1 {
		t.Errorf("expected deduplicated artists:\n%s", out)
	}
}

func TestTrack(t *testing.T) {
	track := &models.Track{
		Name:       "Song",
		DurationMS: 185_000,
		Albums:     []models.Album{{Name: "Album"}},
		Artists:    []models.ArtistRef{{Name: "Band"}},
	}
	page := web.NewTrackPage(track, false)

	t.Run("with features", func(t *testing.T) {
		out := Track(page, &models.AudioFeatures{Energy: 0.5})
		for _, want := range []string{"Song", "Band", "Album", "3:05", "Energetic", "0.50"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q:\n%s", want, out)
			}
		}
	})

	t.Run("without features", func(t *testing.T) {
		if out := Track(page, nil); !strings.Contains(out, "No audio features available") {
			t.Errorf("expected missing features note:\n%s", out)
		}
	})
}

func TestBar(t *testing.T) {
	tc := []struct {
		v      float64
		filled int
	}{
		{v: 0, filled: 0},
		{v: 0.5, filled: 10},
		{v: 1, filled: 20},
		{v: 3, filled: 20},
		{v: -1, filled: 0},
	}

	for _, tt := range tc {
		bar := Bar(tt.v)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("Bar(%v) filled %d, want %d", tt.v, got, tt.filled)
		}
		if got := strings.Count(bar, "░"); got != barWidth-tt.filled {
			t.Errorf("Bar(%v) empty %d, want %d", tt.v, got, barWidth-tt.filled)
		}
	}
}

func TestSummary(t *testing.T) {
	if out := Summary(&tasks.WarmSummary{Total: 3, Succeeded: 2, Failed: 1}); !strings.Contains(out, "2 of 3") || !strings.Contains(out, "1 failed") {
		t.Errorf("unexpected summary %q", out)
	}
	if out := Summary(nil); !strings.Contains(out, "Nothing warmed") {
		t.Errorf("unexpected summary %q", out)
	}
}

func TestModel(t *testing.T) {
	newModel := func() *Model {
		return NewModel(context.Background(), tasks.NewWarmer(nil), []string{"rock"}, nil, tasks.WarmOpts{})
	}

	t.Run("progress", func(t *testing.T) {
		m := newModel()
		m.progressChan = make(chan tasks.ProgressUpdate)

		m.Update(progressUpdateMsg(tasks.ProgressUpdate{Step: 1, Total: 2, Message: "[1/2] ✓ rock"}))

		if view := m.View(); !strings.Contains(view, "1/2") || !strings.Contains(view, "✓ rock") {
			t.Errorf("unexpected view:\n%s", view)
		}
	})

	t.Run("complete", func(t *testing.T) {
		m := newModel()
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		summary := &tasks.WarmSummary{
			Total:     2,
			Succeeded: 1,
			Failed:    1,
			Results: []tasks.WarmResult{
				{Key: "genre:rock", Name: "rock"},
				{Key: "track:9", Error: errors.New("resource not found")},
			},
		}

		m.Update(warmCompleteMsg{summary: summary})

		if m.view != ResultView {
			t.Fatalf("expected result view, got %v", m.view)
		}
		if n := len(m.results.Items()); n != 2 {
			t.Errorf("expected 2 items, got %d", n)
		}
		if view := m.View(); !strings.Contains(view, "1 of 2") {
			t.Errorf("unexpected view:\n%s", view)
		}
	})

	t.Run("failed", func(t *testing.T) {
		m := newModel()
		m.Update(warmCompleteMsg{err: errors.New("boom")})

		if view := m.View(); !strings.Contains(view, "Warming failed: boom") {
			t.Errorf("unexpected view:\n%s", view)
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := newModel()
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
		if m.ctx.Err() == nil {
			t.Error("expected warming context to be cancelled")
		}
	})
}

func TestResultItem(t *testing.T) {
	var item list.Item = resultItem{result: tasks.WarmResult{Key: "track:1", Error: errors.New("boom")}}
	if item.FilterValue() != "track:1" {
		t.Errorf("unexpected filter value %q", item.FilterValue())
	}
	ok := resultItem{result: tasks.WarmResult{Key: "genre:rock", Name: "rock"}}
	if ok.Title() != "✓ rock" || ok.Description() != "genre:rock" {
		t.Errorf("unexpected item %q %q", ok.Title(), ok.Description())
	}
}

func TestResultsTable(t *testing.T) {
	summary := &tasks.WarmSummary{
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Results: []tasks.WarmResult{
			{Phase: tasks.FetchGenre, Key: "genre:rock", Name: "rock"},
			{Phase: tasks.FetchTrack, Key: "track:7", Error: errors.New("upstream down")},
		},
	}

	var b strings.Builder
	if err := ResultsTable(&b, summary); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := b.String()
	failed, ok := strings.Index(out, "track:7"), strings.Index(out, "genre:rock")
	if failed < 0 || ok < 0 {
		t.Fatalf("expected both pages in table:\n%s", out)
	}
	if failed > ok {
		t.Errorf("expected failures listed first:\n%s", out)
	}
	if !strings.Contains(out, "upstream down") {
		t.Errorf("expected failure reason:\n%s", out)
	}

	b.Reset()
	if err := ResultsTable(&b, nil); err != nil || b.Len() != 0 {
		t.Errorf("expected nothing for a nil summary, got %q, %v", b.String(), err)
	}
}
