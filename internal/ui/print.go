package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/statsweb/internal/formatter"
	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/tasks"
	"github.com/desertthunder/statsweb/internal/web"
)

const barWidth = 20

// Genre renders a genre page for the terminal.
func Genre(page web.GenrePage) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(page.Tag))
	b.WriteString("\n")

	if len(page.Sub) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Sub Genres"), joinTags(page.Sub))
	}
	if page.ShowRelated {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Related"), joinTags(page.Related))
	}

	fmt.Fprintf(&b, "\n%s\n", styles.success.Render("Top Artists"))
	for i, artist := range page.Artists {
		line := fmt.Sprintf("%3d. %s  %s followers", i+1, artist.Name, artist.Followers)
		if len(artist.Genres) > 0 {
			line += "  " + styles.help.Render(strings.Join(artist.Genres, ", "))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Track renders a track page and its audio features for the terminal. features may be nil.
func Track(page web.TrackPage, features *models.AudioFeatures) string {
	track := page.Track

	var b strings.Builder
	b.WriteString(styles.title.Render(track.Name))
	b.WriteString("\n")

	artists := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		artists[i] = a.Name
	}
	fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Artists"), strings.Join(artists, ", "))

	albums := make([]string, len(track.Albums))
	for i, a := range track.Albums {
		albums[i] = a.Name
	}
	fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Appears on"), strings.Join(albums, ", "))
	if track.DurationMS > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Duration"), formatter.PlayTime(track.DurationMS))
	}

	fmt.Fprintf(&b, "\n%s\n", styles.success.Render("Audio features"))
	values := web.RadarValues(features)
	if values == nil {
		b.WriteString(styles.help.Render("No audio features available") + "\n")
		return b.String()
	}
	for i, label := range web.RadarLabels {
		fmt.Fprintf(&b, "%s %s %.2f\n", styles.label.Render(label), Bar(values[i]), values[i])
	}
	return b.String()
}

// Bar draws v in [0,1] as a fixed-width bar.
func Bar(v float64) string {
	switch {
	case v < 0 || v != v:
		v = 0
	case v > 1:
		v = 1
	}
	filled := int(v*barWidth + 0.5)
	return styles.bar.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
}

// Summary renders the totals of a warming run.
func Summary(s *tasks.WarmSummary) string {
	if s == nil {
		return styles.warning.Render("Nothing warmed")
	}
	line := fmt.Sprintf("✓ %d of %d pages warmed", s.Succeeded, s.Total)
	if s.Failed > 0 {
		return styles.success.Render(line) + "  " + styles.error.Render(fmt.Sprintf("✗ %d failed", s.Failed))
	}
	return styles.success.Render(line)
}

func joinTags(refs []models.GenreRef) string {
	tags := make([]string, len(refs))
	for i, r := range refs {
		tags[i] = r.Tag
	}
	return strings.Join(tags, ", ")
}
