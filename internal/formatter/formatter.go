// package formatter provides number and time formatting for the pages and the CLI
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var compactUnits = []struct {
	size   float64
	suffix string
}{
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// CompactNumber formats n in English short compact notation (1234567 -> "1.2M").
//
// Scaled values below 10 keep one decimal; larger ones are rounded to an integer.
// Rounding up across a unit boundary moves to the next unit (999999 -> "1M").
func CompactNumber(n int64) string {
	if n < 0 {
		// -(n+1) stays in range for math.MinInt64
		return "-" + compactMagnitude(uint64(-(n+1))+1)
	}
	return compactMagnitude(uint64(n))
}

func compactMagnitude(n uint64) string {
	if n < 1000 {
		return strconv.FormatUint(n, 10)
	}

	unit := 0
	for unit+1 < len(compactUnits) && float64(n) >= compactUnits[unit+1].size {
		unit++
	}

	for {
		scaled := roundCompact(float64(n) / compactUnits[unit].size)
		if scaled >= 1000 && unit+1 < len(compactUnits) {
			unit++
			continue
		}
		return strconv.FormatFloat(scaled, 'f', -1, 64) + compactUnits[unit].suffix
	}
}

func roundCompact(v float64) float64 {
	switch {
	case v < 10:
		return math.Round(v*10) / 10
	default:
		return math.Round(v)
	}
}

// Count formats n with thousands separators (12345 -> "12,345").
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Since describes t relative to now ("3 hours ago").
func Since(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// PlayTime formats a duration in milliseconds as m:ss, or h:mm:ss past an hour.
func PlayTime(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Minutes formats a duration in milliseconds as whole minutes ("1,234 min").
func Minutes(ms int) string {
	return humanize.Comma(int64(ms/60000)) + " min"
}
