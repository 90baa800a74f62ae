package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/desertthunder/statsweb/internal/tasks"
	"github.com/olekukonko/tablewriter"
)

// ResultsTable writes one row per warmed page, failures first, then keys in order.
func ResultsTable(w io.Writer, s *tasks.WarmSummary) error {
	if s == nil || len(s.Results) == 0 {
		return nil
	}

	results := append([]tasks.WarmResult(nil), s.Results...)
	sort.SliceStable(results, func(i, j int) bool {
		fi, fj := results[i].Error != nil, results[j].Error != nil
		if fi != fj {
			return fi
		}
		return results[i].Key < results[j].Key
	})

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Page", "Name", "Status"})
	for _, res := range results {
		status := "ok"
		if res.Error != nil {
			status = res.Error.Error()
		}
		if err := table.Append([]string{res.Key, res.Name, status}); err != nil {
			return fmt.Errorf("failed to render results: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return nil
}
