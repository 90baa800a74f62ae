// Package ui renders terminal output for the CLI.
//
// Static output ([Genre], [Track], [Summary]) is styled with lipgloss.
//
// The interactive [Model] monitors a cache warming run using bubbletea's Elm architecture:
//  1. [WarmingView] : Real-time progress updates from [tasks.Warmer]
//  2. [ResultView] : Filterable list of fetched and failed resources
//
// Progress updates flow through a channel from the warmer, so the view never blocks the workers.
package ui
