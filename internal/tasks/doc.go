// Package tasks runs background work against the stats.fm API with progress reporting.
//
// # Cache Warming
//
// [Warmer.Warm] fetches a list of genres and tracks through a worker pool so
// their pages are served from the response cache afterwards:
//   - A producer feeds jobs through a shared rate limiter
//   - A fixed number of workers fetch concurrently
//   - Failures are collected per job and never stop the run
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends use
// select with default, so a slow or absent reader never blocks the work.
package tasks
