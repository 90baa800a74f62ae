package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/statsweb/internal/shared"
	"github.com/desertthunder/statsweb/internal/tasks"
	"github.com/desertthunder/statsweb/internal/ui"
	"github.com/urfave/cli/v3"
)

// CacheStats prints the number of cached responses.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCache(); err != nil {
		return err
	}

	n, err := r.cache.Count(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("%d cached responses (ttl %s)\n", n, r.config.Cache.TTL)
}

// CachePurge deletes every cached response.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCache(); err != nil {
		return err
	}

	n, err := r.cache.Purge(ctx)
	if err != nil {
		return err
	}
	r.logger.Info("cache purged", "removed", n)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Removed %d cached responses", n)))
}

// CachePrune deletes responses older than --older-than, or cache.ttl when unset.
func (r *Runner) CachePrune(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCache(); err != nil {
		return err
	}

	maxAge := cmd.Duration("older-than")
	if maxAge <= 0 {
		maxAge = r.config.Cache.TTL.Duration
	}
	if maxAge <= 0 {
		return fmt.Errorf("%w: --older-than must be positive", shared.ErrInvalidArgument)
	}

	n, err := r.cache.Prune(ctx, maxAge)
	if err != nil {
		return err
	}
	r.logger.Info("cache pruned", "removed", n, "older_than", maxAge)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Removed %d responses older than %s", n, maxAge)))
}

// CacheWarm fetches the given genres and tracks through the cache.
func (r *Runner) CacheWarm(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCache(); err != nil {
		return err
	}

	tags := cmd.StringSlice("tag")
	ids := cmd.IntSlice("id")
	if len(tags) == 0 && len(ids) == 0 {
		return fmt.Errorf("%w: at least one --tag or --id", shared.ErrMissingArgument)
	}

	opts := tasks.WarmOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}
	warmer := tasks.NewWarmer(r.stats)

	if cmd.Bool("tui") {
		return r.warmTUI(ctx, warmer, tags, ids, opts, cmd.String("log-file"))
	}

	progress := make(chan tasks.ProgressUpdate, tasks.ProgressCapacity(tags, ids))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	summary, err := warmer.Warm(ctx, progress, tags, ids, opts)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("cache warm interrupted: %w", err)
	}

	r.logger.Info("cache warmed", "total", summary.Total, "failed", summary.Failed)
	if err := ui.ResultsTable(r.output, summary); err != nil {
		return err
	}
	if err := r.writePlainln("%s", ui.Summary(summary)); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d pages failed", shared.ErrAPIRequest, summary.Failed, summary.Total)
	}
	return nil
}

// logOutput opens path for TUI logging, discarding logs when path is empty.
func logOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func describeJobs(tags []string, ids []int) string {
	parts := make([]string, 0, len(tags)+len(ids))
	parts = append(parts, tags...)
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ", ")
}
