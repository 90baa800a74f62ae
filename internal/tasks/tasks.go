package tasks

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/desertthunder/statsweb/internal/models"
	"github.com/desertthunder/statsweb/internal/shared"
	"golang.org/x/time/rate"
)

// Fetcher loads the primary resources of the pages.
type Fetcher interface {
	GetGenre(ctx context.Context, tag string) (*models.Genre, error)
	GetTrack(ctx context.Context, id int) (*models.Track, error)
}

// WarmOpts contains configuration for cache warming.
type WarmOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// WarmJob is one resource to fetch.
type WarmJob struct {
	Phase   Phase
	Tag     string
	TrackID int
}

// Key identifies the job in results and messages.
func (j WarmJob) Key() string {
	if j.Phase == FetchTrack {
		return "track:" + strconv.Itoa(j.TrackID)
	}
	return "genre:" + j.Tag
}

// WarmResult is the outcome of one job.
type WarmResult struct {
	Phase Phase
	Key   string
	Name  string
	Error error
}

// WarmSummary aggregates a warming run.
type WarmSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []WarmResult
}

// ProgressCapacity is the number of updates Warm sends for the given jobs:
// one started update plus one per job.
func ProgressCapacity(tags []string, ids []int) int {
	return len(tags) + len(ids) + 1
}

// Warmer fetches resources ahead of page requests.
type Warmer struct {
	fetcher Fetcher
}

// NewWarmer creates a [Warmer] over f.
func NewWarmer(f Fetcher) *Warmer {
	return &Warmer{fetcher: f}
}

// sendProgress sends a progress update through the channel without blocking.
//
// Updates are dropped when the channel is full. A buffer of [ProgressCapacity]
// holds every update of one Warm call.
func (w *Warmer) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Warm fetches every genre in tags and track in ids with a rate-limited worker pool.
//
// Individual failures are recorded in the summary. Cancelling ctx stops
// scheduling new jobs; the summary covers the jobs that ran.
func (w *Warmer) Warm(ctx context.Context, prog chan<- ProgressUpdate, tags []string, ids []int, opts WarmOpts) (*WarmSummary, error) {
	if w.fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	jobs := make([]WarmJob, 0, len(tags)+len(ids))
	for _, tag := range tags {
		jobs = append(jobs, WarmJob{Phase: FetchGenre, Tag: tag})
	}
	for _, id := range ids {
		jobs = append(jobs, WarmJob{Phase: FetchTrack, TrackID: id})
	}

	summary := &WarmSummary{Total: len(jobs), Results: make([]WarmResult, 0, len(jobs))}
	w.sendProgress(prog, startedUpdate(len(jobs)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	queue := make(chan WarmJob)
	results := make(chan WarmResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go w.worker(ctx, &wg, queue, results)
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		summary.Results = append(summary.Results, res)
		step := len(summary.Results)
		if res.Error != nil {
			summary.Failed++
			w.sendProgress(prog, failedUpdate(step, len(jobs), res))
			continue
		}
		summary.Succeeded++
		w.sendProgress(prog, completedUpdate(step, len(jobs), res))
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// worker fetches jobs from the queue until it is closed.
func (w *Warmer) worker(ctx context.Context, wg *sync.WaitGroup, queue <-chan WarmJob, results chan<- WarmResult) {
	defer wg.Done()

	for job := range queue {
		results <- w.fetch(ctx, job)
	}
}

func (w *Warmer) fetch(ctx context.Context, job WarmJob) WarmResult {
	res := WarmResult{Phase: job.Phase, Key: job.Key()}

	switch job.Phase {
	case FetchTrack:
		track, err := w.fetcher.GetTrack(ctx, job.TrackID)
		if err != nil {
			res.Error = err
			return res
		}
		res.Name = track.Name
	default:
		genre, err := w.fetcher.GetGenre(ctx, job.Tag)
		if err != nil {
			res.Error = err
			return res
		}
		res.Name = genre.Tag
		if res.Name == "" {
			res.Name = job.Tag
		}
	}
	return res
}
