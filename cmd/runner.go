package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/statsweb/internal/repositories"
	"github.com/desertthunder/statsweb/internal/services"
	"github.com/desertthunder/statsweb/internal/shared"
	"github.com/desertthunder/statsweb/internal/telemetry"
	"github.com/desertthunder/statsweb/internal/web"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	stats      web.Stats
	cache      *repositories.CacheRepository
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	telemetry  bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	Stats      web.Stats
	Cache      *repositories.CacheRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// Missing clients are built from the config.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		stats:      opts.Stats,
		cache:      opts.Cache,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if r.stats == nil {
		r.connect()
	}
	return r
}

// connect builds the API client and the stats service from the current config.
//
// An injected HTTP client is kept; otherwise one is made with api.timeout.
func (r *Runner) connect() {
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: r.config.API.Timeout.Duration}
	}

	r.api = services.NewAPIService(r.config.API.BaseURL, client,
		services.WithRateLimit(r.config.API.RateLimit),
		services.WithAttempts(r.config.API.Retries),
		services.WithUserAgent("statsweb/"+version),
	)

	opts := []services.StatsOption{services.WithLogger(r.logger)}
	if r.cache != nil {
		opts = append(opts, services.WithCache(r.cache, r.config.Cache.TTL.Duration))
	}
	r.stats = services.NewStatsService(r.api, opts...)
}

// Setup loads the config named by --config before any command runs.
//
// A missing file falls back to the embedded defaults. Environment overrides
// apply on top of either.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")

	config, err := loadConfig(path)
	if err != nil {
		return ctx, err
	}
	if level := cmd.String("log-level"); level != "" {
		config.Log.Level = level
	}

	r.config = config
	r.configPath = path
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Log.Level))

	enabled, err := telemetry.Init(config.Sentry, cmd.Root().Version)
	if err != nil {
		r.logger.Warn("error reporting disabled", "error", err)
	}
	r.telemetry = enabled

	r.connect()
	r.logger.Debug("config loaded", "path", path, "api", config.API.BaseURL)
	return ctx, nil
}

// Close releases the cache database and flushes pending error reports.
func (r *Runner) Close(ctx context.Context, cmd *cli.Command) error {
	if r.telemetry {
		telemetry.Flush(2 * time.Second)
	}
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db, r.cache = nil, nil
	return err
}

// openCache attaches the response cache when cache.path is set.
//
// It is a no-op when the cache is already open or disabled.
func (r *Runner) openCache() error {
	if r.cache != nil || !r.config.Cache.Enabled() {
		return nil
	}

	cache, db, err := repositories.OpenCache(r.config.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	r.cache, r.db = cache, db
	r.logger.Debug("cache opened", "path", r.config.Cache.Path, "ttl", r.config.Cache.TTL)

	r.connect()
	return nil
}

// requireCache opens the cache or explains how to enable it.
func (r *Runner) requireCache() error {
	if !r.config.Cache.Enabled() && r.cache == nil {
		return fmt.Errorf("%w: set cache.path in %s", shared.ErrCacheDisabled, r.configPath)
	}
	return r.openCache()
}

func loadConfig(path string) (*shared.Config, error) {
	config, err := shared.LoadConfig(path)
	if errors.Is(err, shared.ErrMissingConfig) {
		config = shared.DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, genreCommand, trackCommand, cacheCommand, configCommand, migrateCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
