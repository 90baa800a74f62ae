package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/statsweb/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example config to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set cache.path to enable the response cache\n")
	r.writePlain("2. Run 'statsweb migrate up' then 'statsweb serve'\n")
	return nil
}

// ConfigShow prints the effective config after environment overrides.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if err := toml.NewEncoder(r.output).Encode(r.config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// MigrateUp initializes the cache database and runs migrations.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	if !r.config.Cache.Enabled() {
		return fmt.Errorf("%w: set cache.path in %s", shared.ErrCacheDisabled, r.configPath)
	}

	path := r.config.Cache.Path
	r.logger.Info("initializing database", "path", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, 1, 1)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return r.writePlain("✓ Cache database ready: %s\n", path)
}

// MigrateRollback reverts the latest cache migration.
func (r *Runner) MigrateRollback(ctx context.Context, cmd *cli.Command) error {
	if !r.config.Cache.Enabled() {
		return fmt.Errorf("%w: set cache.path in %s", shared.ErrCacheDisabled, r.configPath)
	}

	db, err := shared.NewDatabase(r.config.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}
	r.logger.Info("rolled back latest migration", "path", r.config.Cache.Path)
	return r.writePlain("✓ Rolled back latest migration\n")
}
