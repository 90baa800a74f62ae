// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand runs the web front-end
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the genre and track pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address as host:port, overrides [server] host and port",
				Sources: cli.EnvVars("STATSWEB_ADDR"),
			},
		},
		Action: r.Serve,
	}
}

// genreCommand prints a genre page
func genreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genre",
		Usage: "Show a genre with its top artists",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "tag",
				UsageText: "genre tag, e.g. rock",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.Genre,
	}
}

// trackCommand prints a track page
func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Show a track with its audio features",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "id",
				UsageText: "numeric stats.fm track id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.Track,
	}
}

// cacheCommand maintains the response cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Maintain the local response cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show the number of cached responses",
				Action: r.CacheStats,
			},
			{
				Name:   "purge",
				Usage:  "Delete every cached response",
				Action: r.CachePurge,
			},
			{
				Name:  "prune",
				Usage: "Delete cached responses older than a duration",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Usage: "Maximum age to keep (defaults to cache.ttl)",
					},
				},
				Action: r.CachePrune,
			},
			{
				Name:  "warm",
				Usage: "Fetch genres and tracks into the cache ahead of visitors",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "tag",
						Aliases: []string{"t"},
						Usage:   "Genre tag to warm (repeatable)",
					},
					&cli.IntSliceFlag{
						Name:  "id",
						Usage: "Track id to warm (repeatable)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent fetches (max 10)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Fetches per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "tui",
						Usage: "Follow progress in an interactive view",
					},
					&cli.StringFlag{
						Name:  "log-file",
						Usage: "Write logs here while the interactive view runs",
					},
				},
				Action: r.CacheWarm,
			},
		},
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration to --config",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// migrateCommand applies cache schema migrations
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the cache database schema",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply pending migrations",
				Action: r.MigrateUp,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the latest migration",
				Action: r.MigrateRollback,
			},
		},
	}
}

// apiCommand handles raw API requests
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct stats.fm API access",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "GET an API path and print the response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Query parameter as key=value (repeatable)",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "Bearer token sent as Authorization",
						Sources: cli.EnvVars("STATSWEB_TOKEN"),
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}
