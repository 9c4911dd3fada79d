package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/phrazzld/lingua-api/internal/config"
	"github.com/phrazzld/lingua-api/internal/phrasebank"
	"github.com/phrazzld/lingua-api/internal/platform/logger"
	"github.com/phrazzld/lingua-api/internal/platform/postgres"
	"github.com/phrazzld/lingua-api/internal/store"
)

var errNoDatabase = errors.New("database url is not configured (set LINGUA_DATABASE_URL)")

// newRootCommand returns the top-level CLI command. Running it without a
// subcommand starts the server.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "lingua-api",
		Usage: "Language learning practice API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars("LINGUA_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
			newPhrasesCommand(),
		},
		Action: runServe,
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "Apply pending database migrations before serving",
			},
		},
		Action: runServe,
	}
}

func newMigrateCommand() *cli.Command {
	sub := func(name, usage string) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: usage,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withDatabase(ctx, cmd, func(ctx context.Context, db *sql.DB, log *slog.Logger) error {
					return postgres.Migrate(ctx, db, log, name, cmd.Args().Slice()...)
				})
			},
		}
	}
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the phrase database schema",
		Commands: []*cli.Command{
			sub(postgres.MigrateUp, "Apply all pending migrations"),
			sub(postgres.MigrateDown, "Roll back the latest migration"),
			sub(postgres.MigrateStatus, "Show migration status"),
			sub(postgres.MigrateReset, "Roll back every migration"),
		},
	}
}

func newPhrasesCommand() *cli.Command {
	return &cli.Command{
		Name:  "phrases",
		Usage: "Manage practice phrases stored in the database",
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a YAML phrase bank into the database",
				ArgsUsage: "<file.yaml>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return errors.New("phrases import: a YAML file is required")
					}
					bank, err := phrasebank.LoadFile(path)
					if err != nil {
						return err
					}
					return withDatabase(ctx, cmd, func(ctx context.Context, db *sql.DB, log *slog.Logger) error {
						n, err := newPhraseStore(db, log).SavePhrases(ctx, bank.Records())
						if err != nil {
							return err
						}
						log.InfoContext(ctx, "phrases imported", "file", path, "rows", n)
						return nil
					})
				},
			},
			{
				Name:  "count",
				Usage: "Print stored phrase counts per language",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDatabase(ctx, cmd, func(ctx context.Context, db *sql.DB, log *slog.Logger) error {
						counts, err := newPhraseStore(db, log).CountPhrases(ctx)
						if err != nil {
							return err
						}
						codes := make([]string, 0, len(counts))
						for code := range counts {
							codes = append(codes, code)
						}
						sort.Strings(codes)
						w := cmd.Root().Writer
						for _, code := range codes {
							_, _ = fmt.Fprintf(w, "%s\t%d\n", code, counts[code])
						}
						return nil
					})
				},
			},
		},
	}
}

func newPhraseStore(db *sql.DB, log *slog.Logger) store.PhraseStore {
	return postgres.NewPhraseStore(db, log)
}

// loadConfig reads configuration from the --config file (if any) and the
// environment, and installs the configured logger.
func loadConfig(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(cmd.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}

// withDatabase opens the configured database, runs fn and closes it.
func withDatabase(
	ctx context.Context,
	cmd *cli.Command,
	fn func(ctx context.Context, db *sql.DB, log *slog.Logger) error,
) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errNoDatabase
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	return fn(ctx, db, log)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.Int("port")
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_configured", cfg.Database.URL != "",
		"enrichment_enabled", cfg.Conversation.EnrichmentEnabled)

	var db *sql.DB
	if cfg.Database.URL != "" {
		db, err = postgres.Open(ctx, cfg.Database.URL, log)
		if err != nil {
			return err
		}
		if cmd.Bool("migrate") {
			if err := postgres.Migrate(ctx, db, log, postgres.MigrateUp); err != nil {
				_ = db.Close()
				return err
			}
		}
	}

	app, err := newApplication(ctx, cfg, log, dependencies{db: db})
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
