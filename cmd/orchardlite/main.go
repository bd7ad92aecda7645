// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command orchardlite runs the OrchardLite content site.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/orchardlite-go/internal/config"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/version"
)

const envFileFlag = "env-file"

// newEnvFlags returns a fresh flag map for one command.
func newEnvFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		envFileFlag: &cobraflags.StringFlag{
			Name:  envFileFlag,
			Value: ".env",
			Usage: "Environment file loaded before reading configuration (ignored when missing)",
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "orchardlite",
		Short: "OrchardLite - a minimal content site with a read-only admin area",
		Long: `OrchardLite serves a public site of pages and blog posts and an admin area
for inspecting content, users, media, settings, the audit log and the database.

Configuration is read from environment variables (DB_DRIVER, DB_HOST, PORT, ...);
an .env file is loaded first when present.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// loadConfig loads the env file named by flags, then the configuration.
func loadConfig(flags map[string]cobraflags.Flag) (*config.Config, error) {
	if path := flags[envFileFlag].GetString(); path != "" {
		_ = godotenv.Load(path)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger creates the stdout text logger at the configured level.
func newLogger(cfg *config.Config) (*slog.Logger, slog.Level) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})), level
}

// openDatabase connects with retry and applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		if err := ensureDir(cfg.DBPath); err != nil {
			return nil, err
		}
	}

	db, err := store.Connect(ctx, cfg.DBDriver, cfg.DSN(), cfg.DBRetryInterval, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("running database migrations", "driver", cfg.DBDriver)
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready")
	return db, nil
}

func newMigrateCommand() *cobra.Command {
	flags := newEnvFlags()
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, _ := newLogger(cfg)

			db, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return db.Close()
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newSeedCommand() *cobra.Command {
	flags := newEnvFlags()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default administrator, settings and demo content",
		Long: `Seed creates the built-in roles, an "admin" user, the site settings and a few
demo content items. It does nothing when the administrator already exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger, _ := newLogger(cfg)

			db, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := store.Seed(cmd.Context(), db); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}
			logger.Info("database seeded")
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
