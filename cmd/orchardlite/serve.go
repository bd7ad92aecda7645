// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/olegiv/orchardlite-go/internal/config"
	"github.com/olegiv/orchardlite-go/internal/geoip"
	"github.com/olegiv/orchardlite-go/internal/handler"
	"github.com/olegiv/orchardlite-go/internal/logging"
	"github.com/olegiv/orchardlite-go/internal/middleware"
	"github.com/olegiv/orchardlite-go/internal/render"
	"github.com/olegiv/orchardlite-go/internal/service"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/version"
	"github.com/olegiv/orchardlite-go/web"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	flags := newEnvFlags()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serve waits for the database (retrying at DB_RETRY_INTERVAL), applies pending
migrations, optionally seeds demo data (DO_SEED=true) and then serves HTTP until
SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, level := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting orchardlite", "version", version.Get().Version, "env", cfg.Env)

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	// Mirror ERROR records into the audit log from here on
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, service.NewAuditService(db, logger)))
	slog.SetDefault(logger)

	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn("GeoIP lookups disabled", "error", err)
	} else if geo.Enabled() {
		logger.Info("GeoIP database loaded", "path", cfg.GeoIPDBPath)
	}
	defer func() { _ = geo.Close() }()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	content := service.NewContentService(db, logger)
	settings := service.NewSettingsResolver(db, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.AuditActor)

	handler.RegisterRoutes(r, handler.Handlers{
		Frontend: handler.NewFrontendHandler(renderer, content, settings, logger),
		Admin: handler.NewAdminHandler(renderer, handler.AdminServices{
			Content:   content,
			Dashboard: service.NewDashboardService(db, cfg.DBDriver, logger),
			Users:     service.NewUserService(db, logger),
			Media:     service.NewMediaService(db, logger),
			Settings:  settings,
			Audit:     service.NewAuditService(db, logger),
		}, geo, logger),
		Health: handler.NewHealthHandler(db, logger),
		Static: staticFS,
		Public: []func(http.Handler) http.Handler{limiter.Middleware()},
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// ensureDir creates the directory holding the SQLite file.
func ensureDir(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}
