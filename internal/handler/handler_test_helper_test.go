// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/orchardlite-go/internal/geoip"
	"github.com/olegiv/orchardlite-go/internal/render"
	"github.com/olegiv/orchardlite-go/internal/service"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/testutil"
	"github.com/olegiv/orchardlite-go/web"
)

// testSite is a fully wired router over a seeded SQLite database.
type testSite struct {
	db      *sql.DB
	router  http.Handler
	logs    *bytes.Buffer
	content *service.ContentService
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	db := testutil.TestDB(t)
	if err := store.Seed(context.Background(), db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	logs := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	content := service.NewContentService(db, logger)
	settings := service.NewSettingsResolver(db, logger)
	geo, err := geoip.Open("")
	if err != nil {
		t.Fatalf("geoip.Open: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, Handlers{
		Frontend: NewFrontendHandler(renderer, content, settings, logger),
		Admin: NewAdminHandler(renderer, AdminServices{
			Content:   content,
			Dashboard: service.NewDashboardService(db, store.DriverSQLite, logger),
			Users:     service.NewUserService(db, logger),
			Media:     service.NewMediaService(db, logger),
			Settings:  settings,
			Audit:     service.NewAuditService(db, logger),
		}, geo, logger),
		Health: NewHealthHandler(db, logger),
	})

	return &testSite{db: db, router: r, logs: logs, content: content}
}

// get performs a GET request and returns the status and body.
func (s *testSite) get(t *testing.T, target string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return rec.Code, string(body)
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("body does not contain %q", w)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, u := range unwanted {
		if strings.Contains(body, u) {
			t.Errorf("body unexpectedly contains %q", u)
		}
	}
}
