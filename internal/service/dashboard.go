// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
)

const (
	dashboardRecentContent  = 10
	dashboardRecentActivity = 20
)

// DashboardStats are the headline counters of the admin dashboard.
type DashboardStats struct {
	ActiveUsers      int64
	TotalContent     int64
	TotalMedia       int64
	PublishedContent int64
	DraftContent     int64
}

// Dashboard is everything the admin dashboard shows.
type Dashboard struct {
	Stats          DashboardStats
	RecentContent  []model.ContentItemWithAuthor
	RecentActivity []model.AuditLogWithUser
}

// SizeResult is the outcome of asking the engine for the database size.
// Exactly one of Bytes or Err is meaningful.
type SizeResult struct {
	Bytes int64
	Err   error
}

// OK reports whether the size is known.
func (r SizeResult) OK() bool {
	return r.Err == nil
}

// MB returns the size in megabytes.
func (r SizeResult) MB() float64 {
	return float64(r.Bytes) / (1024 * 1024)
}

// String renders the size as "12.34 MB", or "Unknown" when it could not be read.
func (r SizeResult) String() string {
	if r.Err != nil {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f MB", r.MB())
}

// DatabaseInfo is the content of the admin database page.
type DatabaseInfo struct {
	Driver           string
	Tables           []store.TableCount
	TotalUsers       int64
	ActiveUsers      int64
	PublishedContent int64
	DraftContent     int64
	Size             SizeResult
}

// DashboardService aggregates counters and recent activity. Nothing is
// cached; every call reads the current state of the database.
type DashboardService struct {
	queries *store.Queries
	driver  string
	logger  *slog.Logger
}

// NewDashboardService creates a new dashboard service for a database
// opened with driver.
func NewDashboardService(db *sql.DB, driver string, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		queries: store.New(db),
		driver:  driver,
		logger:  logger,
	}
}

func (s *DashboardService) contentCount(ctx context.Context, status model.ContentStatus) (int64, error) {
	n, err := s.queries.CountContent(ctx, store.CountContentParams{Status: string(status)})
	if err != nil {
		return 0, dataAccess("counting content", err)
	}
	return n, nil
}

// Dashboard returns the counters, the most recently modified content and
// the latest audit entries.
func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	var err error

	if d.Stats.ActiveUsers, err = s.queries.CountActiveUsers(ctx); err != nil {
		return Dashboard{}, dataAccess("counting active users", err)
	}
	if d.Stats.TotalContent, err = s.contentCount(ctx, ""); err != nil {
		return Dashboard{}, err
	}
	if d.Stats.TotalMedia, err = s.queries.CountMediaItems(ctx); err != nil {
		return Dashboard{}, dataAccess("counting media", err)
	}
	if d.Stats.PublishedContent, err = s.contentCount(ctx, model.StatusPublished); err != nil {
		return Dashboard{}, err
	}
	if d.Stats.DraftContent, err = s.contentCount(ctx, model.StatusDraft); err != nil {
		return Dashboard{}, err
	}

	if d.RecentContent, err = s.queries.ListRecentlyModifiedContent(ctx, dashboardRecentContent); err != nil {
		return Dashboard{}, dataAccess("listing recent content", err)
	}
	if d.RecentActivity, err = s.queries.ListAuditLogs(ctx, dashboardRecentActivity, 0); err != nil {
		return Dashboard{}, dataAccess("listing recent activity", err)
	}

	return d, nil
}

// DatabaseInfo returns table row counts, user and content counters and the
// database size. A size failure does not fail the call; it is carried in
// the SizeResult.
func (s *DashboardService) DatabaseInfo(ctx context.Context) (DatabaseInfo, error) {
	info := DatabaseInfo{Driver: s.driver}
	var err error

	if info.Tables, err = s.queries.CountTableRows(ctx); err != nil {
		return DatabaseInfo{}, dataAccess("counting table rows", err)
	}
	if info.TotalUsers, err = s.queries.CountUsers(ctx); err != nil {
		return DatabaseInfo{}, dataAccess("counting users", err)
	}
	if info.ActiveUsers, err = s.queries.CountActiveUsers(ctx); err != nil {
		return DatabaseInfo{}, dataAccess("counting active users", err)
	}
	if info.PublishedContent, err = s.contentCount(ctx, model.StatusPublished); err != nil {
		return DatabaseInfo{}, err
	}
	if info.DraftContent, err = s.contentCount(ctx, model.StatusDraft); err != nil {
		return DatabaseInfo{}, err
	}

	info.Size = s.DatabaseSize(ctx)
	return info, nil
}

// DatabaseSize reads the storage used by the database.
func (s *DashboardService) DatabaseSize(ctx context.Context) SizeResult {
	size, err := s.queries.DatabaseSizeBytes(ctx, s.driver)
	if err != nil {
		s.logger.Warn("failed to read database size", "driver", s.driver, "error", err)
		return SizeResult{Err: dataAccess("reading database size", err)}
	}
	return SizeResult{Bytes: size}
}
