// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers: loggers, migrated SQLite
// databases and fixture builders.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// DiscardLogger creates a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SQLiteDSN returns the DSN used for a test database file.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite"
}

// TestDB creates a temporary SQLite database with migrations applied.
// It is closed automatically when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orchardlite-test.db")
	db, err := store.Open(context.Background(), store.DriverSQLite, SQLiteDSN(path))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	return db
}

// Clock hands out strictly increasing UTC timestamps so fixtures sort predictably.
type Clock struct {
	now time.Time
}

// NewClock starts a clock at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

// Next advances the clock by one minute and returns the new time.
func (c *Clock) Next() time.Time {
	c.now = c.now.Add(time.Minute)
	return c.now
}

// CreateUser inserts an active user named userName.
func CreateUser(t *testing.T, db *sql.DB, userName string) model.User {
	t.Helper()

	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		UserName:     userName,
		Email:        userName + "@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$a2V5",
		FirstName:    "Test",
		LastName:     userName,
		IsActive:     true,
		CreatedDate:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", userName, err)
	}
	return u
}

// ContentFixture describes a content item to insert.
type ContentFixture struct {
	ContentType string
	Title       string
	Slug        string
	Summary     string
	Body        string
	Status      model.ContentStatus
	At          time.Time // created, modified and (when published) published time
}

// CreateContent inserts a content item authored by authorID. Published items
// get At as their publish date.
func CreateContent(t *testing.T, db *sql.DB, authorID int64, f ContentFixture) model.ContentItem {
	t.Helper()

	if f.ContentType == "" {
		f.ContentType = model.ContentTypeBlogPost
	}
	if f.Status == "" {
		f.Status = model.StatusPublished
	}
	if f.At.IsZero() {
		f.At = time.Now().UTC()
	}
	var published sql.NullTime
	if f.Status == model.StatusPublished {
		published = sql.NullTime{Time: f.At, Valid: true}
	}

	item, err := store.New(db).CreateContent(context.Background(), store.CreateContentParams{
		ContentType:   f.ContentType,
		Title:         f.Title,
		Slug:          f.Slug,
		Summary:       f.Summary,
		Body:          f.Body,
		AuthorID:      authorID,
		Status:        f.Status,
		PublishedDate: published,
		CreatedDate:   f.At,
	})
	if err != nil {
		t.Fatalf("CreateContent(%s): %v", f.Slug, err)
	}
	return item
}

// SoftDeleteContent marks an item deleted.
func SoftDeleteContent(t *testing.T, db *sql.DB, id int64) {
	t.Helper()

	if _, err := store.New(db).SoftDeleteContent(context.Background(), id, time.Now().UTC()); err != nil {
		t.Fatalf("SoftDeleteContent(%d): %v", id, err)
	}
}

// SaveSetting stores key=value.
func SaveSetting(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()

	if _, err := store.New(db).SaveSetting(context.Background(), store.SaveSettingParams{
		SettingKey:   key,
		SettingValue: sql.NullString{String: value, Valid: true},
		ModifiedDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("SaveSetting(%s): %v", key, err)
	}
}

// ViewCount reads the current view count of a content item.
func ViewCount(t *testing.T, db *sql.DB, id int64) int64 {
	t.Helper()

	var n int64
	if err := db.QueryRow("SELECT ViewCount FROM ContentItems WHERE Id = ?", id).Scan(&n); err != nil {
		t.Fatalf("reading view count of %d: %v", id, err)
	}
	return n
}
