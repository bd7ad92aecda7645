// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
)

// SettingResult is the outcome of a setting lookup. Found is false when the
// key does not exist or its value is NULL; Err is set when the lookup
// itself failed.
type SettingResult struct {
	Key   string
	Value string
	Found bool
	Err   error
}

// Or returns the value when it was found, def otherwise.
func (r SettingResult) Or(def string) string {
	if r.Err != nil || !r.Found {
		return def
	}
	return r.Value
}

// SettingInput is a setting to insert or update.
type SettingInput struct {
	Key         string
	Value       *string
	Category    string
	Description string
	IsSystem    bool
}

// SettingsResolver reads site settings with defaults. Reads never fail the
// caller: page rendering falls back to the default value.
type SettingsResolver struct {
	queries *store.Queries
	audit   *AuditService
	logger  *slog.Logger
}

// NewSettingsResolver creates a new settings resolver.
func NewSettingsResolver(db *sql.DB, logger *slog.Logger) *SettingsResolver {
	return &SettingsResolver{
		queries: store.New(db),
		audit:   NewAuditService(db, logger),
		logger:  logger,
	}
}

// Lookup reads key and reports exactly what happened.
func (r *SettingsResolver) Lookup(ctx context.Context, key string) SettingResult {
	setting, err := r.queries.GetSettingByKey(ctx, key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return SettingResult{Key: key}
	case err != nil:
		return SettingResult{Key: key, Err: dataAccess(fmt.Sprintf("reading setting %q", key), err)}
	case !setting.SettingValue.Valid:
		return SettingResult{Key: key}
	}
	return SettingResult{Key: key, Value: setting.SettingValue.String, Found: true}
}

// Get returns the value of key, or def when the key is missing, NULL or
// cannot be read. Read failures are logged.
func (r *SettingsResolver) Get(ctx context.Context, key, def string) string {
	res := r.Lookup(ctx, key)
	if res.Err != nil {
		r.logger.Warn("failed to read setting, using default", "key", key, "error", res.Err)
	}
	return res.Or(def)
}

// SiteName returns the configured site name.
func (r *SettingsResolver) SiteName(ctx context.Context) string {
	return r.Get(ctx, model.SettingSiteName, model.DefaultSiteName)
}

// All returns every setting ordered by category and key.
func (r *SettingsResolver) All(ctx context.Context) ([]model.Setting, error) {
	settings, err := r.queries.ListSettings(ctx)
	if err != nil {
		return nil, dataAccess("listing settings", err)
	}
	return settings, nil
}

// Set inserts or updates a setting. A nil Value stores NULL.
func (r *SettingsResolver) Set(ctx context.Context, in SettingInput) (model.Setting, error) {
	key := strings.TrimSpace(in.Key)
	if key == "" || len(key) > model.MaxSettingKeyLength {
		return model.Setting{}, &ValidationError{Field: "SettingKey", Message: fmt.Sprintf("is required and limited to %d characters", model.MaxSettingKeyLength)}
	}
	if len(in.Category) > model.MaxCategoryLength {
		return model.Setting{}, &ValidationError{Field: "Category", Message: fmt.Sprintf("must be at most %d characters", model.MaxCategoryLength)}
	}

	var value sql.NullString
	if in.Value != nil {
		value = sql.NullString{String: *in.Value, Valid: true}
	}

	setting, err := r.queries.SaveSetting(ctx, store.SaveSettingParams{
		SettingKey:      key,
		SettingValue:    value,
		Category:        in.Category,
		Description:     in.Description,
		IsSystemSetting: in.IsSystem,
		ModifiedDate:    time.Now().UTC(),
	})
	if err != nil {
		return model.Setting{}, dataAccess(fmt.Sprintf("saving setting %q", key), err)
	}

	r.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionSettingSave,
		EntityType: model.EntitySetting,
		EntityID:   setting.ID,
		Details:    key,
	})
	return setting, nil
}
