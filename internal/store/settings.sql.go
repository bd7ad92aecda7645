// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
)

const settingColumns = `Id, SettingKey, SettingValue, Category, COALESCE(Description, ''), IsSystemSetting, ModifiedDate`

func scanSetting(s scanner) (model.Setting, error) {
	var st model.Setting
	err := s.Scan(&st.ID, &st.SettingKey, &st.SettingValue, &st.Category, &st.Description,
		&st.IsSystemSetting, &st.ModifiedDate)
	return st, err
}

const getSettingByKey = `SELECT ` + settingColumns + ` FROM Settings WHERE SettingKey = ?`

// GetSettingByKey returns the setting stored under key or sql.ErrNoRows.
func (q *Queries) GetSettingByKey(ctx context.Context, key string) (model.Setting, error) {
	return scanSetting(q.db.QueryRowContext(ctx, getSettingByKey, key))
}

const listSettings = `SELECT ` + settingColumns + ` FROM Settings ORDER BY Category, SettingKey`

// ListSettings returns every setting grouped by category.
func (q *Queries) ListSettings(ctx context.Context) ([]model.Setting, error) {
	rows, err := q.db.QueryContext(ctx, listSettings)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	settings := []model.Setting{}
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

const countSettings = `SELECT COUNT(*) FROM Settings`

// CountSettings counts all settings.
func (q *Queries) CountSettings(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countSettings).Scan(&count)
	return count, err
}

const createSetting = `INSERT INTO Settings (SettingKey, SettingValue, Category, Description, IsSystemSetting, ModifiedDate)
VALUES (?, ?, ?, ?, ?, ?)`

const updateSetting = `UPDATE Settings
SET SettingValue = ?, Category = ?, Description = ?, IsSystemSetting = ?, ModifiedDate = ?
WHERE SettingKey = ?`

// SaveSettingParams holds the columns written by SaveSetting.
type SaveSettingParams struct {
	SettingKey      string
	SettingValue    sql.NullString
	Category        string
	Description     string
	IsSystemSetting bool
	ModifiedDate    time.Time
}

// SaveSetting inserts the setting, or updates it when the key exists.
// Run it inside a transaction when concurrent writers are possible.
func (q *Queries) SaveSetting(ctx context.Context, arg SaveSettingParams) (model.Setting, error) {
	category := arg.Category
	if category == "" {
		category = model.DefaultSettingCategory
	}

	existing, err := q.GetSettingByKey(ctx, arg.SettingKey)
	switch {
	case err == nil:
		if _, err := q.db.ExecContext(ctx, updateSetting,
			arg.SettingValue, category, nullString(arg.Description), arg.IsSystemSetting, arg.ModifiedDate,
			arg.SettingKey); err != nil {
			return model.Setting{}, err
		}
		return model.Setting{
			ID:              existing.ID,
			SettingKey:      arg.SettingKey,
			SettingValue:    arg.SettingValue,
			Category:        category,
			Description:     arg.Description,
			IsSystemSetting: arg.IsSystemSetting,
			ModifiedDate:    arg.ModifiedDate,
		}, nil
	case !errors.Is(err, sql.ErrNoRows):
		return model.Setting{}, err
	}

	res, err := q.db.ExecContext(ctx, createSetting,
		arg.SettingKey, arg.SettingValue, category, nullString(arg.Description), arg.IsSystemSetting, arg.ModifiedDate)
	if err != nil {
		return model.Setting{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Setting{}, err
	}
	return model.Setting{
		ID:              id,
		SettingKey:      arg.SettingKey,
		SettingValue:    arg.SettingValue,
		Category:        category,
		Description:     arg.Description,
		IsSystemSetting: arg.IsSystemSetting,
		ModifiedDate:    arg.ModifiedDate,
	}, nil
}
