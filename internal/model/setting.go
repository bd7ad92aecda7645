// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// DefaultSettingCategory is used when a setting is stored without a category.
const DefaultSettingCategory = "General"

// Well-known setting keys and the values used when they are absent.
const (
	SettingSiteName        = "SiteName"
	SettingSiteDescription = "SiteDescription"

	DefaultSiteName        = "OrchardLite CMS"
	DefaultSiteDescription = "A lightweight CMS for AWS migration workshops"
)

// Setting is a key/value configuration row. A NULL value is distinct from
// an empty string: readers treat it as absent.
type Setting struct {
	ID              int64
	SettingKey      string
	SettingValue    sql.NullString
	Category        string
	Description     string
	IsSystemSetting bool
	ModifiedDate    time.Time
}

// ValueOr returns the stored value, or def when the value is NULL.
func (s Setting) ValueOr(def string) string {
	if !s.SettingValue.Valid {
		return def
	}
	return s.SettingValue.String
}
