// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Entity types recorded in the audit log.
const (
	EntityUser        = "User"
	EntityRole        = "Role"
	EntityContentItem = "ContentItem"
	EntityMediaItem   = "MediaItem"
	EntitySetting     = "Setting"
	EntitySystem      = "System"
)

// Audit actions.
const (
	ActionCreate       = "create"
	ActionStatusChange = "status.change"
	ActionDelete       = "delete"
	ActionAssignRole   = "role.assign"
	ActionSettingSave  = "setting.save"
	ActionSystemError  = "system.error"
)

// AuditLog is an append-only record of something that happened.
type AuditLog struct {
	ID          int64
	UserID      sql.NullInt64
	Action      string
	EntityType  string
	EntityID    sql.NullInt64
	Details     string
	IPAddress   string
	UserAgent   string
	CreatedDate time.Time
}

// AuditLogWithUser is an audit entry left-joined with the acting user.
// User is nil for system entries.
type AuditLogWithUser struct {
	AuditLog
	User *Author
}

// ActorName returns the acting user's display name or "System".
func (a AuditLogWithUser) ActorName() string {
	if a.User == nil {
		return "System"
	}
	return a.User.DisplayName()
}
