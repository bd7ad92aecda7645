// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
)

// Audit logs are append-only; this file has no update or delete query.

const createAuditLog = `INSERT INTO AuditLogs (UserId, Action, EntityType, EntityId, Details, IpAddress, UserAgent, CreatedDate)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// CreateAuditLogParams holds the columns of a new audit entry.
// Zero UserID and EntityID are stored as NULL.
type CreateAuditLogParams struct {
	UserID      int64
	Action      string
	EntityType  string
	EntityID    int64
	Details     string
	IPAddress   string
	UserAgent   string
	CreatedDate time.Time
}

// CreateAuditLog appends an audit entry and returns its id.
func (q *Queries) CreateAuditLog(ctx context.Context, arg CreateAuditLogParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createAuditLog,
		nullInt64(arg.UserID), arg.Action, arg.EntityType, nullInt64(arg.EntityID),
		nullString(arg.Details), nullString(arg.IPAddress), nullString(arg.UserAgent), arg.CreatedDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listAuditLogs = `SELECT a.Id, a.UserId, a.Action, a.EntityType, a.EntityId, COALESCE(a.Details, ''),
	COALESCE(a.IpAddress, ''), COALESCE(a.UserAgent, ''), a.CreatedDate,
	u.Id, u.UserName, u.FirstName, u.LastName
FROM AuditLogs a
LEFT JOIN Users u ON u.Id = a.UserId
ORDER BY a.CreatedDate DESC, a.Id DESC
LIMIT ? OFFSET ?`

// ListAuditLogs returns a page of audit entries, newest first, with the
// acting user when there is one.
func (q *Queries) ListAuditLogs(ctx context.Context, limit, offset int64) ([]model.AuditLogWithUser, error) {
	rows, err := q.db.QueryContext(ctx, listAuditLogs, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []model.AuditLogWithUser{}
	for rows.Next() {
		var e model.AuditLogWithUser
		var (
			userID    sql.NullInt64
			userName  sql.NullString
			firstName sql.NullString
			lastName  sql.NullString
		)
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &e.Details,
			&e.IPAddress, &e.UserAgent, &e.CreatedDate,
			&userID, &userName, &firstName, &lastName,
		); err != nil {
			return nil, err
		}
		if userID.Valid {
			e.User = &model.Author{
				ID:        userID.Int64,
				UserName:  userName.String,
				FirstName: firstName.String,
				LastName:  lastName.String,
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const countAuditLogs = `SELECT COUNT(*) FROM AuditLogs`

// CountAuditLogs counts all audit entries.
func (q *Queries) CountAuditLogs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAuditLogs).Scan(&count)
	return count, err
}
