// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
)

const createMediaItem = `INSERT INTO MediaItems
(FileName, OriginalFileName, ContentType, FileSize, FilePath, AltText, Caption, UploadedById, UploadedDate, IsDeleted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`

// CreateMediaItemParams holds the columns of a new media item.
type CreateMediaItemParams struct {
	FileName         string
	OriginalFileName string
	ContentType      string
	FileSize         int64
	FilePath         string
	AltText          string
	Caption          string
	UploadedByID     int64
	UploadedDate     time.Time
}

// CreateMediaItem inserts a media record and returns it.
func (q *Queries) CreateMediaItem(ctx context.Context, arg CreateMediaItemParams) (model.MediaItem, error) {
	res, err := q.db.ExecContext(ctx, createMediaItem,
		arg.FileName, arg.OriginalFileName, arg.ContentType, arg.FileSize, arg.FilePath,
		nullString(arg.AltText), nullString(arg.Caption), arg.UploadedByID, arg.UploadedDate)
	if err != nil {
		return model.MediaItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MediaItem{}, err
	}
	return model.MediaItem{
		ID:               id,
		FileName:         arg.FileName,
		OriginalFileName: arg.OriginalFileName,
		ContentType:      arg.ContentType,
		FileSize:         arg.FileSize,
		FilePath:         arg.FilePath,
		AltText:          arg.AltText,
		Caption:          arg.Caption,
		UploadedByID:     arg.UploadedByID,
		UploadedDate:     arg.UploadedDate,
	}, nil
}

const listMediaItems = `SELECT m.Id, m.FileName, m.OriginalFileName, m.ContentType, m.FileSize, m.FilePath,
	COALESCE(m.AltText, ''), COALESCE(m.Caption, ''), m.UploadedById, m.UploadedDate, m.IsDeleted,
	` + authorColumns + `
FROM MediaItems m
INNER JOIN Users u ON u.Id = m.UploadedById
WHERE m.IsDeleted = 0
ORDER BY m.UploadedDate DESC, m.Id DESC
LIMIT ? OFFSET ?`

// ListMediaItems returns a page of non-deleted media, newest upload first.
func (q *Queries) ListMediaItems(ctx context.Context, limit, offset int64) ([]model.MediaItemWithUploader, error) {
	rows, err := q.db.QueryContext(ctx, listMediaItems, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []model.MediaItemWithUploader{}
	for rows.Next() {
		var m model.MediaItemWithUploader
		if err := rows.Scan(
			&m.ID, &m.FileName, &m.OriginalFileName, &m.ContentType, &m.FileSize, &m.FilePath,
			&m.AltText, &m.Caption, &m.UploadedByID, &m.UploadedDate, &m.IsDeleted,
			&m.UploadedBy.ID, &m.UploadedBy.UserName, &m.UploadedBy.FirstName, &m.UploadedBy.LastName,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const countMediaItems = `SELECT COUNT(*) FROM MediaItems WHERE IsDeleted = 0`

// CountMediaItems counts non-deleted media.
func (q *Queries) CountMediaItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMediaItems).Scan(&count)
	return count, err
}

const softDeleteMediaItem = `UPDATE MediaItems SET IsDeleted = 1 WHERE Id = ? AND IsDeleted = 0`

// SoftDeleteMediaItem marks a media item deleted and returns the number of rows touched.
func (q *Queries) SoftDeleteMediaItem(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, softDeleteMediaItem, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
