// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
)

// MediaPathPrefix is the public URL prefix media files are served under.
const MediaPathPrefix = "/media"

// MediaService lists media records and registers files stored elsewhere.
// Bytes are never handled here.
type MediaService struct {
	queries *store.Queries
	audit   *AuditService
	logger  *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(db *sql.DB, logger *slog.Logger) *MediaService {
	return &MediaService{
		queries: store.New(db),
		audit:   NewAuditService(db, logger),
		logger:  logger,
	}
}

// List returns a page of non-deleted media, newest upload first.
func (s *MediaService) List(ctx context.Context, p Paging) (Page[model.MediaItemWithUploader], error) {
	items, err := s.queries.ListMediaItems(ctx, p.Limit(), p.Offset())
	if err != nil {
		return Page[model.MediaItemWithUploader]{}, dataAccess("listing media", err)
	}
	total, err := s.queries.CountMediaItems(ctx)
	if err != nil {
		return Page[model.MediaItemWithUploader]{}, dataAccess("counting media", err)
	}
	return Page[model.MediaItemWithUploader]{Items: items, Total: total}, nil
}

// RegisterMediaInput describes a file already stored by some other process.
// An empty ContentType is derived from the file extension.
type RegisterMediaInput struct {
	OriginalFileName string
	ContentType      string
	FileSize         int64
	AltText          string
	Caption          string
	UploadedByID     int64
}

// Register records a media item. The stored file name is sanitized and the
// path is derived from it under MediaPathPrefix.
func (s *MediaService) Register(ctx context.Context, in RegisterMediaInput) (model.MediaItem, error) {
	original := strings.TrimSpace(in.OriginalFileName)
	if original == "" || len(original) > model.MaxFileNameLength {
		return model.MediaItem{}, &ValidationError{Field: "OriginalFileName", Message: fmt.Sprintf("is required and limited to %d characters", model.MaxFileNameLength)}
	}
	if in.FileSize < 0 {
		return model.MediaItem{}, &ValidationError{Field: "FileSize", Message: "must not be negative"}
	}
	if len(in.AltText) > model.MaxAltTextLength {
		return model.MediaItem{}, &ValidationError{Field: "AltText", Message: fmt.Sprintf("must be at most %d characters", model.MaxAltTextLength)}
	}
	if in.UploadedByID <= 0 {
		return model.MediaItem{}, &ValidationError{Field: "UploadedByID", Message: "is required"}
	}

	fileName := sanitizeFilename(original)
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" {
		contentType = mimeTypeFromExtension(fileName)
	}

	item, err := s.queries.CreateMediaItem(ctx, store.CreateMediaItemParams{
		FileName:         fileName,
		OriginalFileName: original,
		ContentType:      contentType,
		FileSize:         in.FileSize,
		FilePath:         path.Join(MediaPathPrefix, fileName),
		AltText:          in.AltText,
		Caption:          in.Caption,
		UploadedByID:     in.UploadedByID,
		UploadedDate:     time.Now().UTC(),
	})
	if err != nil {
		return model.MediaItem{}, dataAccess("registering media", err)
	}

	s.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionCreate,
		EntityType: model.EntityMediaItem,
		EntityID:   item.ID,
		Details:    item.FileName,
	})
	return item, nil
}

// Delete soft-deletes a media item.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.SoftDeleteMediaItem(ctx, id)
	if err != nil {
		return dataAccess("deleting media", err)
	}
	if n == 0 {
		return fmt.Errorf("media %d: %w", id, ErrNotFound)
	}
	s.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionDelete,
		EntityType: model.EntityMediaItem,
		EntityID:   id,
	})
	return nil
}

func sanitizeFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))

	replacer := strings.NewReplacer(
		" ", "-",
		"'", "",
		"\"", "",
		"<", "",
		">", "",
		"&", "",
		"#", "",
		"?", "",
		"%", "",
	)
	filename = replacer.Replace(filename)

	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}
	return filename
}

func mimeTypeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
