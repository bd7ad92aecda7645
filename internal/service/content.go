// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/util"
)

// ContentService answers every content question the site and the admin
// area ask, and owns the authoring write paths.
type ContentService struct {
	queries *store.Queries
	audit   *AuditService
	logger  *slog.Logger
	now     func() time.Time
}

// NewContentService creates a new content service.
func NewContentService(db *sql.DB, logger *slog.Logger) *ContentService {
	return &ContentService{
		queries: store.New(db),
		audit:   NewAuditService(db, logger),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListPublishedParams filters ListPublished. An empty ContentType lists all types.
type ListPublishedParams struct {
	ContentType string
	Order       store.ContentOrder
	Limit       int
	Offset      int
}

// ListPublished returns published, non-deleted items and the total number
// of such items.
func (s *ContentService) ListPublished(ctx context.Context, p ListPublishedParams) (Page[model.ContentItemWithAuthor], error) {
	items, err := s.queries.ListPublishedContent(ctx, store.ListPublishedContentParams{
		ContentType: p.ContentType,
		Order:       p.Order,
		Limit:       int64(max(p.Limit, 0)),
		Offset:      int64(max(p.Offset, 0)),
	})
	if err != nil {
		return Page[model.ContentItemWithAuthor]{}, dataAccess("listing published content", err)
	}

	total, err := s.queries.CountPublishedContent(ctx, p.ContentType)
	if err != nil {
		return Page[model.ContentItemWithAuthor]{}, dataAccess("counting published content", err)
	}

	return Page[model.ContentItemWithAuthor]{Items: items, Total: total}, nil
}

// GetBySlug returns the published, non-deleted item with slug and its author.
// Drafts, archived and deleted items yield ErrNotFound.
func (s *ContentService) GetBySlug(ctx context.Context, slug string) (model.ContentItemWithAuthor, error) {
	if !util.IsValidSlug(slug, model.MaxSlugLength) {
		return model.ContentItemWithAuthor{}, fmt.Errorf("content %q: %w", slug, ErrNotFound)
	}

	item, err := s.queries.GetPublishedContentBySlug(ctx, slug)
	if err != nil {
		return model.ContentItemWithAuthor{}, dataAccess(fmt.Sprintf("loading content %q", slug), err)
	}
	return item, nil
}

// IncrementViewCount adds one view to the item with a single atomic update,
// so concurrent viewers are all counted.
func (s *ContentService) IncrementViewCount(ctx context.Context, id int64) error {
	n, err := s.queries.IncrementViewCount(ctx, id)
	if err != nil {
		return dataAccess("incrementing view count", err)
	}
	if n == 0 {
		return fmt.Errorf("content %d: %w", id, ErrNotFound)
	}
	return nil
}

// RecordView increments the view count and only logs a failure.
// It reports whether the view was stored.
func (s *ContentService) RecordView(ctx context.Context, id int64) bool {
	if err := s.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("failed to record content view", "content_id", id, "error", err)
		return false
	}
	return true
}

// Search finds published, non-deleted items whose title, summary or body
// contains query, ignoring case. A blank query returns an empty page
// without querying the database.
func (s *ContentService) Search(ctx context.Context, query string, limit, offset int) (Page[model.ContentItemWithAuthor], error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return Page[model.ContentItemWithAuthor]{Items: []model.ContentItemWithAuthor{}}, nil
	}

	items, err := s.queries.SearchPublishedContent(ctx, store.SearchPublishedContentParams{
		Term:   term,
		Limit:  int64(max(limit, 0)),
		Offset: int64(max(offset, 0)),
	})
	if err != nil {
		return Page[model.ContentItemWithAuthor]{}, dataAccess("searching content", err)
	}

	total, err := s.queries.CountSearchPublishedContent(ctx, term)
	if err != nil {
		return Page[model.ContentItemWithAuthor]{}, dataAccess("counting search results", err)
	}

	return Page[model.ContentItemWithAuthor]{Items: items, Total: total}, nil
}

// AdminContentFilter filters the admin content listing. Empty strings match
// everything; a status that is not a known status is ignored.
type AdminContentFilter struct {
	ContentType string
	Status      string
	Paging      Paging
}

// ListAdmin returns non-deleted items of any status, most recently modified
// first, with the total count of the filtered set.
func (s *ContentService) ListAdmin(ctx context.Context, f AdminContentFilter) (Page[model.ContentItemWithAuthor], error) {
	contentType := strings.TrimSpace(f.ContentType)
	status := ""
	if parsed, ok := model.ParseContentStatus(f.Status); ok {
		status = string(parsed)
	}

	items, err := s.queries.ListContent(ctx, store.ListContentParams{
		ContentType: contentType,
		Status:      status,
		Limit:       f.Paging.Limit(),
		Offset:      f.Paging.Offset(),
	})
	if err != nil {
		return Page[model.ContentItemWithAuthor]{}, dataAccess("listing content", err)
	}

	total, err := s.queries.CountContent(ctx, store.CountContentParams{ContentType: contentType, Status: status})
	if err != nil {
		return Page[model.ContentItemWithAuthor]{}, dataAccess("counting content", err)
	}

	return Page[model.ContentItemWithAuthor]{Items: items, Total: total}, nil
}

// Related returns up to limit other published items of the same type as
// item, newest first.
func (s *ContentService) Related(ctx context.Context, item model.ContentItem, limit int) ([]model.ContentItemWithAuthor, error) {
	related, err := s.queries.ListRelatedContent(ctx, store.ListRelatedContentParams{
		ContentType: item.ContentType,
		ExcludeID:   item.ID,
		Limit:       int64(max(limit, 0)),
	})
	if err != nil {
		return nil, dataAccess("listing related content", err)
	}
	return related, nil
}

// ContentTypes returns the distinct types of non-deleted items.
func (s *ContentService) ContentTypes(ctx context.Context) ([]string, error) {
	types, err := s.queries.ListContentTypes(ctx)
	if err != nil {
		return nil, dataAccess("listing content types", err)
	}
	return types, nil
}

// Parts returns the parts attached to an item.
func (s *ContentService) Parts(ctx context.Context, id int64) ([]model.ContentPart, error) {
	parts, err := s.queries.ListContentParts(ctx, id)
	if err != nil {
		return nil, dataAccess("listing content parts", err)
	}
	return parts, nil
}

// CreateContentInput describes a new content item. An empty Slug is derived
// from the title; an empty Status means Draft.
type CreateContentInput struct {
	ContentType string
	Title       string
	Slug        string
	Summary     string
	Body        string
	AuthorID    int64
	Status      model.ContentStatus
}

func (in *CreateContentInput) normalize() error {
	in.ContentType = strings.TrimSpace(in.ContentType)
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)

	switch {
	case in.ContentType == "":
		return &ValidationError{Field: "ContentType", Message: "is required"}
	case len(in.ContentType) > model.MaxContentTypeLength:
		return &ValidationError{Field: "ContentType", Message: fmt.Sprintf("must be at most %d characters", model.MaxContentTypeLength)}
	case in.Title == "":
		return &ValidationError{Field: "Title", Message: "is required"}
	case len(in.Title) > model.MaxTitleLength:
		return &ValidationError{Field: "Title", Message: fmt.Sprintf("must be at most %d characters", model.MaxTitleLength)}
	case in.AuthorID <= 0:
		return &ValidationError{Field: "AuthorID", Message: "is required"}
	}

	if in.Slug == "" {
		in.Slug = util.Slugify(in.Title)
	}
	if !util.IsValidSlug(in.Slug, model.MaxSlugLength) {
		return &ValidationError{Field: "Slug", Message: "may only contain letters, digits and hyphens"}
	}

	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if !in.Status.Valid() {
		return &ValidationError{Field: "Status", Message: fmt.Sprintf("unknown status %q", in.Status)}
	}
	return nil
}

// Create validates and stores a new content item. Items created as
// Published are stamped with the current time as publish date.
func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (model.ContentItem, error) {
	if err := in.normalize(); err != nil {
		return model.ContentItem{}, err
	}

	now := s.now()
	var published sql.NullTime
	if in.Status == model.StatusPublished {
		published = sql.NullTime{Time: now, Valid: true}
	}

	item, err := s.queries.CreateContent(ctx, store.CreateContentParams{
		ContentType:   in.ContentType,
		Title:         in.Title,
		Slug:          in.Slug,
		Summary:       in.Summary,
		Body:          in.Body,
		AuthorID:      in.AuthorID,
		Status:        in.Status,
		PublishedDate: published,
		CreatedDate:   now,
	})
	if err != nil {
		return model.ContentItem{}, dataAccess("creating content", err)
	}

	s.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionCreate,
		EntityType: model.EntityContentItem,
		EntityID:   item.ID,
		Details:    item.Slug,
	})
	return item, nil
}

// SetStatus moves an item to status. Moving to Published stamps the publish
// date when the item has none; other transitions keep the date as is.
func (s *ContentService) SetStatus(ctx context.Context, id int64, status model.ContentStatus) (model.ContentItem, error) {
	if !status.Valid() {
		return model.ContentItem{}, &ValidationError{Field: "Status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	item, err := s.queries.GetContentByID(ctx, id)
	if err != nil {
		return model.ContentItem{}, dataAccess(fmt.Sprintf("loading content %d", id), err)
	}

	now := s.now()
	published := item.PublishedDate
	if status == model.StatusPublished && !published.Valid {
		published = sql.NullTime{Time: now, Valid: true}
	}

	n, err := s.queries.UpdateContentStatus(ctx, store.UpdateContentStatusParams{
		ID:            id,
		Status:        status,
		PublishedDate: published,
		ModifiedDate:  now,
	})
	if err != nil {
		return model.ContentItem{}, dataAccess("updating content status", err)
	}
	if n == 0 {
		return model.ContentItem{}, fmt.Errorf("content %d: %w", id, ErrNotFound)
	}

	s.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionStatusChange,
		EntityType: model.EntityContentItem,
		EntityID:   id,
		Details:    fmt.Sprintf("%s -> %s", item.Status, status),
	})

	item.Status = status
	item.PublishedDate = published
	item.ModifiedDate = now
	return item, nil
}

// SoftDelete hides an item from every listing without removing the row.
func (s *ContentService) SoftDelete(ctx context.Context, id int64) error {
	n, err := s.queries.SoftDeleteContent(ctx, id, s.now())
	if err != nil {
		return dataAccess("deleting content", err)
	}
	if n == 0 {
		return fmt.Errorf("content %d: %w", id, ErrNotFound)
	}

	s.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionDelete,
		EntityType: model.EntityContentItem,
		EntityID:   id,
	})
	return nil
}

// AddPart attaches a named part to a non-deleted item.
func (s *ContentService) AddPart(ctx context.Context, id int64, partType, partName, data string) (model.ContentPart, error) {
	partType = strings.TrimSpace(partType)
	partName = strings.TrimSpace(partName)
	if partType == "" || len(partType) > model.MaxPartNameLength {
		return model.ContentPart{}, &ValidationError{Field: "PartType", Message: "is required and limited to 100 characters"}
	}
	if partName == "" || len(partName) > model.MaxPartNameLength {
		return model.ContentPart{}, &ValidationError{Field: "PartName", Message: "is required and limited to 100 characters"}
	}

	if _, err := s.queries.GetContentByID(ctx, id); err != nil {
		return model.ContentPart{}, dataAccess(fmt.Sprintf("loading content %d", id), err)
	}

	part, err := s.queries.CreateContentPart(ctx, store.CreateContentPartParams{
		ContentItemID: id,
		PartType:      partType,
		PartName:      partName,
		PartData:      data,
		CreatedDate:   s.now(),
	})
	if err != nil {
		return model.ContentPart{}, dataAccess("creating content part", err)
	}
	return part, nil
}
