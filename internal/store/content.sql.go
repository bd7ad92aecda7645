// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
)

const contentColumns = `c.Id, c.ContentType, c.Title, c.Slug, COALESCE(c.Summary, ''), COALESCE(c.Body, ''),
	c.AuthorId, c.Status, c.PublishedDate, c.CreatedDate, c.ModifiedDate, c.ViewCount, c.IsDeleted`

const authorColumns = `u.Id, u.UserName, COALESCE(u.FirstName, ''), COALESCE(u.LastName, '')`

// ContentOrder selects the ordering of a published content listing.
type ContentOrder int

const (
	// OrderPublishedDesc lists newest publications first.
	OrderPublishedDesc ContentOrder = iota
	// OrderTitleAsc lists alphabetically by title.
	OrderTitleAsc
)

func scanContentItem(s scanner, extra ...any) (model.ContentItem, error) {
	var c model.ContentItem
	var status string
	dest := []any{
		&c.ID, &c.ContentType, &c.Title, &c.Slug, &c.Summary, &c.Body,
		&c.AuthorID, &status, &c.PublishedDate, &c.CreatedDate, &c.ModifiedDate, &c.ViewCount, &c.IsDeleted,
	}
	dest = append(dest, extra...)
	if err := s.Scan(dest...); err != nil {
		return c, err
	}
	c.Status = model.ContentStatus(status)
	return c, nil
}

func scanContentWithAuthor(s scanner) (model.ContentItemWithAuthor, error) {
	var a model.Author
	item, err := scanContentItem(s, &a.ID, &a.UserName, &a.FirstName, &a.LastName)
	if err != nil {
		return model.ContentItemWithAuthor{}, err
	}
	return model.ContentItemWithAuthor{ContentItem: item, Author: a}, nil
}

func (q *Queries) queryContentWithAuthor(ctx context.Context, query string, args ...any) ([]model.ContentItemWithAuthor, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []model.ContentItemWithAuthor{}
	for rows.Next() {
		item, err := scanContentWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPublishedContentByDate = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.Status = ? AND c.IsDeleted = 0 AND (? = '' OR c.ContentType = ?)
ORDER BY c.PublishedDate DESC, c.Id DESC
LIMIT ? OFFSET ?`

const listPublishedContentByTitle = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.Status = ? AND c.IsDeleted = 0 AND (? = '' OR c.ContentType = ?)
ORDER BY c.Title ASC, c.Id ASC
LIMIT ? OFFSET ?`

// ListPublishedContentParams filters a published content listing.
// An empty ContentType matches every type.
type ListPublishedContentParams struct {
	ContentType string
	Order       ContentOrder
	Limit       int64
	Offset      int64
}

// ListPublishedContent returns published, non-deleted items with their authors.
func (q *Queries) ListPublishedContent(ctx context.Context, arg ListPublishedContentParams) ([]model.ContentItemWithAuthor, error) {
	query := listPublishedContentByDate
	if arg.Order == OrderTitleAsc {
		query = listPublishedContentByTitle
	}
	return q.queryContentWithAuthor(ctx, query,
		string(model.StatusPublished), arg.ContentType, arg.ContentType, arg.Limit, arg.Offset)
}

const countPublishedContent = `SELECT COUNT(*) FROM ContentItems c
WHERE c.Status = ? AND c.IsDeleted = 0 AND (? = '' OR c.ContentType = ?)`

// CountPublishedContent counts published, non-deleted items of contentType
// (all types when empty).
func (q *Queries) CountPublishedContent(ctx context.Context, contentType string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPublishedContent,
		string(model.StatusPublished), contentType, contentType).Scan(&count)
	return count, err
}

const getPublishedContentBySlug = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.Slug = ? AND c.Status = ? AND c.IsDeleted = 0
ORDER BY c.PublishedDate DESC, c.Id DESC
LIMIT 1`

// GetPublishedContentBySlug returns the published, non-deleted item with slug.
// It returns sql.ErrNoRows when there is none.
func (q *Queries) GetPublishedContentBySlug(ctx context.Context, slug string) (model.ContentItemWithAuthor, error) {
	row := q.db.QueryRowContext(ctx, getPublishedContentBySlug, slug, string(model.StatusPublished))
	return scanContentWithAuthor(row)
}

const getContentByID = `SELECT ` + contentColumns + `
FROM ContentItems c
WHERE c.Id = ? AND c.IsDeleted = 0`

// GetContentByID returns a non-deleted item of any status.
func (q *Queries) GetContentByID(ctx context.Context, id int64) (model.ContentItem, error) {
	row := q.db.QueryRowContext(ctx, getContentByID, id)
	return scanContentItem(row)
}

const incrementViewCount = `UPDATE ContentItems SET ViewCount = ViewCount + 1 WHERE Id = ?`

// IncrementViewCount adds one to the item's view count in a single statement
// and returns the number of rows touched.
func (q *Queries) IncrementViewCount(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, incrementViewCount, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const searchPublishedContent = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.Status = ? AND c.IsDeleted = 0
  AND (LOWER(c.Title) LIKE ? ESCAPE '!'
    OR LOWER(COALESCE(c.Summary, '')) LIKE ? ESCAPE '!'
    OR LOWER(COALESCE(c.Body, '')) LIKE ? ESCAPE '!')
ORDER BY c.PublishedDate DESC, c.Id DESC
LIMIT ? OFFSET ?`

// SearchPublishedContentParams is a case-insensitive substring search.
// Term must already be lower-cased.
type SearchPublishedContentParams struct {
	Term   string
	Limit  int64
	Offset int64
}

// SearchPublishedContent matches Term against title, summary and body of
// published, non-deleted items.
func (q *Queries) SearchPublishedContent(ctx context.Context, arg SearchPublishedContentParams) ([]model.ContentItemWithAuthor, error) {
	pattern := likePattern(arg.Term)
	return q.queryContentWithAuthor(ctx, searchPublishedContent,
		string(model.StatusPublished), pattern, pattern, pattern, arg.Limit, arg.Offset)
}

const countSearchPublishedContent = `SELECT COUNT(*) FROM ContentItems c
WHERE c.Status = ? AND c.IsDeleted = 0
  AND (LOWER(c.Title) LIKE ? ESCAPE '!'
    OR LOWER(COALESCE(c.Summary, '')) LIKE ? ESCAPE '!'
    OR LOWER(COALESCE(c.Body, '')) LIKE ? ESCAPE '!')`

// CountSearchPublishedContent counts the matches of SearchPublishedContent.
func (q *Queries) CountSearchPublishedContent(ctx context.Context, term string) (int64, error) {
	pattern := likePattern(term)
	var count int64
	err := q.db.QueryRowContext(ctx, countSearchPublishedContent,
		string(model.StatusPublished), pattern, pattern, pattern).Scan(&count)
	return count, err
}

const listContent = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.IsDeleted = 0 AND (? = '' OR c.ContentType = ?) AND (? = '' OR c.Status = ?)
ORDER BY c.ModifiedDate DESC, c.Id DESC
LIMIT ? OFFSET ?`

// ListContentParams filters the admin content listing. Empty fields match all.
type ListContentParams struct {
	ContentType string
	Status      string
	Limit       int64
	Offset      int64
}

// ListContent returns non-deleted items of any status, most recently modified first.
func (q *Queries) ListContent(ctx context.Context, arg ListContentParams) ([]model.ContentItemWithAuthor, error) {
	return q.queryContentWithAuthor(ctx, listContent,
		arg.ContentType, arg.ContentType, arg.Status, arg.Status, arg.Limit, arg.Offset)
}

const countContent = `SELECT COUNT(*) FROM ContentItems c
WHERE c.IsDeleted = 0 AND (? = '' OR c.ContentType = ?) AND (? = '' OR c.Status = ?)`

// CountContentParams filters CountContent. Empty fields match all.
type CountContentParams struct {
	ContentType string
	Status      string
}

// CountContent counts non-deleted items matching the filter.
func (q *Queries) CountContent(ctx context.Context, arg CountContentParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContent,
		arg.ContentType, arg.ContentType, arg.Status, arg.Status).Scan(&count)
	return count, err
}

const listContentTypes = `SELECT DISTINCT ContentType FROM ContentItems
WHERE IsDeleted = 0
ORDER BY ContentType`

// ListContentTypes returns the distinct content types of non-deleted items.
func (q *Queries) ListContentTypes(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listContentTypes)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

const listRelatedContent = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.ContentType = ? AND c.Id <> ? AND c.Status = ? AND c.IsDeleted = 0
ORDER BY c.PublishedDate DESC, c.Id DESC
LIMIT ?`

// ListRelatedContentParams selects published items sharing a content type.
type ListRelatedContentParams struct {
	ContentType string
	ExcludeID   int64
	Limit       int64
}

// ListRelatedContent returns other published items of the same type, newest first.
func (q *Queries) ListRelatedContent(ctx context.Context, arg ListRelatedContentParams) ([]model.ContentItemWithAuthor, error) {
	return q.queryContentWithAuthor(ctx, listRelatedContent,
		arg.ContentType, arg.ExcludeID, string(model.StatusPublished), arg.Limit)
}

const listRecentlyModifiedContent = `SELECT ` + contentColumns + `, ` + authorColumns + `
FROM ContentItems c
INNER JOIN Users u ON u.Id = c.AuthorId
WHERE c.IsDeleted = 0
ORDER BY c.ModifiedDate DESC, c.Id DESC
LIMIT ?`

// ListRecentlyModifiedContent returns the latest edited non-deleted items.
func (q *Queries) ListRecentlyModifiedContent(ctx context.Context, limit int64) ([]model.ContentItemWithAuthor, error) {
	return q.queryContentWithAuthor(ctx, listRecentlyModifiedContent, limit)
}

const createContent = `INSERT INTO ContentItems
(ContentType, Title, Slug, Summary, Body, AuthorId, Status, PublishedDate, CreatedDate, ModifiedDate, ViewCount, IsDeleted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0)`

// CreateContentParams holds the columns of a new content item.
type CreateContentParams struct {
	ContentType   string
	Title         string
	Slug          string
	Summary       string
	Body          string
	AuthorID      int64
	Status        model.ContentStatus
	PublishedDate sql.NullTime
	CreatedDate   time.Time
}

// CreateContent inserts a content item and returns it.
func (q *Queries) CreateContent(ctx context.Context, arg CreateContentParams) (model.ContentItem, error) {
	res, err := q.db.ExecContext(ctx, createContent,
		arg.ContentType, arg.Title, arg.Slug, nullString(arg.Summary), nullString(arg.Body),
		arg.AuthorID, string(arg.Status), arg.PublishedDate, arg.CreatedDate, arg.CreatedDate)
	if err != nil {
		return model.ContentItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContentItem{}, err
	}
	return model.ContentItem{
		ID:            id,
		ContentType:   arg.ContentType,
		Title:         arg.Title,
		Slug:          arg.Slug,
		Summary:       arg.Summary,
		Body:          arg.Body,
		AuthorID:      arg.AuthorID,
		Status:        arg.Status,
		PublishedDate: arg.PublishedDate,
		CreatedDate:   arg.CreatedDate,
		ModifiedDate:  arg.CreatedDate,
	}, nil
}

const updateContentStatus = `UPDATE ContentItems
SET Status = ?, PublishedDate = ?, ModifiedDate = ?
WHERE Id = ? AND IsDeleted = 0`

// UpdateContentStatusParams sets the status and publish date of an item.
type UpdateContentStatusParams struct {
	ID            int64
	Status        model.ContentStatus
	PublishedDate sql.NullTime
	ModifiedDate  time.Time
}

// UpdateContentStatus changes status and publish date of a non-deleted item
// and returns the number of rows touched.
func (q *Queries) UpdateContentStatus(ctx context.Context, arg UpdateContentStatusParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateContentStatus,
		string(arg.Status), arg.PublishedDate, arg.ModifiedDate, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const softDeleteContent = `UPDATE ContentItems
SET IsDeleted = 1, ModifiedDate = ?
WHERE Id = ? AND IsDeleted = 0`

// SoftDeleteContent marks an item deleted and returns the number of rows touched.
func (q *Queries) SoftDeleteContent(ctx context.Context, id int64, modified time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, softDeleteContent, modified, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listContentParts = `SELECT Id, ContentItemId, PartType, PartName, COALESCE(PartData, ''), CreatedDate
FROM ContentParts
WHERE ContentItemId = ?
ORDER BY Id`

// ListContentParts returns the parts attached to a content item.
func (q *Queries) ListContentParts(ctx context.Context, contentItemID int64) ([]model.ContentPart, error) {
	rows, err := q.db.QueryContext(ctx, listContentParts, contentItemID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	parts := []model.ContentPart{}
	for rows.Next() {
		var p model.ContentPart
		if err := rows.Scan(&p.ID, &p.ContentItemID, &p.PartType, &p.PartName, &p.PartData, &p.CreatedDate); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

const createContentPart = `INSERT INTO ContentParts (ContentItemId, PartType, PartName, PartData, CreatedDate)
VALUES (?, ?, ?, ?, ?)`

// CreateContentPartParams holds the columns of a new content part.
type CreateContentPartParams struct {
	ContentItemID int64
	PartType      string
	PartName      string
	PartData      string
	CreatedDate   time.Time
}

// CreateContentPart attaches a part to a content item.
func (q *Queries) CreateContentPart(ctx context.Context, arg CreateContentPartParams) (model.ContentPart, error) {
	res, err := q.db.ExecContext(ctx, createContentPart,
		arg.ContentItemID, arg.PartType, arg.PartName, arg.PartData, arg.CreatedDate)
	if err != nil {
		return model.ContentPart{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContentPart{}, err
	}
	return model.ContentPart{
		ID:            id,
		ContentItemID: arg.ContentItemID,
		PartType:      arg.PartType,
		PartName:      arg.PartName,
		PartData:      arg.PartData,
		CreatedDate:   arg.CreatedDate,
	}, nil
}
