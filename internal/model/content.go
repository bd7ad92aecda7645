// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
	"time"
)

// ContentStatus is the lifecycle state of a content item.
type ContentStatus string

// Content statuses.
const (
	StatusDraft     ContentStatus = "Draft"
	StatusPublished ContentStatus = "Published"
	StatusArchived  ContentStatus = "Archived"
)

// ContentStatuses lists every status in display order.
var ContentStatuses = []ContentStatus{StatusDraft, StatusPublished, StatusArchived}

// ParseContentStatus matches s case-insensitively against the known statuses.
func ParseContentStatus(s string) (ContentStatus, bool) {
	s = strings.TrimSpace(s)
	for _, status := range ContentStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the known statuses.
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func (s ContentStatus) String() string {
	return string(s)
}

// Well-known content types.
const (
	ContentTypeBlogPost = "BlogPost"
	ContentTypePage     = "Page"
)

// Content part conventions understood by the renderer.
const (
	PartTypeBody   = "BodyPart"
	PartNameFormat = "Format"
	FormatMarkdown = "markdown"
)

// ContentItem is a page, blog post or any other typed piece of content.
type ContentItem struct {
	ID            int64
	ContentType   string
	Title         string
	Slug          string
	Summary       string
	Body          string
	AuthorID      int64
	Status        ContentStatus
	PublishedDate sql.NullTime
	CreatedDate   time.Time
	ModifiedDate  time.Time
	ViewCount     int64
	IsDeleted     bool
}

// IsPublished reports whether the item is published with a publish date
// that is not in the future.
func (c ContentItem) IsPublished() bool {
	return c.IsPublishedAt(time.Now())
}

// IsPublishedAt is IsPublished evaluated at the given instant.
func (c ContentItem) IsPublishedAt(now time.Time) bool {
	return c.Status == StatusPublished && c.PublishedDate.Valid && !c.PublishedDate.Time.After(now)
}

// StatusDisplay returns the human-readable status name.
func (c ContentItem) StatusDisplay() string {
	if c.Status == "" {
		return string(StatusDraft)
	}
	return string(c.Status)
}

// ContentItemWithAuthor is a content item joined with its author.
type ContentItemWithAuthor struct {
	ContentItem
	Author Author
}

// ContentPart is an opaque named blob attached to a content item.
type ContentPart struct {
	ID            int64
	ContentItemID int64
	PartType      string
	PartName      string
	PartData      string
	CreatedDate   time.Time
}

// BodyFormat returns the body format declared by the parts, or "" when none is.
func BodyFormat(parts []ContentPart) string {
	for _, p := range parts {
		if p.PartType == PartTypeBody && p.PartName == PartNameFormat {
			return strings.ToLower(strings.TrimSpace(p.PartData))
		}
	}
	return ""
}
