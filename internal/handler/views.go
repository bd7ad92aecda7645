// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/olegiv/orchardlite-go/internal/model"
)

// ErrorData is the view model of the error page.
type ErrorData struct {
	StatusCode  int
	Message     string
	ReferenceID string
}

// HomeData is the view model of the home page.
type HomeData struct {
	Description string
	RecentPosts []model.ContentItemWithAuthor
	Pages       []model.ContentItemWithAuthor
}

// ListData is the view model of the blog and pages listings.
type ListData struct {
	Items      []model.ContentItemWithAuthor
	Pagination Pagination
}

// ContentDetailsData is the view model of a single content item.
type ContentDetailsData struct {
	Item    model.ContentItemWithAuthor
	Format  string
	Related []model.ContentItemWithAuthor
	CanEdit bool
}

// SearchData is the view model of the search page.
type SearchData struct {
	Query      string
	Items      []model.ContentItemWithAuthor
	Total      int64
	Pagination Pagination
}

// AboutData is the view model of the about page.
type AboutData struct {
	Description string
}

// ContactData is the view model of the contact page.
type ContactData struct {
	Email string
}

// AdminContentData is the view model of the admin content listing.
type AdminContentData struct {
	Items        []model.ContentItemWithAuthor
	ContentTypes []string
	Statuses     []model.ContentStatus
	ContentType  string
	Status       string
	PageSize     int
	Pagination   Pagination
}

// AdminUsersData is the view model of the admin user listing.
type AdminUsersData struct {
	Users      []model.UserWithRoles
	Pagination Pagination
}

// AdminMediaData is the view model of the admin media listing.
type AdminMediaData struct {
	Items      []model.MediaItemWithUploader
	Pagination Pagination
}

// AdminSettingsData is the view model of the admin settings listing.
type AdminSettingsData struct {
	Settings []model.Setting
}

// AuditLogEntry is an audit row decorated for display.
type AuditLogEntry struct {
	model.AuditLogWithUser
	Country string
	Client  string
}

// AdminAuditLogData is the view model of the admin audit log.
type AdminAuditLogData struct {
	Entries      []AuditLogEntry
	GeoIPEnabled bool
	Pagination   Pagination
}
