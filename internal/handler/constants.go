// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the home page.
	RouteRoot = "/"
	// RouteBlog lists published blog posts.
	RouteBlog = "/blog"
	// RoutePages lists published pages.
	RoutePages = "/pages"
	// RouteContentSlug shows one published item.
	RouteContentSlug = "/content/{slug}"
	// RouteSearch searches published content.
	RouteSearch = "/search"
	// RouteAbout is the about page.
	RouteAbout = "/about"
	// RouteContact is the contact page.
	RouteContact = "/contact"

	// RouteAdmin is the admin area mount point and dashboard.
	RouteAdmin = "/admin"
	// RouteContent is the admin content listing.
	RouteContent = "/content"
	// RouteUsers is the admin user listing.
	RouteUsers = "/users"
	// RouteMedia is the admin media listing.
	RouteMedia = "/media"
	// RouteSettings is the admin settings listing.
	RouteSettings = "/settings"
	// RouteAuditLog is the admin audit log.
	RouteAuditLog = "/auditlog"
	// RouteDatabaseInfo is the admin database page.
	RouteDatabaseInfo = "/databaseinfo"

	// RouteHealth is the health check.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"

	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"
)

// Page sizes.
const (
	homeRecentPosts     = 5
	blogPageSize        = 10
	searchPageSize      = 10
	relatedItems        = 3
	adminPageSize       = 20
	auditLogPageSize    = 50
	homePagesLimit      = 20
	pagesPageSize       = 20
	defaultContactEmail = "hello@orchardlite.local"
)
