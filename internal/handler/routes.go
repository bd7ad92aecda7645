// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Frontend *FrontendHandler
	Admin    *AdminHandler
	Health   *HealthHandler
	// Static serves RouteStatic; nil leaves the route unregistered.
	Static fs.FS
	// Public wraps the public site routes (rate limiting).
	Public []func(http.Handler) http.Handler
}

// RegisterRoutes mounts the site, admin, health and static routes on r.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Get(RouteHealth, h.Health.Health)
	r.Get(RouteHealthLive, h.Health.Liveness)
	r.Get(RouteHealthReady, h.Health.Readiness)

	if h.Static != nil {
		r.Handle(RouteStatic, http.StripPrefix("/static/", http.FileServer(http.FS(h.Static))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.Public...)

		r.Get(RouteRoot, h.Frontend.Home)
		r.Get(RouteBlog, h.Frontend.Blog)
		r.Get(RoutePages, h.Frontend.Pages)
		r.Get(RouteContentSlug, h.Frontend.ContentDetails)
		r.Get(RouteSearch, h.Frontend.Search)
		r.Get(RouteAbout, h.Frontend.About)
		r.Get(RouteContact, h.Frontend.Contact)
	})

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Get("/", h.Admin.Dashboard)
		r.Get(RouteContent, h.Admin.Content)
		r.Get(RouteUsers, h.Admin.Users)
		r.Get(RouteMedia, h.Admin.Media)
		r.Get(RouteSettings, h.Admin.Settings)
		r.Get(RouteAuditLog, h.Admin.AuditLog)
		r.Get(RouteDatabaseInfo, h.Admin.DatabaseInfo)
	})

	r.NotFound(h.Frontend.NotFound)
	r.MethodNotAllowed(h.Frontend.NotFound)
}
