// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/orchardlite-go/internal/geoip"
	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/render"
	"github.com/olegiv/orchardlite-go/internal/service"
	"github.com/olegiv/orchardlite-go/internal/util"
)

// AdminServices groups the services the admin area reads from.
type AdminServices struct {
	Content   *service.ContentService
	Dashboard *service.DashboardService
	Users     *service.UserService
	Media     *service.MediaService
	Settings  *service.SettingsResolver
	Audit     *service.AuditService
}

// AdminHandler handles the read-only admin area.
type AdminHandler struct {
	base
	content   *service.ContentService
	dashboard *service.DashboardService
	users     *service.UserService
	media     *service.MediaService
	audit     *service.AuditService
	geo       *geoip.Lookup
}

// NewAdminHandler creates a new AdminHandler. geo may be nil.
func NewAdminHandler(renderer *render.Renderer, svc AdminServices, geo *geoip.Lookup, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		base: base{
			renderer: renderer,
			settings: svc.Settings,
			logger:   logger,
		},
		content:   svc.Content,
		dashboard: svc.Dashboard,
		users:     svc.Users,
		media:     svc.Media,
		audit:     svc.Audit,
		geo:       geo,
	}
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.dashboard.Dashboard(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "admin/dashboard", "Dashboard", dash)
}

// Content handles GET /admin/content - every non-deleted item, filterable
// by content type and status.
func (h *AdminHandler) Content(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	contentType := strings.TrimSpace(q.Get("contentType"))
	status := strings.TrimSpace(q.Get("status"))
	paging := service.NewPaging(pageParam(r), pageSizeParam(r, adminPageSize), adminPageSize)

	result, err := h.content.ListAdmin(ctx, service.AdminContentFilter{
		ContentType: contentType,
		Status:      status,
		Paging:      paging,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	types, err := h.content.ContentTypes(ctx)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	// Echo only a status the filter actually applied
	if parsed, ok := model.ParseContentStatus(status); ok {
		status = parsed.String()
	} else {
		status = ""
	}

	h.render(w, r, "admin/content", "Content", AdminContentData{
		Items:        result.Items,
		ContentTypes: types,
		Statuses:     model.ContentStatuses,
		ContentType:  contentType,
		Status:       status,
		PageSize:     paging.PageSize,
		Pagination:   BuildPagination(paging.Page, result.Total, paging.PageSize, RouteAdmin+RouteContent, q),
	})
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	paging := service.NewPaging(pageParam(r), pageSizeParam(r, adminPageSize), adminPageSize)

	result, err := h.users.List(r.Context(), paging)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "admin/users", "Users", AdminUsersData{
		Users:      result.Items,
		Pagination: BuildPagination(paging.Page, result.Total, paging.PageSize, RouteAdmin+RouteUsers, r.URL.Query()),
	})
}

// Media handles GET /admin/media.
func (h *AdminHandler) Media(w http.ResponseWriter, r *http.Request) {
	paging := service.NewPaging(pageParam(r), pageSizeParam(r, adminPageSize), adminPageSize)

	result, err := h.media.List(r.Context(), paging)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "admin/media", "Media", AdminMediaData{
		Items:      result.Items,
		Pagination: BuildPagination(paging.Page, result.Total, paging.PageSize, RouteAdmin+RouteMedia, r.URL.Query()),
	})
}

// Settings handles GET /admin/settings.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "admin/settings", "Settings", AdminSettingsData{Settings: settings})
}

// AuditLog handles GET /admin/auditlog.
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	paging := service.NewPaging(pageParam(r), pageSizeParam(r, auditLogPageSize), auditLogPageSize)

	result, err := h.audit.List(r.Context(), paging)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	geoEnabled := h.geo.Enabled()
	entries := make([]AuditLogEntry, 0, len(result.Items))
	for _, item := range result.Items {
		entry := AuditLogEntry{
			AuditLogWithUser: item,
			Client:           util.DescribeUserAgent(item.UserAgent),
		}
		if geoEnabled {
			entry.Country = geoip.CountryName(h.geo.Country(item.IPAddress))
		}
		entries = append(entries, entry)
	}

	h.render(w, r, "admin/auditlog", "Audit Log", AdminAuditLogData{
		Entries:      entries,
		GeoIPEnabled: geoEnabled,
		Pagination:   BuildPagination(paging.Page, result.Total, paging.PageSize, RouteAdmin+RouteAuditLog, r.URL.Query()),
	})
}

// DatabaseInfo handles GET /admin/databaseinfo.
func (h *AdminHandler) DatabaseInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.dashboard.DatabaseInfo(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "admin/databaseinfo", "Database", info)
}
