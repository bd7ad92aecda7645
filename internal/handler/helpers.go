// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the public site, the admin
// area and the health endpoints.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/olegiv/orchardlite-go/internal/render"
	"github.com/olegiv/orchardlite-go/internal/service"
)

// Messages shown on error pages. Raw error text never reaches the client.
const (
	msgNotFound    = "The page you are looking for does not exist."
	msgServerError = "Something went wrong while processing your request."
)

// base carries what every page handler needs: the renderer, the site name
// source and a logger.
type base struct {
	renderer *render.Renderer
	settings *service.SettingsResolver
	logger   *slog.Logger
}

// templateData builds the common template data for a page.
func (b *base) templateData(r *http.Request, title string, data any) render.TemplateData {
	return render.TemplateData{
		Title:    title,
		SiteName: b.settings.SiteName(r.Context()),
		Data:     data,
	}
}

// render renders a 200 page, falling back to the error page when the
// template fails.
func (b *base) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := b.renderer.Render(w, r, name, b.templateData(r, title, data)); err != nil {
		b.renderError(w, r, err)
	}
}

// renderNotFound renders the 404 page.
func (b *base) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := ErrorData{StatusCode: http.StatusNotFound, Message: msgNotFound}
	err := b.renderer.RenderStatus(w, r, http.StatusNotFound, "error", b.templateData(r, "Page Not Found", data))
	if err != nil {
		b.logger.ErrorContext(r.Context(), "failed to render not found page", "error", err)
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}

// renderError turns err into an error page. service.ErrNotFound becomes a
// 404; anything else is logged with a fresh reference id and answered with a
// generic 500 page showing only that id.
func (b *base) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		b.renderNotFound(w, r)
		return
	}

	ref := uuid.NewString()
	b.logger.ErrorContext(r.Context(), "request failed",
		"reference", ref,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	data := ErrorData{
		StatusCode:  http.StatusInternalServerError,
		Message:     msgServerError,
		ReferenceID: ref,
	}
	if rerr := b.renderer.RenderStatus(w, r, http.StatusInternalServerError, "error", b.templateData(r, "Error", data)); rerr != nil {
		b.logger.ErrorContext(r.Context(), "failed to render error page", "reference", ref, "error", rerr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// pageParam reads the 1-based page number from the query string.
// Missing or invalid values give 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageSizeParam reads the page size from the query string. A missing or
// unparsable value gives def; anything else is clamped to [1, MaxPageSize].
func pageSizeParam(r *http.Request, def int) int {
	raw := r.URL.Query().Get("pageSize")
	if raw == "" {
		return def
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return min(max(size, 1), service.MaxPageSize)
}
