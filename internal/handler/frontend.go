// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/render"
	"github.com/olegiv/orchardlite-go/internal/service"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/util"
)

// settingContactEmail holds the address shown on the contact page.
const settingContactEmail = "ContactEmail"

// FrontendHandler handles the public site.
type FrontendHandler struct {
	base
	content *service.ContentService
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(renderer *render.Renderer, content *service.ContentService, settings *service.SettingsResolver, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		base: base{
			renderer: renderer,
			settings: settings,
			logger:   logger,
		},
		content: content,
	}
}

// Home handles GET / - the home page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recent, err := h.content.ListPublished(ctx, service.ListPublishedParams{
		ContentType: model.ContentTypeBlogPost,
		Limit:       homeRecentPosts,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	pages, err := h.content.ListPublished(ctx, service.ListPublishedParams{
		ContentType: model.ContentTypePage,
		Order:       store.OrderTitleAsc,
		Limit:       homePagesLimit,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "home", "Home", HomeData{
		Description: h.settings.Get(ctx, model.SettingSiteDescription, model.DefaultSiteDescription),
		RecentPosts: recent.Items,
		Pages:       pages.Items,
	})
}

// Blog handles GET /blog - the paginated list of published blog posts.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	paging := service.NewPaging(pageParam(r), blogPageSize, blogPageSize)

	result, err := h.content.ListPublished(r.Context(), service.ListPublishedParams{
		ContentType: model.ContentTypeBlogPost,
		Limit:       paging.PageSize,
		Offset:      int(paging.Offset()),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "blog", "Blog", ListData{
		Items:      result.Items,
		Pagination: BuildPagination(paging.Page, result.Total, paging.PageSize, RouteBlog, r.URL.Query()),
	})
}

// Pages handles GET /pages - published pages ordered by title, paginated.
func (h *FrontendHandler) Pages(w http.ResponseWriter, r *http.Request) {
	paging := service.NewPaging(pageParam(r), pagesPageSize, pagesPageSize)

	result, err := h.content.ListPublished(r.Context(), service.ListPublishedParams{
		ContentType: model.ContentTypePage,
		Order:       store.OrderTitleAsc,
		Limit:       paging.PageSize,
		Offset:      int(paging.Offset()),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "pages", "Pages", ListData{
		Items:      result.Items,
		Pagination: BuildPagination(paging.Page, result.Total, paging.PageSize, RoutePages, r.URL.Query()),
	})
}

// ContentDetails handles GET /content/{slug} - one published item.
// Every successful view increments the item's view count.
func (h *FrontendHandler) ContentDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug, model.MaxSlugLength) {
		h.renderNotFound(w, r)
		return
	}

	item, err := h.content.GetBySlug(ctx, slug)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if h.content.RecordView(ctx, item.ID) {
		item.ViewCount++
	}

	parts, err := h.content.Parts(ctx, item.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	related, err := h.content.Related(ctx, item.ContentItem, relatedItems)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "content-details", item.Title, ContentDetailsData{
		Item:    item,
		Format:  model.BodyFormat(parts),
		Related: related,
		CanEdit: false,
	})
}

// Search handles GET /search - full-text search over published content.
func (h *FrontendHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	paging := service.NewPaging(pageParam(r), searchPageSize, searchPageSize)

	result, err := h.content.Search(r.Context(), query, paging.PageSize, int(paging.Offset()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, "search", "Search", SearchData{
		Query:      query,
		Items:      result.Items,
		Total:      result.Total,
		Pagination: BuildPagination(paging.Page, result.Total, paging.PageSize, RouteSearch, r.URL.Query()),
	})
}

// About handles GET /about.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about", "About", AboutData{
		Description: h.settings.Get(r.Context(), model.SettingSiteDescription, model.DefaultSiteDescription),
	})
}

// Contact handles GET /contact.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "contact", "Contact", ContactData{
		Email: h.settings.Get(r.Context(), settingContactEmail, defaultContactEmail),
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r)
}
