// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/service"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/testutil"
)

func TestAdminPages(t *testing.T) {
	site := newTestSite(t)

	tests := []struct {
		path string
		want []string
	}{
		{RouteAdmin, []string{"<h1>Dashboard</h1>", "Active users", "Hello World", "seeded administrator"}},
		{RouteAdmin + RouteContent, []string{"Welcome to OrchardLite", "Hello World", "badge-Draft", "<option value=\"BlogPost\""}},
		{RouteAdmin + RouteUsers, []string{store.DefaultAdminUserName, store.DefaultAdminEmail, model.RoleAdministrator}},
		{RouteAdmin + RouteMedia, []string{"/media/orchard-logo.png", "image/png"}},
		{RouteAdmin + RouteSettings, []string{model.SettingSiteName, model.DefaultSiteName, "PostsPerPage"}},
		{RouteAdmin + RouteAuditLog, []string{"Site Administrator", model.ActionSettingSave}},
		{RouteAdmin + RouteDatabaseInfo, []string{store.DriverSQLite, "ContentItems", "AuditLogs", " MB"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := site.get(t, tt.path)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want %d", code, http.StatusOK)
			}
			assertContains(t, body, tt.want...)
		})
	}
}

func TestAdminContent_StatusFilter(t *testing.T) {
	site := newTestSite(t)

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{
			name:    "draft",
			query:   "?status=draft",
			want:    []string{"Hello World", `<option value="Draft" selected>`},
			notWant: []string{"Welcome to OrchardLite"},
		},
		{
			name:    "unknown status is ignored",
			query:   "?status=bogus",
			want:    []string{"Hello World", "Welcome to OrchardLite"},
			notWant: []string{" selected>", `value="bogus"`},
		},
		{
			name:    "content type",
			query:   "?contentType=Page",
			want:    []string{"About Us", `<option value="Page" selected>`},
			notWant: []string{"Welcome to OrchardLite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := site.get(t, RouteAdmin+RouteContent+tt.query)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want %d", code, http.StatusOK)
			}
			assertContains(t, body, tt.want...)
			assertNotContains(t, body, tt.notWant...)
		})
	}
}

func TestAdminContent_LinksOnlyLiveItems(t *testing.T) {
	site := newTestSite(t)
	author := testutil.CreateUser(t, site.db, "editor")
	testutil.CreateContent(t, site.db, author.ID, testutil.ContentFixture{
		Title: "Scheduled Post",
		Slug:  "scheduled-post",
		At:    time.Now().UTC().Add(48 * time.Hour),
	})

	code, body := site.get(t, RouteAdmin+RouteContent)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	assertContains(t, body,
		`<a href="/content/welcome-to-orchardlite">Welcome to OrchardLite</a>`,
		"<td>Scheduled Post</td>",
		"<td>Hello World</td>",
	)
	assertNotContains(t, body, `href="/content/scheduled-post"`, `href="/content/hello-world"`)
}

func TestAdminContent_Paging(t *testing.T) {
	site := newTestSite(t)
	author := testutil.CreateUser(t, site.db, "bulk")

	// Newer than the seeded items so they lead the listing
	start := time.Now().UTC().Add(time.Hour)
	for i := 1; i <= 25; i++ {
		testutil.CreateContent(t, site.db, author.ID, testutil.ContentFixture{
			Title:  fmt.Sprintf("Bulk item %02d", i),
			Slug:   fmt.Sprintf("bulk-item-%02d", i),
			Status: model.StatusDraft,
			At:     start.Add(time.Duration(i) * time.Minute),
		})
	}

	// 29 items in total; page 2 of size 10 holds bulk items 15 down to 06
	code, body := site.get(t, RouteAdmin+RouteContent+"?page=2&pageSize=10")
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	assertContains(t, body, "Bulk item 15", "Bulk item 06", "11-20 of 29", `name="pageSize" value="10"`)
	assertNotContains(t, body, "Bulk item 16", "Bulk item 05")

	// Page links keep the page size
	assertContains(t, body, `href="/admin/content?pageSize=10&amp;page=3"`)
}

func TestAdminContent_PageSizeClamped(t *testing.T) {
	site := newTestSite(t)

	_, body := site.get(t, RouteAdmin+RouteContent+"?pageSize=1000")
	assertContains(t, body, fmt.Sprintf(`name="pageSize" value="%d"`, service.MaxPageSize))

	_, body = site.get(t, RouteAdmin+RouteContent+"?pageSize=0")
	assertContains(t, body, `name="pageSize" value="1"`)
}

func TestAdminAuditLog_ShowsClientAndActor(t *testing.T) {
	site := newTestSite(t)

	ctx := service.WithActor(context.Background(), service.Actor{
		IPAddress: "192.168.1.20",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	})
	if err := service.NewAuditService(site.db, testutil.DiscardLogger()).Record(ctx, service.AuditEntry{
		Action:     model.ActionSystemError,
		EntityType: model.EntitySystem,
		Details:    "disk almost full",
	}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	code, body := site.get(t, RouteAdmin+RouteAuditLog)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	assertContains(t, body, "disk almost full", "192.168.1.20", "Firefox 121", "<td>System</td>")
	// No GeoIP database configured
	assertNotContains(t, body, "<th>Country</th>")
}
