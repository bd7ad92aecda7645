// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/orchardlite-go/internal/auth"
	"github.com/olegiv/orchardlite-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUserName = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
)

type seedContent struct {
	contentType string
	title       string
	slug        string
	summary     string
	body        string
	status      model.ContentStatus
	markdown    bool
}

var demoContent = []seedContent{
	{
		contentType: model.ContentTypePage,
		title:       "About Us",
		slug:        "about-us",
		summary:     "Who we are and what this site is for.",
		body:        "<p>OrchardLite is a small content site used to practise moving workloads to the cloud.</p>",
		status:      model.StatusPublished,
	},
	{
		contentType: model.ContentTypeBlogPost,
		title:       "Welcome to OrchardLite",
		slug:        "welcome-to-orchardlite",
		summary:     "The first post on a fresh installation.",
		body:        "<p>Your site is up and running. Edit or delete this post from the admin area.</p>",
		status:      model.StatusPublished,
	},
	{
		contentType: model.ContentTypeBlogPost,
		title:       "Writing Posts in Markdown",
		slug:        "writing-posts-in-markdown",
		summary:     "Bodies can be stored as Markdown.",
		body:        "## Markdown\n\nAttach a *Format* part with the value `markdown` and the body is converted on display.",
		status:      model.StatusPublished,
		markdown:    true,
	},
	{
		contentType: model.ContentTypeBlogPost,
		title:       "Hello World",
		slug:        "hello-world",
		summary:     "A draft waiting to be published.",
		body:        "<p>Nothing to see yet.</p>",
		status:      model.StatusDraft,
	},
}

var demoSettings = []SaveSettingParams{
	{
		SettingKey:      model.SettingSiteName,
		SettingValue:    sql.NullString{String: model.DefaultSiteName, Valid: true},
		Category:        "Site",
		Description:     "Name shown in the page header",
		IsSystemSetting: true,
	},
	{
		SettingKey:      model.SettingSiteDescription,
		SettingValue:    sql.NullString{String: model.DefaultSiteDescription, Valid: true},
		Category:        "Site",
		Description:     "Tagline shown on the home page",
		IsSystemSetting: true,
	},
	{
		SettingKey:   "PostsPerPage",
		SettingValue: sql.NullString{String: "10", Valid: true},
		Description:  "Blog listing page size",
	},
}

// Seed creates the built-in roles, a default administrator, the site
// settings and a few demo content items. It does nothing when the
// administrator already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByUserName(ctx, DefaultAdminUserName)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	now := time.Now().UTC()

	admin, err := qtx.CreateUser(ctx, CreateUserParams{
		UserName:     DefaultAdminUserName,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		FirstName:    "Site",
		LastName:     "Administrator",
		IsActive:     true,
		CreatedDate:  now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	if err := seedAudit(ctx, qtx, admin.ID, model.ActionCreate, model.EntityUser, admin.ID, "seeded administrator", now); err != nil {
		return err
	}

	roles := []CreateRoleParams{
		{RoleName: model.RoleAdministrator, Description: "Full access", IsSystemRole: true},
		{RoleName: model.RoleEditor, Description: "Manage all content", IsSystemRole: true},
		{RoleName: model.RoleAuthor, Description: "Manage own content", IsSystemRole: true},
	}
	for _, params := range roles {
		params.CreatedDate = now
		role, err := qtx.CreateRole(ctx, params)
		if err != nil {
			return fmt.Errorf("creating role %s: %w", params.RoleName, err)
		}
		if role.RoleName == model.RoleAdministrator {
			if _, err := qtx.AssignRole(ctx, AssignRoleParams{UserID: admin.ID, RoleID: role.ID, AssignedDate: now}); err != nil {
				return fmt.Errorf("assigning %s role: %w", role.RoleName, err)
			}
		}
	}

	for _, params := range demoSettings {
		params.ModifiedDate = now
		setting, err := qtx.SaveSetting(ctx, params)
		if err != nil {
			return fmt.Errorf("saving setting %s: %w", params.SettingKey, err)
		}
		if err := seedAudit(ctx, qtx, admin.ID, model.ActionSettingSave, model.EntitySetting, setting.ID, setting.SettingKey, now); err != nil {
			return err
		}
	}

	for i, c := range demoContent {
		// Spread creation times so listings have a stable order
		created := now.Add(time.Duration(i-len(demoContent)) * time.Minute)
		var published sql.NullTime
		if c.status == model.StatusPublished {
			published = sql.NullTime{Time: created, Valid: true}
		}

		item, err := qtx.CreateContent(ctx, CreateContentParams{
			ContentType:   c.contentType,
			Title:         c.title,
			Slug:          c.slug,
			Summary:       c.summary,
			Body:          c.body,
			AuthorID:      admin.ID,
			Status:        c.status,
			PublishedDate: published,
			CreatedDate:   created,
		})
		if err != nil {
			return fmt.Errorf("creating content %q: %w", c.slug, err)
		}

		if c.markdown {
			if _, err := qtx.CreateContentPart(ctx, CreateContentPartParams{
				ContentItemID: item.ID,
				PartType:      model.PartTypeBody,
				PartName:      model.PartNameFormat,
				PartData:      model.FormatMarkdown,
				CreatedDate:   created,
			}); err != nil {
				return fmt.Errorf("creating body part for %q: %w", c.slug, err)
			}
		}

		if err := seedAudit(ctx, qtx, admin.ID, model.ActionCreate, model.EntityContentItem, item.ID, item.Slug, now); err != nil {
			return err
		}
	}

	media, err := qtx.CreateMediaItem(ctx, CreateMediaItemParams{
		FileName:         "orchard-logo.png",
		OriginalFileName: "logo.png",
		ContentType:      "image/png",
		FileSize:         24576,
		FilePath:         "/media/orchard-logo.png",
		AltText:          "OrchardLite logo",
		UploadedByID:     admin.ID,
		UploadedDate:     now,
	})
	if err != nil {
		return fmt.Errorf("creating media item: %w", err)
	}
	if err := seedAudit(ctx, qtx, admin.ID, model.ActionCreate, model.EntityMediaItem, media.ID, media.FileName, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded database",
		"admin", DefaultAdminUserName,
		"password", DefaultAdminPassword,
		"content_items", len(demoContent),
	)
	return nil
}

func seedAudit(ctx context.Context, q *Queries, userID int64, action, entityType string, entityID int64, details string, at time.Time) error {
	if _, err := q.CreateAuditLog(ctx, CreateAuditLogParams{
		UserID:      userID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Details:     details,
		IPAddress:   "127.0.0.1",
		UserAgent:   "orchardlite-seed",
		CreatedDate: at,
	}); err != nil {
		return fmt.Errorf("recording audit entry for %s %d: %w", entityType, entityID, err)
	}
	return nil
}
