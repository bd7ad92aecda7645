// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestParseContentStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   ContentStatus
		wantOK bool
	}{
		{"Draft", StatusDraft, true},
		{"published", StatusPublished, true},
		{" ARCHIVED ", StatusArchived, true},
		{"", "", false},
		{"Deleted", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseContentStatus(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseContentStatus(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestContentStatus_Valid(t *testing.T) {
	for _, s := range ContentStatuses {
		if !s.Valid() {
			t.Errorf("%q.Valid() = false, want true", s)
		}
	}
	if ContentStatus("published").Valid() {
		t.Error("lowercase status should not be valid without parsing")
	}
}

func TestContentItem_IsPublishedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		item ContentItem
		want bool
	}{
		{
			name: "published in the past",
			item: ContentItem{Status: StatusPublished, PublishedDate: sql.NullTime{Time: now.Add(-time.Hour), Valid: true}},
			want: true,
		},
		{
			name: "published exactly now",
			item: ContentItem{Status: StatusPublished, PublishedDate: sql.NullTime{Time: now, Valid: true}},
			want: true,
		},
		{
			name: "scheduled in the future",
			item: ContentItem{Status: StatusPublished, PublishedDate: sql.NullTime{Time: now.Add(time.Hour), Valid: true}},
			want: false,
		},
		{
			name: "published without date",
			item: ContentItem{Status: StatusPublished},
			want: false,
		},
		{
			name: "draft with date",
			item: ContentItem{Status: StatusDraft, PublishedDate: sql.NullTime{Time: now.Add(-time.Hour), Valid: true}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.IsPublishedAt(now); got != tt.want {
				t.Errorf("IsPublishedAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentItem_StatusDisplay(t *testing.T) {
	if got := (ContentItem{}).StatusDisplay(); got != "Draft" {
		t.Errorf("StatusDisplay() for zero item = %q, want Draft", got)
	}
	if got := (ContentItem{Status: StatusArchived}).StatusDisplay(); got != "Archived" {
		t.Errorf("StatusDisplay() = %q, want Archived", got)
	}
}

func TestBodyFormat(t *testing.T) {
	parts := []ContentPart{
		{PartType: "SeoPart", PartName: "Format", PartData: "html"},
		{PartType: PartTypeBody, PartName: PartNameFormat, PartData: " Markdown "},
	}
	if got := BodyFormat(parts); got != FormatMarkdown {
		t.Errorf("BodyFormat() = %q, want %q", got, FormatMarkdown)
	}
	if got := BodyFormat(nil); got != "" {
		t.Errorf("BodyFormat(nil) = %q, want empty", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1572864, "1.5 MB"},
		{1234567, "1.18 MB"},
		{1073741824, "1 GB"},
		{1099511627776, "1 TB"},
		{1125899906842624, "1024 TB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestMediaItem_IsImage(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"IMAGE/JPEG", true},
		{"application/pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		m := MediaItem{ContentType: tt.contentType}
		if got := m.IsImage(); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		first, last string
		want        string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}

	for _, tt := range tests {
		u := User{FirstName: tt.first, LastName: tt.last}
		if got := u.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}

	u := User{UserName: "admin"}
	if got := u.DisplayName(); got != "admin" {
		t.Errorf("DisplayName() = %q, want admin", got)
	}
}

func TestSetting_ValueOr(t *testing.T) {
	if got := (Setting{}).ValueOr("fallback"); got != "fallback" {
		t.Errorf("ValueOr() on NULL = %q, want fallback", got)
	}
	s := Setting{SettingValue: sql.NullString{String: "", Valid: true}}
	if got := s.ValueOr("fallback"); got != "" {
		t.Errorf("ValueOr() on empty string = %q, want empty", got)
	}
}

func TestAuditLogWithUser_ActorName(t *testing.T) {
	if got := (AuditLogWithUser{}).ActorName(); got != "System" {
		t.Errorf("ActorName() = %q, want System", got)
	}
	entry := AuditLogWithUser{User: &Author{UserName: "editor", FirstName: "Eve"}}
	if got := entry.ActorName(); got != "Eve" {
		t.Errorf("ActorName() = %q, want Eve", got)
	}
}
