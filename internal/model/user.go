// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the OrchardLite entities: users and roles, content items
// and their parts, media, settings and audit log entries. Records are plain
// values; relationships are carried by explicit join types.
package model

import (
	"database/sql"
	"strings"
	"time"
)

// Field length limits shared by the schema and input validation.
const (
	MaxUserNameLength    = 255
	MaxEmailLength       = 255
	MaxPersonNameLength  = 100
	MaxRoleNameLength    = 100
	MaxContentTypeLength = 100
	MaxTitleLength       = 500
	MaxSlugLength        = 500
	MaxPartNameLength    = 100
	MaxFileNameLength    = 255
	MaxFilePathLength    = 1000
	MaxAltTextLength     = 500
	MaxSettingKeyLength  = 255
	MaxCategoryLength    = 100
	MaxActionLength      = 100
	MaxIPAddressLength   = 45
)

// Built-in role names.
const (
	RoleAdministrator = "Administrator"
	RoleEditor        = "Editor"
	RoleAuthor        = "Author"
)

// User represents a CMS user account.
type User struct {
	ID            int64
	UserName      string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	IsActive      bool
	CreatedDate   time.Time
	LastLoginDate sql.NullTime
}

// FullName returns "First Last" with surrounding whitespace removed.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName returns the full name, falling back to the user name.
func (u User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.UserName
}

// Role is a named group of users.
type Role struct {
	ID           int64
	RoleName     string
	Description  string
	IsSystemRole bool
	CreatedDate  time.Time
}

// UserRole links a user to a role.
type UserRole struct {
	ID           int64
	UserID       int64
	RoleID       int64
	AssignedDate time.Time
}

// UserWithRoles is a user together with the roles assigned to it.
type UserWithRoles struct {
	User
	Roles []Role
}

// RoleNames returns the names of the assigned roles in order.
func (u UserWithRoles) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.RoleName)
	}
	return names
}

// Author is the subset of a user joined onto content, media and audit rows.
type Author struct {
	ID        int64
	UserName  string
	FirstName string
	LastName  string
}

// FullName returns "First Last" with surrounding whitespace removed.
func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// DisplayName returns the full name, falling back to the user name.
func (a Author) DisplayName() string {
	if name := a.FullName(); name != "" {
		return name
	}
	return a.UserName
}
