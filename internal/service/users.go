// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/olegiv/orchardlite-go/internal/auth"
	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
)

// UserService lists and creates user accounts.
type UserService struct {
	db      *sql.DB
	queries *store.Queries
	audit   *AuditService
	logger  *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(db *sql.DB, logger *slog.Logger) *UserService {
	return &UserService{
		db:      db,
		queries: store.New(db),
		audit:   NewAuditService(db, logger),
		logger:  logger,
	}
}

// List returns a page of users ordered by user name, each with its roles.
// Roles for the whole page are loaded with one query.
func (s *UserService) List(ctx context.Context, p Paging) (Page[model.UserWithRoles], error) {
	users, err := s.queries.ListUsers(ctx, p.Limit(), p.Offset())
	if err != nil {
		return Page[model.UserWithRoles]{}, dataAccess("listing users", err)
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	roles, err := s.queries.ListRolesForUsers(ctx, ids)
	if err != nil {
		return Page[model.UserWithRoles]{}, dataAccess("listing user roles", err)
	}

	total, err := s.queries.CountUsers(ctx)
	if err != nil {
		return Page[model.UserWithRoles]{}, dataAccess("counting users", err)
	}

	items := make([]model.UserWithRoles, len(users))
	for i, u := range users {
		items[i] = model.UserWithRoles{User: u, Roles: roles[u.ID]}
	}
	return Page[model.UserWithRoles]{Items: items, Total: total}, nil
}

// CreateUserInput describes a new account.
type CreateUserInput struct {
	UserName  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
}

func (in *CreateUserInput) normalize() error {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.UserName == "" || len(in.UserName) > model.MaxUserNameLength {
		return &ValidationError{Field: "UserName", Message: fmt.Sprintf("is required and limited to %d characters", model.MaxUserNameLength)}
	}
	if len(in.Email) > model.MaxEmailLength {
		return &ValidationError{Field: "Email", Message: fmt.Sprintf("must be at most %d characters", model.MaxEmailLength)}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return &ValidationError{Field: "Email", Message: "is not a valid address"}
	}
	if len(in.Password) < 8 {
		return &ValidationError{Field: "Password", Message: "must be at least 8 characters"}
	}
	if len(in.FirstName) > model.MaxPersonNameLength || len(in.LastName) > model.MaxPersonNameLength {
		return &ValidationError{Field: "Name", Message: fmt.Sprintf("must be at most %d characters", model.MaxPersonNameLength)}
	}
	return nil
}

// Create validates the input, hashes the password and stores the user and
// its role assignments in one transaction.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (model.UserWithRoles, error) {
	if err := in.normalize(); err != nil {
		return model.UserWithRoles{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return model.UserWithRoles{}, fmt.Errorf("hashing password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.UserWithRoles{}, dataAccess("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	now := time.Now().UTC()

	user, err := qtx.CreateUser(ctx, store.CreateUserParams{
		UserName:     in.UserName,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		CreatedDate:  now,
	})
	if err != nil {
		return model.UserWithRoles{}, dataAccess("creating user", err)
	}

	result := model.UserWithRoles{User: user}
	for _, name := range in.Roles {
		role, err := qtx.GetRoleByName(ctx, name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.UserWithRoles{}, &ValidationError{Field: "Roles", Message: fmt.Sprintf("unknown role %q", name)}
			}
			return model.UserWithRoles{}, dataAccess("loading role", err)
		}
		if _, err := qtx.AssignRole(ctx, store.AssignRoleParams{UserID: user.ID, RoleID: role.ID, AssignedDate: now}); err != nil {
			return model.UserWithRoles{}, dataAccess("assigning role", err)
		}
		result.Roles = append(result.Roles, role)
	}

	if err := tx.Commit(); err != nil {
		return model.UserWithRoles{}, dataAccess("committing user", err)
	}

	s.audit.recordQuietly(ctx, AuditEntry{
		Action:     model.ActionCreate,
		EntityType: model.EntityUser,
		EntityID:   user.ID,
		Details:    user.UserName,
	})
	for _, role := range result.Roles {
		s.audit.recordQuietly(ctx, AuditEntry{
			Action:     model.ActionAssignRole,
			EntityType: model.EntityUser,
			EntityID:   user.ID,
			Details:    role.RoleName,
		})
	}
	return result, nil
}
