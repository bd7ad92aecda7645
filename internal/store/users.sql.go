// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/orchardlite-go/internal/model"
)

const userColumns = `Id, UserName, Email, PasswordHash, COALESCE(FirstName, ''), COALESCE(LastName, ''),
	IsActive, CreatedDate, LastLoginDate`

func scanUser(s scanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsActive, &u.CreatedDate, &u.LastLoginDate)
	return u, err
}

const createUser = `INSERT INTO Users (UserName, Email, PasswordHash, FirstName, LastName, IsActive, CreatedDate)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// CreateUserParams holds the columns of a new user.
type CreateUserParams struct {
	UserName     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedDate  time.Time
}

// CreateUser inserts a user and returns it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx, createUser,
		arg.UserName, arg.Email, arg.PasswordHash, nullString(arg.FirstName), nullString(arg.LastName),
		arg.IsActive, arg.CreatedDate)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID:           id,
		UserName:     arg.UserName,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		IsActive:     arg.IsActive,
		CreatedDate:  arg.CreatedDate,
	}, nil
}

const getUserByID = `SELECT ` + userColumns + ` FROM Users WHERE Id = ?`

// GetUserByID returns the user with id or sql.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByUserName = `SELECT ` + userColumns + ` FROM Users WHERE UserName = ?`

// GetUserByUserName returns the user with userName or sql.ErrNoRows.
func (q *Queries) GetUserByUserName(ctx context.Context, userName string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUserName, userName))
}

const listUsers = `SELECT ` + userColumns + ` FROM Users
ORDER BY UserName
LIMIT ? OFFSET ?`

// ListUsers returns a page of users ordered by user name.
func (q *Queries) ListUsers(ctx context.Context, limit, offset int64) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const countUsers = `SELECT COUNT(*) FROM Users`

// CountUsers counts all users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&count)
	return count, err
}

const countActiveUsers = `SELECT COUNT(*) FROM Users WHERE IsActive = 1`

// CountActiveUsers counts users with IsActive set.
func (q *Queries) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countActiveUsers).Scan(&count)
	return count, err
}

const updateUserLastLogin = `UPDATE Users SET LastLoginDate = ? WHERE Id = ?`

// UpdateUserLastLogin records a login time.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, updateUserLastLogin, sql.NullTime{Time: at, Valid: true}, id)
	return err
}

const roleColumns = `Id, RoleName, COALESCE(Description, ''), IsSystemRole, CreatedDate`

const createRole = `INSERT INTO Roles (RoleName, Description, IsSystemRole, CreatedDate) VALUES (?, ?, ?, ?)`

// CreateRoleParams holds the columns of a new role.
type CreateRoleParams struct {
	RoleName     string
	Description  string
	IsSystemRole bool
	CreatedDate  time.Time
}

// CreateRole inserts a role and returns it.
func (q *Queries) CreateRole(ctx context.Context, arg CreateRoleParams) (model.Role, error) {
	res, err := q.db.ExecContext(ctx, createRole,
		arg.RoleName, nullString(arg.Description), arg.IsSystemRole, arg.CreatedDate)
	if err != nil {
		return model.Role{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Role{}, err
	}
	return model.Role{
		ID:           id,
		RoleName:     arg.RoleName,
		Description:  arg.Description,
		IsSystemRole: arg.IsSystemRole,
		CreatedDate:  arg.CreatedDate,
	}, nil
}

const getRoleByName = `SELECT ` + roleColumns + ` FROM Roles WHERE RoleName = ?`

// GetRoleByName returns the role named name or sql.ErrNoRows.
func (q *Queries) GetRoleByName(ctx context.Context, name string) (model.Role, error) {
	var r model.Role
	err := q.db.QueryRowContext(ctx, getRoleByName, name).
		Scan(&r.ID, &r.RoleName, &r.Description, &r.IsSystemRole, &r.CreatedDate)
	return r, err
}

const countRoles = `SELECT COUNT(*) FROM Roles`

// CountRoles counts all roles.
func (q *Queries) CountRoles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRoles).Scan(&count)
	return count, err
}

const assignRole = `INSERT INTO UserRoles (UserId, RoleId, AssignedDate) VALUES (?, ?, ?)`

// AssignRoleParams links a user to a role.
type AssignRoleParams struct {
	UserID       int64
	RoleID       int64
	AssignedDate time.Time
}

// AssignRole inserts a user/role link and returns it.
func (q *Queries) AssignRole(ctx context.Context, arg AssignRoleParams) (model.UserRole, error) {
	res, err := q.db.ExecContext(ctx, assignRole, arg.UserID, arg.RoleID, arg.AssignedDate)
	if err != nil {
		return model.UserRole{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UserRole{}, err
	}
	return model.UserRole{ID: id, UserID: arg.UserID, RoleID: arg.RoleID, AssignedDate: arg.AssignedDate}, nil
}

const listRolesForUsers = `SELECT ur.UserId, r.Id, r.RoleName, COALESCE(r.Description, ''), r.IsSystemRole, r.CreatedDate
FROM UserRoles ur
INNER JOIN Roles r ON r.Id = ur.RoleId
WHERE ur.UserId IN (/*USER_IDS*/)
ORDER BY ur.UserId, r.RoleName`

// ListRolesForUsers returns the roles of every given user in one query,
// keyed by user id.
func (q *Queries) ListRolesForUsers(ctx context.Context, userIDs []int64) (map[int64][]model.Role, error) {
	result := make(map[int64][]model.Role, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	query := replaceMarker(listRolesForUsers, "/*USER_IDS*/", placeholders(len(userIDs)))

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var userID int64
		var r model.Role
		if err := rows.Scan(&userID, &r.ID, &r.RoleName, &r.Description, &r.IsSystemRole, &r.CreatedDate); err != nil {
			return nil, err
		}
		result[userID] = append(result[userID], r)
	}
	return result, rows.Err()
}
