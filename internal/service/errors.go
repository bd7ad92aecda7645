// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the OrchardLite domain services: content queries,
// dashboard aggregation, settings resolution and the user, media and audit
// services. Every call reads straight from the database.
package service

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist or is not
// visible (unpublished or soft-deleted content looks the same as missing).
var ErrNotFound = errors.New("not found")

// DataAccessError wraps a failure of the underlying store.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// ValidationError reports an input value that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// dataAccess wraps err for op, mapping sql.ErrNoRows to ErrNotFound.
func dataAccess(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &DataAccessError{Op: op, Err: err}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
