// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

// MaxPageSize caps every page size a caller can request.
const MaxPageSize = 100

// Page is one page of a listing plus the size of the whole filtered set.
type Page[T any] struct {
	Items []T
	Total int64
}

// Paging is a 1-based page number and a page size.
type Paging struct {
	Page     int
	PageSize int
}

// NewPaging normalises page and pageSize: pages start at 1, a non-positive
// size becomes defaultSize, and sizes are capped at MaxPageSize.
func NewPaging(page, pageSize, defaultSize int) Paging {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Paging{Page: page, PageSize: pageSize}
}

// Limit returns the SQL LIMIT for the page.
func (p Paging) Limit() int64 {
	return int64(p.PageSize)
}

// Offset returns the SQL OFFSET for the page.
func (p Paging) Offset() int64 {
	return int64(p.Page-1) * int64(p.PageSize)
}
