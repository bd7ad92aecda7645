// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the application tables in schema order.
var Tables = []string{
	"Users",
	"Roles",
	"UserRoles",
	"ContentItems",
	"ContentParts",
	"MediaItems",
	"Settings",
	"AuditLogs",
}

// TableCount is the number of rows in one table.
type TableCount struct {
	Table string
	Rows  int64
}

// CountTableRows returns the row count of every application table.
// Table names come from Tables only, never from input.
func (q *Queries) CountTableRows(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(Tables))
	for _, table := range Tables {
		var n int64
		if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}

const mysqlDatabaseSize = `SELECT SUM(data_length + index_length)
FROM information_schema.tables
WHERE table_schema = DATABASE()`

const sqliteDatabaseSize = `SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()`

// DatabaseSizeBytes asks the engine how much storage the database uses.
func (q *Queries) DatabaseSizeBytes(ctx context.Context, driver string) (int64, error) {
	var query string
	switch driver {
	case DriverMySQL:
		query = mysqlDatabaseSize
	case DriverSQLite:
		query = sqliteDatabaseSize
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}

	var size sql.NullInt64
	if err := q.db.QueryRowContext(ctx, query).Scan(&size); err != nil {
		return 0, err
	}
	if !size.Valid {
		return 0, fmt.Errorf("database size not reported")
	}
	return size.Int64, nil
}
