// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/secopslab/incidentdb/models"
)

// Tables lists every table created by CreateSchema, in creation order.
var Tables = []string{
	models.TableUsers,
	models.TableCyberIncidents,
	models.TableDatasetsMetadata,
	models.TableITTickets,
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	_, err := db.Exec(fmt.Sprintf(schema, dialect.idColumn()))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// CountRows returns the number of rows in one of the known tables.
func CountRows(ctx context.Context, db *sql.DB, table string) (int64, error) {
	if !slices.Contains(Tables, table) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	var count int64
	// table is checked against the fixed list above
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// idColumn returns the surrogate key definition for the dialect.
func (d Dialect) idColumn() string {
	if d == DialectPostgres {
		return "id SERIAL PRIMARY KEY"
	}
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

// %[1]s is the dialect's surrogate key column
const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    %[1]s,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Cyber Incidents
CREATE TABLE IF NOT EXISTS cyber_incidents (
    %[1]s,
    date_reported TEXT NOT NULL,
    incident_type TEXT NOT NULL,
    severity TEXT NOT NULL DEFAULT 'Medium',
    status TEXT NOT NULL DEFAULT 'Open',
    description TEXT NOT NULL DEFAULT '',
    reported_by TEXT NOT NULL DEFAULT 'System'
);

CREATE INDEX IF NOT EXISTS idx_cyber_incidents_status ON cyber_incidents(status);

-- Datasets Metadata
CREATE TABLE IF NOT EXISTS datasets_metadata (
    %[1]s,
    dataset_name TEXT NOT NULL,
    source TEXT NOT NULL,
    record_count INTEGER NOT NULL DEFAULT 0,
    last_updated TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT ''
);

-- IT Tickets
CREATE TABLE IF NOT EXISTS it_tickets (
    %[1]s,
    ticket_id TEXT NOT NULL,
    date_created TEXT NOT NULL,
    priority TEXT NOT NULL DEFAULT 'Medium',
    status TEXT NOT NULL DEFAULT 'Open',
    description TEXT NOT NULL DEFAULT '',
    assigned_to TEXT NOT NULL DEFAULT 'Unassigned'
);

CREATE INDEX IF NOT EXISTS idx_it_tickets_ticket_id ON it_tickets(ticket_id);
`
