// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Connect opens a handle for SQLite (modernc.org/sqlite, pure Go) or
PostgreSQL (lib/pq) and pings it:

	conn, err := db.Connect(ctx, db.DialectSQLite, "incidents.db")

SQLite handles are capped at one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: registered accounts with bcrypt password hashes
  - cyber_incidents: incidents, loaded from CSV or created through the API
  - datasets_metadata: dataset catalogue loaded from CSV
  - it_tickets: IT tickets loaded from CSV

Every table has a surrogate integer id so appended loads never collide.
The id column is SERIAL on PostgreSQL and INTEGER PRIMARY KEY AUTOINCREMENT
on SQLite; everything else is shared DDL.

# Row Counts

	n, err := db.CountRows(ctx, conn, "it_tickets")

Only names in Tables are accepted.
*/
package db
