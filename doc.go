// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for incidentdb.

incidentdb loads three CSV exports (cyber incidents, dataset metadata and
IT tickets) from a data directory into SQLite or PostgreSQL, and serves
the resulting tables plus user accounts over a small HTTP API.

# Loading Data

With the defaults (SQLite file incidents.db, CSV files under DATA/):

	go run . setup

Append instead of replacing existing rows:

	go run . load --mode append

Against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run . setup

# Starting the Server

	SESSION_SALT=change-me go run . serve -p 3318

# Configuration

  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string or SQLite path (default: incidents.db)
  - DATA_DIR (--data-dir): CSV directory (default: DATA)
  - WRITE_MODE (-m): replace or append (default: replace)
  - PORT (-p): Server port (default: 3318)
  - SESSION_SALT (--session-salt): Secret for session tokens, required by serve
  - LOAD_SCHEDULE (--load-schedule): cron expression for reloads while serving
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json/auto output

# Architecture

  - cli: cobra commands
  - ingest: CSV reading, column mapping and table writes
  - scheduler: cron-driven reloads
  - handlers: HTTP request handlers (accounts, incidents, ingestion)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - store: user and incident queries
  - models: table names, enums, request/response types
  - auth: password hashing and session tokens
  - db: connections and schema
  - cliparse: Configuration parsing
  - logging: slog handler setup

See package documentation for each component.
*/
package main
