// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands built on cobra bind the same flags and resolve them once parsed:

	cliparse.BindFlags(cmd.PersistentFlags(), &cfg)
	err := cliparse.Resolve(cmd.Flags(), &cfg)

# Config Fields

  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string or SQLite path (default: incidents.db)
  - DataDir: directory holding the CSV files (default: DATA)
  - WriteMode: replace or append (default: replace)
  - Port: Server listen port (default: 3318)
  - SessionSalt: Secret for session token HMAC (required by serve)
  - LoadSchedule: cron expression for reloads while serving (optional)
  - LogLevel: debug, info, warn, error (default: info)
  - LogFormat: auto, text, json (default: auto)

# Environment Variables

Flags fall back to environment variables:

	DATABASE_TYPE → -t, --db-type
	DATABASE_URL  → -d, --database-url
	DATA_DIR      → --data-dir
	WRITE_MODE    → -m, --mode
	PORT          → -p, --port
	SESSION_SALT  → --session-salt
	LOAD_SCHEDULE → --load-schedule
	LOG_LEVEL     → --log-level
	LOG_FORMAT    → --log-format

A .env file in the working directory is loaded first; it never overrides
variables already present in the environment. CLI flags take precedence
over both.

# Validation

Resolve returns an error for unknown database types, write modes, log
levels or formats, an out-of-range port, or an empty database URL.
*/
package cliparse
