// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cli wires configuration, logging and the database into cobra
commands.

# Commands

	incidentdb setup    Create the schema, load all CSV files, print row counts
	incidentdb load     Load the CSV files (--mode replace|append)
	incidentdb summary  Print row counts per table
	incidentdb demo     setup, then register/login a demo user and create an incident
	incidentdb serve    Run the HTTP API (requires SESSION_SALT)

All configuration flags are persistent on the root command and resolved
through cliparse before any subcommand runs, so

	WRITE_MODE=append incidentdb load
	incidentdb load -m append

are equivalent. Logging is configured from --log-level and --log-format
at the same point.

# Scheduled loads

With --load-schedule (or LOAD_SCHEDULE) set, serve re-runs ingestion on
that cron schedule in the configured write mode. Standard five-field
expressions and descriptors such as "@hourly" or "@every 30m" are
accepted.
*/
package cli
