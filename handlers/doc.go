// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the incidentdb API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: registration and login
  - IncidentHandler: incident CRUD
  - IngestHandler: CSV ingestion runs and table row counts

Handlers are created via constructor functions that accept *sql.DB and Config:

	userHandler := handlers.NewUserHandler(db, cfg)

IngestHandler also takes an Ingester, normally an *ingest.Loader:

	ingestHandler := handlers.NewIngestHandler(db, loader, cfg)

# Accounts

	POST /auth/register → Register (username, password, role)
	POST /auth/login    → Login (returns session token)

Failed logins return 401 without saying whether the username exists.

# Incidents

	GET    /incidents             → ListIncidents
	POST   /incidents             → CreateIncident (session user becomes reported_by)
	GET    /incidents/{id}        → GetIncident
	PATCH  /incidents/{id}/status → UpdateIncidentStatus
	DELETE /incidents/{id}        → DeleteIncident

Write operations require the X-Session-Token header.

# Ingestion

	POST /ingest?mode=append → RunIngest (returns per-file results)
	GET  /summary            → Summary (row counts per table)

A file that fails to load is reported in the result body with status
"failed"; the request itself still succeeds.
*/
package handlers
