// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the incidentdb API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, loader)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /auth/register - Create account
	POST /auth/login    - Get session token

Incidents (writes require X-Session-Token):

	GET    /incidents             - List incidents
	POST   /incidents             - Create incident
	GET    /incidents/{id}        - Get incident
	PATCH  /incidents/{id}/status - Change status
	DELETE /incidents/{id}        - Delete incident

Ingestion:

	POST /ingest  - Load CSV files (requires X-Session-Token)
	GET  /summary - Row counts per table

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	incidentHandler := handlers.NewIncidentHandler(db, cfg)
	ingestHandler := handlers.NewIngestHandler(db, loader, cfg)
*/
package router
