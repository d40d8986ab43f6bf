// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/secopslab/incidentdb/cliparse"
	"github.com/secopslab/incidentdb/handlers"
	"github.com/secopslab/incidentdb/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, loader handlers.Ingester) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	incidentHandler := handlers.NewIncidentHandler(db, cfg)
	ingestHandler := handlers.NewIngestHandler(db, loader, cfg)

	// protected wraps a handler with logging and session checks
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(cfg.SessionSalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts (public)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(userHandler.Login))

	// Incidents (reads public, writes need a session)
	mux.HandleFunc("GET /incidents", middleware.WithLogging(incidentHandler.ListIncidents))
	mux.HandleFunc("POST /incidents", protected(incidentHandler.CreateIncident))
	mux.HandleFunc("GET /incidents/{id}", middleware.WithLogging(incidentHandler.GetIncident))
	mux.HandleFunc("PATCH /incidents/{id}/status", protected(incidentHandler.UpdateIncidentStatus))
	mux.HandleFunc("DELETE /incidents/{id}", protected(incidentHandler.DeleteIncident))

	// Ingestion
	mux.HandleFunc("POST /ingest", protected(ingestHandler.RunIngest))
	mux.HandleFunc("GET /summary", middleware.WithLogging(ingestHandler.Summary))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("incidentdb API v1"))
	})

	return mux
}
