// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/secopslab/incidentdb/cliparse"
	"github.com/secopslab/incidentdb/db"
	"github.com/secopslab/incidentdb/ingest"
	"github.com/secopslab/incidentdb/middleware"
	"github.com/secopslab/incidentdb/models"
)

// Ingester runs one CSV ingestion pass
type Ingester interface {
	LoadAll(ctx context.Context, mode ingest.WriteMode) (*ingest.Result, error)
}

type IngestHandler struct {
	db     *sql.DB
	loader Ingester
	cfg    cliparse.Config
}

func NewIngestHandler(db *sql.DB, loader Ingester, cfg cliparse.Config) *IngestHandler {
	return &IngestHandler{db: db, loader: loader, cfg: cfg}
}

// RunIngest handles POST /ingest?mode=replace|append
// Without a mode parameter the configured write mode is used.
func (h *IngestHandler) RunIngest(w http.ResponseWriter, r *http.Request) {
	modeParam := r.URL.Query().Get("mode")
	if modeParam == "" {
		modeParam = h.cfg.WriteMode
	}

	mode, err := ingest.ParseWriteMode(modeParam)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, _ := middleware.SessionUser(r.Context())
	slog.Info("ingestion requested", "mode", mode, "user", user)

	res, err := h.loader.LoadAll(r.Context(), mode)
	if err != nil {
		slog.Error("ingestion aborted", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Ingestion aborted")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// Summary handles GET /summary
func (h *IngestHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int64, len(db.Tables))
	for _, table := range db.Tables {
		n, err := db.CountRows(r.Context(), h.db, table)
		if err != nil {
			slog.Error("failed to count rows", "table", table, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts[table] = n
	}

	middleware.JSONResponse(w, http.StatusOK, models.SummaryResponse{Tables: counts})
}
