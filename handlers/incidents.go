// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/secopslab/incidentdb/cliparse"
	"github.com/secopslab/incidentdb/middleware"
	"github.com/secopslab/incidentdb/models"
	"github.com/secopslab/incidentdb/store"
)

type IncidentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewIncidentHandler(db *sql.DB, cfg cliparse.Config) *IncidentHandler {
	return &IncidentHandler{db: db, cfg: cfg}
}

// ListIncidents handles GET /incidents
func (h *IncidentHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := store.GetAllIncidents(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to list incidents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, incidents)
}

// CreateIncident handles POST /incidents
// The session user is recorded as the reporter.
func (h *IncidentHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIncidentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	reporter, _ := middleware.SessionUser(r.Context())

	id, err := store.InsertIncident(r.Context(), h.db, models.Incident{
		DateReported: req.DateReported,
		IncidentType: req.IncidentType,
		Severity:     req.Severity,
		Status:       req.Status,
		Description:  req.Description,
		ReportedBy:   reporter,
	})
	if errors.Is(err, store.ErrInvalidIncident) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to insert incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create incident")
		return
	}

	slog.Info("incident created", "incident_id", id, "reported_by", reporter)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateIncidentResponse{IncidentID: id})
}

// GetIncident handles GET /incidents/{id}
func (h *IncidentHandler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id, ok := incidentID(w, r)
	if !ok {
		return
	}

	inc, err := store.GetIncident(r.Context(), h.db, id)
	if errors.Is(err, store.ErrIncidentNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")
		return
	}
	if err != nil {
		slog.Error("failed to query incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, inc)
}

// UpdateIncidentStatus handles PATCH /incidents/{id}/status
func (h *IncidentHandler) UpdateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := incidentID(w, r)
	if !ok {
		return
	}

	var req models.UpdateIncidentStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := store.UpdateIncidentStatus(r.Context(), h.db, id, req.Status)
	switch {
	case errors.Is(err, store.ErrInvalidIncident):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrIncidentNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")
		return
	case err != nil:
		slog.Error("failed to update incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update incident")
		return
	}

	slog.Info("incident status updated", "incident_id", id, "status", req.Status)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteIncident handles DELETE /incidents/{id}
func (h *IncidentHandler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	id, ok := incidentID(w, r)
	if !ok {
		return
	}

	err := store.DeleteIncident(r.Context(), h.db, id)
	if errors.Is(err, store.ErrIncidentNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Incident not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete incident", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete incident")
		return
	}

	slog.Info("incident deleted", "incident_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// incidentID parses the {id} path value, writing a 400 on failure
func incidentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid incident id")
		return 0, false
	}
	return id, true
}
