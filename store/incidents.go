package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/secopslab/incidentdb/models"
)

var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrInvalidIncident  = errors.New("invalid incident")
)

// InsertIncident stores an incident and returns its id. Empty severity,
// status and reporter fall back to the ingestion defaults.
func InsertIncident(ctx context.Context, db *sql.DB, inc models.Incident) (int64, error) {
	inc.DateReported = strings.TrimSpace(inc.DateReported)
	inc.IncidentType = strings.TrimSpace(inc.IncidentType)
	if inc.DateReported == "" {
		return 0, fmt.Errorf("%w: date_reported is required", ErrInvalidIncident)
	}
	if inc.IncidentType == "" {
		return 0, fmt.Errorf("%w: incident_type is required", ErrInvalidIncident)
	}
	if inc.Severity == "" {
		inc.Severity = models.DefaultSeverity
	}
	if inc.Status == "" {
		inc.Status = models.DefaultStatus
	}
	if inc.ReportedBy == "" {
		inc.ReportedBy = models.DefaultReporter
	}
	if !slices.Contains(models.IncidentSeverities, inc.Severity) {
		return 0, fmt.Errorf("%w: unknown severity %q", ErrInvalidIncident, inc.Severity)
	}
	if !slices.Contains(models.IncidentStatuses, inc.Status) {
		return 0, fmt.Errorf("%w: unknown status %q", ErrInvalidIncident, inc.Status)
	}

	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO cyber_incidents (date_reported, incident_type, severity, status, description, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, inc.DateReported, inc.IncidentType, inc.Severity, inc.Status, inc.Description, inc.ReportedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert incident: %w", err)
	}
	return id, nil
}

// GetAllIncidents returns every incident ordered by id.
func GetAllIncidents(ctx context.Context, db *sql.DB) ([]models.Incident, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date_reported, incident_type, severity, status, description, reported_by
		FROM cyber_incidents
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	incidents := []models.Incident{}
	for rows.Next() {
		var inc models.Incident
		if err := rows.Scan(&inc.ID, &inc.DateReported, &inc.IncidentType, &inc.Severity,
			&inc.Status, &inc.Description, &inc.ReportedBy); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read incidents: %w", err)
	}
	return incidents, nil
}

// GetIncident returns one incident by id.
func GetIncident(ctx context.Context, db *sql.DB, id int64) (*models.Incident, error) {
	var inc models.Incident
	err := db.QueryRowContext(ctx, `
		SELECT id, date_reported, incident_type, severity, status, description, reported_by
		FROM cyber_incidents WHERE id = $1
	`, id).Scan(&inc.ID, &inc.DateReported, &inc.IncidentType, &inc.Severity,
		&inc.Status, &inc.Description, &inc.ReportedBy)
	if err == sql.ErrNoRows {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query incident: %w", err)
	}
	return &inc, nil
}

// UpdateIncidentStatus changes the status of an incident.
func UpdateIncidentStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if !slices.Contains(models.IncidentStatuses, status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidIncident, status)
	}

	res, err := db.ExecContext(ctx, "UPDATE cyber_incidents SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}
	return requireAffected(res)
}

// DeleteIncident removes an incident.
func DeleteIncident(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM cyber_incidents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrIncidentNotFound
	}
	return nil
}
