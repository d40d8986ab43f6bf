// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/secopslab/incidentdb/middleware"
	"github.com/secopslab/incidentdb/models"
	"github.com/secopslab/incidentdb/store"
	"github.com/secopslab/incidentdb/testutil"
)

func TestCreateIncident(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewIncidentHandler(db, cfg)
	token := testutil.CreateTestUser(t, db, "alice", "SecurePass123!", models.RoleAnalyst)

	create := middleware.RequireSession(cfg.SessionSalt, handler.CreateIncident)

	t.Run("valid incident", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/incidents", models.CreateIncidentRequest{
			DateReported: "2024-11-05",
			IncidentType: "Phishing",
			Severity:     models.SeverityHigh,
			Status:       models.StatusOpen,
			Description:  "Suspicious email",
		}, map[string]string{"X-Session-Token": token})
		w := httptest.NewRecorder()

		create(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CreateIncidentResponse
		testutil.AssertJSON(t, w, &resp)

		inc, err := store.GetIncident(req.Context(), db, resp.IncidentID)
		if err != nil {
			t.Fatalf("Failed to read back incident: %v", err)
		}
		if inc.ReportedBy != "alice" {
			t.Errorf("Expected reported_by alice, got %q", inc.ReportedBy)
		}
		if inc.Description != "Suspicious email" {
			t.Errorf("Expected description to round-trip, got %q", inc.Description)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/incidents", models.CreateIncidentRequest{
			DateReported: "2024-11-06",
			IncidentType: "Malware",
		}, map[string]string{"X-Session-Token": token})
		w := httptest.NewRecorder()

		create(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CreateIncidentResponse
		testutil.AssertJSON(t, w, &resp)

		inc, err := store.GetIncident(req.Context(), db, resp.IncidentID)
		if err != nil {
			t.Fatalf("Failed to read back incident: %v", err)
		}
		if inc.Severity != models.DefaultSeverity || inc.Status != models.DefaultStatus {
			t.Errorf("Expected default severity/status, got %q/%q", inc.Severity, inc.Status)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/incidents", models.CreateIncidentRequest{
			DateReported: "2024-11-05",
		}, map[string]string{"X-Session-Token": token})
		w := httptest.NewRecorder()

		create(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown severity", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/incidents", models.CreateIncidentRequest{
			DateReported: "2024-11-05",
			IncidentType: "Phishing",
			Severity:     "Apocalyptic",
		}, map[string]string{"X-Session-Token": token})
		w := httptest.NewRecorder()

		create(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("no session", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/incidents", models.CreateIncidentRequest{
			DateReported: "2024-11-05",
			IncidentType: "Phishing",
		}, nil)
		w := httptest.NewRecorder()

		create(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestListIncidents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewIncidentHandler(db, testutil.GetTestConfig())

	t.Run("empty table", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/incidents", nil)
		w := httptest.NewRecorder()

		handler.ListIncidents(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("Expected empty JSON array, got %q", body)
		}
	})

	testutil.CreateTestIncident(t, db, "Phishing", models.StatusOpen)
	testutil.CreateTestIncident(t, db, "Malware", models.StatusResolved)

	t.Run("ordered by id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/incidents", nil)
		w := httptest.NewRecorder()

		handler.ListIncidents(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var incidents []models.Incident
		testutil.AssertJSON(t, w, &incidents)
		if len(incidents) != 2 {
			t.Fatalf("Expected 2 incidents, got %d", len(incidents))
		}
		if incidents[0].IncidentType != "Phishing" || incidents[1].IncidentType != "Malware" {
			t.Errorf("Unexpected order: %+v", incidents)
		}
	})
}

func TestGetIncident(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewIncidentHandler(db, testutil.GetTestConfig())
	id := testutil.CreateTestIncident(t, db, "Phishing", models.StatusOpen)

	testCases := []struct {
		name     string
		id       string
		expected int
	}{
		{"existing incident", strconv.FormatInt(id, 10), http.StatusOK},
		{"missing incident", "9999", http.StatusNotFound},
		{"non-numeric id", "abc", http.StatusBadRequest},
		{"zero id", "0", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/incidents/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			w := httptest.NewRecorder()

			handler.GetIncident(w, req)

			testutil.AssertStatus(t, w, tc.expected)
		})
	}
}

func TestUpdateIncidentStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewIncidentHandler(db, testutil.GetTestConfig())
	id := testutil.CreateTestIncident(t, db, "Phishing", models.StatusOpen)
	idStr := strconv.FormatInt(id, 10)

	t.Run("valid status", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/incidents/"+idStr+"/status",
			models.UpdateIncidentStatusRequest{Status: models.StatusResolved}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()

		handler.UpdateIncidentStatus(w, req)

		testutil.AssertStatus(t, w, http.StatusNoContent)

		inc, err := store.GetIncident(req.Context(), db, id)
		if err != nil {
			t.Fatalf("Failed to read back incident: %v", err)
		}
		if inc.Status != models.StatusResolved {
			t.Errorf("Expected status %q, got %q", models.StatusResolved, inc.Status)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/incidents/"+idStr+"/status",
			models.UpdateIncidentStatusRequest{Status: "Forgotten"}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()

		handler.UpdateIncidentStatus(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing incident", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/incidents/9999/status",
			models.UpdateIncidentStatusRequest{Status: models.StatusClosed}, nil)
		req.SetPathValue("id", "9999")
		w := httptest.NewRecorder()

		handler.UpdateIncidentStatus(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteIncident(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewIncidentHandler(db, testutil.GetTestConfig())
	id := testutil.CreateTestIncident(t, db, "Phishing", models.StatusOpen)
	idStr := strconv.FormatInt(id, 10)

	req := httptest.NewRequest("DELETE", "/incidents/"+idStr, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.DeleteIncident(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	// Second delete finds nothing
	req = httptest.NewRequest("DELETE", "/incidents/"+idStr, nil)
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()

	handler.DeleteIncident(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
