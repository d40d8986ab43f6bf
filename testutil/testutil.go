// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/secopslab/incidentdb/auth"
	"github.com/secopslab/incidentdb/cliparse"
	"github.com/secopslab/incidentdb/db"
	"github.com/secopslab/incidentdb/models"
)

// TestSessionSalt signs session tokens in tests
const TestSessionSalt = "test-session-salt"

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Connect(context.Background(), db.DialectSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Default()
	cfg.DatabaseURL = ":memory:"
	cfg.SessionSalt = TestSessionSalt
	return cfg
}

// CreateTestUser inserts a user directly and returns a valid session token
func CreateTestUser(t *testing.T, conn *sql.DB, username, password, role string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
	`, username, hash, role)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return auth.GenerateSessionToken(username, TestSessionSalt)
}

// CreateTestIncident inserts an incident and returns its ID
func CreateTestIncident(t *testing.T, conn *sql.DB, incidentType, status string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO cyber_incidents (date_reported, incident_type, severity, status, description, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, "2024-11-05", incidentType, models.SeverityHigh, status, "Test incident", "tester").Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test incident: %v", err)
	}

	return id
}

// WriteDataFile writes a CSV file into dir
func WriteDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int64 {
	t.Helper()
	n, err := db.CountRows(context.Background(), conn, table)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
