// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/secopslab/incidentdb/auth"
	"github.com/secopslab/incidentdb/models"
	"github.com/secopslab/incidentdb/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	t.Run("valid registration", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: "alice",
			Password: "SecurePass123!",
			Role:     models.RoleAnalyst,
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.RegisterResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.UserID == 0 {
			t.Error("Expected non-zero user ID")
		}
		if resp.Username != "alice" || resp.Role != models.RoleAnalyst {
			t.Errorf("Unexpected response: %+v", resp)
		}
	})

	t.Run("default role", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: "bob",
			Password: "SecurePass123!",
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.RegisterResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Role != models.RoleUser {
			t.Errorf("Expected role %q, got %q", models.RoleUser, resp.Role)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: "alice",
			Password: "AnotherPass456!",
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("short password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: "carol",
			Password: "short",
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("password too long", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: "carol",
			Password: strings.Repeat("x", 80),
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown role", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: "dave",
			Password: "SecurePass123!",
			Role:     "superuser",
		}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/register", nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	testutil.CreateTestUser(t, db, "alice", "SecurePass123!", models.RoleAnalyst)

	t.Run("valid credentials", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Username: "alice",
			Password: "SecurePass123!",
		}, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.LoginResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Role != models.RoleAnalyst {
			t.Errorf("Expected role %q, got %q", models.RoleAnalyst, resp.Role)
		}

		username, err := auth.ValidateSessionToken(resp.Token, cfg.SessionSalt)
		if err != nil {
			t.Fatalf("Returned token did not validate: %v", err)
		}
		if username != "alice" {
			t.Errorf("Expected token for alice, got %q", username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Username: "alice",
			Password: "WrongPass999!",
		}, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
			Username: "mallory",
			Password: "SecurePass123!",
		}, nil)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
