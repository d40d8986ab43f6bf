// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/secopslab/incidentdb/auth"
	"github.com/secopslab/incidentdb/cliparse"
	"github.com/secopslab/incidentdb/middleware"
	"github.com/secopslab/incidentdb/models"
	"github.com/secopslab/incidentdb/store"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := store.RegisterUser(r.Context(), h.db, req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, store.ErrInvalidUser):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrUserExists):
		middleware.ErrorResponse(w, http.StatusConflict, "Username already exists")
		return
	case err != nil:
		slog.Error("failed to register user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username, "role", user.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := store.LoginUser(r.Context(), h.db, req.Username, req.Password)
	if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrInvalidPassword) {
		// Same response for both so usernames can't be probed
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to log in user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("user logged in", "username", user.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:    auth.GenerateSessionToken(user.Username, h.cfg.SessionSalt),
		Username: user.Username,
		Role:     user.Role,
	})
}
