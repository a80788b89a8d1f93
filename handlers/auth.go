// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ledgervote/auth"
	"github.com/danielhkuo/ledgervote/cliparse"
	"github.com/danielhkuo/ledgervote/middleware"
	"github.com/danielhkuo/ledgervote/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, full_name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, req.Email).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID, user.Role, h.cfg.JWTSecret, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}
