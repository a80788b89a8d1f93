// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/ledgervote/auth"
	"github.com/danielhkuo/ledgervote/cliparse"
	"github.com/danielhkuo/ledgervote/middleware"
	"github.com/danielhkuo/ledgervote/models"
)

// AdminHandler covers the administrative CRUD surface: users, elections,
// candidates, eligibility. None of it touches vote_status; that table
// belongs to the coordinator alone.
type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// ListUsers handles GET /admin/users?role=voter|admin
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")

	query := `SELECT id, full_name, email, role, created_at FROM users ORDER BY email`
	args := []interface{}{}
	if role != "" {
		query = `SELECT id, full_name, email, role, created_at FROM users WHERE role = $1 ORDER BY email`
		args = append(args, role)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// UpsertUser handles POST /admin/users - creates or updates by email
func (h *AdminHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleVoter
	}
	if req.Role != models.RoleVoter && req.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be voter or admin")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	userID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate user ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	var user models.User
	err = h.db.QueryRow(`
		INSERT INTO users (id, full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET full_name = $2, password_hash = $4, role = $5
		RETURNING id, full_name, email, role, created_at
	`, userID, req.FullName, req.Email, hash, req.Role).Scan(
		&user.ID, &user.FullName, &user.Email, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		slog.Error("failed to upsert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user upserted", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusOK, user)
}

// UpdateUser handles PATCH /admin/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user id is required")
		return
	}

	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fields := []string{}
	args := []interface{}{}
	i := 1
	addField := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}

	if req.FullName != nil {
		addField("full_name", *req.FullName)
	}
	if req.Email != nil {
		addField("email", *req.Email)
	}
	if req.Role != nil {
		if *req.Role != models.RoleVoter && *req.Role != models.RoleAdmin {
			middleware.ErrorResponse(w, http.StatusBadRequest, "role must be voter or admin")
			return
		}
		addField("role", *req.Role)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		addField("password_hash", hash)
	}

	if len(fields) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No fields to update")
		return
	}

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(fields, ", "), i)

	res, err := h.db.Exec(query, args...)
	if err != nil {
		slog.Error("failed to update user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteUser handles DELETE /admin/users/{id}
// Related vote_status and eligibility rows cascade.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("user deleted", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// CreateElection handles POST /admin/elections
func (h *AdminHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" || req.StartTime.IsZero() || req.EndTime.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title, start_time and end_time are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	electionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate election ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO elections (id, title, description, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, electionID, req.Title, req.Description, req.StartTime.UTC(), req.EndTime.UTC(), isActive)
	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID, "title", req.Title)

	middleware.JSONResponse(w, http.StatusCreated, models.Election{
		ID:          electionID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		IsActive:    isActive,
	})
}

// UpdateElection handles PATCH /admin/elections/{id}
func (h *AdminHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fields := []string{}
	args := []interface{}{}
	i := 1
	addField := func(column string, value interface{}) {
		fields = append(fields, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}

	if req.Title != nil {
		addField("title", *req.Title)
	}
	if req.Description != nil {
		addField("description", *req.Description)
	}
	if req.StartTime != nil {
		addField("start_time", req.StartTime.UTC())
	}
	if req.EndTime != nil {
		addField("end_time", req.EndTime.UTC())
	}
	if req.IsActive != nil {
		addField("is_active", *req.IsActive)
	}

	if len(fields) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No fields to update")
		return
	}

	args = append(args, electionID)
	query := fmt.Sprintf("UPDATE elections SET %s WHERE id = $%d", strings.Join(fields, ", "), i)

	res, err := h.db.Exec(query, args...)
	if err != nil {
		slog.Error("failed to update election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteElection handles DELETE /admin/elections/{id}
// Candidates, eligibility and vote_status rows cascade.
func (h *AdminHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM elections WHERE id = $1`, electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	slog.Info("election deleted", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// CreateCandidate handles POST /admin/candidates
func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID == "" || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and name are required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM elections WHERE id = $1)`, req.ElectionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	candidateID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate candidate ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO candidates (id, election_id, name, description)
		VALUES ($1, $2, $3, $4)
	`, candidateID, req.ElectionID, req.Name, req.Description)
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", candidateID, "election_id", req.ElectionID)

	middleware.JSONResponse(w, http.StatusCreated, models.Candidate{
		ID:          candidateID,
		ElectionID:  req.ElectionID,
		Name:        req.Name,
		Description: req.Description,
	})
}

// DeleteCandidate handles DELETE /admin/candidates/{id}
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM candidates WHERE id = $1`, candidateID)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// GrantEligibility handles POST /admin/eligibility
func (h *AdminHandler) GrantEligibility(w http.ResponseWriter, r *http.Request) {
	var req models.EligibilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and user_id are required")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO eligible_voters (election_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (election_id, user_id) DO NOTHING
	`, req.ElectionID, req.UserID)
	if err != nil {
		slog.Error("failed to grant eligibility", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to grant eligibility")
		return
	}

	slog.Info("eligibility granted", "election_id", req.ElectionID, "user_id", req.UserID)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// RevokeEligibility handles DELETE /admin/eligibility
func (h *AdminHandler) RevokeEligibility(w http.ResponseWriter, r *http.Request) {
	var req models.EligibilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and user_id are required")
		return
	}

	_, err := h.db.Exec(`
		DELETE FROM eligible_voters WHERE election_id = $1 AND user_id = $2
	`, req.ElectionID, req.UserID)
	if err != nil {
		slog.Error("failed to revoke eligibility", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to revoke eligibility")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}
