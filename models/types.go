// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote status constants. A missing row means the voter has not started a
// vote attempt; "released" rows may be reserved again.
const (
	VoteStatusReserved  = "reserved"
	VoteStatusPending   = "pending"
	VoteStatusCommitted = "committed"
	VoteStatusReleased  = "released"
)

// User role constants
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// Request types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type UpsertUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

type UpdateElectionRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

type CreateCandidateRequest struct {
	ElectionID  string `json:"election_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EligibilityRequest struct {
	ElectionID string `json:"election_id"`
	UserID     string `json:"user_id"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CastVoteResponse struct {
	Success bool   `json:"success"`
	Receipt string `json:"receipt"`
	Message string `json:"message,omitempty"`
}

type ElectionResults struct {
	ElectionID string           `json:"election_id"`
	Candidates []CandidateTally `json:"candidates"`
}

type CandidateTally struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Votes       int64  `json:"votes"`
}

type VoteAuditResponse struct {
	ElectionID string `json:"election_id"`
	Committed  int    `json:"committed"`
	Pending    int    `json:"pending"`
	Released   int    `json:"released"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsActive    bool      `json:"is_active"`
}

type Candidate struct {
	ID          string `json:"id"`
	ElectionID  string `json:"election_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// VoteStatus is the local record of a voter's progress through the commit
// protocol for one election. Receipt is set once the ledger confirmed and
// never mutated afterwards.
type VoteStatus struct {
	ElectionID string    `json:"election_id"`
	VoterID    string    `json:"-"` // Never expose in JSON
	Status     string    `json:"status"`
	Receipt    *string   `json:"receipt,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
