// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ledgervote/coordinator"
	"github.com/danielhkuo/ledgervote/eligibility"
	"github.com/danielhkuo/ledgervote/ledger"
	"github.com/danielhkuo/ledgervote/middleware"
	"github.com/danielhkuo/ledgervote/models"
	"github.com/danielhkuo/ledgervote/votestore"
)

type VotingHandler struct {
	coordinator *coordinator.Coordinator
}

func NewVotingHandler(c *coordinator.Coordinator) *VotingHandler {
	return &VotingHandler{coordinator: c}
}

// CastVote handles POST /elections/{id}/vote
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	voterID := claims.Subject

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	receipt, err := h.coordinator.CastVote(r.Context(), voterID, electionID, req.CandidateID)
	if err != nil {
		writeCastVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Success: true,
		Receipt: receipt,
		Message: "Vote submitted successfully",
	})
}

// writeCastVoteError maps coordinator errors to HTTP responses. The mapping
// is the contract the frontend relies on, so keep the messages stable.
func writeCastVoteError(w http.ResponseWriter, err error) {
	var rejected *ledger.RejectedError

	switch {
	case errors.Is(err, eligibility.ErrElectionClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
	case errors.Is(err, eligibility.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate does not belong to this election")
	case errors.Is(err, eligibility.ErrNotEligible):
		middleware.ErrorResponse(w, http.StatusForbidden, "Not eligible for this election")
	case errors.Is(err, votestore.ErrAlreadyCommitted), errors.Is(err, votestore.ErrAlreadyReserved):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this election")
	case errors.As(err, &rejected):
		middleware.ErrorResponse(w, http.StatusBadGateway, "The ledger rejected this vote: "+rejected.Reason)
	case errors.Is(err, coordinator.ErrPendingReconciliation):
		w.Header().Set("Retry-After", "60")
		middleware.ErrorResponse(w, http.StatusServiceUnavailable,
			"Vote submission outcome is pending, check back later")
	default:
		slog.Error("cast vote failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
	}
}
