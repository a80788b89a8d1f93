// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ledgervote/ledger"
	"github.com/danielhkuo/ledgervote/middleware"
	"github.com/danielhkuo/ledgervote/models"
	"github.com/danielhkuo/ledgervote/votestore"
)

type ResultsHandler struct {
	db     *sql.DB
	ledger ledger.Client
	store  *votestore.Store
}

func NewResultsHandler(db *sql.DB, lc ledger.Client, store *votestore.Store) *ResultsHandler {
	return &ResultsHandler{db: db, ledger: lc, store: store}
}

// GetResults handles GET /elections/{id}/results
// The tally lives on the ledger; this proxies it.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM elections WHERE id = $1)`, electionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	tallies, err := h.ledger.Results(r.Context(), electionID)
	if err != nil {
		slog.Error("failed to fetch ledger results", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Ledger results unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionResults{
		ElectionID: electionID,
		Candidates: tallies,
	})
}

// GetVoteAudit handles GET /audit/votes/{id}
// Local commit-status counts for operators: committed votes, pending
// reconciliations, released reservations. Never exposes voter identities.
func (h *ResultsHandler) GetVoteAudit(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	counts, err := h.store.CountByStatus(electionID)
	if err != nil {
		slog.Error("failed to count vote statuses", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteAuditResponse{
		ElectionID: electionID,
		Committed:  counts[models.VoteStatusCommitted],
		Pending:    counts[models.VoteStatusPending] + counts[models.VoteStatusReserved],
		Released:   counts[models.VoteStatusReleased],
	})
}
