// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ledgervote/cliparse"
	"github.com/danielhkuo/ledgervote/coordinator"
	"github.com/danielhkuo/ledgervote/handlers"
	"github.com/danielhkuo/ledgervote/ledger"
	"github.com/danielhkuo/ledgervote/middleware"
	"github.com/danielhkuo/ledgervote/votestore"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, coord *coordinator.Coordinator, lc ledger.Client, store *votestore.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(coord)
	resultsHandler := handlers.NewResultsHandler(db, lc, store)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	logged := middleware.WithLogging
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return logged(middleware.RequireAuth(cfg.JWTSecret, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /auth/login", logged(authHandler.Login))

	// Voter-facing operations
	mux.HandleFunc("GET /elections", authed(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}/candidates", authed(electionHandler.ListCandidates))
	mux.HandleFunc("POST /elections/{id}/vote", authed(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/results", authed(resultsHandler.GetResults))

	// Operator audit
	mux.HandleFunc("GET /audit/votes/{id}", admin(resultsHandler.GetVoteAudit))

	// Administration
	mux.HandleFunc("GET /admin/users", admin(adminHandler.ListUsers))
	mux.HandleFunc("POST /admin/users", admin(adminHandler.UpsertUser))
	mux.HandleFunc("PATCH /admin/users/{id}", admin(adminHandler.UpdateUser))
	mux.HandleFunc("DELETE /admin/users/{id}", admin(adminHandler.DeleteUser))
	mux.HandleFunc("POST /admin/elections", admin(adminHandler.CreateElection))
	mux.HandleFunc("PATCH /admin/elections/{id}", admin(adminHandler.UpdateElection))
	mux.HandleFunc("DELETE /admin/elections/{id}", admin(adminHandler.DeleteElection))
	mux.HandleFunc("POST /admin/candidates", admin(adminHandler.CreateCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{id}", admin(adminHandler.DeleteCandidate))
	mux.HandleFunc("POST /admin/eligibility", admin(adminHandler.GrantEligibility))
	mux.HandleFunc("DELETE /admin/eligibility", admin(adminHandler.RevokeEligibility))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ledgervote API v1"))
	})

	return mux
}
