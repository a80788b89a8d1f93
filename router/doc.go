// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ledgervote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, coord, ledgerClient, store)

# Endpoints

Health:

	GET /health

Authentication:

	POST /auth/login

Voter operations (require bearer token):

	GET  /elections                 - List elections
	GET  /elections/{id}/candidates - List candidates
	POST /elections/{id}/vote       - Cast a vote
	GET  /elections/{id}/results    - Ledger tally

Operator audit (admin role):

	GET /audit/votes/{id}

Administration (admin role):

	GET    /admin/users
	POST   /admin/users
	PATCH  /admin/users/{id}
	DELETE /admin/users/{id}
	POST   /admin/elections
	PATCH  /admin/elections/{id}
	DELETE /admin/elections/{id}
	POST   /admin/candidates
	DELETE /admin/candidates/{id}
	POST   /admin/eligibility
	DELETE /admin/eligibility
*/
package router
