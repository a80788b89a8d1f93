// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ledgervote API.

# Handler Types

  - AuthHandler: Login and session token issuance
  - ElectionHandler: Election and candidate listings for voters
  - VotingHandler: The vote submission endpoint, backed by the coordinator
  - ResultsHandler: Ledger-backed tallies and local commit-status audit
  - AdminHandler: User, election, candidate and eligibility management

Handlers are created via constructor functions taking their dependencies:

	votingHandler := handlers.NewVotingHandler(coord)

# Vote Flow

	POST /auth/login                  → token
	GET  /elections                   → open elections
	GET  /elections/{id}/candidates   → ballot choices
	POST /elections/{id}/vote         → coordinator.CastVote
	GET  /elections/{id}/results      → ledger tally

Voting endpoints require an Authorization bearer token; /admin/* additionally
requires the admin role.

# Vote Error Mapping

	409 Election is not open / already voted
	400 Unknown candidate
	403 Not eligible
	502 Ledger rejected the vote (voter may retry)
	503 Outcome pending reconciliation (Retry-After set, place is held)
	500 Local fault
*/
package handlers
