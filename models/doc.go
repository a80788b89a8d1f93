// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: email, password
  - CastVoteRequest: candidate_id
  - UpsertUserRequest / UpdateUserRequest: admin user management
  - CreateElectionRequest / UpdateElectionRequest: admin election management
  - CreateCandidateRequest: election_id, name, description
  - EligibilityRequest: election_id, user_id

# Response Types

Types for JSON responses:

  - LoginResponse: token, user
  - CastVoteResponse: success, receipt, message
  - ElectionResults: election_id, candidates (with tallies)
  - VoteAuditResponse: local commit-status counts per election
  - ErrorResponse: error, message

# Domain Types

User, Election, Candidate mirror the administrative tables. VoteStatus is the
local record of a voter's progress through the ledger commit protocol; its
VoterID is never serialized. Status values:

	reserved  - vote attempt in flight, ledger outcome unknown so far
	pending   - ledger call ended ambiguously, reconciliation required
	committed - ledger confirmed, receipt stored, terminal
	released  - ledger definitively refused, voter may try again
*/
package models
