// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ledgervote API server.

ledgervote lets registered participants cast one vote per election while the
tally lives on an external append-only ledger behind a gateway RPC. The
server's job is the coordination in between: authorize the voter, claim an
atomic per-(election, voter) reservation, anonymize the voter's identity,
commit to the ledger, and reconcile slow or ambiguous outcomes without ever
double counting or losing a vote.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	DATABASE_URL=votes.db LEDGER_URL=http://localhost:5000 \
	VOTER_HASH_SECRET=... JWT_SECRET=... go run main.go

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - LEDGER_URL (--ledger-url): Blockchain gateway base URL
  - VOTER_HASH_SECRET (--hash-secret): Secret for voter anonymization
  - JWT_SECRET (--jwt-secret): Secret for session tokens

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - LEDGER_TIMEOUT, RECONCILE_INTERVAL, RECONCILE_GRACE
*/
package main
