// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL avoids postgres-only constructs so the same schema runs on both
lib/pq and modernc.org/sqlite.

# Tables

  - users: Voters and admins with bcrypt password hashes
  - elections: Election metadata with voting window and active flag
  - candidates: Candidates per election
  - eligible_voters: Authorization records consumed by the eligibility gate
  - vote_status: Per-(election, voter) commit status plus ledger receipt

# Relationships

All child tables cascade on election or user deletion. The composite primary
key on vote_status is the uniqueness constraint that makes the vote
reservation atomic; see the votestore package.
*/
package db
