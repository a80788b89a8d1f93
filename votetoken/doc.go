// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votetoken derives anonymized voter tokens for the ledger.

The token is an HMAC-SHA256 over (electionID, voterID) keyed with a
process-wide secret:

	hasher := votetoken.NewHasher(cfg.VoterHashSecret)
	token := hasher.Derive(voterID, electionID)

The ledger only ever sees the token, never the voter ID. Determinism is load
bearing: resubmitting the same logical vote after a timeout produces the same
token, which is what lets the ledger reject duplicates. A zero byte separates
the two inputs so no two distinct pairs can concatenate to the same message.

The secret is required configuration with no default; see cliparse.
*/
package votetoken
