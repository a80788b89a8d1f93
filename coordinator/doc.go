// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coordinator orchestrates the vote commit protocol.

# Flow

CastVote runs, in order:

 1. eligibility.Gate.Check - authorization, no side effects
 2. votestore.Store.Reserve - the atomic claim; losers stop here
 3. votetoken.Hasher.Derive - pure, deterministic
 4. ledger.Client.Commit - the external call
 5. Finalize, Release, or MarkPending depending on the outcome

# Outcome handling

Success finalizes the reservation with the receipt. A definitive ledger
refusal releases it so the voter can try again. An ambiguous outcome -
timeout, connection loss, caller cancellation - marks the reservation
pending and keeps it; the reconcile package later asks the ledger whether
the token ever landed and either finalizes or releases. Guessing either way
here is how a vote gets lost or counted twice.

The store operations are not bound to the request context, so a caller that
disconnects mid-commit still gets its reservation parked as pending rather
than stranded.
*/
package coordinator
