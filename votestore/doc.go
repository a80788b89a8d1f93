// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votestore is the durable record of who has voted in which election.

# State Machine

Each (election, voter) pair moves through:

	(no row) --Reserve--> reserved --Finalize--> committed
	                      reserved --MarkPending--> pending
	                      reserved --Release--> released --Reserve--> reserved
	                      pending  --Finalize--> committed
	                      pending  --Release--> released

committed is terminal. pending means the ledger outcome is unknown and the
reconcile package owns the next transition.

# Atomicity

Reserve is the concurrency choke point for the whole system. It is one
INSERT .. ON CONFLICT DO UPDATE .. WHERE statement, so the database's
uniqueness constraint decides races: two concurrent Reserve calls for the
same pair can never both report success. The classic defect this replaces is
"SELECT has_voted, then UPDATE" as two steps, which lets both callers read
"not voted" before either writes.

All other transitions are conditional updates keyed on the current status,
so a stale caller (e.g. finalizing a row someone already released) gets
ErrNotReserved instead of clobbering state.
*/
package votestore
