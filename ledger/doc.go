// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger abstracts the external append-only vote ledger.

# Outcomes

Commit has three outcomes, not two:

	receipt, err := client.Commit(ctx, electionID, candidateID, token)

  - nil error: the ledger counted the vote; receipt is the transaction hash
  - *RejectedError: the ledger refused; the vote was definitively not counted
  - wraps ErrAmbiguous: timeout, reset, or cancellation in flight; the vote
    may or may not have been counted

Collapsing the third case into the other two is exactly how votes get lost
or double-counted; callers branch with errors.As / errors.Is and keep their
reservation on ambiguity.

# Retries

HTTPClient retries only dial-level failures, where the request never left
the process, with bounded exponential backoff (cenkalti/backoff). It never
resends after receiving any response. The gateway deduplicates on the voter
token (sent as X-Idempotency-Key), so even an unnoticed duplicate cannot
double-count.

# Other calls

Lookup answers "was this token ever committed?" for reconciliation, and
Results fetches the tally served by the results endpoints.
*/
package ledger
