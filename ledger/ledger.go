// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"

	"github.com/danielhkuo/ledgervote/models"
)

// ErrAmbiguous means the effect of a commit could not be determined: the
// request may or may not have reached the ledger. Callers must never treat
// this as failure; the reservation has to stay held until reconciliation.
var ErrAmbiguous = errors.New("ledger outcome unknown")

// RejectedError is a definitive, well-formed refusal from the ledger.
// The vote was not counted and the reservation may be released.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "ledger rejected vote: " + e.Reason
}

// Client is the capability the coordinator needs from the external ledger.
// Implementations must guarantee that Commit returns in bounded time and
// that every non-nil error is either a *RejectedError or wraps ErrAmbiguous.
type Client interface {
	// Commit submits an anonymized vote and returns the transaction receipt.
	Commit(ctx context.Context, electionID, candidateID, token string) (string, error)

	// Lookup reports whether a token was ever committed for an election,
	// returning the receipt when it was. Used by reconciliation.
	Lookup(ctx context.Context, electionID, token string) (receipt string, found bool, err error)

	// Results fetches the current tally for an election.
	Results(ctx context.Context, electionID string) ([]models.CandidateTally, error)
}
