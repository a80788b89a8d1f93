// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/ledgervote/eligibility"
	"github.com/danielhkuo/ledgervote/ledger"
	"github.com/danielhkuo/ledgervote/votestore"
	"github.com/danielhkuo/ledgervote/votetoken"
)

// ErrPendingReconciliation is returned when the ledger outcome could not be
// determined. The voter's reservation is held; they should retry later and
// will either find their vote committed or be allowed to vote again.
var ErrPendingReconciliation = errors.New("vote outcome pending reconciliation")

// Coordinator runs the vote commit protocol: authorize, reserve, anonymize,
// commit, reconcile the result with local state.
type Coordinator struct {
	gate   *eligibility.Gate
	store  *votestore.Store
	hasher votetoken.Hasher
	ledger ledger.Client
}

func New(gate *eligibility.Gate, store *votestore.Store, hasher votetoken.Hasher, lc ledger.Client) *Coordinator {
	return &Coordinator{gate: gate, store: store, hasher: hasher, ledger: lc}
}

// CastVote casts one vote for a voter in an election. Returns the ledger
// receipt on success. Error cases, in protocol order:
//
//   - eligibility.ErrElectionClosed / ErrUnknownCandidate / ErrNotEligible:
//     nothing was mutated
//   - votestore.ErrAlreadyCommitted / ErrAlreadyReserved: this voter already
//     has a vote committed or in flight; no ledger call is made
//   - *ledger.RejectedError: the ledger refused; the reservation was
//     released and the voter may try again
//   - ErrPendingReconciliation: the ledger outcome is unknown; the
//     reservation is held until the reconciler resolves it
func (c *Coordinator) CastVote(ctx context.Context, voterID, electionID, candidateID string) (string, error) {
	if err := c.gate.Check(voterID, electionID, candidateID); err != nil {
		return "", err
	}

	if err := c.store.Reserve(electionID, voterID); err != nil {
		return "", err
	}

	token := c.hasher.Derive(voterID, electionID)

	receipt, err := c.ledger.Commit(ctx, electionID, candidateID, token)
	switch {
	case err == nil:
		if err := c.store.Finalize(electionID, voterID, receipt); err != nil {
			// The ledger counted the vote but the local write failed. The
			// reservation stays held; the reconciler will find the token on
			// the ledger and finalize.
			slog.Error("vote committed on ledger but finalize failed",
				"election_id", electionID, "voter_id", voterID, "error", err)
			return "", fmt.Errorf("failed to record committed vote: %w", err)
		}
		slog.Info("vote committed", "election_id", electionID, "receipt", receipt)
		return receipt, nil

	case isRejected(err):
		if relErr := c.store.Release(electionID, voterID); relErr != nil {
			slog.Error("failed to release refused vote",
				"election_id", electionID, "voter_id", voterID, "error", relErr)
			return "", fmt.Errorf("failed to release reservation: %w", relErr)
		}
		slog.Info("vote rejected by ledger", "election_id", electionID, "error", err)
		return "", err

	default:
		// Ambiguous, including caller cancellation mid-call. Never release
		// here: the ledger may have counted the vote.
		if penErr := c.store.MarkPending(electionID, voterID); penErr != nil {
			slog.Error("failed to mark ambiguous vote pending",
				"election_id", electionID, "voter_id", voterID, "error", penErr)
			return "", fmt.Errorf("failed to record ambiguous outcome: %w", penErr)
		}
		slog.Warn("vote outcome ambiguous, held for reconciliation",
			"election_id", electionID, "error", err)
		return "", ErrPendingReconciliation
	}
}

func isRejected(err error) bool {
	var rejected *ledger.RejectedError
	return errors.As(err, &rejected)
}
