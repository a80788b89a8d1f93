// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/ledgervote/ledger"
	"github.com/danielhkuo/ledgervote/models"
	"github.com/danielhkuo/ledgervote/votestore"
	"github.com/danielhkuo/ledgervote/votetoken"
)

// How many ledger lookups a sweep runs at once.
const sweepConcurrency = 4

// Reconciler resolves votes whose ledger outcome was never observed. It asks
// the ledger for eventual truth instead of guessing: a token found on the
// ledger finalizes the vote; a token with no trace after the grace period
// releases the reservation.
type Reconciler struct {
	store    *votestore.Store
	ledger   ledger.Client
	hasher   votetoken.Hasher
	interval time.Duration
	grace    time.Duration
}

func New(store *votestore.Store, lc ledger.Client, hasher votetoken.Hasher, interval, grace time.Duration) *Reconciler {
	return &Reconciler{store: store, ledger: lc, hasher: hasher, interval: interval, grace: grace}
}

// Run sweeps until the context is cancelled
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				slog.Error("reconciliation sweep failed", "error", err)
			}
		}
	}
}

// Sweep resolves every unresolved vote once. Exported so tests and operator
// tooling can trigger a sweep directly.
func (r *Reconciler) Sweep(ctx context.Context) error {
	unresolved, err := r.store.ListUnresolved(time.Now().UTC().Add(-r.grace))
	if err != nil {
		return err
	}
	if len(unresolved) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)
	for _, vs := range unresolved {
		g.Go(func() error {
			r.resolve(ctx, vs)
			return nil
		})
	}
	return g.Wait()
}

func (r *Reconciler) resolve(ctx context.Context, vs models.VoteStatus) {
	token := r.hasher.Derive(vs.VoterID, vs.ElectionID)

	receipt, found, err := r.ledger.Lookup(ctx, vs.ElectionID, token)
	if err != nil {
		// Leave the entry for the next sweep; unknown stays unknown.
		slog.Warn("ledger lookup failed during reconciliation",
			"election_id", vs.ElectionID, "error", err)
		return
	}

	if found {
		if err := r.store.Finalize(vs.ElectionID, vs.VoterID, receipt); err != nil {
			slog.Error("failed to finalize reconciled vote",
				"election_id", vs.ElectionID, "error", err)
			return
		}
		slog.Info("reconciled pending vote as committed",
			"election_id", vs.ElectionID, "receipt", receipt)
		return
	}

	if time.Since(vs.UpdatedAt) < r.grace {
		// No trace yet, but the gateway may still be flushing the
		// transaction. Check again next sweep.
		return
	}

	if err := r.store.Release(vs.ElectionID, vs.VoterID); err != nil {
		slog.Error("failed to release reconciled vote",
			"election_id", vs.ElectionID, "error", err)
		return
	}
	slog.Info("reconciled pending vote as not committed, reservation released",
		"election_id", vs.ElectionID)
}
