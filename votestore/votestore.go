// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votestore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/ledgervote/models"
)

var (
	ErrAlreadyCommitted = errors.New("vote already committed")
	ErrAlreadyReserved  = errors.New("vote reservation already held")
	ErrNotReserved      = errors.New("no reservation held")
	ErrNotFound         = errors.New("vote status not found")
)

// Store tracks per-(election, voter) commit status. It is the only shared
// mutable state between concurrent vote requests, so every transition is a
// single conditional write - never a read followed by a separate write.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Reserve atomically claims the right to commit a vote. The insert either
// creates the row as 'reserved' or, via the conflict clause, revives a
// 'released' row. The primary key plus the conditional update guarantee that
// of N concurrent callers exactly one sees rows-affected = 1; everyone else
// gets ErrAlreadyReserved or ErrAlreadyCommitted.
func (s *Store) Reserve(electionID, voterID string) error {
	now := time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO vote_status (election_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, 'reserved', $3, $3)
		ON CONFLICT (election_id, user_id) DO UPDATE
		SET status = 'reserved', updated_at = $3
		WHERE vote_status.status = 'released'
	`, electionID, voterID, now)
	if err != nil {
		return fmt.Errorf("failed to reserve vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read reserve result: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Lost the race. The follow-up read only classifies the loss for the
	// caller; the conditional write above already decided the winner.
	status, err := s.Get(electionID, voterID)
	if err != nil {
		return err
	}
	if status.Status == models.VoteStatusCommitted {
		return ErrAlreadyCommitted
	}
	return ErrAlreadyReserved
}

// Finalize confirms a reservation after the ledger accepted the vote. The
// receipt is written once and never changed. Also resolves 'pending' rows,
// which is how reconciliation finalizes an ambiguous outcome that turned out
// to have committed.
func (s *Store) Finalize(electionID, voterID, receipt string) error {
	res, err := s.db.Exec(`
		UPDATE vote_status
		SET status = 'committed', receipt = $1, updated_at = $2
		WHERE election_id = $3 AND user_id = $4 AND status IN ('reserved', 'pending')
	`, receipt, time.Now().UTC(), electionID, voterID)
	if err != nil {
		return fmt.Errorf("failed to finalize vote: %w", err)
	}
	return requireRow(res)
}

// Release returns a reservation after the ledger definitively refused the
// vote. Only callers that know the commit did not happen may release;
// ambiguous outcomes go through MarkPending instead.
func (s *Store) Release(electionID, voterID string) error {
	res, err := s.db.Exec(`
		UPDATE vote_status
		SET status = 'released', updated_at = $1
		WHERE election_id = $2 AND user_id = $3 AND status IN ('reserved', 'pending')
	`, time.Now().UTC(), electionID, voterID)
	if err != nil {
		return fmt.Errorf("failed to release vote: %w", err)
	}
	return requireRow(res)
}

// MarkPending records that the ledger call ended without a determinable
// outcome. The reservation stays in force and keeps blocking further vote
// attempts until reconciliation resolves it.
func (s *Store) MarkPending(electionID, voterID string) error {
	res, err := s.db.Exec(`
		UPDATE vote_status
		SET status = 'pending', updated_at = $1
		WHERE election_id = $2 AND user_id = $3 AND status = 'reserved'
	`, time.Now().UTC(), electionID, voterID)
	if err != nil {
		return fmt.Errorf("failed to mark vote pending: %w", err)
	}
	return requireRow(res)
}

// Get returns the current status for a (election, voter) pair
func (s *Store) Get(electionID, voterID string) (models.VoteStatus, error) {
	var vs models.VoteStatus
	err := s.db.QueryRow(`
		SELECT election_id, user_id, status, receipt, created_at, updated_at
		FROM vote_status
		WHERE election_id = $1 AND user_id = $2
	`, electionID, voterID).Scan(
		&vs.ElectionID, &vs.VoterID, &vs.Status, &vs.Receipt, &vs.CreatedAt, &vs.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.VoteStatus{}, ErrNotFound
	}
	if err != nil {
		return models.VoteStatus{}, fmt.Errorf("failed to query vote status: %w", err)
	}
	return vs, nil
}

// ListUnresolved returns votes awaiting reconciliation: everything pending,
// plus reservations untouched since reservedBefore. A reservation that old
// means the process died between the ledger call and its bookkeeping, which
// is the same unknown-outcome situation as pending.
func (s *Store) ListUnresolved(reservedBefore time.Time) ([]models.VoteStatus, error) {
	rows, err := s.db.Query(`
		SELECT election_id, user_id, status, receipt, created_at, updated_at
		FROM vote_status
		WHERE status = 'pending' OR (status = 'reserved' AND updated_at <= $1)
		ORDER BY updated_at
	`, reservedBefore.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved votes: %w", err)
	}
	defer rows.Close()

	var unresolved []models.VoteStatus
	for rows.Next() {
		var vs models.VoteStatus
		if err := rows.Scan(&vs.ElectionID, &vs.VoterID, &vs.Status, &vs.Receipt, &vs.CreatedAt, &vs.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unresolved vote: %w", err)
		}
		unresolved = append(unresolved, vs)
	}
	return unresolved, rows.Err()
}

// CountByStatus returns per-status counts for one election, for audit
func (s *Store) CountByStatus(electionID string) (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT status, COUNT(*)
		FROM vote_status
		WHERE election_id = $1
		GROUP BY status
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count vote statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return ErrNotReserved
	}
	return nil
}
