// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eligibility

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrElectionClosed   = errors.New("election is not open for voting")
	ErrUnknownCandidate = errors.New("candidate does not belong to this election")
	ErrNotEligible      = errors.New("voter is not eligible for this election")
)

// Gate answers whether a voter may vote in an election. Read-only: safe to
// call repeatedly and concurrently.
type Gate struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Gate {
	return &Gate{db: db, now: time.Now}
}

// NewAtTime builds a gate with a fixed clock, for tests
func NewAtTime(db *sql.DB, now func() time.Time) *Gate {
	return &Gate{db: db, now: now}
}

// Check validates, in order: the election exists, is active and within its
// voting window; the candidate belongs to the election; an eligibility
// record exists for the voter. Returns nil when the vote may proceed.
func (g *Gate) Check(voterID, electionID, candidateID string) error {
	var isActive bool
	var startTime, endTime time.Time
	err := g.db.QueryRow(`
		SELECT is_active, start_time, end_time
		FROM elections
		WHERE id = $1
	`, electionID).Scan(&isActive, &startTime, &endTime)
	if err == sql.ErrNoRows {
		return ErrElectionClosed
	}
	if err != nil {
		return fmt.Errorf("failed to query election: %w", err)
	}

	now := g.now().UTC()
	if !isActive || now.Before(startTime) || !now.Before(endTime) {
		return ErrElectionClosed
	}

	var candidateExists bool
	err = g.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM candidates
			WHERE id = $1 AND election_id = $2
		)
	`, candidateID, electionID).Scan(&candidateExists)
	if err != nil {
		return fmt.Errorf("failed to query candidate: %w", err)
	}
	if !candidateExists {
		return ErrUnknownCandidate
	}

	var eligible bool
	err = g.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM eligible_voters
			WHERE election_id = $1 AND user_id = $2
		)
	`, electionID, voterID).Scan(&eligible)
	if err != nil {
		return fmt.Errorf("failed to query eligibility: %w", err)
	}
	if !eligible {
		return ErrNotEligible
	}

	return nil
}
