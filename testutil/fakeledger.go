// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/ledgervote/models"
)

// FakeLedger is an in-memory ledger.Client for tests. Zero value is not
// usable; build with NewFakeLedger. Configure failure modes through the
// exported fields before issuing requests.
type FakeLedger struct {
	mu sync.Mutex

	// CommitErr, when set, is returned by every Commit call.
	CommitErr error

	// CommitDelay makes Commit block, to simulate a slow gateway.
	CommitDelay time.Duration

	commits     map[string]commitRecord // key: electionID + "|" + token
	commitCalls int
	nextTx      int
}

type commitRecord struct {
	candidateID string
	receipt     string
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{commits: make(map[string]commitRecord)}
}

// Commit records the vote and returns a synthetic receipt. Duplicate tokens
// for the same election return the original receipt, matching the
// idempotency the real gateway provides.
func (f *FakeLedger) Commit(ctx context.Context, electionID, candidateID, token string) (string, error) {
	if f.CommitDelay > 0 {
		select {
		case <-time.After(f.CommitDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitCalls++

	if f.CommitErr != nil {
		return "", f.CommitErr
	}

	key := electionID + "|" + token
	if rec, ok := f.commits[key]; ok {
		return rec.receipt, nil
	}

	f.nextTx++
	receipt := fmt.Sprintf("0xtx%04d", f.nextTx)
	f.commits[key] = commitRecord{candidateID: candidateID, receipt: receipt}
	return receipt, nil
}

// Lookup reports whether a token was committed
func (f *FakeLedger) Lookup(ctx context.Context, electionID, token string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.commits[electionID+"|"+token]
	if !ok {
		return "", false, nil
	}
	return rec.receipt, true, nil
}

// Results tallies committed votes per candidate
func (f *FakeLedger) Results(ctx context.Context, electionID string) ([]models.CandidateTally, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	votes := make(map[string]int64)
	for key, rec := range f.commits {
		if len(key) > len(electionID) && key[:len(electionID)+1] == electionID+"|" {
			votes[rec.candidateID]++
		}
	}

	var tallies []models.CandidateTally
	for candidateID, n := range votes {
		tallies = append(tallies, models.CandidateTally{CandidateID: candidateID, Votes: n})
	}
	return tallies, nil
}

// CommitCalls returns how many times Commit was invoked
func (f *FakeLedger) CommitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commitCalls
}

// Seed records a committed token directly, without counting a Commit call.
// Used to simulate a vote that landed on the ledger even though the client
// never saw the response.
func (f *FakeLedger) Seed(electionID, candidateID, token, receipt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits[electionID+"|"+token] = commitRecord{candidateID: candidateID, receipt: receipt}
}
