// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/ledgervote/models"
	"github.com/danielhkuo/ledgervote/testutil"
)

func TestGetResults(t *testing.T) {
	e := newEnv(t)
	electionID, candidateID, voterID := e.openElection(t)

	if code := castVote(e, t, voterID, electionID, candidateID); code != http.StatusOK {
		t.Fatalf("vote status = %d", code)
	}

	w := e.do(testutil.MakeRequest("GET", "/elections/"+electionID+"/results", nil,
		e.bearer(t, voterID, models.RoleVoter)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ElectionResults
	testutil.AssertJSON(t, w, &resp)
	if resp.ElectionID != electionID {
		t.Errorf("election id = %s, want %s", resp.ElectionID, electionID)
	}
	if len(resp.Candidates) != 1 || resp.Candidates[0].Votes != 1 {
		t.Errorf("unexpected tallies: %+v", resp.Candidates)
	}
}

func TestGetResults_UnknownElection(t *testing.T) {
	e := newEnv(t)
	voterID := testutil.CreateTestUser(t, e.conn, "voter@test.com", "password123", models.RoleVoter)

	w := e.do(testutil.MakeRequest("GET", "/elections/no-such-election/results", nil,
		e.bearer(t, voterID, models.RoleVoter)))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetVoteAudit(t *testing.T) {
	e := newEnv(t)
	electionID, candidateID, voterID := e.openElection(t)
	adminID := testutil.CreateTestUser(t, e.conn, "admin@test.com", "password123", models.RoleAdmin)

	if code := castVote(e, t, voterID, electionID, candidateID); code != http.StatusOK {
		t.Fatalf("vote status = %d", code)
	}

	w := e.do(testutil.MakeRequest("GET", "/audit/votes/"+electionID, nil,
		e.bearer(t, adminID, models.RoleAdmin)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VoteAuditResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Committed != 1 || resp.Pending != 0 || resp.Released != 0 {
		t.Errorf("unexpected audit counts: %+v", resp)
	}
}

func TestGetVoteAudit_AdminOnly(t *testing.T) {
	e := newEnv(t)
	electionID, _, voterID := e.openElection(t)

	w := e.do(testutil.MakeRequest("GET", "/audit/votes/"+electionID, nil,
		e.bearer(t, voterID, models.RoleVoter)))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestListElections(t *testing.T) {
	e := newEnv(t)
	testutil.CreateTestElection(t, e.conn, "open")
	testutil.CreateTestElection(t, e.conn, "ended")
	voterID := testutil.CreateTestUser(t, e.conn, "voter@test.com", "password123", models.RoleVoter)

	w := e.do(testutil.MakeRequest("GET", "/elections", nil,
		e.bearer(t, voterID, models.RoleVoter)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var elections []models.Election
	testutil.AssertJSON(t, w, &elections)
	if len(elections) != 2 {
		t.Errorf("got %d elections, want 2", len(elections))
	}
}

func TestListCandidates(t *testing.T) {
	e := newEnv(t)
	electionID, candidateID, voterID := e.openElection(t)

	w := e.do(testutil.MakeRequest("GET", "/elections/"+electionID+"/candidates", nil,
		e.bearer(t, voterID, models.RoleVoter)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	testutil.AssertJSON(t, w, &candidates)
	if len(candidates) != 1 || candidates[0].ID != candidateID {
		t.Errorf("unexpected candidates: %+v", candidates)
	}

	w = e.do(testutil.MakeRequest("GET", "/elections/no-such-election/candidates", nil,
		e.bearer(t, voterID, models.RoleVoter)))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
