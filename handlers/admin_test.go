// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielhkuo/ledgervote/models"
	"github.com/danielhkuo/ledgervote/testutil"
)

func adminHeaders(e *env, t *testing.T) map[string]string {
	t.Helper()
	adminID := testutil.CreateTestUser(t, e.conn, "admin@test.com", "password123", models.RoleAdmin)
	return e.bearer(t, adminID, models.RoleAdmin)
}

func TestUpsertUser(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)

	w := e.do(testutil.MakeRequest("POST", "/admin/users", models.UpsertUserRequest{
		FullName: "New Voter",
		Email:    "new@test.com",
		Password: "password123",
	}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var user models.User
	testutil.AssertJSON(t, w, &user)
	if user.Role != models.RoleVoter {
		t.Errorf("role = %s, want default voter", user.Role)
	}

	// The new user can log in
	w = e.do(testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    "new@test.com",
		Password: "password123",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Upsert by email updates instead of duplicating
	w = e.do(testutil.MakeRequest("POST", "/admin/users", models.UpsertUserRequest{
		FullName: "Renamed Voter",
		Email:    "new@test.com",
		Password: "password456",
	}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var updated models.User
	testutil.AssertJSON(t, w, &updated)
	if updated.ID != user.ID {
		t.Errorf("upsert created a new user: %s vs %s", updated.ID, user.ID)
	}
	if updated.FullName != "Renamed Voter" {
		t.Errorf("full name = %s, want Renamed Voter", updated.FullName)
	}
}

func TestUpsertUser_Validation(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)

	tests := []struct {
		name string
		body models.UpsertUserRequest
	}{
		{"missing email", models.UpsertUserRequest{FullName: "X", Password: "password123"}},
		{"missing password", models.UpsertUserRequest{FullName: "X", Email: "x@test.com"}},
		{"bad role", models.UpsertUserRequest{FullName: "X", Email: "x@test.com", Password: "password123", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(testutil.MakeRequest("POST", "/admin/users", tt.body, headers))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)
	userID := testutil.CreateTestUser(t, e.conn, "voter@test.com", "password123", models.RoleVoter)

	role := models.RoleAdmin
	w := e.do(testutil.MakeRequest("PATCH", "/admin/users/"+userID,
		models.UpdateUserRequest{Role: &role}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var got string
	if err := e.conn.QueryRow(`SELECT role FROM users WHERE id = $1`, userID).Scan(&got); err != nil {
		t.Fatal(err)
	}
	if got != models.RoleAdmin {
		t.Errorf("role = %s, want admin", got)
	}

	// No fields is a bad request, unknown user a 404
	w = e.do(testutil.MakeRequest("PATCH", "/admin/users/"+userID, models.UpdateUserRequest{}, headers))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = e.do(testutil.MakeRequest("PATCH", "/admin/users/no-such-user",
		models.UpdateUserRequest{Role: &role}, headers))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteUser_CascadesVoteState(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)
	electionID, candidateID, voterID := e.openElection(t)

	if code := castVote(e, t, voterID, electionID, candidateID); code != http.StatusOK {
		t.Fatalf("vote status = %d", code)
	}

	w := e.do(testutil.MakeRequest("DELETE", "/admin/users/"+voterID, nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	var n int
	if err := e.conn.QueryRow(`SELECT COUNT(*) FROM vote_status WHERE user_id = $1`, voterID).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("vote_status rows remain after user deletion: %d", n)
	}
}

func TestCreateElection(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)
	now := time.Now().UTC()

	w := e.do(testutil.MakeRequest("POST", "/admin/elections", models.CreateElectionRequest{
		Title:     "Board Election",
		StartTime: now,
		EndTime:   now.Add(24 * time.Hour),
	}, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var election models.Election
	testutil.AssertJSON(t, w, &election)
	if election.ID == "" || !election.IsActive {
		t.Errorf("unexpected election: %+v", election)
	}

	// end_time before start_time is rejected
	w = e.do(testutil.MakeRequest("POST", "/admin/elections", models.CreateElectionRequest{
		Title:     "Backwards Election",
		StartTime: now,
		EndTime:   now.Add(-time.Hour),
	}, headers))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateElection_Deactivate(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)
	electionID, candidateID, voterID := e.openElection(t)

	inactive := false
	w := e.do(testutil.MakeRequest("PATCH", "/admin/elections/"+electionID,
		models.UpdateElectionRequest{IsActive: &inactive}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	// A deactivated election no longer accepts votes
	if code := castVote(e, t, voterID, electionID, candidateID); code != http.StatusConflict {
		t.Errorf("vote on deactivated election status = %d, want %d", code, http.StatusConflict)
	}
}

func TestCandidateLifecycle(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)
	electionID := testutil.CreateTestElection(t, e.conn, "open")

	w := e.do(testutil.MakeRequest("POST", "/admin/candidates", models.CreateCandidateRequest{
		ElectionID: electionID,
		Name:       "Alice",
	}, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var candidate models.Candidate
	testutil.AssertJSON(t, w, &candidate)

	w = e.do(testutil.MakeRequest("DELETE", "/admin/candidates/"+candidate.ID, nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Unknown election is a 404
	w = e.do(testutil.MakeRequest("POST", "/admin/candidates", models.CreateCandidateRequest{
		ElectionID: "no-such-election",
		Name:       "Bob",
	}, headers))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestEligibilityLifecycle(t *testing.T) {
	e := newEnv(t)
	headers := adminHeaders(e, t)

	electionID := testutil.CreateTestElection(t, e.conn, "open")
	candidateID := testutil.AddTestCandidate(t, e.conn, electionID, "Alice")
	voterID := testutil.CreateTestUser(t, e.conn, "voter@test.com", "password123", models.RoleVoter)

	// Not eligible until granted
	if code := castVote(e, t, voterID, electionID, candidateID); code != http.StatusForbidden {
		t.Fatalf("vote before grant status = %d, want %d", code, http.StatusForbidden)
	}

	grant := models.EligibilityRequest{ElectionID: electionID, UserID: voterID}
	w := e.do(testutil.MakeRequest("POST", "/admin/eligibility", grant, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Granting twice is harmless
	w = e.do(testutil.MakeRequest("POST", "/admin/eligibility", grant, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = e.do(testutil.MakeRequest("DELETE", "/admin/eligibility", grant, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	if code := castVote(e, t, voterID, electionID, candidateID); code != http.StatusForbidden {
		t.Errorf("vote after revoke status = %d, want %d", code, http.StatusForbidden)
	}
}

func TestAdminEndpoints_RejectVoters(t *testing.T) {
	e := newEnv(t)
	voterID := testutil.CreateTestUser(t, e.conn, "voter@test.com", "password123", models.RoleVoter)
	headers := e.bearer(t, voterID, models.RoleVoter)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/admin/users"},
		{"POST", "/admin/users"},
		{"POST", "/admin/elections"},
		{"POST", "/admin/eligibility"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := e.do(testutil.MakeRequest(tt.method, tt.path, nil, headers))
			testutil.AssertStatus(t, w, http.StatusForbidden)
		})
	}
}
