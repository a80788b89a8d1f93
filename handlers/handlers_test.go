// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ledgervote/cliparse"
	"github.com/danielhkuo/ledgervote/coordinator"
	"github.com/danielhkuo/ledgervote/eligibility"
	"github.com/danielhkuo/ledgervote/models"
	"github.com/danielhkuo/ledgervote/router"
	"github.com/danielhkuo/ledgervote/testutil"
	"github.com/danielhkuo/ledgervote/votestore"
	"github.com/danielhkuo/ledgervote/votetoken"
)

// env wires the full HTTP surface against a fresh database and a fake
// ledger, so handler tests exercise routing and middleware too.
type env struct {
	mux   *http.ServeMux
	conn  *sql.DB
	cfg   cliparse.Config
	store *votestore.Store
	fake  *testutil.FakeLedger
}

func newEnv(t *testing.T) *env {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := votestore.New(conn)
	fake := testutil.NewFakeLedger()
	hasher := votetoken.NewHasher(cfg.VoterHashSecret)
	coord := coordinator.New(eligibility.New(conn), store, hasher, fake)

	return &env{
		mux:   router.NewRouter(conn, cfg, coord, fake, store),
		conn:  conn,
		cfg:   cfg,
		store: store,
		fake:  fake,
	}
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func (e *env) bearer(t *testing.T, userID, role string) map[string]string {
	t.Helper()
	return map[string]string{
		"Authorization": "Bearer " + testutil.IssueTestToken(t, e.cfg, userID, role),
	}
}

// openElection creates an open election with one candidate and an eligible
// voter, the baseline for most voting tests.
func (e *env) openElection(t *testing.T) (electionID, candidateID, voterID string) {
	t.Helper()

	electionID = testutil.CreateTestElection(t, e.conn, "open")
	candidateID = testutil.AddTestCandidate(t, e.conn, electionID, "Alice")
	voterID = testutil.CreateTestUser(t, e.conn, "voter@test.com", "password123", models.RoleVoter)
	testutil.GrantTestEligibility(t, e.conn, electionID, voterID)
	return electionID, candidateID, voterID
}
