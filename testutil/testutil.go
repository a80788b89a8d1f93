// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ledgervote/auth"
	"github.com/danielhkuo/ledgervote/cliparse"
	"github.com/danielhkuo/ledgervote/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// WAL plus a busy timeout keeps concurrent test writers from failing with
// SQLITE_BUSY.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              4000,
		DatabaseType:      "sqlite",
		VoterHashSecret:   "test-hash-secret",
		JWTSecret:         "test-jwt-secret",
		LedgerURL:         "http://ledger.invalid",
		LedgerTimeout:     2 * time.Second,
		ReconcileInterval: time.Second,
		ReconcileGrace:    time.Minute,
	}
}

// CreateTestUser inserts a user and returns its ID. The password is stored
// bcrypt-hashed so login tests exercise the real verification path.
func CreateTestUser(t *testing.T, conn *sql.DB, email, password, role string) string {
	t.Helper()

	userID, _ := auth.GenerateID(16)
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, "Test User", email, hash, role)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestElection inserts an election and returns its ID.
// window should be "open", "ended", "upcoming", or "inactive".
func CreateTestElection(t *testing.T, conn *sql.DB, window string) string {
	t.Helper()

	now := time.Now().UTC()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	active := true

	switch window {
	case "open":
	case "ended":
		start = now.Add(-2 * time.Hour)
		end = now.Add(-time.Hour)
	case "upcoming":
		start = now.Add(time.Hour)
		end = now.Add(2 * time.Hour)
	case "inactive":
		active = false
	default:
		t.Fatalf("Unknown election window %q", window)
	}

	electionID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO elections (id, title, description, start_time, end_time, is_active)
		VALUES ($1, 'Test Election', 'A test election', $2, $3, $4)
	`, electionID, start, end, active)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID
}

// AddTestCandidate adds a candidate to an election and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, name string) string {
	t.Helper()

	candidateID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO candidates (id, election_id, name, description)
		VALUES ($1, $2, $3, '')
	`, candidateID, electionID, name)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// GrantTestEligibility marks a user eligible for an election
func GrantTestEligibility(t *testing.T, conn *sql.DB, electionID, userID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO eligible_voters (election_id, user_id)
		VALUES ($1, $2)
	`, electionID, userID)
	if err != nil {
		t.Fatalf("Failed to grant test eligibility: %v", err)
	}
}

// IssueTestToken returns a signed session token for the given user
func IssueTestToken(t *testing.T, cfg cliparse.Config, userID, role string) string {
	t.Helper()

	token, err := auth.IssueToken(userID, role, cfg.JWTSecret, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
