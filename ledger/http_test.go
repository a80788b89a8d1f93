// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCommit_Success(t *testing.T) {
	var gotIdempotencyKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gateway/vote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotIdempotencyKey = r.Header.Get("X-Idempotency-Key")

		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["election_id"] != "election-1" || req["candidate_id"] != "candidate-1" {
			t.Errorf("unexpected request body: %v", req)
		}

		json.NewEncoder(w).Encode(map[string]string{"tx_hash": "0xabc123"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	receipt, err := client.Commit(context.Background(), "election-1", "candidate-1", "token-1")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if receipt != "0xabc123" {
		t.Errorf("receipt = %s, want 0xabc123", receipt)
	}
	if gotIdempotencyKey != "token-1" {
		t.Errorf("idempotency key = %s, want token-1", gotIdempotencyKey)
	}
}

func TestCommit_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "voter token already used"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	_, err := client.Commit(context.Background(), "election-1", "candidate-1", "token-1")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("Commit() error = %v, want *RejectedError", err)
	}
	if rejected.Reason != "voter token already used" {
		t.Errorf("reason = %s, want voter token already used", rejected.Reason)
	}
	if errors.Is(err, ErrAmbiguous) {
		t.Error("a definitive refusal must not be ambiguous")
	}
}

func TestCommit_AmbiguousOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error without body", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed success body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"success body without tx hash", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewHTTPClient(server.URL, 2*time.Second)
			_, err := client.Commit(context.Background(), "election-1", "candidate-1", "token-1")
			if !errors.Is(err, ErrAmbiguous) {
				t.Errorf("Commit() error = %v, want ErrAmbiguous", err)
			}
		})
	}
}

func TestCommit_TimeoutIsAmbiguous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"tx_hash": "0xabc123"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 50*time.Millisecond)
	_, err := client.Commit(context.Background(), "election-1", "candidate-1", "token-1")
	if !errors.Is(err, ErrAmbiguous) {
		t.Errorf("Commit() error = %v, want ErrAmbiguous", err)
	}
}

func TestCommit_NoResendAfterResponse(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	_, err := client.Commit(context.Background(), "election-1", "candidate-1", "token-1")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("Commit() error = %v, want ErrAmbiguous", err)
	}

	// The gateway answered, so the vote may have landed: exactly one attempt.
	if n := requests.Load(); n != 1 {
		t.Errorf("gateway saw %d requests, want 1", n)
	}
}

func TestCommit_UnreachableGatewayIsAmbiguous(t *testing.T) {
	// Grab a port that refuses connections
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewHTTPClient(url, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := client.Commit(ctx, "election-1", "candidate-1", "token-1")
	if !errors.Is(err, ErrAmbiguous) {
		t.Errorf("Commit() error = %v, want ErrAmbiguous", err)
	}
}

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gateway/votes/election-1/token-1":
			json.NewEncoder(w).Encode(map[string]string{"tx_hash": "0xabc123"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)

	receipt, found, err := client.Lookup(context.Background(), "election-1", "token-1")
	if err != nil || !found {
		t.Fatalf("Lookup() = %v, %v, %v; want found", receipt, found, err)
	}
	if receipt != "0xabc123" {
		t.Errorf("receipt = %s, want 0xabc123", receipt)
	}

	_, found, err = client.Lookup(context.Background(), "election-1", "token-2")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if found {
		t.Error("Lookup() found a token that was never committed")
	}
}

func TestResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gateway/results/election-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"candidates":[{"candidate_id":"candidate-1","votes":42}]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 2*time.Second)
	tallies, err := client.Results(context.Background(), "election-1")
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(tallies) != 1 || tallies[0].CandidateID != "candidate-1" || tallies[0].Votes != 42 {
		t.Errorf("unexpected tallies: %+v", tallies)
	}
}
