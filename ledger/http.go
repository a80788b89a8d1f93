// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/danielhkuo/ledgervote/models"
)

const maxCommitRetries = 3

// HTTPClient talks to the blockchain gateway service over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a gateway client. The timeout bounds every single
// request; once it fires the outcome is ambiguous, never assumed failed.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type commitRequest struct {
	ElectionID  string `json:"election_id"`
	CandidateID string `json:"candidate_id"`
	VoterToken  string `json:"voter_token"`
}

type commitResponse struct {
	TxHash string `json:"tx_hash"`
}

type gatewayError struct {
	Error string `json:"error"`
}

// transientError marks a transport failure where the request provably never
// reached the gateway, so resending cannot double-submit.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Commit submits a vote. Retries with exponential backoff are applied only
// to dial-level failures; once a request has been written to the gateway the
// client never resends, and any unreadable outcome surfaces as ErrAmbiguous.
func (c *HTTPClient) Commit(ctx context.Context, electionID, candidateID, token string) (string, error) {
	body, err := json.Marshal(commitRequest{
		ElectionID:  electionID,
		CandidateID: candidateID,
		VoterToken:  token,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode commit request: %w", err)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxCommitRetries), ctx)

	var receipt string
	err = backoff.Retry(func() error {
		rec, err := c.commitOnce(ctx, body, token)
		if err != nil {
			var transient *transientError
			if errors.As(err, &transient) {
				return err // retry
			}
			return backoff.Permanent(err)
		}
		receipt = rec
		return nil
	}, bo)

	if err != nil {
		var transient *transientError
		if errors.As(err, &transient) {
			// Retries exhausted without ever reaching the gateway.
			return "", fmt.Errorf("%w: %v", ErrAmbiguous, transient.err)
		}
		return "", err
	}
	return receipt, nil
}

func (c *HTTPClient) commitOnce(ctx context.Context, body []byte, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/gateway/vote", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAmbiguous, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", token)

	resp, err := c.client.Do(req)
	if err != nil {
		if requestNeverSent(err) {
			return "", &transientError{err: err}
		}
		// Timeout, reset mid-flight, cancellation: the gateway may have
		// already applied the vote.
		return "", fmt.Errorf("%w: %v", ErrAmbiguous, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAmbiguous, err)
	}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		var cr commitResponse
		if err := json.Unmarshal(data, &cr); err != nil || cr.TxHash == "" {
			return "", fmt.Errorf("%w: malformed gateway success response", ErrAmbiguous)
		}
		return cr.TxHash, nil
	}

	// A well-formed error body is a definitive refusal (e.g. contract
	// revert: token already used, unknown candidate). Anything else leaves
	// the outcome unknown.
	var ge gatewayError
	if err := json.Unmarshal(data, &ge); err == nil && ge.Error != "" {
		return "", &RejectedError{Reason: ge.Error}
	}
	return "", fmt.Errorf("%w: gateway returned status %d", ErrAmbiguous, resp.StatusCode)
}

// requestNeverSent reports whether the error happened before any bytes went
// out, which makes a resend safe. Dial failures (connection refused, no
// route) qualify; anything after the connection was established does not.
func requestNeverSent(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}

// Lookup checks whether a token was committed for an election
func (c *HTTPClient) Lookup(ctx context.Context, electionID, token string) (string, bool, error) {
	url := c.baseURL + "/gateway/votes/" + electionID + "/" + token
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("ledger lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var cr commitResponse
		if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil || cr.TxHash == "" {
			return "", false, errors.New("malformed gateway lookup response")
		}
		return cr.TxHash, true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("ledger lookup returned status %d", resp.StatusCode)
	}
}

// Results fetches the current tally for an election
func (c *HTTPClient) Results(ctx context.Context, electionID string) ([]models.CandidateTally, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/gateway/results/"+electionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build results request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger results failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ledger results returned status %d", resp.StatusCode)
	}

	var payload struct {
		Candidates []models.CandidateTally `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return payload.Candidates, nil
}
