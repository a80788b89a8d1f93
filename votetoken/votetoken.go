// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votetoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Hasher derives the anonymized voter token that stands in for a voter's
// identity on the ledger. The secret comes from configuration and is fixed
// for the process lifetime.
type Hasher struct {
	secret []byte
}

func NewHasher(secret string) Hasher {
	return Hasher{secret: []byte(secret)}
}

// Derive computes the ledger-visible token for a (voter, election) pair.
// Deterministic: the same pair always maps to the same token, so a retried
// submission carries the same token and the ledger can deduplicate it.
func (h Hasher) Derive(voterID, electionID string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(electionID))
	mac.Write([]byte{0})
	mac.Write([]byte(voterID))
	sum := mac.Sum(nil)
	// URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
