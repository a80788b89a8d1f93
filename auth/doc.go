// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens and password hashing.

# Session Tokens

Session tokens are HMAC-SHA256 signed JWTs carrying the user ID as subject
and the user's role as a custom claim:

	token, err := auth.IssueToken(userID, role, secret, time.Now())
	claims, err := auth.ParseToken(token, secret)

Tokens expire after TokenTTL (4 hours). ParseToken rejects any token not
signed with HMAC, so algorithm-confusion tokens fail closed.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidCredentials on mismatch so callers never
branch on bcrypt internals.

# IDs

GenerateID creates random hex identifiers used as primary keys:

	id, err := auth.GenerateID(16)
*/
package auth
