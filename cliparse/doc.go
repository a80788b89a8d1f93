// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: Connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - VoterHashSecret: Secret for voter token derivation (required)
  - JWTSecret: Secret for JWT signing (required)
  - LedgerURL: Ledger gateway base URL (required)
  - LedgerTimeout: Per-request ledger timeout (default: 10s)
  - ReconcileInterval: Reconciliation sweep interval (default: 30s)
  - ReconcileGrace: Age before an untraced pending vote is released (default: 5m)

# CLI Flags

	-p                   Server port
	-d                   Database URL
	-t                   Database type
	--ledger-url         Ledger gateway base URL
	--ledger-timeout     Ledger request timeout
	--reconcile-interval Reconciliation sweep interval
	--reconcile-grace    Pending-vote grace period
	--hash-secret        Voter anonymization secret
	--jwt-secret         JWT signing secret

# Environment Variables

Flags fall back to environment variables: PORT, DATABASE_URL, DATABASE_TYPE,
LEDGER_URL, LEDGER_TIMEOUT, RECONCILE_INTERVAL, RECONCILE_GRACE,
VOTER_HASH_SECRET, JWT_SECRET.

The two secrets and the ledger URL have no defaults on purpose: starting
without them is a configuration error, not a degraded mode.
*/
package cliparse
