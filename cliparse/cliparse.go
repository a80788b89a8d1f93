package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Secrets - required, no defaults. A guessable hash secret lets an
	// observer correlate ledger tokens back to voters.
	VoterHashSecret string
	JWTSecret       string

	LedgerURL         string
	LedgerTimeout     time.Duration
	ReconcileInterval time.Duration
	ReconcileGrace    time.Duration
}

// ParseFlags validates flags and fills the configuration
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ledgervote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.LedgerURL, "ledger-url", "", "Ledger gateway base URL")
	fs.DurationVar(&cfg.LedgerTimeout, "ledger-timeout", 0, "Per-request ledger timeout")
	fs.DurationVar(&cfg.ReconcileInterval, "reconcile-interval", 0, "Reconciliation sweep interval")
	fs.DurationVar(&cfg.ReconcileGrace, "reconcile-grace", 0, "Grace period before releasing untraced pending votes")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterHashSecret, "hash-secret", "", "Voter anonymization secret (prefer env)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	if cfg.LedgerURL == "" {
		cfg.LedgerURL = os.Getenv("LEDGER_URL")
	}
	if cfg.LedgerURL == "" {
		return Config{}, errors.New("LEDGER_URL required")
	}

	var err error
	if cfg.LedgerTimeout, err = durationOrDefault(cfg.LedgerTimeout, "LEDGER_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ReconcileInterval, err = durationOrDefault(cfg.ReconcileInterval, "RECONCILE_INTERVAL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ReconcileGrace, err = durationOrDefault(cfg.ReconcileGrace, "RECONCILE_GRACE", 5*time.Minute); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.VoterHashSecret == "" {
		cfg.VoterHashSecret = os.Getenv("VOTER_HASH_SECRET")
	}
	if cfg.VoterHashSecret == "" {
		return Config{}, errors.New("VOTER_HASH_SECRET required")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	return cfg, nil
}

func durationOrDefault(flagVal time.Duration, envName string, def time.Duration) (time.Duration, error) {
	if flagVal > 0 {
		return flagVal, nil
	}
	if s := os.Getenv(envName); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return 0, errors.New("invalid " + envName + " env variable")
		}
		return d, nil
	}
	return def, nil
}
