package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ledgervote/cliparse"
	"github.com/danielhkuo/ledgervote/coordinator"
	"github.com/danielhkuo/ledgervote/db"
	"github.com/danielhkuo/ledgervote/eligibility"
	"github.com/danielhkuo/ledgervote/ledger"
	"github.com/danielhkuo/ledgervote/middleware"
	"github.com/danielhkuo/ledgervote/reconcile"
	"github.com/danielhkuo/ledgervote/router"
	"github.com/danielhkuo/ledgervote/votestore"
	"github.com/danielhkuo/ledgervote/votetoken"
)

func main() {
	var err error

	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire the vote commit coordinator
	hasher := votetoken.NewHasher(cfg.VoterHashSecret)
	store := votestore.New(dbConn)
	gate := eligibility.New(dbConn)
	ledgerClient := ledger.NewHTTPClient(cfg.LedgerURL, cfg.LedgerTimeout)
	coord := coordinator.New(gate, store, hasher, ledgerClient)

	// Background reconciliation of ambiguous ledger outcomes
	reconcileCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	reconciler := reconcile.New(store, ledgerClient, hasher, cfg.ReconcileInterval, cfg.ReconcileGrace)
	go reconciler.Run(reconcileCtx)

	// Create router
	mux := router.NewRouter(dbConn, cfg, coord, ledgerClient, store)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		stopReconciler()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "ledger", cfg.LedgerURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
