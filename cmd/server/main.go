/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the settlement calculator server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and load configuration
  2. Build the logger
  3. Open the table source (CSV files, or SQLite seeded from them)
  4. Load the reference tables into the API handler
  5. Configure HTTP router and start the reload scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config     Configuration file (YAML, TOML or JSON)
  -addr       Listen address, overrides server.address
  -data       Reference data directory, overrides data.dir
  -db         SQLite database path, overrides data.database
              Use ":memory:" for an in-memory database
  -log-level  Overrides logging.level

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the reload scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Serve straight from the CSV files in ./data
  ./server

  # Persist the tables in SQLite, importing the CSVs on first run
  ./server -db="./data/settlement.db"

  # Environment overrides
  SETTLEMENT_SERVER_ADDRESS=":3000" ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Configuration keys
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/settlement-engine/api"
	"github.com/warp/settlement-engine/config"
	"github.com/warp/settlement-engine/dataset"
	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/store/sqlite"
)

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain returns the process exit code so deferred cleanup, including the
// final logger flush, runs before main exits.
func runMain(args []string) int {
	// Flags
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file")
	addr := fs.String("addr", "", "listen address (overrides server.address)")
	dataDir := fs.String("data", "", "reference data directory (overrides data.dir)")
	dbPath := fs.String("db", "", "SQLite database path (overrides data.database)")
	logLevel := fs.String("log-level", "", "log level (overrides logging.level)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *dbPath != "" {
		cfg.Data.Database = *dbPath
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	// Initialize table source
	var source generic.TableStore = dataset.NewLoader(cfg.Data.Dir, cfg.Data.Files, logger)
	if cfg.Data.Database != "" {
		db, err := sqlite.Open(ctx, cfg.Data.Database, source, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		source = db
	}

	// Initialize handler and load tables
	handler := api.NewHandler(source, logger)
	if err := handler.Reload(ctx); err != nil {
		// Calculators still answer with neutral coefficients
		logger.Warn("starting without reference tables", zap.Error(err))
	}

	scheduler := api.NewReloadScheduler(handler, cfg.Data.ReloadInterval)
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(handler, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
