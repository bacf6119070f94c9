/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the accounting-time server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from ACCTIME_* environment variables
  2. Build the logger
  3. Open the entry store (SQLite or in-memory)
  4. Create the ledger and API handler
  5. Configure HTTP router
  6. Serve until SIGINT/SIGTERM, then shut down gracefully

ENVIRONMENT:
  ACCTIME_ADDR              Listen address (default :8080)
  ACCTIME_STORAGE           sqlite | memory (default sqlite)
  ACCTIME_DB_PATH           SQLite database path (default accounting.db)
                            Use ":memory:" for an in-memory database
  ACCTIME_LOG_FORMAT        text | json
  ACCTIME_LOG_LEVEL         debug | info | warn | error
  ACCTIME_CORS_ORIGINS      Comma-separated allowed origins
  ACCTIME_RATE_LIMIT        Requests per window per IP, 0 disables
  ACCTIME_DEFAULT_ROLLUP    Roll-up granularity when none is requested

  Run with -help to print every variable with its default.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests (ACCTIME_SHUTDOWN_TIMEOUT)
  3. Close database connection
  4. Exit

SEE ALSO:
  - config/config.go: Configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/warp/accounting-time/api"
	"github.com/warp/accounting-time/config"
	"github.com/warp/accounting-time/ledger"
	"github.com/warp/accounting-time/ledger/store"
	"github.com/warp/accounting-time/store/sqlite"
)

func main() {
	help := flag.Bool("help", false, "print configuration variables and exit")
	flag.Parse()
	if *help {
		if err := config.Usage(); err != nil {
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Initialize store
	var (
		entries ledger.Store
		health  api.Pinger
	)
	switch cfg.Storage {
	case config.StorageMemory:
		entries = store.NewMemory()
	default:
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		entries, health = db, db
	}

	// Initialize handler
	handler := api.NewHandler(ledger.New(entries), logger)
	handler.DefaultRollup = cfg.DefaultRollup
	handler.Health = health

	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.CORSOrigins,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("storage", cfg.Storage),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
