package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/http/api"
	repository "github.com/victorezeilo/TDD-Prompt-Engineering/internal/adapters/repository"
	service "github.com/victorezeilo/TDD-Prompt-Engineering/internal/app"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/cli"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/config"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/dataset"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/testrun"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	var (
		serve = flag.Bool("serve", false, "Serve the HTTP API instead of the interactive menu")
		help  = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Menu output owns stdout, so logs go to stderr.
	if err := logger.InitWithOptions(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *serve); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, serve bool) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.New("failed to load config: " + err.Error())
	}

	if err := logger.InitWithOptions(logger.WithWriter(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return errors.New("failed to initialize logging: " + err.Error())
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}

	if serve {
		return serveHTTP(ctx, cfg, svc, log)
	}

	menu := cli.New(svc, os.Stdin, os.Stdout,
		cli.WithClearScreen(isatty.IsTerminal(os.Stdout.Fd())),
		cli.WithLogger(log.Named("menu")),
	)
	return menu.Run(ctx)
}

// newService wires the activity log, dataset and test runner from cfg.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, error) {
	store, err := repository.Open(ctx, cfg.LogFile, repository.WithLogger(log.Named("activity-log")))
	if err != nil {
		return nil, errors.New("failed to open activity log: " + err.Error())
	}

	runner := testrun.New(
		testrun.WithGoBinary(cfg.GoBinary),
		testrun.WithPackage(cfg.TestPackage),
		testrun.WithProfile(cfg.CoverageProfile),
		testrun.WithTimeout(cfg.TestTimeout),
		testrun.WithLogger(log.Named("testrun")),
	)

	return service.New(store,
		service.WithSource(dataset.NewSource(cfg.DatasetFile)),
		service.WithRunner(runner),
		service.WithSeed(cfg.Seed),
		service.WithManualConstraints(cfg.ManualConstraints),
		service.WithQueueSize(cfg.JobQueueSize),
		service.WithJobTimeout(cfg.TestTimeout),
		service.WithLogger(log),
	), nil
}

// newMux registers the business API routes.
func newMux(svc api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)
	return mux
}

func serveHTTP(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) error {
	if err := svc.Start(ctx); err != nil {
		return errors.New("failed to start service: " + err.Error())
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			log.Error(stopCtx, "service stop failed", logger.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.New("HTTP server failed: " + err.Error())
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

func showHelp() {
	os.Stdout.WriteString(`Concert Itinerary Builder
=========================

Runs the test-driven development experiment around the concert itinerary
builder, either as an interactive menu or as an HTTP API.

Usage:
  go run ./cmd/itinerary [options]

Options:
  -serve
        Serve the HTTP API on the configured address instead of the menu
  -help
        Show this help message

Configuration (environment, or a YAML file named by ITINERARY_CONFIG):
  ITINERARY_LOG_FILE            Activity log path (default "experiment_log.json")
  ITINERARY_DATASET_FILE        Concert dataset (JSON or YAML; built-in sample when empty)
  ITINERARY_ADDR                HTTP listen address (default ":9080")
  ITINERARY_SEED                Seed for the constraint assignment (default 42)
  ITINERARY_MANUAL_CONSTRAINTS  Constraints assigned to manual work (default 3)
  ITINERARY_TEST_PACKAGE        Package pattern passed to go test (default "./internal/domain/...")
  ITINERARY_TEST_TIMEOUT        Limit for one test run (default 5m)
  ITINERARY_JOB_QUEUE_SIZE      Background test runs that may wait (default 8)
  ITINERARY_LOG_LEVEL           debug, info, warn or error (default "info")

Examples:
  # Start the experiment menu
  go run ./cmd/itinerary

  # Serve the API on another port
  ITINERARY_ADDR=:9090 go run ./cmd/itinerary -serve
`)
}
