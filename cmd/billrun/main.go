package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/flexprice/billrun/internal/airtable"
	"github.com/flexprice/billrun/internal/cache"
	"github.com/flexprice/billrun/internal/config"
	"github.com/flexprice/billrun/internal/httpclient"
	"github.com/flexprice/billrun/internal/integration/pennylane"
	"github.com/flexprice/billrun/internal/logger"
	"github.com/flexprice/billrun/internal/repository"
	"github.com/flexprice/billrun/internal/sentry"
	"github.com/flexprice/billrun/internal/service"
	"github.com/joho/godotenv"
)

func init() {
	// Billing dates are computed in UTC regardless of where the job runs.
	time.Local = time.UTC
}

func main() {
	// Optional .env for local runs; production is configured through real
	// environment variables.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(string(cfg.Logging.Level))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer l.Sync() //nolint:errcheck

	sentrySvc := sentry.NewSentryService(cfg, l)
	if err := sentrySvc.Start(); err != nil {
		l.Warnw("continuing without Sentry", "error", err)
	}
	defer sentrySvc.Flush()

	httpClient := httpclient.NewClient(httpclient.RetryConfig{
		MaxRetries: cfg.Billing.RetryMax,
		Wait:       cfg.Billing.RetryWait(),
		Timeout:    cfg.Billing.Timeout(),
	})

	datastore := airtable.NewClient(
		httpClient,
		cfg.Airtable.BaseURL,
		cfg.Airtable.BaseID,
		cfg.Airtable.APIKey,
		l,
	)
	recordCache := cache.NewInMemoryCache()

	subRepo := repository.NewSubscriptionRepository(datastore, cfg, l)
	svcRepo := repository.NewServiceRepository(datastore, cfg, recordCache, l)
	billing := pennylane.NewClient(httpClient, cfg, l)

	ctx := context.Background()

	// Fail fast when the billing API is unreachable or the credentials are
	// wrong; a partial run is worse than no run.
	if err := billing.Ping(ctx); err != nil {
		l.Errorw("billing API connectivity check failed", "error", err)
		sentrySvc.CaptureException(err)
		sentrySvc.Flush()
		os.Exit(1)
	}

	runner := service.NewBillingRunService(cfg, subRepo, svcRepo, billing, l)

	summary, err := runner.Run(ctx, time.Now().UTC())
	if err != nil {
		l.Errorw("billing run aborted", "error", err)
		sentrySvc.CaptureException(err)
		sentrySvc.Flush()
		os.Exit(1)
	}

	l.Infow("billing run finished",
		"run_id", summary.RunID,
		"invoices_generated", summary.InvoicesGenerated,
		"failures", summary.Failures,
	)
}
