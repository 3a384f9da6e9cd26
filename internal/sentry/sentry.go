package sentry

import (
	"time"

	"github.com/flexprice/billrun/internal/config"
	"github.com/flexprice/billrun/internal/logger"
	"github.com/getsentry/sentry-go"
)

// Service wraps optional Sentry error reporting. When disabled every method
// is a no-op, so call sites never branch on configuration.
type Service struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewSentryService creates a new Sentry service
func NewSentryService(cfg *config.Configuration, logger *logger.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// Start initializes the Sentry client. A batch job has no shutdown hook, so
// the caller is expected to defer Flush.
func (s *Service) Start() error {
	if !s.cfg.Sentry.Enabled {
		s.logger.Debug("Sentry is disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              s.cfg.Sentry.DSN,
		Environment:      s.cfg.Sentry.Environment,
		TracesSampleRate: s.cfg.Sentry.SampleRate,
	})
	if err != nil {
		s.logger.Errorw("Failed to initialize Sentry", "error", err)
		return err
	}

	s.logger.Infow("Sentry initialized successfully",
		"environment", s.cfg.Sentry.Environment,
		"sample_rate", s.cfg.Sentry.SampleRate,
	)
	return nil
}

// CaptureException captures an error in Sentry
func (s *Service) CaptureException(err error) {
	if !s.cfg.Sentry.Enabled || err == nil {
		return
	}
	sentry.CaptureException(err)
}

// Flush delivers buffered events before the process exits
func (s *Service) Flush() {
	if s.cfg.Sentry.Enabled {
		sentry.Flush(2 * time.Second)
	}
}
