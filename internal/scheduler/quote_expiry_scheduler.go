package scheduler

import (
	"context"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/service"
	"github.com/4ndreams/GPS-sub000/internal/metrics"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultQuoteExpirySpec runs the sweep every day at 03:00.
const DefaultQuoteExpirySpec = "0 3 * * *"

// QuoteExpiryScheduler periodically moves stale quotes to expired.
type QuoteExpiryScheduler struct {
	cron         *cron.Cron
	spec         string
	quoteService service.QuoteService
	now          func() time.Time
}

// NewQuoteExpiryScheduler creates the scheduler. An empty spec falls back to
// DefaultQuoteExpirySpec; loc is the time zone the spec is read in.
func NewQuoteExpiryScheduler(quoteService service.QuoteService, spec string, loc *time.Location) *QuoteExpiryScheduler {
	if spec == "" {
		spec = DefaultQuoteExpirySpec
	}
	if loc == nil {
		loc = time.Local
	}
	return &QuoteExpiryScheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		spec:         spec,
		quoteService: quoteService,
		now:          time.Now,
	}
}

// Start registers the sweep and starts the cron runner.
func (s *QuoteExpiryScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce() }); err != nil {
		logger.Error("Failed to add cron job for quote expiry", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Quote expiry scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunOnce performs a single sweep and returns how many quotes expired.
func (s *QuoteExpiryScheduler) RunOnce() int64 {
	logger.Info("Starting scheduled quote expiry")

	n, err := s.quoteService.ExpireStale(s.now())
	if err != nil {
		logger.Error("Failed to expire stale quotes", err)
		return 0
	}

	metrics.QuotesExpired.Add(float64(n))
	logger.Info("Quote expiry finished", map[string]interface{}{
		"expired": n,
	})
	return n
}

// Stop stops the runner and waits for a running sweep, bounded by ctx.
func (s *QuoteExpiryScheduler) Stop(ctx context.Context) {
	logger.Info("Stopping quote expiry scheduler...")
	select {
	case <-s.cron.Stop().Done():
		logger.Info("Quote expiry scheduler stopped")
	case <-ctx.Done():
		logger.Warn("Quote expiry scheduler did not stop in time")
	}
}
