package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/papersupply/backend/internal/application/quoting"
)

// QuoteExpirySchedulerConfig holds configuration for the expiry sweeper
type QuoteExpirySchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// CheckInterval is how often pending quotes are swept
	CheckInterval time.Duration

	// SweepTimeout is the maximum time for a single sweep
	SweepTimeout time.Duration
}

// DefaultQuoteExpirySchedulerConfig returns default configuration
func DefaultQuoteExpirySchedulerConfig() QuoteExpirySchedulerConfig {
	return QuoteExpirySchedulerConfig{
		Enabled:       true,
		CheckInterval: time.Hour,
		SweepTimeout:  time.Minute,
	}
}

// QuoteExpiryScheduler periodically expires pending quotes whose
// validity window has lapsed
type QuoteExpiryScheduler struct {
	service   *quoting.Service
	logger    *zap.Logger
	config    QuoteExpirySchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewQuoteExpiryScheduler creates a new quote expiry scheduler
func NewQuoteExpiryScheduler(
	service *quoting.Service,
	logger *zap.Logger,
	config QuoteExpirySchedulerConfig,
) *QuoteExpiryScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteExpiryScheduler{
		service: service,
		logger:  logger,
		config:  config,
	}
}

// Start begins the sweep loop. An initial sweep runs immediately so a
// restart does not leave stale quotes pending for a full interval.
func (s *QuoteExpiryScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("quote expiry scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("quote expiry scheduler started",
		zap.Duration("check_interval", s.config.CheckInterval))
	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep
func (s *QuoteExpiryScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("quote expiry scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *QuoteExpiryScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.sweep(ctx)

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *QuoteExpiryScheduler) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	result, err := s.service.ExpireOldQuotes(sweepCtx, time.Now().UTC())
	if err != nil {
		s.logger.Error("quote expiry sweep failed", zap.Error(err))
		return
	}
	if result.ExpiredCount > 0 {
		s.logger.Info("quote expiry sweep completed",
			zap.Int("expired", result.ExpiredCount))
	}
}
