package polling

import (
	"context"
	"math"
	"time"

	"ospf6-agent/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Strategy decides how long to wait before the next polling cycle
type Strategy interface {
	// NextInterval returns the wait before the next cycle given the outcome of
	// the last one
	NextInterval(success bool) time.Duration
	// Reset returns the strategy to its initial state
	Reset()
}

// FixedStrategy polls at a constant interval regardless of outcome
type FixedStrategy struct {
	interval time.Duration
}

// NewFixedStrategy creates a new FixedStrategy
func NewFixedStrategy(interval time.Duration) *FixedStrategy {
	return &FixedStrategy{interval: interval}
}

func (s *FixedStrategy) NextInterval(bool) time.Duration { return s.interval }

func (s *FixedStrategy) Reset() {}

// ExponentialBackoffStrategy is a polling strategy implementing exponential backoff
type ExponentialBackoffStrategy struct {
	baseInterval   time.Duration
	maxInterval    time.Duration
	multiplier     float64
	currentBackoff int
	logger         *logrus.Logger
}

// NewExponentialBackoffStrategy creates a new ExponentialBackoffStrategy
func NewExponentialBackoffStrategy(
	baseInterval time.Duration,
	maxInterval time.Duration,
	multiplier float64,
	logger *logrus.Logger,
) *ExponentialBackoffStrategy {
	if multiplier <= 1 {
		multiplier = 2.0
	}

	return &ExponentialBackoffStrategy{
		baseInterval: baseInterval,
		maxInterval:  maxInterval,
		multiplier:   multiplier,
		logger:       logger,
	}
}

// NextInterval calculates the wait time until the next poll
func (s *ExponentialBackoffStrategy) NextInterval(success bool) time.Duration {
	if success {
		if s.currentBackoff > 0 {
			s.logger.Debug("Resetting backoff after success")
			s.currentBackoff = 0
			metrics.SetBackoffLevel(0)
		}
		return s.baseInterval
	}

	s.currentBackoff++
	metrics.SetBackoffLevel(float64(s.currentBackoff))

	backoffDuration := float64(s.baseInterval) * math.Pow(s.multiplier, float64(s.currentBackoff-1))
	nextInterval := time.Duration(backoffDuration)

	if nextInterval > s.maxInterval {
		nextInterval = s.maxInterval
	}

	s.logger.WithFields(logrus.Fields{
		"backoff_count": s.currentBackoff,
		"next_interval": nextInterval,
		"max_interval":  s.maxInterval,
	}).Debug("Exponential backoff calculated")

	return nextInterval
}

// Reset resets the backoff counter
func (s *ExponentialBackoffStrategy) Reset() {
	s.currentBackoff = 0
	metrics.SetBackoffLevel(0)
}

// PollingController runs a task repeatedly, spacing cycles by its strategy
type PollingController struct {
	strategy Strategy
	clock    clockwork.Clock
	logger   *logrus.Logger
}

// NewPollingController creates a new PollingController
func NewPollingController(strategy Strategy, clock clockwork.Clock, logger *logrus.Logger) *PollingController {
	return &PollingController{
		strategy: strategy,
		clock:    clock,
		logger:   logger,
	}
}

// Start runs the task once immediately and then on every tick until ctx is
// cancelled. Cycles never overlap.
func (c *PollingController) Start(ctx context.Context, task func(context.Context) error) error {
	interval := c.runCycle(ctx, task)

	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.Chan():
			ticker.Reset(c.runCycle(ctx, task))
		}
	}
}

func (c *PollingController) runCycle(ctx context.Context, task func(context.Context) error) time.Duration {
	start := c.clock.Now()
	err := task(ctx)
	metrics.RecordPollingCycle(c.clock.Since(start).Seconds())

	if err != nil {
		c.logger.WithError(err).Error("Polling task failed")
	}
	return c.strategy.NextInterval(err == nil)
}
