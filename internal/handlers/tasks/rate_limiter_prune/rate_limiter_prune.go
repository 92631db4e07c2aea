package rate_limiter_prune

import (
	"context"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
)

type Limiter interface {
	Prune() int
	Len() int
}

// RateLimiterPrune forgets clients whose buckets have refilled.
type RateLimiterPrune struct {
	log      logger.Logger
	limiter  Limiter
	interval time.Duration
}

func NewRateLimiterPrune(log logger.Logger, limiter Limiter, interval time.Duration) *RateLimiterPrune {
	return &RateLimiterPrune{
		log:      log,
		limiter:  limiter,
		interval: interval,
	}
}

func (p *RateLimiterPrune) TTL() time.Duration {
	return p.interval
}

func (p *RateLimiterPrune) Do(_ context.Context) error {
	removed := p.limiter.Prune()

	if removed > 0 {
		p.log.With(
			logger.NewField("removed", removed),
			logger.NewField("tracked", p.limiter.Len()),
		).Info("rate limiter prune")
	}

	return nil
}

func (p *RateLimiterPrune) Info() string {
	return "rate limiter prune"
}
