package verify

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Pacer throttles outbound verification traffic.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Pacing policies accepted by NewPacer.
const (
	PacingDelay = "delay"
	PacingRate  = "rate"
	PacingNone  = "none"
)

// DelayPacer sleeps a fixed duration before every verification.
type DelayPacer struct {
	Delay time.Duration
}

// Wait blocks for the configured delay or until ctx is done.
func (p DelayPacer) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RatePacer admits one verification per interval across all callers, which
// keeps concurrent batches at the same request rate as sequential use.
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer creates a RatePacer with a burst of one.
func NewRatePacer(interval time.Duration) *RatePacer {
	return &RatePacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the limiter admits the next call.
func (p *RatePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NewPacer builds the configured pacing policy.
func NewPacer(policy string, interval time.Duration) (Pacer, error) {
	switch policy {
	case "", PacingDelay:
		return DelayPacer{Delay: interval}, nil
	case PacingRate:
		if interval <= 0 {
			return nil, eris.New("verify: rate pacing needs a positive interval")
		}
		return NewRatePacer(interval), nil
	case PacingNone:
		return DelayPacer{}, nil
	default:
		return nil, eris.Errorf("verify: unknown pacing policy %q", policy)
	}
}
