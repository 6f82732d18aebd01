package download

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the pause between consecutive videos
const DefaultDelay = 5 * time.Second

// Pacer spaces consecutive videos: a token is granted at most once per
// delay, and a video that outlasted the window still leaves a full delay
// after it finishes.
type Pacer struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewPacer creates a pacer; a non-positive delay disables pacing
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		delay:   delay,
	}
}

// Wait blocks until the next video may start or ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Mark records that a video finished, draining an accrued token
func (p *Pacer) Mark() {
	p.limiter.Allow()
}

// Delay returns the configured pause
func (p *Pacer) Delay() time.Duration {
	return p.delay
}
