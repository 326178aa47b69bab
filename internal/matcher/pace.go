package matcher

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between outbound catalog calls.
// External catalogs tolerate at most one request per second; the resolver
// serializes and delays rather than bursting.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given minimum interval between calls.
func NewPacer(minInterval time.Duration) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the next call is allowed or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
