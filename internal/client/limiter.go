package client

import (
	"context"
	"fmt"

	"quantora_agent/internal/pkg/metrics"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket rate limiter for one upstream provider.
// A nil *Limiter never blocks.
type Limiter struct {
	limiter  *rate.Limiter
	provider string
}

// NewLimiter creates a limiter allowing rps requests per second with the given burst.
// It returns nil when rps is not positive.
func NewLimiter(rps float64, burst int, provider string) *Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		provider: provider,
	}
}

// Wait blocks until the limiter allows one event, or ctx is done.
// It fails at once when the required delay would outlive ctx's deadline.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if l.limiter.Tokens() < 1 {
		metrics.UpstreamRateLimitWaits.WithLabelValues(l.provider).Inc()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// дедлайн наступит раньше, чем освободится токен
		return fmt.Errorf("%s: %w: %v", l.provider, context.DeadlineExceeded, err)
	}
	return nil
}
