package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// limiter paces structuring calls so a session that reloads rapidly cannot
// hammer the API
type limiter struct {
	rl *rate.Limiter
}

func newLimiter(requestsPerMinute float64) *limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	return &limiter{rl: rate.NewLimiter(rate.Limit(requestsPerMinute/60), 1)}
}

func (l *limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}
