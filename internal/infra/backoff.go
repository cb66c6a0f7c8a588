package infra

import (
	"time"
)

// Retry pacing shared by the bridge websocket reconnect loop and the
// receipt poller. The cap keeps a dead bridge from pushing the next
// attempt out past a minute.
const (
	baseDelay = 1 * time.Second
	maxDelay  = 60 * time.Second
)

// CalculateBackoff returns baseDelay * 2^retryCount, capped at maxDelay.
// Negative counts get the base delay.
func CalculateBackoff(retryCount int) time.Duration {
	if retryCount < 0 {
		return baseDelay
	}

	// The shift would overflow time.Duration long before the cap
	// matters, so bail out early for large counts.
	if retryCount > 30 {
		return maxDelay
	}

	backoff := baseDelay * time.Duration(1<<retryCount)
	if backoff > maxDelay {
		return maxDelay
	}
	return backoff
}
