package provider

import (
	"context"
	"log/slog"
	"time"
)

// Detect probes the bridge endpoint the way a page probes the injected
// global. Absence is a first-class state, not an error: ok=false means
// the console runs in its "provider missing" mode.
func Detect(ctx context.Context, p *RemoteProvider) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.Request(probeCtx, MethodChainID, nil); err != nil {
		slog.Info("No wallet provider detected", "err", err)
		return false
	}
	return true
}
