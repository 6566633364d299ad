package app

import (
	"context"
	"time"
)

const defaultPollInterval = 30 * time.Second

// StartPoller launches a background goroutine that reloads the store at a
// fixed cadence until the context is cancelled. It performs an immediate
// first reload and returns right away.
func StartPoller(ctx context.Context, ctrl *Controller, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			ctrl.Reload(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
