package app

import (
	"context"
	"log"
	"time"
)

const defaultPollInterval = 60 * time.Second

// StartPoller launches a background goroutine that loads the selected date
// immediately and then reloads it at a fixed cadence. It returns without
// waiting on the first load so the UI can render cached data while the
// network round-trip is still in flight.
func StartPoller(ctx context.Context, loader *Loader, interval time.Duration, selected func() string) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		if err := loader.Load(ctx, selected()); err != nil {
			log.Printf("initial refresh failed: %v", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := loader.Load(ctx, selected()); err != nil {
				log.Printf("poll refresh failed: %v", err)
			}
		}
	}()
}
