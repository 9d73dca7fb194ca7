package app

import (
	"context"
	"log/slog"
	"time"
)

// maxBackoff caps the delay between refreshes after repeated failures.
const maxBackoff = 30 * time.Second

// Loader reloads the collection from the API.
type Loader interface {
	LoadAll(ctx context.Context) error
}

// StartRefresher launches a background goroutine that calls LoadAll every
// interval until ctx is cancelled. Failures back off exponentially and are
// logged; the collection keeps its last good state. It returns immediately
// and does nothing for a non-positive interval.
func StartRefresher(ctx context.Context, loader Loader, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 || loader == nil {
		return
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := loader.LoadAll(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				next := calculateBackoff(failures, interval)
				logger.Warn("auto refresh failed", "error", err, "failures", failures, "retry_in", next)
				timer.Reset(next)
				continue
			}
			if failures > 0 {
				logger.Info("auto refresh recovered", "failures", failures)
			}
			failures = 0
			timer.Reset(interval)
		}
	}()
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff (or base itself when base is already larger).
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}
