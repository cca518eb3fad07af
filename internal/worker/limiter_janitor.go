package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner discards state that has been idle for longer than the given duration.
type Pruner interface {
	Prune(idle time.Duration) int
}

// StartLimiterJanitor periodically prunes idle rate limit buckets until ctx is done.
func StartLimiterJanitor(ctx context.Context, pruner Pruner, interval, idle time.Duration, logger *zap.Logger) {
	if pruner == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				if removed := pruner.Prune(idle); removed > 0 {
					logger.Debug("pruned idle rate limit buckets", zap.Int("removed", removed))
				}
			}
		}
	}()
}
