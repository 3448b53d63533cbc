package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run invokes a reconciliation pass on a fixed interval until the
// context is cancelled. A failed pass leaves no partial state and is
// simply retried at the next tick.
func Run(
	ctx context.Context,
	reconciler *Reconciler,
	lease *Lease,
	interval time.Duration,
	logger *zap.Logger,
) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	log := logger.Named("scheduler.runner")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("activation scheduler started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("activation scheduler stopped")
			return
		case <-ticker.C:
			runOnce(ctx, reconciler, lease, log)
		}
	}
}

func runOnce(ctx context.Context, reconciler *Reconciler, lease *Lease, log *zap.Logger) {
	token, acquired, err := lease.Acquire(ctx)
	if err != nil {
		log.Error("acquire scheduler lease failed", zap.Error(err))
		return
	}
	if !acquired {
		log.Info("another scheduler instance holds the lease, skipping pass")
		return
	}
	defer func() {
		if err := lease.Release(ctx, token); err != nil {
			log.Warn("release scheduler lease failed", zap.Error(err))
		}
	}()

	result, err := reconciler.Reconcile(ctx, time.Now().UTC())
	if err != nil {
		log.Error("reconciliation pass failed", zap.Error(err))
		return
	}

	if result.Activated > 0 || result.Disabled > 0 {
		log.Info("hike status updates applied",
			zap.Int("activated", result.Activated),
			zap.Int("disabled", result.Disabled),
		)
	}
}
