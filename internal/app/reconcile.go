package app

import (
	"context"
	"time"

	"service-courier-tracking/internal/logx"
)

type reconciler interface {
	Reconcile(ctx context.Context) error
}

// startReconcileLoop repairs courier availability every interval until ctx
// is done. A non-positive interval disables the loop.
func startReconcileLoop(ctx context.Context, logger logx.Logger, r reconciler, interval time.Duration) {
	if r == nil || interval <= 0 {
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
				if err := r.Reconcile(ctx); err != nil && ctx.Err() == nil {
					logger.Error("reconcile availability failed",
						logx.Event("reconcile_failed"),
						logx.Err(err),
					)
				}
			}
		}
	}()
}
