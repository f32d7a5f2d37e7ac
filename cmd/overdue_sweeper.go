package main

import (
	"context"
	"log"
	"time"

	"mariageBack/internal/services"
)

const (
	overdueSweepInterval = time.Hour
	overdueSweepTimeout  = 30 * time.Second
)

// startOverdueSweeper periodically flips sent, past-due, unpaid factures to
// overdue. The sweep is idempotent so overlap with the admin endpoint is
// harmless.
func startOverdueSweeper(ctx context.Context, svc *services.FactureService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(overdueSweepInterval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, overdueSweepTimeout)
			defer cancel()

			updated, err := svc.SyncOverdue(runCtx, time.Now())
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("overdue sweeper: %v", err)
				}
				return
			}
			if updated > 0 && infoLog != nil {
				infoLog.Printf("overdue sweeper: marked %d factures overdue", updated)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
