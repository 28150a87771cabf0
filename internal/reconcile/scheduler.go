package reconcile

import (
	"context"
	"log/slog"
	"time"
)

// Start runs an audit immediately and then on every interval tick until ctx is cancelled.
// Failed audits are logged and retried on the next tick; the previous report is kept.
func (a *Auditor) Start(ctx context.Context) error {
	ticker := time.NewTicker(a.opts.Interval)
	defer ticker.Stop()

	slog.Info("[Auditor] Starting drift auditor",
		"interval", a.opts.Interval,
		"batch_size", a.opts.BatchSize,
		"workers", a.opts.WorkerCount,
	)

	a.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			a.runOnce(ctx)
		case <-ctx.Done():
			slog.Info("[Auditor] Stopping (context cancelled)")
			return nil
		}
	}
}

func (a *Auditor) runOnce(ctx context.Context) {
	report, err := a.Audit(ctx)
	if err != nil {
		if ctx.Err() != nil {
			slog.Info("[Auditor] Audit interrupted by context cancellation")
			return
		}
		slog.Error("[Auditor] Audit failed", "error", err)
		return
	}
	for _, d := range report.Drifts {
		slog.Warn("[Auditor] Drift detected",
			"learner_id", d.LearnerID,
			"season", d.Season,
			"game_id", d.GameID,
			"kind", d.Kind,
			"log_count", d.LogCount,
			"aggregate_count", d.AggregateCount,
		)
	}
}
