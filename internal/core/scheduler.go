package core

// scheduler.go holds maintenance jobs meant to run on a schedule.
//
// Currently implements audit log retention: entries older than the
// configured number of days are deleted. Jobs log progress and errors but
// never stop the application.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultAuditRetentionDays is used when RetentionConfig leaves it unset.
const DefaultAuditRetentionDays = 365

// RetentionConfig holds configuration for maintenance jobs.
type RetentionConfig struct {
	AuditRetentionDays int // Days to keep audit entries (default: 365)
}

// RunMaintenance performs one maintenance cycle.
func (s *Service) RunMaintenance(ctx context.Context, cfg RetentionConfig) {
	slog.Debug("maintenance job started")
	start := time.Now()

	days := cfg.AuditRetentionDays
	if days <= 0 {
		days = DefaultAuditRetentionDays
	}

	pruned, err := s.PruneAuditLog(ctx, days)
	if err != nil {
		slog.Error("audit prune failed", "error", err)
	} else {
		slog.Info("pruned audit log entries",
			"entries_pruned", pruned,
			"retention_days", days,
		)
	}

	slog.Info("maintenance job completed", "duration_ms", time.Since(start).Milliseconds())
}

// PruneAuditLog deletes audit entries older than daysToKeep days and
// returns how many were removed.
func (s *Service) PruneAuditLog(ctx context.Context, daysToKeep int) (int, error) {
	def, ok := Get(KeyAuditLog)
	if !ok {
		return 0, nil
	}

	rows, err := s.store.List(ctx, def)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().AddDate(0, 0, -daysToKeep)
	pruned := 0
	for _, r := range rows {
		created := r.Time(ColumnCreatedAt)
		if created.IsZero() || !created.Before(cutoff) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return pruned, err
		}
		if err := s.store.Delete(ctx, def, r.ID()); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
