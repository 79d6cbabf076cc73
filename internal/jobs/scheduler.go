// internal/jobs/scheduler.go
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// LastMissedPruner は古い「前回間違えた」記録を消せるもの (ReviewService)
type LastMissedPruner interface {
	PruneLastMissed(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Scheduler は定期実行するメンテナンス処理をまとめます
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    LastMissedPruner
	retention time.Duration
	pruneAt   string
	logger    *slog.Logger
}

// New は UTC で動くスケジューラを作ります。retentionDays 日より古い記録を pruneAt (HH:MM) に消す。
func New(pruner LastMissedPruner, retentionDays int, pruneAt string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		pruneAt:   pruneAt,
		logger:    logger.With("component", "jobs"),
	}
}

// Start はジョブを登録して非同期に動かします
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.pruneAt).Do(s.pruneLastMissed); err != nil {
		return fmt.Errorf("jobs: schedule prune at %q: %w", s.pruneAt, err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started", "prune_at", s.pruneAt, "retention", s.retention.String())
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) pruneLastMissed() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.pruner.PruneLastMissed(ctx, s.retention)
	if err != nil {
		s.logger.Error("Failed to prune last missed entries", "error", err)
		return
	}
	s.logger.Info("Pruned last missed entries", "deleted", n)
}
