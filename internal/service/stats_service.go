//go:generate mockery --name StatsService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"go_4_vocab_trainer/internal/leitner"
	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/repository"
	"go_4_vocab_trainer/internal/stats"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type StatsService interface {
	GetStats(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) (*stats.Stats, error)
}

type statsService struct {
	db          *gorm.DB
	progRepo    repository.ProgressRepository
	summaryRepo repository.SessionSummaryRepository
}

func NewStatsService(db *gorm.DB, progRepo repository.ProgressRepository, summaryRepo repository.SessionSummaryRepository) StatsService {
	return &statsService{db: db, progRepo: progRepo, summaryRepo: summaryRepo}
}

// GetStats は進捗とセッション記録を並行に読み込んで集計します。
// セッション記録はカード種別を持たないので cardType は進捗にだけ効く。
func (s *statsService) GetStats(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) (*stats.Stats, error) {
	ctx, span := tracer.Start(ctx, "StatsService.GetStats", trace.WithAttributes(attribute.String("card_type", string(cardType))))
	defer span.End()
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_type", cardType)

	now := timeNow()
	var (
		progresses []*model.LearningProgress
		summaries  []*model.SessionSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		progresses, err = s.progRepo.FindByOwner(gctx, s.db, ownerID, cardType)
		return err
	})
	g.Go(func() error {
		var err error
		summaries, err = s.summaryRepo.FindByOwnerBetween(gctx, s.db, ownerID, stats.WindowStart(now), leitner.Tomorrow(now))
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to load stats sources", "error", err)
		span.RecordError(err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", model.ErrInternalServer)
	}

	entries := make([]stats.Entry, 0, len(progresses))
	for _, p := range progresses {
		entries = append(entries, stats.Entry{Level: p.Level, DueDate: p.DueDate})
	}
	records := make([]stats.SessionRecord, 0, len(summaries))
	for _, sm := range summaries {
		rec := stats.SessionRecord{CreatedAt: sm.CreatedAt, TotalCount: sm.TotalCount, CorrectCount: sm.CorrectCount}
		if ids, ok := sm.WrongIDs(); ok {
			rec.WrongIDs = ids
			if rec.WrongIDs == nil {
				rec.WrongIDs = []string{}
			}
		}
		records = append(records, rec)
	}

	st := stats.Aggregate(entries, records, now)
	logger.Info("Stats aggregated", "cards", st.TotalCards, "reviewed", st.TotalReviewed)
	return &st, nil
}
