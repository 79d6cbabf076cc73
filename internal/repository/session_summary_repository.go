//go:generate mockery --name SessionSummaryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionSummaryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, summary *model.SessionSummary) error
	// FindByOwnerBetween は from <= created_at < to の記録を古い順に返します
	FindByOwnerBetween(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*model.SessionSummary, error)
}

type gormSessionSummaryRepository struct{}

func NewGormSessionSummaryRepository() SessionSummaryRepository {
	return &gormSessionSummaryRepository{}
}

func (r *gormSessionSummaryRepository) Create(ctx context.Context, tx *gorm.DB, summary *model.SessionSummary) error {
	if summary.SummaryID == uuid.Nil {
		summary.SummaryID = uuid.New()
	}
	if err := tx.WithContext(ctx).Create(summary).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error creating session summary in DB",
			"error", err,
			"owner_id", summary.OwnerID.String(),
		)
		return fmt.Errorf("gormSessionSummaryRepository.Create: %w", err)
	}
	return nil
}

func (r *gormSessionSummaryRepository) FindByOwnerBetween(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, from, to time.Time) ([]*model.SessionSummary, error) {
	var summaries []*model.SessionSummary
	err := db.WithContext(ctx).
		Where("owner_id = ? AND created_at >= ? AND created_at < ?", ownerID, from.UTC(), to.UTC()).
		Order("created_at ASC").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("gormSessionSummaryRepository.FindByOwnerBetween: %w", err)
	}
	return summaries, nil
}
