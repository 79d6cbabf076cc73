//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_4_vocab_trainer/internal/leitner"
	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error
	FindByCardID(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) (*model.LearningProgress, error)
	// Upsert は (owner_id, card_id) をキーに作成または更新します
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error
	FindDueByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, today time.Time, cardType model.CardType, limit int) ([]*model.LearningProgress, error) // CardはPreloadする
	CountDueByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, today time.Time, cardType model.CardType) (int64, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardType model.CardType) ([]*model.LearningProgress, error) // CardはPreloadする
	DeleteByCardID(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID) error
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

// activeCards は論理削除されていないカードとJOINします
func activeCards(db *gorm.DB, cardType model.CardType) *gorm.DB {
	q := db.Joins("JOIN cards ON cards.card_id = learning_progress.card_id AND cards.deleted_at IS NULL").
		Preload("Card")
	return withCardType(q, "cards.card_type", cardType)
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error {
	if err := tx.WithContext(ctx).Create(progress).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error creating progress in DB", "error", err, "card_id", progress.CardID.String())
		return fmt.Errorf("gormProgressRepository.Create: %w", err)
	}
	return nil
}

func (r *gormProgressRepository) FindByCardID(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) (*model.LearningProgress, error) {
	var progress model.LearningProgress
	result := db.WithContext(ctx).Preload("Card").Where("owner_id = ? AND card_id = ?", ownerID, cardID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindByCardID: %w", result.Error)
	}
	// カードが論理削除されていれば進捗も無効とみなす (Preload は削除済みを読まない)
	if progress.Card == nil {
		return nil, model.ErrNotFound
	}
	return &progress, nil
}

func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.LearningProgress) error {
	if progress.ProgressID == uuid.Nil {
		progress.ProgressID = uuid.New()
	}
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "due_date", "last_seen_at", "updated_at"}),
	}).Create(progress)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error upserting progress in DB",
			"error", result.Error,
			"owner_id", progress.OwnerID.String(),
			"card_id", progress.CardID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindDueByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, today time.Time, cardType model.CardType, limit int) ([]*model.LearningProgress, error) {
	var progresses []*model.LearningProgress
	todayDate := leitner.StartOfDay(today)

	q := activeCards(db.WithContext(ctx), cardType).
		Where("learning_progress.owner_id = ? AND learning_progress.due_date <= ?", ownerID, todayDate).
		Order("learning_progress.due_date ASC, learning_progress.level ASC, learning_progress.card_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&progresses).Error; err != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindDueByOwner: %w", err)
	}
	return progresses, nil
}

func (r *gormProgressRepository) CountDueByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, today time.Time, cardType model.CardType) (int64, error) {
	var count int64
	q := db.WithContext(ctx).Model(&model.LearningProgress{}).
		Joins("JOIN cards ON cards.card_id = learning_progress.card_id AND cards.deleted_at IS NULL").
		Where("learning_progress.owner_id = ? AND learning_progress.due_date <= ?", ownerID, leitner.StartOfDay(today))
	if err := withCardType(q, "cards.card_type", cardType).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormProgressRepository.CountDueByOwner: %w", err)
	}
	return count, nil
}

func (r *gormProgressRepository) FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardType model.CardType) ([]*model.LearningProgress, error) {
	var progresses []*model.LearningProgress
	err := activeCards(db.WithContext(ctx), cardType).
		Where("learning_progress.owner_id = ?", ownerID).
		Order("learning_progress.due_date ASC, learning_progress.card_id ASC").
		Find(&progresses).Error
	if err != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindByOwner: %w", err)
	}
	return progresses, nil
}

func (r *gormProgressRepository) DeleteByCardID(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID) error {
	err := tx.WithContext(ctx).Where("owner_id = ? AND card_id = ?", ownerID, cardID).Delete(&model.LearningProgress{}).Error
	if err != nil {
		return fmt.Errorf("gormProgressRepository.DeleteByCardID: %w", err)
	}
	return nil
}
