//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) (*model.Card, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardIDs []uuid.UUID, cardType model.CardType) ([]*model.Card, error)
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardType model.CardType) ([]*model.Card, error)
	Update(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID) error
	CheckFrontExists(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, front string, excludeCardID *uuid.UUID) (bool, error)
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

// withCardType は種別指定があれば絞り込みます (空なら全種類)
func withCardType(q *gorm.DB, column string, cardType model.CardType) *gorm.DB {
	if cardType == "" {
		return q
	}
	return q.Where(column+" = ?", cardType)
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Create(card).Error; err != nil {
		logger.Error("Error creating card in DB",
			"error", err,
			"owner_id", card.OwnerID.String(),
			"front", card.Front,
		)
		return fmt.Errorf("gormCardRepository.Create: %w", err)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, ownerID, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).Where("owner_id = ? AND card_id = ?", ownerID, cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByIDs(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardIDs []uuid.UUID, cardType model.CardType) ([]*model.Card, error) {
	if len(cardIDs) == 0 {
		return []*model.Card{}, nil
	}
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	q := db.WithContext(ctx).
		Preload("LearningProgress").
		Where("owner_id = ? AND card_id IN ?", ownerID, cardIDs)
	result := withCardType(q, "card_type", cardType).Order("created_at ASC").Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by IDs in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"count", len(cardIDs),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByIDs: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) FindByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, cardType model.CardType) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	q := db.WithContext(ctx).Where("owner_id = ?", ownerID)
	result := withCardType(q, "card_type", cardType).Order("created_at DESC").Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by owner in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByOwner: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) Update(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Card{}).Where("owner_id = ? AND card_id = ?", ownerID, cardID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating card in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, ownerID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("owner_id = ? AND card_id = ?", ownerID, cardID).Delete(&model.Card{})
	if result.Error != nil {
		logger.Error("Error deleting card in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) CheckFrontExists(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, front string, excludeCardID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Card{}).Where("owner_id = ? AND front = ?", ownerID, front)
	if excludeCardID != nil {
		query = query.Where("card_id != ?", *excludeCardID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Error checking front existence in DB",
			"error", err,
			"owner_id", ownerID.String(),
			"front", front,
		)
		return false, fmt.Errorf("gormCardRepository.CheckFrontExists: %w", err)
	}
	return count > 0, nil
}
