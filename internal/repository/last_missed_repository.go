//go:generate mockery --name LastMissedSet --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LastMissedSet は所有者ごとの「直近で間違えたカード」の集合です。
// Add/Remove は何度呼んでも結果が同じになる。
type LastMissedSet interface {
	Add(ctx context.Context, ownerID, cardID uuid.UUID) error
	Remove(ctx context.Context, ownerID, cardID uuid.UUID) error
	Members(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
	// PruneOlderThan は cutoff より前に追加されたものを削除し、件数を返します
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormLastMissedSet struct {
	db *gorm.DB
}

func NewGormLastMissedSet(db *gorm.DB) LastMissedSet {
	return &gormLastMissedSet{db: db}
}

func (s *gormLastMissedSet) Add(ctx context.Context, ownerID, cardID uuid.UUID) error {
	// 既にあれば追加時刻だけ更新する
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"created_at"}),
	}).Create(&model.LastMissed{OwnerID: ownerID, CardID: cardID, CreatedAt: time.Now().UTC()})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error adding last missed in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormLastMissedSet.Add: %w", result.Error)
	}
	return nil
}

func (s *gormLastMissedSet) Remove(ctx context.Context, ownerID, cardID uuid.UUID) error {
	err := s.db.WithContext(ctx).Where("owner_id = ? AND card_id = ?", ownerID, cardID).Delete(&model.LastMissed{}).Error
	if err != nil {
		return fmt.Errorf("gormLastMissedSet.Remove: %w", err)
	}
	return nil
}

func (s *gormLastMissedSet) Members(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&model.LastMissed{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Pluck("card_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("gormLastMissedSet.Members: %w", err)
	}
	return ids, nil
}

func (s *gormLastMissedSet) Clear(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.LastMissed{}).Error; err != nil {
		return fmt.Errorf("gormLastMissedSet.Clear: %w", err)
	}
	return nil
}

func (s *gormLastMissedSet) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&model.LastMissed{})
	if result.Error != nil {
		return 0, fmt.Errorf("gormLastMissedSet.PruneOlderThan: %w", result.Error)
	}
	return result.RowsAffected, nil
}
