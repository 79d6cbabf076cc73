// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// LearningProgress は (所有者, カード) ごとの復習スケジュールです
type LearningProgress struct {
	ProgressID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_owner_card"` // 複合ユニークインデックスの一部
	CardID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_owner_card"` // 複合ユニークインデックスの一部
	Level      int        `gorm:"not null;default:0"`                            // 0〜5
	DueDate    time.Time  `gorm:"not null;index"`                                // UTC 0時
	LastSeenAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	// DeletedAt は不要 (Cardの削除に追従)

	// 関連 (Preload用)
	Card *Card `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}

// LastMissed は直近のセッションで間違えたカード (所有者ごとの集合)
type LastMissed struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CardID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
}

func (LastMissed) TableName() string {
	return "last_missed"
}
