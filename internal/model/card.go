// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardType はカードの種類
type CardType string

const (
	CardTypeVocab    CardType = "vocab"
	CardTypeSentence CardType = "sentence"
)

// Valid は空 (全種類) も許可します
func (t CardType) Valid() bool {
	return t == "" || t == CardTypeVocab || t == CardTypeSentence
}

// Card は表 (ドイツ語) と裏 (スワヒリ語) の対を表します
type Card struct {
	CardID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"card_id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Front     string         `gorm:"not null" json:"front"`
	Back      string         `gorm:"not null" json:"back"`
	CardType  CardType       `gorm:"type:varchar(16);not null;default:vocab;index" json:"card_type"`
	ImageURL  *string        `json:"image_url,omitempty"` // メディアは中身を解釈しない
	AudioURL  *string        `json:"audio_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	LearningProgress *LearningProgress `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO
type PostCardRequest struct {
	Front    string   `json:"front" validate:"required"`
	Back     string   `json:"back" validate:"required"`
	CardType CardType `json:"card_type" validate:"omitempty,oneof=vocab sentence"`
	ImageURL *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	AudioURL *string  `json:"audio_url,omitempty" validate:"omitempty,url"`
}

// カード更新（全体）リクエストDTO
type PutCardRequest struct {
	Front    string   `json:"front" validate:"required"`
	Back     string   `json:"back" validate:"required"`
	CardType CardType `json:"card_type" validate:"required,oneof=vocab sentence"`
	ImageURL *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	AudioURL *string  `json:"audio_url,omitempty" validate:"omitempty,url"`
}

// カード更新（部分）リクエストDTO
type PatchCardRequest struct {
	Front    *string   `json:"front,omitempty" validate:"omitempty,min=1"`
	Back     *string   `json:"back,omitempty" validate:"omitempty,min=1"`
	CardType *CardType `json:"card_type,omitempty" validate:"omitempty,oneof=vocab sentence"`
	ImageURL *string   `json:"image_url,omitempty" validate:"omitempty,url"`
	AudioURL *string   `json:"audio_url,omitempty" validate:"omitempty,url"`
}
