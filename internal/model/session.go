// internal/model/session.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionMode は履歴上のセッション種別
type SessionMode string

const (
	SessionModeLeitner SessionMode = "LEITNER"
	SessionModeDrill   SessionMode = "DRILL"
)

// SessionSummary はセッション終了時に追記される記録 (更新しない)
type SessionSummary struct {
	SummaryID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"summary_id"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_summary_owner_created" json:"-"`
	Mode         SessionMode    `gorm:"type:varchar(16);not null" json:"mode"`
	TotalCount   int            `gorm:"not null" json:"total_count"`
	CorrectCount int            `gorm:"not null" json:"correct_count"`
	WrongCardIDs datatypes.JSON `json:"wrong_card_ids,omitempty"` // NULL = 記録なし
	CreatedAt    time.Time      `gorm:"index:idx_summary_owner_created" json:"created_at"`
}

func (SessionSummary) TableName() string {
	return "session_summaries"
}

// WrongIDs は間違えたカードIDの一覧。記録がない (古いクライアント等) 場合は false。
func (s *SessionSummary) WrongIDs() ([]string, bool) {
	if len(s.WrongCardIDs) == 0 || string(s.WrongCardIDs) == "null" {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal(s.WrongCardIDs, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// SetWrongIDs は一覧を JSON 列にセットします。nil なら NULL のまま。
func (s *SessionSummary) SetWrongIDs(ids []string) error {
	if ids == nil {
		s.WrongCardIDs = nil
		return nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.WrongCardIDs = datatypes.JSON(b)
	return nil
}

// セッション記録リクエストDTO
type PostSessionSummaryRequest struct {
	Mode         SessionMode `json:"mode" validate:"required,oneof=LEITNER DRILL"`
	TotalCount   *int        `json:"total_count" validate:"required,min=0"`
	CorrectCount *int        `json:"correct_count" validate:"required,min=0"`
	WrongCardIDs []string    `json:"wrong_card_ids,omitempty" validate:"omitempty,dive,uuid"`
}
