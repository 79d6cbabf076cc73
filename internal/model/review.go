// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const (
	OwnerIDKey ContextKey = "ownerID"
)

// ReviewCardResponse は出題カードのレスポンスDTO
type ReviewCardResponse struct {
	CardID   uuid.UUID `json:"card_id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"` // 正解表示用に含める
	CardType CardType  `json:"card_type"`
	Level    int       `json:"level"`
	DueDate  string    `json:"due_date,omitempty"` // YYYY-MM-DD (UTC)
	ImageURL *string   `json:"image_url,omitempty"`
	AudioURL *string   `json:"audio_url,omitempty"`
}

// SubmitReviewRequest は採点結果送信リクエストのDTO
// current_level は出題時点のレベル。同じリクエストを再送しても結果が変わらない。
type SubmitReviewRequest struct {
	IsCorrect    *bool `json:"is_correct" validate:"required"`
	CurrentLevel *int  `json:"current_level,omitempty" validate:"omitempty,min=0"`
}

// GradeResponse は採点後のスケジュール
type GradeResponse struct {
	CardID  uuid.UUID `json:"card_id"`
	Level   int       `json:"level"`
	DueDate string    `json:"due_date"`
}

// ReviewCountResponse は復習対象数
type ReviewCountResponse struct {
	Count int64 `json:"count"`
}

// DateLayout はAPIで使う日付の形式
const DateLayout = "2006-01-02"

// FormatDate は UTC の暦日として整形します
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// CardToReviewResponse は Card と進捗からレスポンスを作ります (progress は nil 可)
func CardToReviewResponse(c *Card, p *LearningProgress) *ReviewCardResponse {
	resp := &ReviewCardResponse{
		CardID:   c.CardID,
		Front:    c.Front,
		Back:     c.Back,
		CardType: c.CardType,
		ImageURL: c.ImageURL,
		AudioURL: c.AudioURL,
	}
	if p != nil {
		resp.Level = p.Level
		resp.DueDate = FormatDate(p.DueDate)
	}
	return resp
}
