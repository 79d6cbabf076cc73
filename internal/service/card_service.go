//go:generate mockery --name CardService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_4_vocab_trainer/internal/leitner"
	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardService interface {
	CreateCard(ctx context.Context, ownerID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, ownerID, cardID uuid.UUID) (*model.Card, error)
	ListCards(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.Card, error)
	ReplaceCard(ctx context.Context, ownerID, cardID uuid.UUID, req *model.PutCardRequest) (*model.Card, error)
	PatchCard(ctx context.Context, ownerID, cardID uuid.UUID, req *model.PatchCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error
}

type cardService struct {
	db         *gorm.DB // トランザクション用にDB接続を持つ
	cardRepo   repository.CardRepository
	progRepo   repository.ProgressRepository
	lastMissed repository.LastMissedSet
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository, progRepo repository.ProgressRepository, lastMissed repository.LastMissedSet) CardService {
	return &cardService{
		db:         db,
		cardRepo:   cardRepo,
		progRepo:   progRepo,
		lastMissed: lastMissed,
	}
}

var (
	errFrontConflict = model.NewAppError("CONFLICT", "同じ表面のカードが既に存在します。", "front", model.ErrConflict)
	errCardNotFound  = model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
	errCardInternal  = model.NewAppError("INTERNAL_SERVER_ERROR", "カードの処理中にエラーが発生しました。", "", model.ErrInternalServer)
)

// passThrough はアプリケーションエラーならそのまま返し、それ以外は内部エラーにします
func passThrough(err error) error {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, model.ErrNotFound) {
		return errCardNotFound
	}
	return errCardInternal
}

func (s *cardService) CreateCard(ctx context.Context, ownerID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	cardType := req.CardType
	if cardType == "" {
		cardType = model.CardTypeVocab
	}

	var created *model.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 重複チェック
		exists, err := s.cardRepo.CheckFrontExists(ctx, tx, ownerID, req.Front, nil)
		if err != nil {
			logger.Error("Error checking front existence in transaction", "error", err)
			return errCardInternal
		}
		if exists {
			return errFrontConflict
		}

		// 2. カードを作成
		card := &model.Card{
			CardID:   uuid.New(),
			OwnerID:  ownerID,
			Front:    req.Front,
			Back:     req.Back,
			CardType: cardType,
			ImageURL: req.ImageURL,
			AudioURL: req.AudioURL,
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			logger.Error("Error creating card in transaction", "error", err)
			return errCardInternal
		}

		// 3. 学習進捗を作成 (レベル0、今日から出題)
		now := timeNow().UTC()
		progress := &model.LearningProgress{
			ProgressID: uuid.New(),
			OwnerID:    ownerID,
			CardID:     card.CardID,
			Level:      0,
			DueDate:    leitner.StartOfDay(now),
		}
		if err := s.progRepo.Create(ctx, tx, progress); err != nil {
			logger.Error("Error creating progress in transaction", "error", err)
			return errCardInternal
		}
		card.LearningProgress = progress

		created = card
		return nil // コミット
	})
	if err != nil {
		return nil, passThrough(err)
	}

	logger.Info("Card created", "card_id", created.CardID, "card_type", created.CardType)
	return created, nil
}

func (s *cardService) GetCard(ctx context.Context, ownerID, cardID uuid.UUID) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, s.db, ownerID, cardID)
	if err != nil {
		return nil, passThrough(err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.Card, error) {
	cards, err := s.cardRepo.FindByOwner(ctx, s.db, ownerID, cardType)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing cards", "error", err, "owner_id", ownerID)
		return nil, errCardInternal
	}
	return cards, nil
}

func (s *cardService) ReplaceCard(ctx context.Context, ownerID, cardID uuid.UUID, req *model.PutCardRequest) (*model.Card, error) {
	updates := map[string]interface{}{
		"back":      req.Back,
		"card_type": req.CardType,
		"image_url": req.ImageURL, // nil なら NULL に戻す
		"audio_url": req.AudioURL,
	}
	return s.update(ctx, ownerID, cardID, &req.Front, updates)
}

func (s *cardService) PatchCard(ctx context.Context, ownerID, cardID uuid.UUID, req *model.PatchCardRequest) (*model.Card, error) {
	updates := make(map[string]interface{})
	if req.Back != nil {
		updates["back"] = *req.Back
	}
	if req.CardType != nil {
		updates["card_type"] = *req.CardType
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.AudioURL != nil {
		updates["audio_url"] = *req.AudioURL
	}
	return s.update(ctx, ownerID, cardID, req.Front, updates)
}

// update は front の重複を確認してから更新し、更新後のカードを返します
func (s *cardService) update(ctx context.Context, ownerID, cardID uuid.UUID, front *string, updates map[string]interface{}) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_id", cardID)

	var updated *model.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 存在確認
		card, err := s.cardRepo.FindByID(ctx, tx, ownerID, cardID)
		if err != nil {
			return err
		}

		// 2. 表面が変わる場合だけ重複チェック
		if front != nil && *front != card.Front {
			exists, err := s.cardRepo.CheckFrontExists(ctx, tx, ownerID, *front, &cardID)
			if err != nil {
				logger.Error("Error checking front existence during update", "error", err)
				return errCardInternal
			}
			if exists {
				return errFrontConflict
			}
			updates["front"] = *front
		}

		// 3. 更新実行
		if len(updates) > 0 {
			if err := s.cardRepo.Update(ctx, tx, ownerID, cardID, updates); err != nil {
				logger.Error("Error updating card in transaction", "error", err)
				return err
			}
		}

		updated, err = s.cardRepo.FindByID(ctx, tx, ownerID, cardID)
		if err != nil {
			logger.Error("Error fetching updated card in transaction", "error", err)
			return errCardInternal
		}
		return nil
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return updated, nil
}

// DeleteCard はカードを論理削除し、進捗と「前回間違えた」からも外します
func (s *cardService) DeleteCard(ctx context.Context, ownerID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_id", cardID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.Delete(ctx, tx, ownerID, cardID); err != nil {
			return err
		}
		if err := s.progRepo.DeleteByCardID(ctx, tx, ownerID, cardID); err != nil {
			logger.Error("Error deleting progress for card", "error", err)
			return errCardInternal
		}
		return nil
	})
	if err != nil {
		return passThrough(err)
	}

	// 集合は redis の場合もあるのでトランザクションの外で消す。失敗しても取得時に除外される。
	if err := s.lastMissed.Remove(ctx, ownerID, cardID); err != nil {
		logger.Warn("Failed to remove deleted card from last missed", "error", err)
	}
	logger.Info("Card deleted")
	return nil
}
