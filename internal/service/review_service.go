//go:generate mockery --name ReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"go_4_vocab_trainer/internal/config"
	"go_4_vocab_trainer/internal/leitner"
	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// timeNow はテストで差し替える
var timeNow = time.Now

var tracer = otel.Tracer("go_4_vocab_trainer/internal/service")

type ReviewService interface {
	GetDueCards(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error)
	GetAllCards(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error)
	GetReviewCount(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) (int64, error)
	// SubmitGrade は採点結果から次のレベルと復習日を決めて保存します。
	// currentLevel が指定されればそれを基準にする (再送しても同じ結果になる)。
	SubmitGrade(ctx context.Context, ownerID, cardID uuid.UUID, isCorrect bool, currentLevel *int) (*model.GradeResponse, error)

	GetLastMissed(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error)
	AddLastMissed(ctx context.Context, ownerID, cardID uuid.UUID) error
	RemoveLastMissed(ctx context.Context, ownerID, cardID uuid.UUID) error
	ClearLastMissed(ctx context.Context, ownerID uuid.UUID) error
	PruneLastMissed(ctx context.Context, olderThan time.Duration) (int64, error)

	RecordSessionSummary(ctx context.Context, ownerID uuid.UUID, req *model.PostSessionSummaryRequest) (*model.SessionSummary, error)
}

type reviewService struct {
	db          *gorm.DB
	cardRepo    repository.CardRepository
	progRepo    repository.ProgressRepository
	lastMissed  repository.LastMissedSet
	summaryRepo repository.SessionSummaryRepository
	cfg         *config.Config
}

func NewReviewService(
	db *gorm.DB,
	cardRepo repository.CardRepository,
	progRepo repository.ProgressRepository,
	lastMissed repository.LastMissedSet,
	summaryRepo repository.SessionSummaryRepository,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		db:          db,
		cardRepo:    cardRepo,
		progRepo:    progRepo,
		lastMissed:  lastMissed,
		summaryRepo: summaryRepo,
		cfg:         cfg,
	}
}

func progressesToResponses(ctx context.Context, progresses []*model.LearningProgress) []*model.ReviewCardResponse {
	logger := middleware.GetLogger(ctx)
	responses := make([]*model.ReviewCardResponse, 0, len(progresses))
	for _, p := range progresses {
		if p.Card == nil {
			logger.Warn("Found progress with nil Card, skipping", "progress_id", p.ProgressID)
			continue
		}
		responses = append(responses, model.CardToReviewResponse(p.Card, p))
	}
	return responses
}

func (s *reviewService) GetDueCards(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_type", cardType)

	progresses, err := s.progRepo.FindDueByOwner(ctx, s.db, ownerID, timeNow(), cardType, s.cfg.App.ReviewLimit)
	if err != nil {
		logger.Error("Failed to find due cards from repository", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習カードの取得に失敗しました。", "", model.ErrInternalServer)
	}

	responses := progressesToResponses(ctx, progresses)
	logger.Info("Successfully retrieved due cards", "count", len(responses))
	return responses, nil
}

func (s *reviewService) GetAllCards(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_type", cardType)

	progresses, err := s.progRepo.FindByOwner(ctx, s.db, ownerID, cardType)
	if err != nil {
		logger.Error("Failed to find cards for drill", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", model.ErrInternalServer)
	}

	responses := progressesToResponses(ctx, progresses)
	logger.Info("Successfully retrieved all cards", "count", len(responses))
	return responses, nil
}

func (s *reviewService) GetReviewCount(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) (int64, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	count, err := s.progRepo.CountDueByOwner(ctx, s.db, ownerID, timeNow(), cardType)
	if err != nil {
		logger.Error("Failed to count due cards", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "カード数の取得に失敗しました。", "", model.ErrInternalServer)
	}
	return count, nil
}

func (s *reviewService) SubmitGrade(ctx context.Context, ownerID, cardID uuid.UUID, isCorrect bool, currentLevel *int) (*model.GradeResponse, error) {
	ctx, span := tracer.Start(ctx, "ReviewService.SubmitGrade", trace.WithAttributes(
		attribute.String("card_id", cardID.String()),
		attribute.Bool("correct", isCorrect),
	))
	defer span.End()
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_id", cardID)

	var resp *model.GradeResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.cardRepo.FindByID(ctx, tx, ownerID, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
			}
			logger.Error("Error finding card in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの確認中にエラーが発生しました。", "", model.ErrInternalServer)
		}

		progress, err := s.progRepo.FindByCardID(ctx, tx, ownerID, cardID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", model.ErrInternalServer)
		}

		base := 0
		if progress != nil {
			base = progress.Level
		}
		if currentLevel != nil {
			base = *currentLevel
		}

		now := timeNow().UTC()
		outcome := leitner.Grade(base, isCorrect, now)
		next := &model.LearningProgress{
			OwnerID:    ownerID,
			CardID:     cardID,
			Level:      outcome.Level,
			DueDate:    outcome.DueDate,
			LastSeenAt: &now,
		}
		if err := s.progRepo.Upsert(ctx, tx, next); err != nil {
			logger.Error("Error upserting progress", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の保存に失敗しました。", "", model.ErrInternalServer)
		}

		logger.Info("Grade recorded", "is_correct", isCorrect, "from_level", base, "level", outcome.Level, "due_date", model.FormatDate(outcome.DueDate))
		resp = &model.GradeResponse{CardID: cardID, Level: outcome.Level, DueDate: model.FormatDate(outcome.DueDate)}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade not saved")
		return nil, err
	}
	span.SetAttributes(attribute.Int("level", resp.Level))
	return resp, nil
}

func (s *reviewService) GetLastMissed(ctx context.Context, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_type", cardType)

	ids, err := s.lastMissed.Members(ctx, ownerID)
	if err != nil {
		logger.Error("Failed to load last missed set", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "前回間違えたカードの取得に失敗しました。", "", model.ErrInternalServer)
	}
	cards, err := s.cardRepo.FindByIDs(ctx, s.db, ownerID, ids, cardType)
	if err != nil {
		logger.Error("Failed to load last missed cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "前回間違えたカードの取得に失敗しました。", "", model.ErrInternalServer)
	}

	// 集合の順 (新しく間違えた順) に並べる。削除済みのカードはここで落ちる。
	byID := make(map[uuid.UUID]*model.Card, len(cards))
	for _, c := range cards {
		byID[c.CardID] = c
	}
	responses := make([]*model.ReviewCardResponse, 0, len(cards))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			responses = append(responses, model.CardToReviewResponse(c, c.LearningProgress))
		}
	}
	logger.Info("Successfully retrieved last missed cards", "count", len(responses))
	return responses, nil
}

func (s *reviewService) AddLastMissed(ctx context.Context, ownerID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID, "card_id", cardID)

	if _, err := s.cardRepo.FindByID(ctx, s.db, ownerID, cardID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの確認中にエラーが発生しました。", "", model.ErrInternalServer)
	}
	if err := s.lastMissed.Add(ctx, ownerID, cardID); err != nil {
		logger.Error("Failed to add last missed", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "前回間違えたカードの登録に失敗しました。", "", model.ErrInternalServer)
	}
	return nil
}

func (s *reviewService) RemoveLastMissed(ctx context.Context, ownerID, cardID uuid.UUID) error {
	if err := s.lastMissed.Remove(ctx, ownerID, cardID); err != nil {
		middleware.GetLogger(ctx).Error("Failed to remove last missed", "error", err, "owner_id", ownerID, "card_id", cardID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "前回間違えたカードの解除に失敗しました。", "", model.ErrInternalServer)
	}
	return nil
}

func (s *reviewService) ClearLastMissed(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.lastMissed.Clear(ctx, ownerID); err != nil {
		middleware.GetLogger(ctx).Error("Failed to clear last missed", "error", err, "owner_id", ownerID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "前回間違えたカードの削除に失敗しました。", "", model.ErrInternalServer)
	}
	return nil
}

func (s *reviewService) PruneLastMissed(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := timeNow().Add(-olderThan)
	n, err := s.lastMissed.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	middleware.GetLogger(ctx).Info("Pruned last missed entries", "count", n, "cutoff", cutoff.UTC())
	return n, nil
}

func (s *reviewService) RecordSessionSummary(ctx context.Context, ownerID uuid.UUID, req *model.PostSessionSummaryRequest) (*model.SessionSummary, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	total, correct := *req.TotalCount, *req.CorrectCount
	if correct > total {
		return nil, model.NewAppError("VALIDATION_ERROR", "正解数は出題数以下で入力してください。", "correct_count", model.ErrInvalidInput)
	}
	if len(req.WrongCardIDs) > total {
		return nil, model.NewAppError("VALIDATION_ERROR", "不正解カードの数が出題数を超えています。", "wrong_card_ids", model.ErrInvalidInput)
	}

	summary := &model.SessionSummary{
		SummaryID:    uuid.New(),
		OwnerID:      ownerID,
		Mode:         req.Mode,
		TotalCount:   total,
		CorrectCount: correct,
		CreatedAt:    timeNow().UTC(),
	}
	if err := summary.SetWrongIDs(req.WrongCardIDs); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッション記録の作成に失敗しました。", "", model.ErrInternalServer)
	}
	if err := s.summaryRepo.Create(ctx, s.db, summary); err != nil {
		logger.Error("Failed to create session summary", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッション記録の保存に失敗しました。", "", model.ErrInternalServer)
	}
	logger.Info("Session summary recorded", "mode", summary.Mode, "total", total, "correct", correct)
	return summary, nil
}
