// internal/handlers/review_handler.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/service"
	"go_4_vocab_trainer/internal/webutil"

	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{service: s, logger: logger}
}

type cardListFunc func(r *http.Request, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error)

// respondCardList は出題カード一覧系の共通処理
func (h *ReviewHandler) respondCardList(w http.ResponseWriter, r *http.Request, name string, fetch cardListFunc) {
	logger := h.logger.With(slog.String("handler", name))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardType, ok := cardTypeFromQuery(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	cards, err := fetch(r, ownerID, cardType)
	if err != nil {
		logger.Error("Error getting cards from service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.ReviewCardResponse{}
	}
	logger.Info("Cards retrieved successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// GetDueCards は今日までに復習すべきカードを返します
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	h.respondCardList(w, r, "GetDueCards", func(r *http.Request, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error) {
		return h.service.GetDueCards(r.Context(), ownerID, cardType)
	})
}

// GetAllCards は期限に関係なく全カードを返します (ドリル用)
func (h *ReviewHandler) GetAllCards(w http.ResponseWriter, r *http.Request) {
	h.respondCardList(w, r, "GetAllCards", func(r *http.Request, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error) {
		return h.service.GetAllCards(r.Context(), ownerID, cardType)
	})
}

func (h *ReviewHandler) GetReviewCount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetReviewCount"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardType, ok := cardTypeFromQuery(w, r, logger)
	if !ok {
		return
	}

	count, err := h.service.GetReviewCount(r.Context(), ownerID, cardType)
	if err != nil {
		logger.Error("Error counting due cards", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.ReviewCountResponse{Count: count}, logger)
}

// SubmitReviewResult は採点結果を保存し、新しいスケジュールを返します
func (h *ReviewHandler) SubmitReviewResult(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitReviewResult"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardID, ok := cardIDFromURL(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()), slog.String("card_id", cardID.String()))

	var req model.SubmitReviewRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	resp, err := h.service.SubmitGrade(r.Context(), ownerID, cardID, *req.IsCorrect, req.CurrentLevel)
	if err != nil {
		logger.Error("Error submitting review result", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review result submitted", slog.Bool("is_correct", *req.IsCorrect), slog.Int("level", resp.Level))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetLastMissed は前回間違えたカードを返します
func (h *ReviewHandler) GetLastMissed(w http.ResponseWriter, r *http.Request) {
	h.respondCardList(w, r, "GetLastMissed", func(r *http.Request, ownerID uuid.UUID, cardType model.CardType) ([]*model.ReviewCardResponse, error) {
		return h.service.GetLastMissed(r.Context(), ownerID, cardType)
	})
}

// PutLastMissed はカードを「前回間違えた」に登録します (冪等)
func (h *ReviewHandler) PutLastMissed(w http.ResponseWriter, r *http.Request) {
	h.lastMissedMutation(w, r, "PutLastMissed", h.service.AddLastMissed)
}

// DeleteLastMissed はカードを「前回間違えた」から外します (冪等)
func (h *ReviewHandler) DeleteLastMissed(w http.ResponseWriter, r *http.Request) {
	h.lastMissedMutation(w, r, "DeleteLastMissed", h.service.RemoveLastMissed)
}

func (h *ReviewHandler) lastMissedMutation(w http.ResponseWriter, r *http.Request, name string, op func(ctx context.Context, ownerID, cardID uuid.UUID) error) {
	logger := h.logger.With(slog.String("handler", name))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardID, ok := cardIDFromURL(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()), slog.String("card_id", cardID.String()))

	if err := op(r.Context(), ownerID, cardID); err != nil {
		logger.Error("Error updating last missed set", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearLastMissed は「前回間違えた」を空にします
func (h *ReviewHandler) ClearLastMissed(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClearLastMissed"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	if err := h.service.ClearLastMissed(r.Context(), ownerID); err != nil {
		logger.Error("Error clearing last missed set", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Last missed cleared", slog.String("owner_id", ownerID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// PostSession はセッション終了時の記録を追記します
func (h *ReviewHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSession"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	var req model.PostSessionSummaryRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	summary, err := h.service.RecordSessionSummary(r.Context(), ownerID, &req)
	if err != nil {
		logger.Error("Error recording session summary", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, summary, logger)
}
