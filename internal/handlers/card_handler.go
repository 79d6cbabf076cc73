// internal/handlers/card_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/service"
	"go_4_vocab_trainer/internal/webutil"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard は新しいカードを作成するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()))

	var req model.PostCardRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	card, err := h.service.CreateCard(r.Context(), ownerID, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetCards はカードの一覧を取得するためのハンドラ
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardType, ok := cardTypeFromQuery(w, r, logger)
	if !ok {
		return
	}

	cards, err := h.service.ListCards(r.Context(), ownerID, cardType)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []*model.Card{}
	}
	logger.Info("Cards listed successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// GetCard は特定のカードを取得するためのハンドラ
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardID, ok := cardIDFromURL(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()), slog.String("card_id", cardID.String()))

	card, err := h.service.GetCard(r.Context(), ownerID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting card from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PutCard はカード全体を置き換えるためのハンドラ
func (h *CardHandler) PutCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCard"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardID, ok := cardIDFromURL(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()), slog.String("card_id", cardID.String()))

	var req model.PutCardRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	card, err := h.service.ReplaceCard(r.Context(), ownerID, cardID, &req)
	if err != nil {
		logger.Error("Error replacing card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Card replaced successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PatchCard はカードの一部を更新するためのハンドラ
func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCard"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardID, ok := cardIDFromURL(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()), slog.String("card_id", cardID.String()))

	var req model.PatchCardRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	if req.Front == nil && req.Back == nil && req.CardType == nil && req.ImageURL == nil && req.AudioURL == nil {
		logger.Warn("PatchCard called with no fields provided for update")
		appErr := model.NewAppError("VALIDATION_ERROR", "更新するフィールドが指定されていません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	card, err := h.service.PatchCard(r.Context(), ownerID, cardID, &req)
	if err != nil {
		logger.Error("Error patching card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Card patched successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// DeleteCard はカードを削除するためのハンドラ
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardID, ok := cardIDFromURL(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID.String()), slog.String("card_id", cardID.String()))

	if err := h.service.DeleteCard(r.Context(), ownerID, cardID); err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
