package handlers

import (
	"log/slog"
	"net/http"

	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ownerFromRequest はコンテキストの所有者IDを返します。なければエラーレスポンスを書いて false。
func ownerFromRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	ownerID, err := middleware.GetOwnerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return ownerID, true
}

func cardIDFromURL(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	cardIDStr := chi.URLParam(r, "card_id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("card_id_str", cardIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "card_idの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return cardID, true
}

// cardTypeFromQuery は ?card_type= を読みます (省略時は全種類)
func cardTypeFromQuery(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (model.CardType, bool) {
	cardType := model.CardType(r.URL.Query().Get("card_type"))
	if !cardType.Valid() {
		logger.Warn("Invalid card_type query", slog.String("card_type", string(cardType)))
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "card_typeは[vocab sentence]のいずれかを指定してください。", "card_type", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return "", false
	}
	return cardType, true
}

// decodeAndValidate はボディのデコードとバリデーションを行います
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}
