package handlers

import (
	"log/slog"
	"net/http"

	"go_4_vocab_trainer/internal/service"
	"go_4_vocab_trainer/internal/webutil"
)

type StatsHandler struct {
	service service.StatsService
	logger  *slog.Logger
}

func NewStatsHandler(s service.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{service: s, logger: logger}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	ownerID, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}
	cardType, ok := cardTypeFromQuery(w, r, logger)
	if !ok {
		return
	}

	st, err := h.service.GetStats(r.Context(), ownerID, cardType)
	if err != nil {
		logger.Error("Error getting stats", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, st, logger)
}
