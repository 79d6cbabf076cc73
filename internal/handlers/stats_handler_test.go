package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/stats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsHandler_GetStats(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系", func(t *testing.T) {
		app := newMockedApp(t)
		next := "2026-03-11"
		in := 1
		app.stats.On("GetStats", mock.Anything, ownerID, model.CardTypeVocab).Return(&stats.Stats{
			TotalCards:    3,
			DueToday:      1,
			DueTomorrow:   2,
			NextDueDate:   &next,
			NextDueInDays: &in,
			TotalReviewed: 10,
			TotalCorrect:  8,
			Accuracy:      0.8,
		}, nil).Once()

		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/stats?card_type=vocab", OwnerID: ownerID})

		require.Equal(t, http.StatusOK, rr.Code)
		got := decodeBody[stats.Stats](t, rr.Body.Bytes())
		assert.Equal(t, 3, got.TotalCards)
		require.NotNil(t, got.NextDueDate)
		assert.Equal(t, next, *got.NextDueDate)
		assert.InDelta(t, 0.8, got.Accuracy, 1e-9)
	})

	t.Run("異常系: サービスのエラー", func(t *testing.T) {
		app := newMockedApp(t)
		app.stats.On("GetStats", mock.Anything, ownerID, model.CardType("")).Return(nil, errors.New("db error")).Once()

		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/stats", OwnerID: ownerID})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		verifyErrorResponse(t, rr.Body.Bytes(), "INTERNAL_SERVER_ERROR")
	})
}
