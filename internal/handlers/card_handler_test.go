package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"go_4_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCardHandler_PostCard(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		ownerID        uuid.UUID
		setupMock      func(app *mockedApp)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "正常系: 作成成功",
			body:    model.PostCardRequest{Front: "apple", Back: "りんご"},
			ownerID: ownerID,
			setupMock: func(app *mockedApp) {
				app.cards.On("CreateCard", mock.Anything, ownerID, mock.MatchedBy(func(req *model.PostCardRequest) bool {
					return req.Front == "apple" && req.Back == "りんご"
				})).Return(&model.Card{CardID: uuid.New(), Front: "apple", Back: "りんご", CardType: model.CardTypeVocab, CreatedAt: time.Now()}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: 所有者ヘッダーなし",
			body:           model.PostCardRequest{Front: "apple", Back: "りんご"},
			setupMock:      func(app *mockedApp) {},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "異常系: back が空",
			body:           map[string]string{"front": "apple"},
			ownerID:        ownerID,
			setupMock:      func(app *mockedApp) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: card_type が不正",
			body:           map[string]string{"front": "a", "back": "b", "card_type": "kanji"},
			ownerID:        ownerID,
			setupMock:      func(app *mockedApp) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 不正なJSON",
			body:           `{"front": "a",`,
			ownerID:        ownerID,
			setupMock:      func(app *mockedApp) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:           "異常系: 未知のフィールド",
			body:           `{"front": "a", "back": "b", "level": 3}`,
			ownerID:        ownerID,
			setupMock:      func(app *mockedApp) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:    "異常系: 重複",
			body:    model.PostCardRequest{Front: "apple", Back: "りんご"},
			ownerID: ownerID,
			setupMock: func(app *mockedApp) {
				app.cards.On("CreateCard", mock.Anything, ownerID, mock.AnythingOfType("*model.PostCardRequest")).
					Return(nil, model.NewAppError("CONFLICT", "既に存在します", "front", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "CONFLICT",
		},
		{
			name:    "異常系: 予期せぬエラー",
			body:    model.PostCardRequest{Front: "apple", Back: "りんご"},
			ownerID: ownerID,
			setupMock: func(app *mockedApp) {
				app.cards.On("CreateCard", mock.Anything, ownerID, mock.AnythingOfType("*model.PostCardRequest")).
					Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newMockedApp(t)
			tc.setupMock(app)

			rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/cards", Body: tc.body, OwnerID: tc.ownerID})

			assert.Equal(t, tc.expectedStatus, rr.Code, rr.Body.String())
			if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
				return
			}
			card := decodeBody[map[string]interface{}](t, rr.Body.Bytes())
			assert.Equal(t, "apple", card["front"])
			assert.NotContains(t, card, "owner_id")
		})
	}
}

func TestCardHandler_GetCards(t *testing.T) {
	ownerID := uuid.New()

	t.Run("正常系: 種別で絞り込み", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("ListCards", mock.Anything, ownerID, model.CardTypeSentence).
			Return([]*model.Card{{CardID: uuid.New(), Front: "I am", Back: "私は", CardType: model.CardTypeSentence}}, nil).Once()

		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/cards?card_type=sentence", OwnerID: ownerID})

		require.Equal(t, http.StatusOK, rr.Code)
		cards := decodeBody[[]model.Card](t, rr.Body.Bytes())
		require.Len(t, cards, 1)
		assert.Equal(t, model.CardTypeSentence, cards[0].CardType)
	})

	t.Run("正常系: 0件は空配列", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("ListCards", mock.Anything, ownerID, model.CardType("")).Return(nil, nil).Once()

		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/cards", OwnerID: ownerID})

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("異常系: card_type が不正", func(t *testing.T) {
		app := newMockedApp(t)
		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/cards?card_type=kanji", OwnerID: ownerID})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		detail := verifyErrorResponse(t, rr.Body.Bytes(), "INVALID_QUERY_PARAM")
		assert.Equal(t, "card_type", detail.Field)
	})
}

func TestCardHandler_GetCard(t *testing.T) {
	ownerID := uuid.New()
	cardID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setupMock      func(app *mockedApp)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系",
			path: "/api/v1/cards/" + cardID.String(),
			setupMock: func(app *mockedApp) {
				app.cards.On("GetCard", mock.Anything, ownerID, cardID).Return(&model.Card{CardID: cardID, Front: "a", Back: "b"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: 見つからない",
			path: "/api/v1/cards/" + cardID.String(),
			setupMock: func(app *mockedApp) {
				app.cards.On("GetCard", mock.Anything, ownerID, cardID).
					Return(nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "異常系: IDの形式が不正",
			path:           "/api/v1/cards/not-a-uuid",
			setupMock:      func(app *mockedApp) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_URL_PARAM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newMockedApp(t)
			tc.setupMock(app)

			rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodGet, Path: tc.path, OwnerID: ownerID})

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
				return
			}
			card := decodeBody[model.Card](t, rr.Body.Bytes())
			assert.Equal(t, cardID, card.CardID)
		})
	}
}

func TestCardHandler_PutCard(t *testing.T) {
	ownerID := uuid.New()
	cardID := uuid.New()
	path := "/api/v1/cards/" + cardID.String()

	t.Run("正常系: 全体を置き換え", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("ReplaceCard", mock.Anything, ownerID, cardID, mock.MatchedBy(func(req *model.PutCardRequest) bool {
			return req.Front == "pear" && req.CardType == model.CardTypeVocab && req.ImageURL == nil
		})).Return(&model.Card{CardID: cardID, Front: "pear", Back: "なし", CardType: model.CardTypeVocab}, nil).Once()

		rr := serve(t, app.handler, httpRequestDetails{
			Method: http.MethodPut, Path: path, OwnerID: ownerID,
			Body: model.PutCardRequest{Front: "pear", Back: "なし", CardType: model.CardTypeVocab},
		})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("異常系: card_type 必須", func(t *testing.T) {
		app := newMockedApp(t)
		rr := serve(t, app.handler, httpRequestDetails{
			Method: http.MethodPut, Path: path, OwnerID: ownerID,
			Body: map[string]string{"front": "pear", "back": "なし"},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		verifyErrorResponse(t, rr.Body.Bytes(), "VALIDATION_ERROR")
	})
}

func TestCardHandler_PatchCard(t *testing.T) {
	ownerID := uuid.New()
	cardID := uuid.New()
	path := "/api/v1/cards/" + cardID.String()

	t.Run("正常系: 一部だけ更新", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("PatchCard", mock.Anything, ownerID, cardID, mock.MatchedBy(func(req *model.PatchCardRequest) bool {
			return req.Back != nil && *req.Back == "梨" && req.Front == nil
		})).Return(&model.Card{CardID: cardID, Front: "pear", Back: "梨"}, nil).Once()

		rr := serve(t, app.handler, httpRequestDetails{
			Method: http.MethodPatch, Path: path, OwnerID: ownerID,
			Body: model.PatchCardRequest{Back: strPtr("梨")},
		})
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("異常系: フィールドなし", func(t *testing.T) {
		app := newMockedApp(t)
		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodPatch, Path: path, OwnerID: ownerID, Body: `{}`})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		verifyErrorResponse(t, rr.Body.Bytes(), "VALIDATION_ERROR")
	})

	t.Run("異常系: 重複", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("PatchCard", mock.Anything, ownerID, cardID, mock.AnythingOfType("*model.PatchCardRequest")).
			Return(nil, model.NewAppError("CONFLICT", "既に存在します", "front", model.ErrConflict)).Once()

		rr := serve(t, app.handler, httpRequestDetails{
			Method: http.MethodPatch, Path: path, OwnerID: ownerID,
			Body: model.PatchCardRequest{Front: strPtr("apple")},
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestCardHandler_DeleteCard(t *testing.T) {
	ownerID := uuid.New()
	cardID := uuid.New()
	path := "/api/v1/cards/" + cardID.String()

	t.Run("正常系", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("DeleteCard", mock.Anything, ownerID, cardID).Return(nil).Once()

		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodDelete, Path: path, OwnerID: ownerID})
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("異常系: 見つからない", func(t *testing.T) {
		app := newMockedApp(t)
		app.cards.On("DeleteCard", mock.Anything, ownerID, cardID).
			Return(model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)).Once()

		rr := serve(t, app.handler, httpRequestDetails{Method: http.MethodDelete, Path: path, OwnerID: ownerID})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
