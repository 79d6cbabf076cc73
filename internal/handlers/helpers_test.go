// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_4_vocab_trainer/internal/config"
	"go_4_vocab_trainer/internal/handlers"
	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	OwnerID uuid.UUID // uuid.Nil ならヘッダーを付けない
	Headers map[string]string
}

// mockedApp はサービスをモックに差し替えたルーター一式
type mockedApp struct {
	handler http.Handler
	cards   *mocks.CardService
	reviews *mocks.ReviewService
	stats   *mocks.StatsService
}

func newMockedApp(t *testing.T) *mockedApp {
	t.Helper()
	app := &mockedApp{
		cards:   mocks.NewCardService(t),
		reviews: mocks.NewReviewService(t),
		stats:   mocks.NewStatsService(t),
	}
	app.handler = handlers.NewRouter(handlers.Handlers{
		Card:   handlers.NewCardHandler(app.cards, discardLogger),
		Review: handlers.NewReviewHandler(app.reviews, discardLogger),
		Stats:  handlers.NewStatsHandler(app.stats, discardLogger),
	}, handlers.RouterOptions{
		Logger: discardLogger,
		Auth:   handlers.AuthMiddleware(&config.Config{}, discardLogger),
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	})
	return app
}

func newRequest(t *testing.T, baseURL string, details httpRequestDetails) *http.Request {
	t.Helper()

	var body io.Reader
	if details.Body != nil {
		if s, ok := details.Body.(string); ok {
			body = strings.NewReader(s)
		} else {
			b, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			body = bytes.NewBuffer(b)
		}
	}

	req, err := http.NewRequest(details.Method, baseURL+details.Path, body)
	require.NoError(t, err, "Failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if details.OwnerID != uuid.Nil {
		req.Header.Set(middleware.OwnerHeader, details.OwnerID.String())
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}
	return req
}

// serve はルーターにリクエストを流し、レコーダーを返します
func serve(t *testing.T, h http.Handler, details httpRequestDetails) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(t, "", details))
	return rr
}

// sendRequest は実サーバーにリクエストを送信し、ステータスとボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	req := newRequest(t, server.URL, details)
	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBody))
	return respBody
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, body []byte, expectedCode string) model.ErrorDetail {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "Error response body not valid JSON: %s", string(body))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	return errResp.Error
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "raw body: %s", string(body))
	return v
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
func strPtr(s string) *string {
	return &s
}
