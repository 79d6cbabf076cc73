//go:build integration

// trainer_api_integration_test.go
package handlers_test

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go_4_vocab_trainer/internal/config"
	"go_4_vocab_trainer/internal/handlers"
	"go_4_vocab_trainer/internal/leitner"
	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/repository"
	"go_4_vocab_trainer/internal/service"
	"go_4_vocab_trainer/internal/stats"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB
var testLogger *slog.Logger

const dbContainerName = "test_postgres_trainer_api"

func TestMain(m *testing.M) {
	testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(testLogger)

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       dbContainerName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=vocab_trainer",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dsn := fmt.Sprintf("postgres://user:secret@%s:%s/vocab_trainer?sslmode=disable", dbHost, resource.GetPort("5432/tcp"))
	testLogger.Info("PostgreSQL container started", slog.String("container_name", dbContainerName), slog.String("dsn", dsn))

	if err = pool.Retry(func() error {
		var errRetry error
		testDB, errRetry = repository.NewDB(config.DatabaseConfig{Driver: "postgres", URL: dsn}, testLogger)
		if errRetry != nil {
			testLogger.Warn("Retry: DB connection attempt failed.", slog.Any("error", errRetry))
		}
		return errRetry
	}); err != nil {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after connection retry failed: %s", pErr)
		}
		log.Fatalf("Could not connect to PostgreSQL container after retries: %s", err)
	}

	if err := repository.AutoMigrate(testDB); err != nil {
		log.Fatalf("Could not migrate database: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge PostgreSQL resource: %s", err)
	}
	os.Exit(code)
}

// clearTables はテスト間でデータを消します
func clearTables(t *testing.T) {
	t.Helper()
	for _, m := range []interface{}{&model.SessionSummary{}, &model.LastMissed{}, &model.LearningProgress{}, &model.Card{}} {
		err := testDB.Unscoped().Where("1 = 1").Delete(m).Error
		require.NoError(t, err, "Failed to clear table for model %T", m)
	}
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	require.NotNil(t, testDB, "TestDB should have been initialized in TestMain")
	clearTables(t)

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	cardRepo := repository.NewGormCardRepository()
	progRepo := repository.NewGormProgressRepository()
	summaryRepo := repository.NewGormSessionSummaryRepository()
	lastMissed := repository.NewGormLastMissedSet(testDB)

	h := handlers.Handlers{
		Card:   handlers.NewCardHandler(service.NewCardService(testDB, cardRepo, progRepo, lastMissed), testLogger),
		Review: handlers.NewReviewHandler(service.NewReviewService(testDB, cardRepo, progRepo, lastMissed, summaryRepo, cfg), testLogger),
		Stats:  handlers.NewStatsHandler(service.NewStatsService(testDB, progRepo, summaryRepo), testLogger),
	}
	server := httptest.NewServer(handlers.NewRouter(h, handlers.RouterOptions{
		Logger: testLogger,
		Auth:   handlers.AuthMiddleware(cfg, testLogger),
	}))
	t.Cleanup(server.Close)
	return server
}

func TestTrainerAPI_ReviewFlow(t *testing.T) {
	server := setupTestServer(t)
	ownerID := uuid.New()
	today := leitner.StartOfDay(time.Now())

	// カード作成 → 今日が期限
	body := sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/cards", OwnerID: ownerID,
		Body: model.PostCardRequest{Front: "apple", Back: "りんご"},
	}, http.StatusCreated)
	card := decodeBody[model.Card](t, body)

	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/reviews", OwnerID: ownerID}, http.StatusOK)
	due := decodeBody[[]model.ReviewCardResponse](t, body)
	require.Len(t, due, 1)
	assert.Equal(t, card.CardID, due[0].CardID)
	assert.Equal(t, 0, due[0].Level)

	// 正解 → Box 2、2日後
	body = sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPut, Path: "/api/v1/reviews/" + card.CardID.String() + "/result", OwnerID: ownerID,
		Body: model.SubmitReviewRequest{IsCorrect: boolPtr(true), CurrentLevel: intPtr(0)},
	}, http.StatusOK)
	grade := decodeBody[model.GradeResponse](t, body)
	assert.Equal(t, 1, grade.Level)
	assert.Equal(t, model.FormatDate(today.AddDate(0, 0, 2)), grade.DueDate)

	// 同じ current_level で再送しても結果は同じ
	body = sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPut, Path: "/api/v1/reviews/" + card.CardID.String() + "/result", OwnerID: ownerID,
		Body: model.SubmitReviewRequest{IsCorrect: boolPtr(true), CurrentLevel: intPtr(0)},
	}, http.StatusOK)
	assert.Equal(t, grade, decodeBody[model.GradeResponse](t, body))

	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/reviews/count", OwnerID: ownerID}, http.StatusOK)
	assert.JSONEq(t, `{"count":0}`, string(body))

	// 前回間違えた
	sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/last-missed/" + card.CardID.String(), OwnerID: ownerID}, http.StatusNoContent)
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/last-missed", OwnerID: ownerID}, http.StatusOK)
	assert.Len(t, decodeBody[[]model.ReviewCardResponse](t, body), 1)

	// セッション記録と統計
	sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/sessions", OwnerID: ownerID,
		Body: model.PostSessionSummaryRequest{Mode: model.SessionModeLeitner, TotalCount: intPtr(1), CorrectCount: intPtr(1), WrongCardIDs: []string{}},
	}, http.StatusCreated)
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/stats", OwnerID: ownerID}, http.StatusOK)
	st := decodeBody[stats.Stats](t, body)
	assert.Equal(t, 1, st.TotalCards)
	assert.Equal(t, 1, st.Levels[1].Count)
	assert.Equal(t, 1, st.TotalReviewed)

	// 削除すると一覧からも消える
	sendRequest(t, server, httpRequestDetails{Method: http.MethodDelete, Path: "/api/v1/cards/" + card.CardID.String(), OwnerID: ownerID}, http.StatusNoContent)
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/last-missed", OwnerID: ownerID}, http.StatusOK)
	assert.JSONEq(t, `[]`, string(body))
}

func TestTrainerAPI_OwnerIsolation(t *testing.T) {
	server := setupTestServer(t)
	alice, bob := uuid.New(), uuid.New()

	body := sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/cards", OwnerID: alice,
		Body: model.PostCardRequest{Front: "dog", Back: "犬"},
	}, http.StatusCreated)
	card := decodeBody[model.Card](t, body)

	// 同じ front でも別の所有者なら作れる
	sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/cards", OwnerID: bob,
		Body: model.PostCardRequest{Front: "dog", Back: "いぬ"},
	}, http.StatusCreated)
	// 同じ所有者では重複
	body = sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/cards", OwnerID: alice,
		Body: model.PostCardRequest{Front: "dog", Back: "いぬ"},
	}, http.StatusConflict)
	verifyErrorResponse(t, body, "CONFLICT")

	// 他人のカードは見えない
	sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/cards/" + card.CardID.String(), OwnerID: bob}, http.StatusNotFound)
	sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPut, Path: "/api/v1/reviews/" + card.CardID.String() + "/result", OwnerID: bob,
		Body: model.SubmitReviewRequest{IsCorrect: boolPtr(true)},
	}, http.StatusNotFound)
}
