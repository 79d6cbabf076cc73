package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go_4_vocab_trainer/internal/middleware"
	"go_4_vocab_trainer/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// テストの「現在時刻」 (UTC 2026-03-10 15:00)
var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

// setupTestDB はテストごとに独立したインメモリDBを作ります
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 接続が全部閉じるとインメモリDBが消えるので1本に固定
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

// freezeTime は timeNow を固定し、テスト終了時に戻します
func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func testContext() context.Context {
	return middleware.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
