package jobs

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go_4_vocab_trainer/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestScheduler_PruneLastMissed(t *testing.T) {
	t.Run("保持日数を期間に換算して渡す", func(t *testing.T) {
		svc := mocks.NewReviewService(t)
		svc.On("PruneLastMissed", mock.Anything, 30*24*time.Hour).Return(int64(4), nil).Once()

		New(svc, 30, "03:00", testLogger).pruneLastMissed()
	})

	t.Run("失敗してもパニックしない", func(t *testing.T) {
		svc := mocks.NewReviewService(t)
		svc.On("PruneLastMissed", mock.Anything, 24*time.Hour).Return(int64(0), errors.New("db error")).Once()

		assert.NotPanics(t, New(svc, 1, "03:00", testLogger).pruneLastMissed)
	})
}

func TestScheduler_Start(t *testing.T) {
	svc := mocks.NewReviewService(t)

	s := New(svc, 30, "03:00", testLogger)
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)

	require.Len(t, s.scheduler.Jobs(), 1)
	assert.True(t, s.scheduler.IsRunning())
}

func TestScheduler_Start_InvalidTime(t *testing.T) {
	s := New(mocks.NewReviewService(t), 30, "25:99", testLogger)
	assert.Error(t, s.Start())
}
