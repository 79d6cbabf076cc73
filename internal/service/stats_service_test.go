package service

import (
	"errors"
	"testing"
	"time"

	"go_4_vocab_trainer/internal/model"
	"go_4_vocab_trainer/internal/repository"
	"go_4_vocab_trainer/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_statsService_GetStats(t *testing.T) {
	freezeTime(t, fixedNow)
	ctx := testContext()
	f := newReviewFixture(t)
	svc := NewStatsService(f.db, repository.NewGormProgressRepository(), repository.NewGormSessionSummaryRepository())

	f.addCard(t, "a", model.CardTypeVocab, 0, day(2026, 3, 10))
	f.addCard(t, "b", model.CardTypeVocab, 2, day(2026, 3, 11))
	f.addCard(t, "c", model.CardTypeSentence, 5, day(2026, 4, 30))

	// 窓の中に2件、外に1件
	for _, rec := range []struct {
		at             time.Time
		total, correct int
		wrong          []string
	}{
		{time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), 4, 3, []string{uuid.NewString()}},
		{time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), 6, 2, nil},
		{time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC), 10, 10, nil},
	} {
		s := &model.SessionSummary{SummaryID: uuid.New(), OwnerID: f.ownerID, Mode: model.SessionModeLeitner,
			TotalCount: rec.total, CorrectCount: rec.correct, CreatedAt: rec.at}
		require.NoError(t, s.SetWrongIDs(rec.wrong))
		require.NoError(t, f.db.Create(s).Error)
	}

	t.Run("全種類", func(t *testing.T) {
		st, err := svc.GetStats(ctx, f.ownerID, "")
		require.NoError(t, err)
		assert.Equal(t, 3, st.TotalCards)
		assert.Equal(t, 1, st.Levels[0].Count)
		assert.Equal(t, 1, st.Levels[2].Count)
		assert.Equal(t, 1, st.Levels[5].Count)
		assert.Equal(t, 1, st.DueToday)
		assert.Equal(t, 1, st.DueTomorrow)
		assert.Equal(t, 1, st.DueLater)
		require.NotNil(t, st.NextDueDate)
		assert.Equal(t, "2026-03-11", *st.NextDueDate)

		assert.Equal(t, 10, st.TotalReviewed)
		assert.Equal(t, 5, st.TotalCorrect)
		assert.InDelta(t, 0.5, st.Accuracy, 1e-9)
		assert.Equal(t, 4, st.History[1].Wrong) // 3/5: 記録なしなので 6-2
		assert.Equal(t, 1, st.History[6].Wrong) // 今日: ID一覧の件数
	})

	t.Run("種別の絞り込みは進捗にだけ効く", func(t *testing.T) {
		st, err := svc.GetStats(ctx, f.ownerID, model.CardTypeSentence)
		require.NoError(t, err)
		assert.Equal(t, 1, st.TotalCards)
		assert.Equal(t, 10, st.TotalReviewed)
	})
}

func Test_statsService_GetStats_RepositoryError(t *testing.T) {
	freezeTime(t, fixedNow)
	ctx := testContext()
	progRepo := mocks.NewProgressRepository(t)
	summaryRepo := mocks.NewSessionSummaryRepository(t)
	svc := NewStatsService(nil, progRepo, summaryRepo)
	ownerID := uuid.New()

	progRepo.On("FindByOwner", mock.Anything, mock.Anything, ownerID, model.CardType("")).
		Return([]*model.LearningProgress{}, nil).Once()
	summaryRepo.On("FindByOwnerBetween", mock.Anything, mock.Anything, ownerID,
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)).
		Return(nil, errors.New("db error")).Once()

	st, err := svc.GetStats(ctx, ownerID, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInternalServer)
	assert.Nil(t, st)
}
