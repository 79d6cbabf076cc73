// Package stats はダッシュボード用の集計を行います。書き込みは一切しない。
package stats

import (
	"time"

	"go_4_vocab_trainer/internal/leitner"
)

// HistoryDays は履歴の集計日数 (今日を含む)
const HistoryDays = 7

// Entry は集計に使う進捗の一件
type Entry struct {
	Level   int
	DueDate time.Time
}

// SessionRecord はセッション記録の一件。WrongIDs が nil なら「記録なし」を意味する。
type SessionRecord struct {
	CreatedAt    time.Time
	TotalCount   int
	CorrectCount int
	WrongIDs     []string
}

type LevelBucket struct {
	Level int    `json:"level"` // 表示用 (1〜6)
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DayHistory struct {
	Date     string `json:"date"` // YYYY-MM-DD (UTC)
	Reviewed int    `json:"reviewed"`
	Correct  int    `json:"correct"`
	Wrong    int    `json:"wrong"`
}

type Stats struct {
	TotalCards    int           `json:"total_cards"`
	Levels        []LevelBucket `json:"levels"`
	DueToday      int           `json:"due_today"` // 期限切れを含む
	DueTomorrow   int           `json:"due_tomorrow"`
	DueLater      int           `json:"due_later"`
	NextDueDate   *string       `json:"next_due_date"`
	NextDueInDays *int          `json:"next_due_in_days"`
	History       []DayHistory  `json:"history"` // 古い順、最後が今日
	TotalReviewed int           `json:"total_reviewed"`
	TotalCorrect  int           `json:"total_correct"`
	Accuracy      float64       `json:"accuracy"` // 0〜1
}

const dateLayout = "2006-01-02"

// Aggregate は now 時点の統計を作ります
func Aggregate(entries []Entry, records []SessionRecord, now time.Time) Stats {
	st := Stats{
		TotalCards: len(entries),
		Levels:     make([]LevelBucket, leitner.MaxLevel+1),
		History:    make([]DayHistory, HistoryDays),
	}
	for l := 0; l <= leitner.MaxLevel; l++ {
		st.Levels[l] = LevelBucket{Level: l + 1, Label: leitner.Label(l)}
	}

	today := leitner.StartOfDay(now)
	var nearest time.Time
	for _, e := range entries {
		st.Levels[leitner.ClampLevel(e.Level)].Count++

		due := leitner.StartOfDay(e.DueDate)
		switch offset := leitner.DaysBetween(today, due); {
		case offset <= 0:
			st.DueToday++
		case offset == 1:
			st.DueTomorrow++
		default:
			st.DueLater++
		}
		if due.After(today) && (nearest.IsZero() || due.Before(nearest)) {
			nearest = due
		}
	}
	if !nearest.IsZero() {
		d := nearest.Format(dateLayout)
		n := leitner.DaysBetween(today, nearest)
		st.NextDueDate = &d
		st.NextDueInDays = &n
	}

	first := today.AddDate(0, 0, -(HistoryDays - 1))
	for i := range st.History {
		st.History[i].Date = first.AddDate(0, 0, i).Format(dateLayout)
	}
	for _, r := range records {
		i := leitner.DaysBetween(first, r.CreatedAt)
		if i < 0 || i >= HistoryDays {
			continue
		}
		wrong := r.TotalCount - r.CorrectCount
		if r.WrongIDs != nil {
			wrong = len(r.WrongIDs)
		}
		if wrong < 0 {
			wrong = 0
		}
		st.History[i].Reviewed += r.TotalCount
		st.History[i].Correct += r.CorrectCount
		st.History[i].Wrong += wrong
		st.TotalReviewed += r.TotalCount
		st.TotalCorrect += r.CorrectCount
	}
	if st.TotalReviewed > 0 {
		st.Accuracy = float64(st.TotalCorrect) / float64(st.TotalReviewed)
	}
	return st
}

// WindowStart は履歴集計の開始時刻 (6日前の UTC 0時)
func WindowStart(now time.Time) time.Time {
	return leitner.StartOfDay(now).AddDate(0, 0, -(HistoryDays - 1))
}
