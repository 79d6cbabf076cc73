// internal/leitner/leitner.go
package leitner

import (
	"fmt"
	"math"
	"time"
)

// MaxLevel は最上位の箱 (0〜5 の6段階)
const MaxLevel = 5

// intervals はレベルごとの復習間隔 (日)。配列なので外部から書き換えできない。
var intervals = [MaxLevel + 1]int{1, 2, 6, 14, 30, 60}

// Intervals は間隔テーブルのコピーを返します
func Intervals() []int {
	out := make([]int, len(intervals))
	copy(out, intervals[:])
	return out
}

// ClampLevel はレベルを [0, MaxLevel] に収めます。範囲外はエラーにせず丸める。
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// ClampLevelFloat は外部由来の数値 (JSON など) 用。NaN と -Inf は 0、+Inf は MaxLevel、小数は切り捨て。
func ClampLevelFloat(level float64) int {
	switch {
	case math.IsNaN(level), math.IsInf(level, -1):
		return 0
	case math.IsInf(level, 1):
		return MaxLevel
	}
	f := math.Floor(level)
	if f < 0 {
		return 0
	}
	if f > MaxLevel {
		return MaxLevel
	}
	return int(f)
}

// IntervalDays はレベルに対応する復習間隔を返します (常に1以上)
func IntervalDays(level int) int {
	return intervals[ClampLevel(level)]
}

// IntervalDaysFloat は ClampLevelFloat を通した IntervalDays
func IntervalDaysFloat(level float64) int {
	return intervals[ClampLevelFloat(level)]
}

// NextLevelOnWrong は不正解時の次レベル。どのレベルからでも最初の箱に戻す。
func NextLevelOnWrong(currentLevel int) int {
	return 0
}

// NextLevelOnCorrect は正解時の次レベル。1つ昇格、上限は MaxLevel。
func NextLevelOnCorrect(currentLevel int) int {
	next := ClampLevel(currentLevel) + 1
	if next > MaxLevel {
		return MaxLevel
	}
	return next
}

// DueDate は採点時刻 now における次回復習日 (UTC 0時) を計算します
func DueDate(now time.Time, level int) time.Time {
	days := IntervalDays(level)
	if days < 1 {
		days = 1
	}
	return StartOfDay(now).AddDate(0, 0, days)
}

// Outcome は1回の採点結果
type Outcome struct {
	Level   int
	DueDate time.Time
}

// Grade は現在レベルと正誤から次のレベルと復習日を決めます
func Grade(currentLevel int, correct bool, now time.Time) Outcome {
	var next int
	if correct {
		next = NextLevelOnCorrect(currentLevel)
	} else {
		next = NextLevelOnWrong(currentLevel)
	}
	return Outcome{Level: next, DueDate: DueDate(now, next)}
}

// Label は統計画面用のラベル (表示レベルは1始まり)
func Label(level int) string {
	l := ClampLevel(level)
	return fmt.Sprintf("Box %d · %dd", l+1, intervals[l])
}
