package leitner

import "time"

// StartOfDay は t を UTC の暦日 0時に切り捨てます。
// 日付の比較はすべてこの関数を通すこと (ローカル日付と混ぜない)。
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Tomorrow は翌日の UTC 0時
func Tomorrow(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// DaysBetween は from から to までの暦日差 (UTC)。to が過去なら負。
func DaysBetween(from, to time.Time) int {
	a := StartOfDay(from)
	b := StartOfDay(to)
	// UTC 0時同士の差なので24で割り切れる
	return int(b.Sub(a).Hours() / 24)
}

// IsDue は dueDate が today 以前かどうか
func IsDue(dueDate, now time.Time) bool {
	return !StartOfDay(dueDate).After(StartOfDay(now))
}
