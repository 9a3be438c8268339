package analytics

import (
	"time"

	"github.com/shivani123B/fitlog/internal/model"
)

// Streak counts consecutive days with activity ending today. With
// graceYesterday a missing today does not break a run that reached
// yesterday.
func Streak(active func(date string) bool, today time.Time, graceYesterday bool) int {
	y, m, d := today.Date()
	day := func(offset int) string {
		return time.Date(y, m, d-offset, 12, 0, 0, 0, today.Location()).Format(model.DateLayout)
	}
	start := 0
	if !active(day(0)) {
		if !graceYesterday || !active(day(1)) {
			return 0
		}
		start = 1
	}
	n := 0
	for active(day(start + n)) {
		n++
	}
	return n
}

// LogStreak requires a log for today.
func LogStreak(logs []model.DailyLog, today time.Time) int {
	dates := make(map[string]bool, len(logs))
	for _, l := range logs {
		dates[l.Date] = true
	}
	return Streak(func(date string) bool { return dates[date] }, today, false)
}

// WorkoutStreak keeps a run alive until the end of the day after the last
// workout.
func WorkoutStreak(book model.WorkoutBook, today time.Time) int {
	return Streak(func(date string) bool { return len(book[date]) > 0 }, today, true)
}

// BestStreak never decreases.
func BestStreak(current, stored int) int {
	if current > stored {
		return current
	}
	return stored
}
