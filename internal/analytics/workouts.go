package analytics

import (
	"sort"
	"time"

	"github.com/shivani123B/fitlog/internal/energy"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/workout"
)

const window = 7

func WeeklyMinutes(book model.WorkoutBook, today time.Time) int {
	total := 0
	for _, date := range energy.TrailingDates(today, window) {
		for _, e := range book[date] {
			total += e.DurationMin
		}
	}
	return total
}

type Records struct {
	LongestSessionMin int    `json:"longestSessionMin"`
	LongestSession    string `json:"longestSession,omitempty"`
	HighestSingleBurn int    `json:"highestSingleBurn"`
	HighestBurnEntry  string `json:"highestBurnEntry,omitempty"`
	HighestDailyBurn  int    `json:"highestDailyBurn"`
	HighestBurnDate   string `json:"highestBurnDate,omitempty"`
}

// PersonalRecords scans every entry ever logged. Ties go to the earliest.
func PersonalRecords(book model.WorkoutBook) Records {
	dates := make([]string, 0, len(book))
	for date := range book {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var r Records
	for _, date := range dates {
		daily := 0
		entries := book[date]
		for _, e := range entries {
			daily += e.CaloriesBurned
			if e.DurationMin > r.LongestSessionMin {
				r.LongestSessionMin = e.DurationMin
				r.LongestSession = e.WorkoutName
			}
			if e.CaloriesBurned > r.HighestSingleBurn {
				r.HighestSingleBurn = e.CaloriesBurned
				r.HighestBurnEntry = e.WorkoutName
			}
		}
		if daily > r.HighestDailyBurn {
			r.HighestDailyBurn = daily
			r.HighestBurnDate = date
		}
	}
	return r
}

type CategoryMinutes struct {
	Category model.WorkoutCategory `json:"category"`
	Minutes  int                   `json:"minutes"`
}

// CategoryBreakdown sums minutes per category over the trailing week.
// Unknown categories count as Other.
func CategoryBreakdown(book model.WorkoutBook, today time.Time) []CategoryMinutes {
	totals := map[model.WorkoutCategory]int{}
	for _, date := range energy.TrailingDates(today, window) {
		for _, e := range book[date] {
			totals[workout.ParseCategory(string(e.Category))] += e.DurationMin
		}
	}
	out := make([]CategoryMinutes, 0, len(model.WorkoutCategories))
	for _, c := range model.WorkoutCategories {
		out = append(out, CategoryMinutes{Category: c, Minutes: totals[c]})
	}
	return out
}

type WorkoutSummary struct {
	Date              string            `json:"date"`
	TodayBurn         int               `json:"todayBurn"`
	TodayMinutes      int               `json:"todayMinutes"`
	WeeklyMinutes     int               `json:"weeklyMinutes"`
	WeeklyGoalMinutes int               `json:"weeklyGoalMinutes"`
	GoalProgressPct   int               `json:"goalProgressPct"`
	CurrentStreak     int               `json:"currentStreak"`
	BestStreak        int               `json:"bestStreak"`
	Records           Records           `json:"records"`
	Breakdown         []CategoryMinutes `json:"breakdown"`
}

// SummarizeWorkouts builds the workout dashboard. storedBest is the best
// streak recorded before this call.
func SummarizeWorkouts(book model.WorkoutBook, today time.Time, weeklyGoal, storedBest int) WorkoutSummary {
	date := today.Format(model.DateLayout)
	s := WorkoutSummary{
		Date:              date,
		TodayBurn:         energy.DailyBurn(book, date),
		WeeklyMinutes:     WeeklyMinutes(book, today),
		WeeklyGoalMinutes: weeklyGoal,
		CurrentStreak:     WorkoutStreak(book, today),
		Records:           PersonalRecords(book),
		Breakdown:         CategoryBreakdown(book, today),
	}
	for _, e := range book[date] {
		s.TodayMinutes += e.DurationMin
	}
	s.BestStreak = BestStreak(s.CurrentStreak, storedBest)
	if weeklyGoal > 0 {
		s.GoalProgressPct = s.WeeklyMinutes * 100 / weeklyGoal
		if s.GoalProgressPct > 100 {
			s.GoalProgressPct = 100
		}
	}
	return s
}
