package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/shivani123B/fitlog/internal/analytics"
	"github.com/shivani123B/fitlog/internal/energy"
	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/planner"
)

func EnergyReport(db *sql.DB, username string, today time.Time) (energy.Report, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return energy.Report{}, err
	}
	activity, err := ConfiguredActivityLevel(db)
	if err != nil {
		return energy.Report{}, err
	}
	logs, err := ListLogs(db, p.Username)
	if err != nil {
		return energy.Report{}, err
	}
	book, err := ListWorkouts(db, p.Username)
	if err != nil {
		return energy.Report{}, err
	}
	return energy.Estimate(energy.EstimateInput{
		Profile:  p,
		Activity: activity,
		Logs:     logs,
		Workouts: book,
		Today:    today,
	}), nil
}

type Suggestion struct {
	Date    string         `json:"date"`
	BMR     float64        `json:"bmr"`
	TDEE    int            `json:"tdee"`
	AvgBurn float64        `json:"avgBurn"`
	Target  planner.Target `json:"target"`
	Plan    planner.Plan   `json:"plan"`
}

type SuggestOptions struct {
	Regenerate bool
	// Deficit replaces the profile's preferred deficit for this plan when > 0.
	Deficit int
}

// Suggest plans tomorrow's meals. The seed is persisted so repeated calls
// return the same plan until Regenerate bumps it.
func Suggest(db *sql.DB, username string, today time.Time, opts SuggestOptions) (Suggestion, error) {
	if err := validateNonNegativeInt("deficit", opts.Deficit); err != nil {
		return Suggestion{}, err
	}
	p, err := GetProfile(db, username)
	if err != nil {
		return Suggestion{}, err
	}
	bmr, ok := energy.BMR(p)
	if !ok {
		return Suggestion{}, fmt.Errorf("suggestions need age, height, weight and gender (female or male) on the profile")
	}
	activity, err := ConfiguredActivityLevel(db)
	if err != nil {
		return Suggestion{}, err
	}
	book, err := ListWorkouts(db, p.Username)
	if err != nil {
		return Suggestion{}, err
	}
	seed, err := PlanSeed(db)
	if err != nil {
		return Suggestion{}, err
	}
	if opts.Regenerate {
		seed++
		if err := SetConfig(db, ConfigPlanSeed, strconv.Itoa(seed)); err != nil {
			return Suggestion{}, err
		}
	}

	tdee := energy.TDEE(bmr, activity)
	avgBurn := energy.AverageBurn(book, today)
	target := planner.DailyTarget(planner.TargetInput{
		BMR:     bmr,
		TDEE:    tdee,
		AvgBurn: avgBurn,
		Profile: p,
		Deficit: opts.Deficit,
	})
	plan := planner.BuildPlan(planner.DefaultCatalog(), planner.PlanInput{
		TargetCalories: target.Calories,
		FatLossMode:    target.FatLossMode,
		Seed:           seed,
		Diet:           p.DietCategory,
	})
	return Suggestion{
		Date:    today.AddDate(0, 0, 1).Format(model.DateLayout),
		BMR:     bmr,
		TDEE:    tdee,
		AvgBurn: avgBurn,
		Target:  target,
		Plan:    plan,
	}, nil
}

// CopyPlanToLog overwrites the log for s.Date with the plan's calorie and
// protein totals.
func CopyPlanToLog(db *sql.DB, username string, s Suggestion) (model.DailyLog, error) {
	return SaveLog(db, username, planner.ToLog(s.Plan, s.Date), false)
}

type Stats struct {
	Date          string                   `json:"date"`
	TodayIntake   *float64                 `json:"todayIntake"`
	LogCount      int                      `json:"logCount"`
	LogStreak     int                      `json:"logStreak"`
	BestLogStreak int                      `json:"bestLogStreak"`
	Workouts      analytics.WorkoutSummary `json:"workouts"`
}

// DashboardStats summarizes logging and workouts for today and records any
// new best streaks.
func DashboardStats(db *sql.DB, username string, today time.Time) (Stats, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return Stats{}, err
	}
	logs, err := ListLogs(db, p.Username)
	if err != nil {
		return Stats{}, err
	}
	book, err := ListWorkouts(db, p.Username)
	if err != nil {
		return Stats{}, err
	}
	date := today.Format(model.DateLayout)
	s := Stats{
		Date:      date,
		LogCount:  len(logs),
		LogStreak: analytics.LogStreak(logs, today),
	}
	for _, l := range logs {
		if l.Date == date {
			s.TodayIntake = l.Calories
		}
	}
	if s.BestLogStreak, err = RecordStreak(db, p.Username, StreakLog, s.LogStreak); err != nil {
		return Stats{}, err
	}

	storedBest, err := BestStreak(db, p.Username, StreakWorkout)
	if err != nil {
		return Stats{}, err
	}
	s.Workouts = analytics.SummarizeWorkouts(book, today, p.WeeklyActiveMinutesGoal, storedBest)
	if _, err := RecordStreak(db, p.Username, StreakWorkout, s.Workouts.CurrentStreak); err != nil {
		return Stats{}, err
	}
	return s, nil
}
