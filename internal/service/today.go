package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shivani123B/fitlog/internal/energy"
	"github.com/shivani123B/fitlog/internal/model"
)

// TodayStatus nil fields are unknown: no log for the day or no TDEE.
type TodayStatus struct {
	Date              string   `json:"date"`
	HasLog            bool     `json:"hasLog"`
	IntakeCalories    *float64 `json:"intakeCalories"`
	ProteinG          *float64 `json:"proteinG"`
	CarbsG            *float64 `json:"carbsG"`
	FatG              *float64 `json:"fatG"`
	FiberG            *float64 `json:"fiberG"`
	Workouts          int      `json:"workouts"`
	ExerciseCalories  int      `json:"exerciseCalories"`
	NetCalories       *float64 `json:"netCalories"`
	MaintenanceKcal   *int     `json:"maintenanceKcal"`
	RemainingCalories *float64 `json:"remainingCalories"`
}

func TodaySummary(db *sql.DB, username string, date time.Time) (TodayStatus, error) {
	p, err := GetProfile(db, username)
	if err != nil {
		return TodayStatus{}, err
	}
	day := date.Format(model.DateLayout)
	status := TodayStatus{Date: day}

	l, err := GetLog(db, p.Username, day)
	switch {
	case err == nil:
		status.HasLog = true
		status.IntakeCalories = l.Calories
		status.ProteinG = l.ProteinG
		status.CarbsG = l.CarbsG
		status.FatG = l.FatG
		status.FiberG = l.FiberG
	case !errors.Is(err, ErrLogNotFound):
		return TodayStatus{}, err
	}

	book, err := ListWorkouts(db, p.Username)
	if err != nil {
		return TodayStatus{}, err
	}
	status.Workouts = len(book[day])
	status.ExerciseCalories = energy.DailyBurn(book, day)
	if status.IntakeCalories != nil {
		net := *status.IntakeCalories - float64(status.ExerciseCalories)
		status.NetCalories = &net
	}

	if bmr, ok := energy.BMR(p); ok {
		activity, err := ConfiguredActivityLevel(db)
		if err != nil {
			return TodayStatus{}, err
		}
		tdee := energy.TDEE(bmr, activity)
		status.MaintenanceKcal = &tdee
		remaining := float64(tdee + status.ExerciseCalories)
		if status.IntakeCalories != nil {
			remaining -= *status.IntakeCalories
		}
		status.RemainingCalories = &remaining
	}
	return status, nil
}
