package planner

import (
	"math"

	"github.com/shivani123B/fitlog/internal/model"
)

const DefaultDeficit = 500

type Target struct {
	Calories      int     `json:"calories"`
	EffectiveTDEE float64 `json:"effectiveTdee"`
	FatLossMode   bool    `json:"fatLossMode"`
	Deficit       int     `json:"deficit"`
	TooLow        bool    `json:"tooLow"`
	TooHigh       bool    `json:"tooHigh"`
}

type TargetInput struct {
	BMR     float64
	TDEE    int
	AvgBurn float64
	Profile model.Profile
	// Deficit overrides the profile's preferred deficit when > 0.
	Deficit int
}

// FatLossMode is on when the goal weight is below the current weight.
func FatLossMode(p model.Profile) bool {
	return p.GoalWeightKg != nil && p.WeightKg > 0 && *p.GoalWeightKg < p.WeightKg
}

// DailyTarget derives the plan calories from expenditure including exercise,
// rounded to the nearest 50 kcal.
func DailyTarget(in TargetInput) Target {
	deficit := in.Deficit
	if deficit <= 0 {
		deficit = in.Profile.PreferredDeficit
	}
	if deficit <= 0 {
		deficit = DefaultDeficit
	}
	t := Target{
		EffectiveTDEE: float64(in.TDEE) + in.AvgBurn,
		FatLossMode:   FatLossMode(in.Profile),
		Deficit:       deficit,
	}
	raw := t.EffectiveTDEE
	if t.FatLossMode {
		raw -= float64(deficit)
	}
	t.Calories = int(math.Round(raw/50) * 50)
	t.TooLow = float64(t.Calories) < in.BMR+100
	t.TooHigh = t.Calories > in.TDEE+300
	return t
}

// ToLog turns a plan into a day log carrying only calorie and protein totals.
func ToLog(p Plan, date string) model.DailyLog {
	cal := float64(p.TotalCalories)
	protein := float64(p.TotalProteinG)
	return model.DailyLog{
		Date:     date,
		Calories: &cal,
		ProteinG: &protein,
	}
}
