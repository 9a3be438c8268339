package energy

import (
	"time"

	"github.com/shivani123B/fitlog/internal/model"
)

type Balance struct {
	Deficit         float64 `json:"deficit"`
	WeeklyFatChange float64 `json:"weeklyFatChangeKg"`
	Status          Status  `json:"status"`
}

// Report gathers every estimate for one profile. Nil fields are
// unavailable, not zero.
type Report struct {
	Date         string          `json:"date"`
	Activity     ActivityLevel   `json:"activityLevel"`
	BMR          *float64        `json:"bmr"`
	TDEE         *int            `json:"tdee"`
	Targets      *CalorieTargets `json:"targets,omitempty"`
	Protein      *ProteinTargets `json:"protein,omitempty"`
	Water        *WaterTarget    `json:"water,omitempty"`
	AvgIntake    *float64        `json:"avgIntake"`
	TodayBurn    int             `json:"todayBurn"`
	AvgBurn      float64         `json:"avgBurn"`
	HasWorkouts  bool            `json:"hasWorkouts"`
	DietOnly     *Balance        `json:"dietOnly"`
	WithExercise *Balance        `json:"withExercise"`
}

type EstimateInput struct {
	Profile  model.Profile
	Activity ActivityLevel
	Logs     []model.DailyLog
	Workouts model.WorkoutBook
	Today    time.Time
}

func Estimate(in EstimateInput) Report {
	if in.Activity == "" {
		in.Activity = DefaultActivity
	}
	r := Report{
		Date:        in.Today.Format(model.DateLayout),
		Activity:    in.Activity,
		TodayBurn:   DailyBurn(in.Workouts, in.Today.Format(model.DateLayout)),
		AvgBurn:     AverageBurn(in.Workouts, in.Today),
		HasWorkouts: len(in.Workouts) > 0,
	}
	if in.Profile.WeightKg > 0 {
		p := ProteinFor(in.Profile.WeightKg)
		w := WaterFor(in.Profile.WeightKg)
		r.Protein = &p
		r.Water = &w
	}
	if avg, ok := WeeklyAverageIntake(in.Logs); ok {
		r.AvgIntake = &avg
	}
	bmr, ok := BMR(in.Profile)
	if !ok {
		return r
	}
	tdee := TDEE(bmr, in.Activity)
	targets := TargetsFor(bmr, tdee)
	r.BMR = &bmr
	r.TDEE = &tdee
	r.Targets = &targets
	if r.AvgIntake != nil {
		r.DietOnly = balanceOf(DietDeficit(tdee, *r.AvgIntake))
		r.WithExercise = balanceOf(NetDeficit(tdee, r.AvgBurn, *r.AvgIntake))
	}
	return r
}

func balanceOf(deficit float64) *Balance {
	return &Balance{
		Deficit:         deficit,
		WeeklyFatChange: WeeklyFatChangeKg(deficit),
		Status:          Classify(deficit),
	}
}
