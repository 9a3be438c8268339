package service_test

import (
	"testing"
	"time"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
)

func localDay(s string) time.Time {
	t, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(12 * time.Hour)
}

func TestEnergyReport(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		if _, err := service.SaveLog(sqldb, p.Username, model.DailyLog{Date: date, Calories: ptr(2000)}, false); err != nil {
			t.Fatalf("save log: %v", err)
		}
	}
	r, err := service.EnergyReport(sqldb, p.Username, localDay("2024-01-02"))
	if err != nil {
		t.Fatalf("energy report: %v", err)
	}
	if r.BMR == nil || *r.BMR != 1673.75 || r.TDEE == nil || *r.TDEE != 2594 {
		t.Fatalf("unexpected bmr/tdee: %v %v", r.BMR, r.TDEE)
	}
	if r.AvgIntake == nil || *r.AvgIntake != 2000 {
		t.Fatalf("unexpected average intake: %v", r.AvgIntake)
	}
	if r.DietOnly == nil || r.DietOnly.Deficit != 594 {
		t.Fatalf("unexpected diet-only balance: %+v", r.DietOnly)
	}

	if err := service.SetConfig(sqldb, service.ConfigActivityLevel, "sedentary"); err != nil {
		t.Fatalf("set activity level: %v", err)
	}
	r, err = service.EnergyReport(sqldb, p.Username, localDay("2024-01-02"))
	if err != nil {
		t.Fatalf("energy report: %v", err)
	}
	if *r.TDEE != 2009 {
		t.Fatalf("expected sedentary TDEE 2009, got %d", *r.TDEE)
	}
}

func TestSuggestIsStableUntilRegenerated(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)
	today := localDay("2024-01-10")

	first, err := service.Suggest(sqldb, p.Username, today, service.SuggestOptions{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if first.Date != "2024-01-11" {
		t.Fatalf("expected plan for tomorrow, got %s", first.Date)
	}
	if first.Target.Calories != 2600 || first.Target.FatLossMode || first.Target.TooLow || first.Target.TooHigh {
		t.Fatalf("unexpected target: %+v", first.Target)
	}
	if first.Plan.Seed != 0 || len(first.Plan.Slots) != 4 {
		t.Fatalf("unexpected plan: %+v", first.Plan)
	}

	again, err := service.Suggest(sqldb, p.Username, today, service.SuggestOptions{})
	if err != nil {
		t.Fatalf("suggest again: %v", err)
	}
	if again.Plan.TotalCalories != first.Plan.TotalCalories || again.Plan.Seed != first.Plan.Seed {
		t.Fatalf("expected identical plan without regenerate")
	}

	regen, err := service.Suggest(sqldb, p.Username, today, service.SuggestOptions{Regenerate: true})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if regen.Plan.Seed != 1 {
		t.Fatalf("expected seed 1 after regenerate, got %d", regen.Plan.Seed)
	}
	seed, err := service.PlanSeed(sqldb)
	if err != nil || seed != 1 {
		t.Fatalf("expected persisted seed 1, got %d (%v)", seed, err)
	}
}

func TestSuggestFatLossTarget(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)
	if _, err := service.UpdateGoals(sqldb, p.Username, service.GoalsInput{GoalWeight: ptr(65)}); err != nil {
		t.Fatalf("update goals: %v", err)
	}
	s, err := service.Suggest(sqldb, p.Username, localDay("2024-01-10"), service.SuggestOptions{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !s.Target.FatLossMode || s.Target.Calories != 2100 {
		t.Fatalf("expected fat-loss target 2100, got %+v", s.Target)
	}

	s, err = service.Suggest(sqldb, p.Username, localDay("2024-01-10"), service.SuggestOptions{Deficit: 300})
	if err != nil {
		t.Fatalf("suggest with deficit: %v", err)
	}
	if s.Target.Deficit != 300 || s.Target.Calories != 2300 {
		t.Fatalf("expected 300 kcal deficit target 2300, got %+v", s.Target)
	}
	if _, err := service.Suggest(sqldb, p.Username, localDay("2024-01-10"), service.SuggestOptions{Deficit: -1}); err == nil {
		t.Fatalf("expected negative deficit to fail")
	}
}

func TestSuggestNeedsCompleteProfile(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p, err := service.CreateProfile(sqldb, service.ProfileInput{Name: "Kim", Age: 33, Gender: "other", HeightCm: 170, Weight: 65})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := service.Suggest(sqldb, p.Username, localDay("2024-01-10"), service.SuggestOptions{}); err == nil {
		t.Fatalf("expected error when BMR is unavailable")
	}
}

func TestCopyPlanToLog(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	s, err := service.Suggest(sqldb, p.Username, localDay("2024-01-10"), service.SuggestOptions{})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	l, err := service.CopyPlanToLog(sqldb, p.Username, s)
	if err != nil {
		t.Fatalf("copy plan: %v", err)
	}
	got, err := service.GetLog(sqldb, p.Username, "2024-01-11")
	if err != nil {
		t.Fatalf("get copied log: %v", err)
	}
	if got.Calories == nil || int(*got.Calories) != s.Plan.TotalCalories || *got.ProteinG != *l.ProteinG {
		t.Fatalf("unexpected copied log: %+v", got)
	}
	if got.CarbsG != nil || got.FatG != nil || got.FiberG != nil {
		t.Fatalf("expected only calories and protein, got %+v", got)
	}
}

func TestDashboardStatsRecordsBestStreaks(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if _, err := service.SaveLog(sqldb, p.Username, model.DailyLog{Date: date, Calories: ptr(1800)}, false); err != nil {
			t.Fatalf("save log: %v", err)
		}
	}
	if _, err := service.AddWorkout(sqldb, p.Username, service.WorkoutInput{Date: "2024-01-02", Name: "Jogging", DurationMin: 45}); err != nil {
		t.Fatalf("add workout: %v", err)
	}

	s, err := service.DashboardStats(sqldb, p.Username, localDay("2024-01-03"))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.LogStreak != 3 || s.BestLogStreak != 3 || s.LogCount != 3 {
		t.Fatalf("unexpected log streaks: %+v", s)
	}
	if s.TodayIntake == nil || *s.TodayIntake != 1800 {
		t.Fatalf("unexpected today intake: %v", s.TodayIntake)
	}
	if s.Workouts.CurrentStreak != 1 || s.Workouts.BestStreak != 1 || s.Workouts.WeeklyMinutes != 45 {
		t.Fatalf("unexpected workout summary: %+v", s.Workouts)
	}

	s, err = service.DashboardStats(sqldb, p.Username, localDay("2024-01-04"))
	if err != nil {
		t.Fatalf("stats next day: %v", err)
	}
	if s.LogStreak != 0 || s.BestLogStreak != 3 {
		t.Fatalf("expected streak 0 with best 3, got %d/%d", s.LogStreak, s.BestLogStreak)
	}
	best, err := service.BestStreak(sqldb, p.Username, service.StreakWorkout)
	if err != nil || best != 1 {
		t.Fatalf("expected stored workout best 1, got %d (%v)", best, err)
	}
}

func TestTodaySummary(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	status, err := service.TodaySummary(sqldb, p.Username, localDay("2024-03-01"))
	if err != nil {
		t.Fatalf("today summary: %v", err)
	}
	if status.HasLog || status.IntakeCalories != nil || status.RemainingCalories == nil || *status.RemainingCalories != 2594 {
		t.Fatalf("unexpected empty-day status: %+v", status)
	}

	if _, err := service.SaveLog(sqldb, p.Username, model.DailyLog{Date: "2024-03-01", Calories: ptr(2000)}, false); err != nil {
		t.Fatalf("save log: %v", err)
	}
	if _, err := service.AddWorkout(sqldb, p.Username, service.WorkoutInput{Date: "2024-03-01", Name: "Jogging", DurationMin: 45}); err != nil {
		t.Fatalf("add workout: %v", err)
	}
	status, err = service.TodaySummary(sqldb, p.Username, localDay("2024-03-01"))
	if err != nil {
		t.Fatalf("today summary: %v", err)
	}
	if status.ExerciseCalories != 386 || *status.NetCalories != 1614 || *status.RemainingCalories != 980 {
		t.Fatalf("unexpected status: %+v", status)
	}
}
