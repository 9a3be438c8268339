package service_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shivani123B/fitlog/internal/model"
	"github.com/shivani123B/fitlog/internal/service"
)

func TestCreateProfileDefaultsAndUnits(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	p, err := service.CreateProfile(sqldb, service.ProfileInput{
		Name:         "Asha Rao",
		Age:          30,
		Gender:       "Female",
		HeightCm:     160,
		Weight:       132.277,
		WeightUnit:   "lb",
		DietCategory: "vegetarian",
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if !strings.HasPrefix(p.Username, "ash30") || len(p.Username) != 9 {
		t.Fatalf("unexpected username %q", p.Username)
	}
	if math.Abs(p.WeightKg-60) > 0.01 {
		t.Fatalf("expected ~60kg, got %v", p.WeightKg)
	}
	if p.Gender != model.GenderFemale || p.DietCategory != model.DietVegetarian {
		t.Fatalf("unexpected enums: %+v", p)
	}
	if p.WeeklyActiveMinutesGoal != 150 || p.PreferredDeficit != 500 {
		t.Fatalf("expected default goals, got %d/%d", p.WeeklyActiveMinutesGoal, p.PreferredDeficit)
	}

	got, err := service.GetProfile(sqldb, p.Username)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Name != "Asha Rao" || got.HeightCm != 160 || got.GoalWeightKg != nil {
		t.Fatalf("unexpected stored profile: %+v", got)
	}
}

func TestCreateProfileAllowsUnknownBody(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	p, err := service.CreateProfile(sqldb, service.ProfileInput{Name: "Jo", Age: 41})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.WeightKg != 0 || p.HeightCm != 0 || p.Gender != model.GenderPreferNotToSay {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	cases := []service.ProfileInput{
		{Name: "", Age: 30},
		{Name: "A", Age: 0},
		{Name: "A", Age: 30, Gender: "robot"},
		{Name: "A", Age: 30, DietCategory: "carnivore"},
		{Name: "A", Age: 30, Weight: 70, WeightUnit: "stone"},
		{Name: "A", Age: 30, Weight: -1},
	}
	for _, in := range cases {
		if _, err := service.CreateProfile(sqldb, in); err == nil {
			t.Fatalf("expected validation error for %+v", in)
		}
	}
}

func TestGenerateUsername(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		age    int
		prefix string
	}{
		{"Al", 7, "alx07"},
		{"Bob Smith", 105, "bob05"},
		{"Ó'Neil-99", 23, "nei23"},
	}
	for _, tc := range cases {
		got, err := service.GenerateUsername(tc.name, tc.age)
		if err != nil {
			t.Fatalf("generate username: %v", err)
		}
		if !strings.HasPrefix(got, tc.prefix) || len(got) != len(tc.prefix)+4 {
			t.Fatalf("GenerateUsername(%q, %d) = %q, want prefix %q", tc.name, tc.age, got, tc.prefix)
		}
	}
}

func TestUpdateProfileAndGoals(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	updated, err := service.UpdateProfile(sqldb, p.Username, service.ProfileInput{
		Name: "Ravi K", Age: 31, Gender: "male", HeightCm: 176, Weight: 72, DietCategory: "vegan",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Username != p.Username || updated.WeightKg != 72 || updated.DietCategory != model.DietVegan {
		t.Fatalf("unexpected update: %+v", updated)
	}

	zero := 0
	deficit := 300
	goals, err := service.UpdateGoals(sqldb, p.Username, service.GoalsInput{
		GoalWeight:              ptr(65),
		WeeklyActiveMinutesGoal: &zero,
		PreferredDeficit:        &deficit,
	})
	if err != nil {
		t.Fatalf("update goals: %v", err)
	}
	if goals.GoalWeightKg == nil || *goals.GoalWeightKg != 65 {
		t.Fatalf("expected goal weight 65, got %v", goals.GoalWeightKg)
	}
	if goals.WeeklyActiveMinutesGoal != 150 || goals.PreferredDeficit != 300 {
		t.Fatalf("unexpected goals: %+v", goals)
	}

	cleared, err := service.UpdateGoals(sqldb, p.Username, service.GoalsInput{ClearGoalWeight: true})
	if err != nil {
		t.Fatalf("clear goal weight: %v", err)
	}
	if cleared.GoalWeightKg != nil || cleared.PreferredDeficit != 300 {
		t.Fatalf("unexpected goals after clear: %+v", cleared)
	}
}

func TestActiveUserLifecycle(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	p := newTestProfile(t, sqldb)

	if _, err := service.ResolveUser(sqldb, ""); err == nil {
		t.Fatalf("expected error without an active user")
	}
	if err := service.SetActiveUser(sqldb, p.Username); err != nil {
		t.Fatalf("set active user: %v", err)
	}
	got, err := service.ResolveUser(sqldb, "")
	if err != nil {
		t.Fatalf("resolve active user: %v", err)
	}
	if got.Username != p.Username {
		t.Fatalf("expected %s, got %s", p.Username, got.Username)
	}
	if err := service.SetActiveUser(sqldb, "nobody"); !errors.Is(err, service.ErrProfileNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := service.DeleteProfile(sqldb, p.Username); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if _, ok, _ := service.GetConfig(sqldb, service.ConfigActiveUser); ok {
		t.Fatalf("expected active user to be cleared")
	}
	if _, err := service.GetProfile(sqldb, p.Username); !errors.Is(err, service.ErrProfileNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := service.DeleteProfile(sqldb, p.Username); !errors.Is(err, service.ErrProfileNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListProfiles(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	newTestProfile(t, sqldb)
	if _, err := service.CreateProfile(sqldb, service.ProfileInput{Name: "Meera", Age: 28, Gender: "female"}); err != nil {
		t.Fatalf("create second profile: %v", err)
	}
	profiles, err := service.ListProfiles(sqldb)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
}
